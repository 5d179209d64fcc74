package validator

import (
	"log"
	"reflect"
	"regexp"

	"memberhub_backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// registerCustomRules registers the domain tags used by the DTOs
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-membership-status", validateMembershipStatus)
	mustRegister("is-payment-method", validatePaymentMethod)
	mustRegister("currency-code", validateCurrencyCode)

	// money fields validate as numbers, so gt=0 / gte=0 work on decimals
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}
	switch models.UserRole(value) {
	case models.UserRoleOwner, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateMembershipStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.MembershipStatus(value).IsValid()
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.PaymentMethod(value).IsValid()
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return currencyCodePattern.MatchString(value)
}
