package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentInput struct {
	Amount   decimal.Decimal `json:"amount" validate:"gt=0"`
	Method   string          `json:"payment_method" validate:"required,is-payment-method"`
	Currency string          `json:"currency" validate:"omitempty,currency-code"`
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	err := v.Validate(&paymentInput{Amount: decimal.RequireFromString("29.99"), Method: "cash", Currency: "USD"})
	require.NoError(t, err)

	err = v.Validate(&paymentInput{Amount: decimal.Zero, Method: "cheque", Currency: "usd"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "amount")
	assert.Equal(t, "Unknown payment method", vErr.Errors["payment_method"])
	assert.Contains(t, vErr.Errors, "currency")
}

func TestValidate_NegativeAmount(t *testing.T) {
	v := New()
	err := v.Validate(&paymentInput{Amount: decimal.RequireFromString("-5"), Method: "card"})
	require.Error(t, err)
	assert.Contains(t, err.(*ValidationError).Errors, "amount")
}
