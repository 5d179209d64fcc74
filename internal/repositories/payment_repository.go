package repositories

import (
	"errors"
	"time"

	"memberhub_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository interface {
	Create(db *gorm.DB, payment *models.Payment) error
	FindByID(db *gorm.DB, businessID, id string) (*models.Payment, error)
	// FindByBusiness lists payments newest first, optionally for one membership
	FindByBusiness(db *gorm.DB, businessID, membershipID string) ([]models.Payment, error)
	SumByMembership(db *gorm.DB, membershipID string) (decimal.Decimal, error)
	// SumBetween totals payments dated in [from, to)
	SumBetween(db *gorm.DB, businessID string, from, to time.Time) (decimal.Decimal, error)
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

func (r *PaymentRepositoryImpl) Create(db *gorm.DB, payment *models.Payment) error {
	return db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindByID(db *gorm.DB, businessID, id string) (*models.Payment, error) {
	var payment models.Payment
	err := db.Where("id = ? AND business_id = ? AND is_deleted = ?", id, businessID, false).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByBusiness(db *gorm.DB, businessID, membershipID string) ([]models.Payment, error) {
	var payments []models.Payment
	query := db.Where("business_id = ? AND is_deleted = ?", businessID, false)
	if membershipID != "" {
		query = query.Where("membership_id = ?", membershipID)
	}
	err := query.Order("payment_date DESC").Find(&payments).Error
	return payments, err
}

// SumByMembership is the source of truth for Membership.PaidAmount
func (r *PaymentRepositoryImpl) SumByMembership(db *gorm.DB, membershipID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.Model(&models.Payment{}).
		Where("membership_id = ? AND is_deleted = ?", membershipID, false).
		Select("COALESCE(SUM(amount), 0)").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}

func (r *PaymentRepositoryImpl) SumBetween(db *gorm.DB, businessID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.Model(&models.Payment{}).
		Where("business_id = ? AND is_deleted = ?", businessID, false).
		Where("payment_date >= ? AND payment_date < ?", from, to).
		Select("COALESCE(SUM(amount), 0)").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}
