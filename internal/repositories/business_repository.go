package repositories

import (
	"errors"

	"memberhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrBusinessNotFound = errors.New("business not found")

type BusinessRepository interface {
	Create(db *gorm.DB, business *models.Business) error
	FindByID(db *gorm.DB, id string) (*models.Business, error)
	FindByUserID(db *gorm.DB, userID string) (*models.Business, error)
	Update(db *gorm.DB, business *models.Business) error
}

type BusinessRepositoryImpl struct{}

func NewBusinessRepository() BusinessRepository {
	return &BusinessRepositoryImpl{}
}

func (r *BusinessRepositoryImpl) Create(db *gorm.DB, business *models.Business) error {
	return db.Create(business).Error
}

func (r *BusinessRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Business, error) {
	var business models.Business
	err := db.Where("id = ? AND is_deleted = ?", id, false).First(&business).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return &business, nil
}

func (r *BusinessRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Business, error) {
	var business models.Business
	err := db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&business).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return &business, nil
}

func (r *BusinessRepositoryImpl) Update(db *gorm.DB, business *models.Business) error {
	result := db.Model(business).
		Where("is_deleted = ?", false).
		Updates(map[string]interface{}{
			"name":        business.Name,
			"description": business.Description,
			"address":     business.Address,
			"phone":       business.Phone,
			"email":       business.Email,
			"currency":    business.Currency,
			"tax_id":      business.TaxID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBusinessNotFound
	}
	return nil
}
