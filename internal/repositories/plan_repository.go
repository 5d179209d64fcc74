package repositories

import (
	"errors"

	"memberhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPlanNotFound = errors.New("subscription plan not found")

type PlanRepository interface {
	Create(db *gorm.DB, plan *models.SubscriptionPlan) error
	FindByID(db *gorm.DB, businessID, id string) (*models.SubscriptionPlan, error)
	FindByBusiness(db *gorm.DB, businessID string, activeOnly bool) ([]models.SubscriptionPlan, error)
	FindByIDs(db *gorm.DB, businessID string, ids []string) ([]models.SubscriptionPlan, error)
	Update(db *gorm.DB, plan *models.SubscriptionPlan) error
}

type PlanRepositoryImpl struct{}

func NewPlanRepository() PlanRepository {
	return &PlanRepositoryImpl{}
}

func (r *PlanRepositoryImpl) Create(db *gorm.DB, plan *models.SubscriptionPlan) error {
	return db.Create(plan).Error
}

func (r *PlanRepositoryImpl) FindByID(db *gorm.DB, businessID, id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := db.Where("id = ? AND business_id = ? AND is_deleted = ?", id, businessID, false).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) FindByBusiness(db *gorm.DB, businessID string, activeOnly bool) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	query := db.Where("business_id = ? AND is_deleted = ?", businessID, false)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("name ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepositoryImpl) FindByIDs(db *gorm.DB, businessID string, ids []string) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	if len(ids) == 0 {
		return plans, nil
	}
	err := db.Where("business_id = ? AND is_deleted = ? AND id IN ?", businessID, false, ids).
		Find(&plans).Error
	return plans, err
}

// Update touches only the plan row. Memberships keep the amounts they
// snapshotted at creation.
func (r *PlanRepositoryImpl) Update(db *gorm.DB, plan *models.SubscriptionPlan) error {
	result := db.Model(&models.SubscriptionPlan{}).
		Where("id = ? AND business_id = ? AND is_deleted = ?", plan.ID, plan.BusinessID, false).
		Updates(map[string]interface{}{
			"name":          plan.Name,
			"description":   plan.Description,
			"price":         plan.Price,
			"duration_days": plan.DurationDays,
			"is_active":     plan.IsActive,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}
