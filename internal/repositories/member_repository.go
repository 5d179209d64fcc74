package repositories

import (
	"errors"
	"strings"

	"memberhub_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrMemberNotFound = errors.New("member not found")

// MemberCriteria drives the paged member listing
type MemberCriteria struct {
	Search   string
	Page     int
	PageSize int
}

type MemberRepository interface {
	Create(db *gorm.DB, member *models.Member) error
	FindByID(db *gorm.DB, businessID, id string) (*models.Member, error)
	// FindByIDForUpdate locks the member row until the surrounding
	// transaction ends. Engines without row locks skip the clause.
	FindByIDForUpdate(db *gorm.DB, businessID, id string) (*models.Member, error)
	FindPaged(db *gorm.DB, businessID string, criteria MemberCriteria) ([]models.Member, int64, error)
	FindByBusiness(db *gorm.DB, businessID string) ([]models.Member, error)
	FindByIDs(db *gorm.DB, businessID string, ids []string) ([]models.Member, error)
	Update(db *gorm.DB, member *models.Member) error
	Deactivate(db *gorm.DB, businessID, id string) error
	CountByBusiness(db *gorm.DB, businessID string) (int64, error)
}

type MemberRepositoryImpl struct{}

func NewMemberRepository() MemberRepository {
	return &MemberRepositoryImpl{}
}

func (r *MemberRepositoryImpl) Create(db *gorm.DB, member *models.Member) error {
	return db.Create(member).Error
}

func (r *MemberRepositoryImpl) FindByID(db *gorm.DB, businessID, id string) (*models.Member, error) {
	return r.findOne(db, businessID, id)
}

func (r *MemberRepositoryImpl) FindByIDForUpdate(db *gorm.DB, businessID, id string) (*models.Member, error) {
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.findOne(db, businessID, id)
}

func (r *MemberRepositoryImpl) findOne(db *gorm.DB, businessID, id string) (*models.Member, error) {
	var member models.Member
	err := db.Where("id = ? AND business_id = ? AND is_deleted = ?", id, businessID, false).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepositoryImpl) FindPaged(db *gorm.DB, businessID string, criteria MemberCriteria) ([]models.Member, int64, error) {
	var members []models.Member
	var total int64

	query := db.Model(&models.Member{}).
		Where("business_id = ? AND is_deleted = ?", businessID, false)

	if search := strings.TrimSpace(criteria.Search); search != "" {
		lowered := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?)",
			lowered, lowered, lowered, "%"+search+"%",
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(criteria.Page, criteria.PageSize)
	err := query.
		Order("last_name ASC").
		Order("first_name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&members).Error

	return members, total, err
}

func (r *MemberRepositoryImpl) FindByBusiness(db *gorm.DB, businessID string) ([]models.Member, error) {
	var members []models.Member
	err := db.Where("business_id = ? AND is_deleted = ?", businessID, false).
		Order("last_name ASC").
		Find(&members).Error
	return members, err
}

func (r *MemberRepositoryImpl) FindByIDs(db *gorm.DB, businessID string, ids []string) ([]models.Member, error) {
	var members []models.Member
	if len(ids) == 0 {
		return members, nil
	}
	err := db.Where("business_id = ? AND is_deleted = ? AND id IN ?", businessID, false, ids).
		Find(&members).Error
	return members, err
}

func (r *MemberRepositoryImpl) Update(db *gorm.DB, member *models.Member) error {
	result := db.Model(&models.Member{}).
		Where("id = ? AND business_id = ? AND is_deleted = ?", member.ID, member.BusinessID, false).
		Updates(map[string]interface{}{
			"first_name":    member.FirstName,
			"last_name":     member.LastName,
			"email":         member.Email,
			"phone":         member.Phone,
			"address":       member.Address,
			"date_of_birth": member.DateOfBirth,
			"notes":         member.Notes,
			"is_active":     member.IsActive,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// Deactivate is the only way a member leaves; rows are never removed
func (r *MemberRepositoryImpl) Deactivate(db *gorm.DB, businessID, id string) error {
	result := db.Model(&models.Member{}).
		Where("id = ? AND business_id = ? AND is_deleted = ?", id, businessID, false).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepositoryImpl) CountByBusiness(db *gorm.DB, businessID string) (int64, error) {
	var count int64
	err := db.Model(&models.Member{}).
		Where("business_id = ? AND is_deleted = ?", businessID, false).
		Count(&count).Error
	return count, err
}

func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
