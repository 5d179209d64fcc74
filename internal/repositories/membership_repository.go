package repositories

import (
	"errors"
	"time"

	"memberhub_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrMembershipNotFound = errors.New("membership not found")

type MembershipRepository interface {
	Create(db *gorm.DB, membership *models.Membership) error
	FindByID(db *gorm.DB, businessID, id string) (*models.Membership, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends
	FindByIDForUpdate(db *gorm.DB, businessID, id string) (*models.Membership, error)
	FindByBusiness(db *gorm.DB, businessID, memberID string) ([]models.Membership, error)

	// HasOverlapping reports whether the member holds an active membership
	// whose range intersects [start, end] (boundaries included).
	// excludeID skips one membership, used when editing.
	HasOverlapping(db *gorm.DB, memberID string, start, end time.Time, excludeID string) (bool, error)

	// Time-window queries, all business scoped
	FindActive(db *gorm.DB, businessID string, now time.Time) ([]models.Membership, error)
	FindExpired(db *gorm.DB, businessID string, now time.Time) ([]models.Membership, error)
	FindExpiringWithin(db *gorm.DB, businessID string, now time.Time, days int) ([]models.Membership, error)

	// Aggregates over the same windows
	CountDistinctActiveMembers(db *gorm.DB, businessID string, now time.Time) (int64, error)
	CountDistinctExpiredMembers(db *gorm.DB, businessID string, now time.Time) (int64, error)
	CountExpiringWithin(db *gorm.DB, businessID string, now time.Time, days int) (int64, error)
	SumOutstanding(db *gorm.DB, businessID string, now time.Time) (decimal.Decimal, error)

	UpdatePaidAmount(db *gorm.DB, id string, paid decimal.Decimal, now time.Time) error

	// Expiry sweep, across all businesses
	FindDueForExpiry(db *gorm.DB, now time.Time, limit int) ([]models.Membership, error)
	FindExpiringAcrossBusinesses(db *gorm.DB, now time.Time, days int) ([]models.Membership, error)
	MarkExpired(db *gorm.DB, id string, now time.Time) (bool, error)
}

type MembershipRepositoryImpl struct{}

func NewMembershipRepository() MembershipRepository {
	return &MembershipRepositoryImpl{}
}

// --- scopes ---

func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("memberships.is_deleted = ?", false)
}

func inBusiness(businessID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("memberships.business_id = ?", businessID)
	}
}

// activeAt: status active and not yet past expiry
func activeAt(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("memberships.status = ? AND memberships.expiry_date > ?", models.MembershipStatusActive, now)
	}
}

// expiredAt: flagged expired, or past expiry whatever the status says
func expiredAt(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(memberships.status = ? OR memberships.expiry_date <= ?)", models.MembershipStatusExpired, now)
	}
}

func expiringWithin(now time.Time, days int) func(*gorm.DB) *gorm.DB {
	until := now.AddDate(0, 0, days)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("memberships.status = ? AND memberships.expiry_date >= ? AND memberships.expiry_date <= ?",
			models.MembershipStatusActive, now, until)
	}
}

// --- CRUD ---

func (r *MembershipRepositoryImpl) Create(db *gorm.DB, membership *models.Membership) error {
	return db.Create(membership).Error
}

func (r *MembershipRepositoryImpl) FindByID(db *gorm.DB, businessID, id string) (*models.Membership, error) {
	return r.findOne(db, businessID, id)
}

func (r *MembershipRepositoryImpl) FindByIDForUpdate(db *gorm.DB, businessID, id string) (*models.Membership, error) {
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.findOne(db, businessID, id)
}

func (r *MembershipRepositoryImpl) findOne(db *gorm.DB, businessID, id string) (*models.Membership, error) {
	var membership models.Membership
	err := db.Scopes(notDeleted, inBusiness(businessID)).
		Where("memberships.id = ?", id).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}
	return &membership, nil
}

func (r *MembershipRepositoryImpl) FindByBusiness(db *gorm.DB, businessID, memberID string) ([]models.Membership, error) {
	var memberships []models.Membership
	query := db.Scopes(notDeleted, inBusiness(businessID))
	if memberID != "" {
		query = query.Where("memberships.member_id = ?", memberID)
	}
	err := query.Order("memberships.created_at DESC").Find(&memberships).Error
	return memberships, err
}

func (r *MembershipRepositoryImpl) HasOverlapping(db *gorm.DB, memberID string, start, end time.Time, excludeID string) (bool, error) {
	var count int64
	// [s1,e1] and [s2,e2] intersect iff s1 <= e2 AND e1 >= s2
	query := db.Model(&models.Membership{}).
		Scopes(notDeleted).
		Where("memberships.member_id = ? AND memberships.status = ?", memberID, models.MembershipStatusActive).
		Where("memberships.start_date <= ? AND memberships.expiry_date >= ?", end, start)
	if excludeID != "" {
		query = query.Where("memberships.id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --- windows ---

func (r *MembershipRepositoryImpl) FindActive(db *gorm.DB, businessID string, now time.Time) ([]models.Membership, error) {
	var memberships []models.Membership
	err := db.Scopes(notDeleted, inBusiness(businessID), activeAt(now)).
		Order("memberships.expiry_date ASC").
		Find(&memberships).Error
	return memberships, err
}

func (r *MembershipRepositoryImpl) FindExpired(db *gorm.DB, businessID string, now time.Time) ([]models.Membership, error) {
	var memberships []models.Membership
	err := db.Scopes(notDeleted, inBusiness(businessID), expiredAt(now)).
		Order("memberships.expiry_date DESC").
		Find(&memberships).Error
	return memberships, err
}

func (r *MembershipRepositoryImpl) FindExpiringWithin(db *gorm.DB, businessID string, now time.Time, days int) ([]models.Membership, error) {
	var memberships []models.Membership
	err := db.Scopes(notDeleted, inBusiness(businessID), expiringWithin(now, days)).
		Order("memberships.expiry_date ASC").
		Find(&memberships).Error
	return memberships, err
}

func (r *MembershipRepositoryImpl) CountDistinctActiveMembers(db *gorm.DB, businessID string, now time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Membership{}).
		Scopes(notDeleted, inBusiness(businessID), activeAt(now)).
		Distinct("member_id").
		Count(&count).Error
	return count, err
}

func (r *MembershipRepositoryImpl) CountDistinctExpiredMembers(db *gorm.DB, businessID string, now time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Membership{}).
		Scopes(notDeleted, inBusiness(businessID), expiredAt(now)).
		Distinct("member_id").
		Count(&count).Error
	return count, err
}

func (r *MembershipRepositoryImpl) CountExpiringWithin(db *gorm.DB, businessID string, now time.Time, days int) (int64, error) {
	var count int64
	err := db.Model(&models.Membership{}).
		Scopes(notDeleted, inBusiness(businessID), expiringWithin(now, days)).
		Count(&count).Error
	return count, err
}

func (r *MembershipRepositoryImpl) SumOutstanding(db *gorm.DB, businessID string, now time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.Model(&models.Membership{}).
		Scopes(notDeleted, inBusiness(businessID), activeAt(now)).
		Select("COALESCE(SUM(memberships.total_amount - memberships.paid_amount), 0)").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}

// --- mutations ---

func (r *MembershipRepositoryImpl) UpdatePaidAmount(db *gorm.DB, id string, paid decimal.Decimal, now time.Time) error {
	result := db.Model(&models.Membership{}).
		Scopes(notDeleted).
		Where("memberships.id = ?", id).
		Updates(map[string]interface{}{
			"paid_amount": paid,
			"updated_at":  now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

func (r *MembershipRepositoryImpl) FindDueForExpiry(db *gorm.DB, now time.Time, limit int) ([]models.Membership, error) {
	var memberships []models.Membership
	query := db.Scopes(notDeleted).
		Where("memberships.status = ? AND memberships.expiry_date <= ?", models.MembershipStatusActive, now).
		Order("memberships.expiry_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&memberships).Error
	return memberships, err
}

func (r *MembershipRepositoryImpl) FindExpiringAcrossBusinesses(db *gorm.DB, now time.Time, days int) ([]models.Membership, error) {
	var memberships []models.Membership
	err := db.Scopes(notDeleted, expiringWithin(now, days)).
		Order("memberships.expiry_date ASC").
		Find(&memberships).Error
	return memberships, err
}

// MarkExpired flips one row from active to expired. The status predicate
// makes it a no-op for rows already changed by someone else; the returned
// bool says whether this call did the transition.
func (r *MembershipRepositoryImpl) MarkExpired(db *gorm.DB, id string, now time.Time) (bool, error) {
	result := db.Model(&models.Membership{}).
		Where("id = ? AND status = ? AND is_deleted = ?", id, models.MembershipStatusActive, false).
		Updates(map[string]interface{}{
			"status":     models.MembershipStatusExpired,
			"updated_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
