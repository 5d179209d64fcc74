package repositories

import (
	"testing"
	"time"

	"memberhub_backend/internal/models"
	"memberhub_backend/test/testdb"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) *gorm.DB {
	return testdb.New(t, func() time.Time { return baseTime })
}

func seedBusiness(t *testing.T, db *gorm.DB, name string) *models.Business {
	t.Helper()
	owner := &models.User{Email: name + "@example.com", PasswordHash: "x", FirstName: "O", LastName: "Wner", Role: models.UserRoleOwner}
	owner.ID = uuid.NewString()
	business := &models.Business{UserID: owner.ID, Name: name, Currency: "USD"}
	business.ID = uuid.NewString()
	owner.BusinessID = business.ID
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(business).Error)
	return business
}

func seedMember(t *testing.T, db *gorm.DB, businessID, first, last string) *models.Member {
	t.Helper()
	member := &models.Member{BusinessID: businessID, FirstName: first, LastName: last, IsActive: true}
	require.NoError(t, db.Create(member).Error)
	return member
}

func seedPlan(t *testing.T, db *gorm.DB, businessID string, price string, days int) *models.SubscriptionPlan {
	t.Helper()
	plan := &models.SubscriptionPlan{
		BusinessID:   businessID,
		Name:         "Plan",
		Price:        decimal.RequireFromString(price),
		DurationDays: days,
		IsActive:     true,
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}

func seedMembership(t *testing.T, db *gorm.DB, member *models.Member, plan *models.SubscriptionPlan, start time.Time, status models.MembershipStatus) *models.Membership {
	t.Helper()
	m := &models.Membership{
		BusinessID:         member.BusinessID,
		MemberID:           member.ID,
		SubscriptionPlanID: plan.ID,
		StartDate:          start,
		ExpiryDate:         start.AddDate(0, 0, plan.DurationDays),
		Status:             status,
		TotalAmount:        plan.Price,
		PaidAmount:         decimal.Zero,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}
