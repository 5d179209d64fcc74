package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Membership assigns a plan to a member for [StartDate, ExpiryDate].
// TotalAmount is the plan price at creation time; PaidAmount is the sum of
// the membership's payments.
type Membership struct {
	BaseModel
	BusinessID         string           `gorm:"type:uuid;not null;index"`
	MemberID           string           `gorm:"type:uuid;not null;index:idx_memberships_member_status"`
	SubscriptionPlanID string           `gorm:"type:uuid;not null;index"`
	StartDate          time.Time        `gorm:"not null"`
	ExpiryDate         time.Time        `gorm:"not null;index"`
	Status             MembershipStatus `gorm:"type:varchar(20);not null;default:'active';index:idx_memberships_member_status"`
	TotalAmount        decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	PaidAmount         decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	Notes              string
}

// RemainingAmount is never stored
func (m *Membership) RemainingAmount() decimal.Decimal {
	return m.TotalAmount.Sub(m.PaidAmount)
}

// Overlaps reports whether [start, end] intersects the membership's range,
// boundaries included.
func (m *Membership) Overlaps(start, end time.Time) bool {
	return !m.StartDate.After(end) && !m.ExpiryDate.Before(start)
}
