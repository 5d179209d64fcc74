package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestMembership_Overlaps(t *testing.T) {
	existing := &Membership{StartDate: day(1), ExpiryDate: day(31)}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"starts inside", day(15), day(31).AddDate(0, 1, 0), true},
		{"ends inside", day(1).AddDate(0, 0, -10), day(5), true},
		{"contains existing", day(1).AddDate(0, 0, -1), day(31).AddDate(0, 0, 1), true},
		{"inside existing", day(10), day(20), true},
		{"touches expiry", day(31), day(31).AddDate(0, 1, 0), true},
		{"touches start", day(1).AddDate(0, -1, 0), day(1), true},
		{"entirely after", day(31).Add(time.Second), day(31).AddDate(0, 1, 0), false},
		{"entirely before", day(1).AddDate(0, -1, 0), day(1).Add(-time.Second), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, existing.Overlaps(tc.start, tc.end))
		})
	}
}

func TestMembership_RemainingAmount(t *testing.T) {
	m := &Membership{
		TotalAmount: decimal.RequireFromString("29.99"),
		PaidAmount:  decimal.RequireFromString("15.00"),
	}
	assert.Equal(t, "14.99", m.RemainingAmount().StringFixed(2))

	m.PaidAmount = decimal.RequireFromString("40")
	assert.True(t, m.RemainingAmount().IsNegative())
}

func TestEnumsValidity(t *testing.T) {
	assert.True(t, PaymentMethodCash.IsValid())
	assert.False(t, PaymentMethod("cheque").IsValid())
	assert.True(t, MembershipStatusCancelled.IsValid())
	assert.False(t, MembershipStatus("paused").IsValid())
}
