package services

import (
	"testing"
	"time"

	"memberhub_backend/internal/services/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_GetStats(t *testing.T) {
	env := newTestEnv(t)
	biz, _ := env.registerBusiness(t, "owner@gym.test")
	other, _ := env.registerBusiness(t, "other@gym.test")
	plan := env.createPlan(t, biz, "29.99", 30)

	a := env.createMember(t, biz, "A", "A")
	b := env.createMember(t, biz, "B", "B")
	c := env.createMember(t, biz, "C", "C")
	env.createMember(t, biz, "D", "D")
	env.createMember(t, other, "X", "X")

	ma := env.createMembership(t, biz, a, plan, time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC)) // expires Jan 19
	env.createMembership(t, biz, b, plan, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))       // expires Feb 9
	env.createMembership(t, biz, c, plan, time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC))       // expired Dec 1

	env.pay(t, biz, ma.ID, "10.00") // paid Jan 1

	env.clock.Set(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	env.pay(t, biz, ma.ID, "5.50")

	stats, err := env.svc.DashboardService.GetStats(env.ctx, env.db, biz)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalMembers)
	assert.Equal(t, int64(2), stats.ActiveMembers)
	assert.Equal(t, int64(1), stats.ExpiredMembers)
	assert.Equal(t, int64(0), stats.RenewalsDueToday)
	assert.Equal(t, int64(1), stats.RenewalsDueThisWeek)
	assert.Equal(t, "15.50", stats.MonthlyCollection.StringFixed(2))
	// (29.99 - 15.50) + 29.99
	assert.Equal(t, "44.48", stats.TotalOutstanding.StringFixed(2))

	empty, err := env.svc.DashboardService.GetStats(env.ctx, env.db, other)
	require.NoError(t, err)
	assert.Equal(t, int64(1), empty.TotalMembers)
	assert.True(t, empty.TotalOutstanding.IsZero())
}

func TestDashboard_MonthlyCollectionIgnoresOtherMonths(t *testing.T) {
	env := newTestEnv(t)
	biz, _ := env.registerBusiness(t, "owner@gym.test")
	plan := env.createPlan(t, biz, "100.00", 90)
	m := env.createMembership(t, biz, env.createMember(t, biz, "A", "A"), plan, jan1)

	for _, p := range []struct {
		amount string
		date   time.Time
	}{
		{"10.00", time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)},
		{"20.00", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"40.00", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	} {
		date := p.date
		_, err := env.svc.PaymentService.RecordPayment(env.ctx, env.db, biz, &dto.CreatePaymentRequest{
			MembershipID:  m.ID,
			Amount:        decimal.RequireFromString(p.amount),
			PaymentMethod: "card",
			PaymentDate:   &date,
		})
		require.NoError(t, err)
	}

	env.clock.Set(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	stats, err := env.svc.DashboardService.GetStats(env.ctx, env.db, biz)
	require.NoError(t, err)
	assert.Equal(t, "20.00", stats.MonthlyCollection.StringFixed(2))
	assert.Equal(t, "30.00", stats.TotalOutstanding.StringFixed(2))
}
