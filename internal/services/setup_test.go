package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"memberhub_backend/internal/auth"
	"memberhub_backend/internal/clock"
	"memberhub_backend/internal/services/dto"
	"memberhub_backend/test/testdb"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type recordingPusher struct {
	mu     sync.Mutex
	pushed map[string][]any
}

func (p *recordingPusher) PushToUser(userID string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pushed == nil {
		p.pushed = make(map[string][]any)
	}
	p.pushed[userID] = append(p.pushed[userID], payload)
}

func (p *recordingPusher) count(userID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pushed[userID])
}

type testEnv struct {
	ctx    context.Context
	db     *gorm.DB
	clock  *clock.Fixed
	svc    *ServiceContainer
	pusher *recordingPusher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clk := clock.NewFixed(jan1)
	db := testdb.New(t, clk.Now)
	svc := NewServiceContainer(auth.NewTokenIssuer("test-secret", time.Hour, clk.Now), clk)
	pusher := &recordingPusher{}
	svc.NotificationService.SetPusher(pusher)
	return &testEnv{
		ctx:    context.Background(),
		db:     db,
		clock:  clk,
		svc:    svc,
		pusher: pusher,
	}
}

// registerBusiness returns business and owner ids
func (e *testEnv) registerBusiness(t *testing.T, email string) (string, string) {
	t.Helper()
	resp, err := e.svc.AuthService.Register(e.ctx, e.db, &dto.RegisterRequest{
		Email:        email,
		Password:     "password123",
		FirstName:    "Olga",
		LastName:     "Owner",
		BusinessName: "Gym " + email,
	})
	require.NoError(t, err)
	return resp.Business.ID, resp.User.ID
}

func (e *testEnv) createMember(t *testing.T, businessID, first, last string) string {
	t.Helper()
	m, err := e.svc.MemberService.CreateMember(e.ctx, e.db, businessID, &dto.CreateMemberRequest{
		FirstName: first,
		LastName:  last,
	})
	require.NoError(t, err)
	return m.ID
}

func (e *testEnv) createPlan(t *testing.T, businessID, price string, days int) string {
	t.Helper()
	p, err := e.svc.PlanService.CreatePlan(e.ctx, e.db, businessID, &dto.CreatePlanRequest{
		Name:         "Monthly",
		Price:        decimal.RequireFromString(price),
		DurationDays: days,
	})
	require.NoError(t, err)
	return p.ID
}

func (e *testEnv) createMembership(t *testing.T, businessID, memberID, planID string, start time.Time) *dto.MembershipDTO {
	t.Helper()
	m, err := e.svc.MembershipService.CreateMembership(e.ctx, e.db, businessID, &dto.CreateMembershipRequest{
		MemberID:           memberID,
		SubscriptionPlanID: planID,
		StartDate:          &start,
	})
	require.NoError(t, err)
	return m
}

func (e *testEnv) pay(t *testing.T, businessID, membershipID, amount string) *dto.PaymentDTO {
	t.Helper()
	p, err := e.svc.PaymentService.RecordPayment(e.ctx, e.db, businessID, &dto.CreatePaymentRequest{
		MembershipID:  membershipID,
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	return p
}
