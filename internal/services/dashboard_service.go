package services

import (
	"context"

	"memberhub_backend/internal/clock"
	"memberhub_backend/internal/repositories"
	"memberhub_backend/internal/services/dto"
	"memberhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type DashboardService interface {
	// GetStats is computed on every call; nothing is cached
	GetStats(ctx context.Context, db *gorm.DB, businessID string) (*dto.DashboardStats, error)
}

type dashboardService struct {
	memberRepo     repositories.MemberRepository
	membershipRepo repositories.MembershipRepository
	paymentRepo    repositories.PaymentRepository
	clock          clock.Clock
}

func NewDashboardService(
	memberRepo repositories.MemberRepository,
	membershipRepo repositories.MembershipRepository,
	paymentRepo repositories.PaymentRepository,
	clk clock.Clock,
) DashboardService {
	return &dashboardService{
		memberRepo:     memberRepo,
		membershipRepo: membershipRepo,
		paymentRepo:    paymentRepo,
		clock:          clk,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, db *gorm.DB, businessID string) (*dto.DashboardStats, error) {
	now := s.clock.Now()
	stats := &dto.DashboardStats{}
	var err error

	if stats.TotalMembers, err = s.memberRepo.CountByBusiness(db, businessID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.ActiveMembers, err = s.membershipRepo.CountDistinctActiveMembers(db, businessID, now); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.ExpiredMembers, err = s.membershipRepo.CountDistinctExpiredMembers(db, businessID, now); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.RenewalsDueToday, err = s.membershipRepo.CountExpiringWithin(db, businessID, now, 0); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.RenewalsDueThisWeek, err = s.membershipRepo.CountExpiringWithin(db, businessID, now, DefaultRenewalWindowDays); err != nil {
		return nil, apperrors.InternalError(err)
	}
	monthStart := clock.StartOfMonth(now)
	if stats.MonthlyCollection, err = s.paymentRepo.SumBetween(db, businessID, monthStart, monthStart.AddDate(0, 1, 0)); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.TotalOutstanding, err = s.membershipRepo.SumOutstanding(db, businessID, now); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return stats, nil
}
