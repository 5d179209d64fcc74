package services

import (
	"context"
	"time"

	"memberhub_backend/internal/clock"
	"memberhub_backend/internal/logger"
	"memberhub_backend/internal/metrics"
	"memberhub_backend/internal/models"
	"memberhub_backend/internal/repositories"
	"memberhub_backend/internal/services/dto"
	"memberhub_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const DefaultRenewalWindowDays = 7

type MembershipService interface {
	CreateMembership(ctx context.Context, db *gorm.DB, businessID string, req *dto.CreateMembershipRequest) (*dto.MembershipDTO, error)
	GetMembership(ctx context.Context, db *gorm.DB, businessID, membershipID string) (*dto.MembershipDTO, error)
	ListMemberships(ctx context.Context, db *gorm.DB, businessID, memberID string) ([]dto.MembershipDTO, error)

	GetActive(ctx context.Context, db *gorm.DB, businessID string) ([]dto.MembershipDTO, error)
	GetExpired(ctx context.Context, db *gorm.DB, businessID string) ([]dto.MembershipDTO, error)
	GetExpiringWithinDays(ctx context.Context, db *gorm.DB, businessID string, days int) ([]dto.MembershipDTO, error)
}

type membershipService struct {
	membershipRepo repositories.MembershipRepository
	memberRepo     repositories.MemberRepository
	planRepo       repositories.PlanRepository
	notifier       NotificationService
	clock          clock.Clock
}

func NewMembershipService(
	membershipRepo repositories.MembershipRepository,
	memberRepo repositories.MemberRepository,
	planRepo repositories.PlanRepository,
	notifier NotificationService,
	clk clock.Clock,
) MembershipService {
	return &membershipService{
		membershipRepo: membershipRepo,
		memberRepo:     memberRepo,
		planRepo:       planRepo,
		notifier:       notifier,
		clock:          clk,
	}
}

// CreateMembership assigns a plan to a member. The member row is locked for
// the whole transaction so two concurrent creations for the same member
// cannot both pass the overlap check.
func (s *membershipService) CreateMembership(ctx context.Context, db *gorm.DB, businessID string, req *dto.CreateMembershipRequest) (*dto.MembershipDTO, error) {
	start := s.clock.Now()
	if req.StartDate != nil {
		start = req.StartDate.UTC()
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	member, err := s.memberRepo.FindByIDForUpdate(tx, businessID, req.MemberID)
	if err != nil {
		return nil, mapMemberError(err)
	}

	plan, err := s.planRepo.FindByID(tx, businessID, req.SubscriptionPlanID)
	if err != nil {
		return nil, mapPlanError(err)
	}
	if plan.DurationDays <= 0 {
		return nil, apperrors.ErrInvalidPlanDuration
	}

	expiry := ExpiryDate(start, plan.DurationDays)

	overlapping, err := s.membershipRepo.HasOverlapping(tx, member.ID, start, expiry, "")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if overlapping {
		metrics.RecordMembershipConflict()
		logger.CtxWarn(ctx, "membership overlaps an active one", "member_id", member.ID,
			"start", start, "expiry", expiry)
		return nil, apperrors.ErrMembershipOverlap
	}

	membership := &models.Membership{
		BusinessID:         businessID,
		MemberID:           member.ID,
		SubscriptionPlanID: plan.ID,
		StartDate:          start,
		ExpiryDate:         expiry,
		Status:             models.MembershipStatusActive,
		TotalAmount:        plan.Price,
		PaidAmount:         decimal.Zero,
		Notes:              req.Notes,
	}
	if err := s.membershipRepo.Create(tx, membership); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	metrics.RecordMembershipCreated()
	logger.CtxInfo(ctx, "membership created", "membership_id", membership.ID, "member_id", member.ID,
		"plan_id", plan.ID, "expiry", expiry)

	s.notifier.Notify(ctx, db, dto.CreateNotification{
		BusinessID:        businessID,
		Type:              models.NotificationTypeMembershipCreated,
		Title:             "Membership created",
		Message:           member.FullName() + " subscribed to " + plan.Name,
		RelatedEntityType: "membership",
		RelatedEntityID:   membership.ID,
		Metadata: map[string]interface{}{
			"member_id":   member.ID,
			"plan_id":     plan.ID,
			"expiry_date": expiry.Format(time.RFC3339),
		},
	})

	out := dto.NewMembershipDTO(membership, member, plan)
	return &out, nil
}

// ExpiryDate adds whole calendar days in UTC
func ExpiryDate(start time.Time, durationDays int) time.Time {
	return start.UTC().AddDate(0, 0, durationDays)
}

func (s *membershipService) GetMembership(ctx context.Context, db *gorm.DB, businessID, membershipID string) (*dto.MembershipDTO, error) {
	membership, err := s.membershipRepo.FindByID(db, businessID, membershipID)
	if err != nil {
		return nil, mapMembershipError(err)
	}
	out, err := s.toDTOs(db, businessID, []models.Membership{*membership})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *membershipService) ListMemberships(ctx context.Context, db *gorm.DB, businessID, memberID string) ([]dto.MembershipDTO, error) {
	memberships, err := s.membershipRepo.FindByBusiness(db, businessID, memberID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toDTOs(db, businessID, memberships)
}

func (s *membershipService) GetActive(ctx context.Context, db *gorm.DB, businessID string) ([]dto.MembershipDTO, error) {
	memberships, err := s.membershipRepo.FindActive(db, businessID, s.clock.Now())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toDTOs(db, businessID, memberships)
}

func (s *membershipService) GetExpired(ctx context.Context, db *gorm.DB, businessID string) ([]dto.MembershipDTO, error) {
	memberships, err := s.membershipRepo.FindExpired(db, businessID, s.clock.Now())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toDTOs(db, businessID, memberships)
}

func (s *membershipService) GetExpiringWithinDays(ctx context.Context, db *gorm.DB, businessID string, days int) ([]dto.MembershipDTO, error) {
	if days < 0 {
		return nil, apperrors.NewBadRequestError("days must not be negative")
	}
	memberships, err := s.membershipRepo.FindExpiringWithin(db, businessID, s.clock.Now(), days)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toDTOs(db, businessID, memberships)
}

// toDTOs resolves member and plan names with one query each
func (s *membershipService) toDTOs(db *gorm.DB, businessID string, memberships []models.Membership) ([]dto.MembershipDTO, error) {
	memberIDs := make([]string, 0, len(memberships))
	planIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		memberIDs = append(memberIDs, m.MemberID)
		planIDs = append(planIDs, m.SubscriptionPlanID)
	}

	members, err := s.memberRepo.FindByIDs(db, businessID, memberIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	plans, err := s.planRepo.FindByIDs(db, businessID, planIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	memberByID := make(map[string]*models.Member, len(members))
	for i := range members {
		memberByID[members[i].ID] = &members[i]
	}
	planByID := make(map[string]*models.SubscriptionPlan, len(plans))
	for i := range plans {
		planByID[plans[i].ID] = &plans[i]
	}

	out := make([]dto.MembershipDTO, 0, len(memberships))
	for i := range memberships {
		m := &memberships[i]
		out = append(out, dto.NewMembershipDTO(m, memberByID[m.MemberID], planByID[m.SubscriptionPlanID]))
	}
	return out, nil
}

func mapMembershipError(err error) error {
	if apperrors.Is(err, repositories.ErrMembershipNotFound) {
		return apperrors.ErrMembershipNotFound
	}
	return apperrors.InternalError(err)
}
