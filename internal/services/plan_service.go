package services

import (
	"context"

	"memberhub_backend/internal/models"
	"memberhub_backend/internal/repositories"
	"memberhub_backend/internal/services/dto"
	"memberhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type PlanService interface {
	CreatePlan(ctx context.Context, db *gorm.DB, businessID string, req *dto.CreatePlanRequest) (*dto.PlanDTO, error)
	GetPlan(ctx context.Context, db *gorm.DB, businessID, planID string) (*dto.PlanDTO, error)
	ListPlans(ctx context.Context, db *gorm.DB, businessID string, activeOnly bool) ([]dto.PlanDTO, error)
	// UpdatePlan leaves existing memberships untouched; they keep their
	// snapshotted amount and expiry.
	UpdatePlan(ctx context.Context, db *gorm.DB, businessID, planID string, req *dto.UpdatePlanRequest) (*dto.PlanDTO, error)
}

type planService struct {
	planRepo repositories.PlanRepository
}

func NewPlanService(planRepo repositories.PlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

func (s *planService) CreatePlan(ctx context.Context, db *gorm.DB, businessID string, req *dto.CreatePlanRequest) (*dto.PlanDTO, error) {
	if err := validatePlan(req); err != nil {
		return nil, err
	}

	plan := &models.SubscriptionPlan{
		BusinessID:   businessID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price.Round(2),
		DurationDays: req.DurationDays,
		IsActive:     true,
	}
	if err := s.planRepo.Create(db, plan); err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := dto.NewPlanDTO(plan)
	return &out, nil
}

func (s *planService) GetPlan(ctx context.Context, db *gorm.DB, businessID, planID string) (*dto.PlanDTO, error) {
	plan, err := s.planRepo.FindByID(db, businessID, planID)
	if err != nil {
		return nil, mapPlanError(err)
	}
	out := dto.NewPlanDTO(plan)
	return &out, nil
}

func (s *planService) ListPlans(ctx context.Context, db *gorm.DB, businessID string, activeOnly bool) ([]dto.PlanDTO, error) {
	plans, err := s.planRepo.FindByBusiness(db, businessID, activeOnly)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.PlanDTO, 0, len(plans))
	for i := range plans {
		out = append(out, dto.NewPlanDTO(&plans[i]))
	}
	return out, nil
}

func (s *planService) UpdatePlan(ctx context.Context, db *gorm.DB, businessID, planID string, req *dto.UpdatePlanRequest) (*dto.PlanDTO, error) {
	if err := validatePlan(&req.CreatePlanRequest); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.FindByID(db, businessID, planID)
	if err != nil {
		return nil, mapPlanError(err)
	}

	plan.Name = req.Name
	plan.Description = req.Description
	plan.Price = req.Price.Round(2)
	plan.DurationDays = req.DurationDays
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.planRepo.Update(db, plan); err != nil {
		return nil, mapPlanError(err)
	}

	out := dto.NewPlanDTO(plan)
	return &out, nil
}

// validatePlan repeats the DTO rules for callers that skip the HTTP layer
func validatePlan(req *dto.CreatePlanRequest) error {
	if req.DurationDays <= 0 {
		return apperrors.ErrInvalidPlanDuration
	}
	if req.Price.IsNegative() {
		return apperrors.ErrNegativePlanPrice
	}
	return nil
}

func mapPlanError(err error) error {
	if apperrors.Is(err, repositories.ErrPlanNotFound) {
		return apperrors.ErrPlanNotFound
	}
	return apperrors.InternalError(err)
}
