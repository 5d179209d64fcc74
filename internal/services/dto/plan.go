package dto

import (
	"time"

	"memberhub_backend/internal/models"

	"github.com/shopspring/decimal"
)

type CreatePlanRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Description  string          `json:"description" validate:"omitempty,max=2000"`
	Price        decimal.Decimal `json:"price" validate:"gte=0"`
	DurationDays int             `json:"duration_days" validate:"gt=0"`
}

type UpdatePlanRequest struct {
	CreatePlanRequest
	IsActive *bool `json:"is_active"`
}

type PlanDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"duration_days"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
}

func NewPlanDTO(p *models.SubscriptionPlan) PlanDTO {
	return PlanDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		DurationDays: p.DurationDays,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}
