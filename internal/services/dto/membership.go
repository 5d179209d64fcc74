package dto

import (
	"time"

	"memberhub_backend/internal/models"

	"github.com/shopspring/decimal"
)

type CreateMembershipRequest struct {
	MemberID           string     `json:"member_id" validate:"required,uuid"`
	SubscriptionPlanID string     `json:"subscription_plan_id" validate:"required,uuid"`
	StartDate          *time.Time `json:"start_date"`
	Notes              string     `json:"notes" validate:"omitempty,max=2000"`
}

type MembershipDTO struct {
	ID                 string                  `json:"id"`
	MemberID           string                  `json:"member_id"`
	MemberName         string                  `json:"member_name"`
	SubscriptionPlanID string                  `json:"subscription_plan_id"`
	PlanName           string                  `json:"plan_name"`
	StartDate          time.Time               `json:"start_date"`
	ExpiryDate         time.Time               `json:"expiry_date"`
	Status             models.MembershipStatus `json:"status"`
	TotalAmount        decimal.Decimal         `json:"total_amount"`
	PaidAmount         decimal.Decimal         `json:"paid_amount"`
	RemainingAmount    decimal.Decimal         `json:"remaining_amount"`
	Notes              string                  `json:"notes,omitempty"`
	CreatedAt          time.Time               `json:"created_at"`
}

// NewMembershipDTO fills names only when member/plan are given
func NewMembershipDTO(m *models.Membership, member *models.Member, plan *models.SubscriptionPlan) MembershipDTO {
	out := MembershipDTO{
		ID:                 m.ID,
		MemberID:           m.MemberID,
		SubscriptionPlanID: m.SubscriptionPlanID,
		StartDate:          m.StartDate,
		ExpiryDate:         m.ExpiryDate,
		Status:             m.Status,
		TotalAmount:        m.TotalAmount,
		PaidAmount:         m.PaidAmount,
		RemainingAmount:    m.RemainingAmount(),
		Notes:              m.Notes,
		CreatedAt:          m.CreatedAt,
	}
	if member != nil {
		out.MemberName = member.FullName()
	}
	if plan != nil {
		out.PlanName = plan.Name
	}
	return out
}

type ExpireMembershipsResponse struct {
	Expired int `json:"expired"`
	Failed  int `json:"failed"`
}
