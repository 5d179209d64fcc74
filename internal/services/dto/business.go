package dto

import (
	"time"

	"memberhub_backend/internal/models"
)

type UpdateBusinessRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Address     string `json:"address" validate:"omitempty,max=500"`
	Phone       string `json:"phone" validate:"omitempty,max=50"`
	Email       string `json:"email" validate:"omitempty,email"`
	Currency    string `json:"currency" validate:"omitempty,currency-code"`
	TaxID       string `json:"tax_id" validate:"omitempty,max=50"`
}

type BusinessDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Currency    string    `json:"currency"`
	TaxID       string    `json:"tax_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewBusinessDTO(b *models.Business) BusinessDTO {
	return BusinessDTO{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Address:     b.Address,
		Phone:       b.Phone,
		Email:       b.Email,
		Currency:    b.Currency,
		TaxID:       b.TaxID,
		CreatedAt:   b.CreatedAt,
	}
}
