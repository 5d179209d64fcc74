package dto

import (
	"time"

	"memberhub_backend/internal/models"

	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	MembershipID         string               `json:"membership_id" validate:"required,uuid"`
	Amount               decimal.Decimal      `json:"amount" validate:"gt=0"`
	PaymentMethod        models.PaymentMethod `json:"payment_method" validate:"required,is-payment-method"`
	TransactionReference string               `json:"transaction_reference" validate:"omitempty,max=100"`
	Notes                string               `json:"notes" validate:"omitempty,max=2000"`
	PaymentDate          *time.Time           `json:"payment_date"`
}

type PaymentDTO struct {
	ID                   string               `json:"id"`
	MembershipID         string               `json:"membership_id"`
	Amount               decimal.Decimal      `json:"amount"`
	PaymentDate          time.Time            `json:"payment_date"`
	PaymentMethod        models.PaymentMethod `json:"payment_method"`
	TransactionReference string               `json:"transaction_reference,omitempty"`
	Notes                string               `json:"notes,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
}

func NewPaymentDTO(p *models.Payment) PaymentDTO {
	return PaymentDTO{
		ID:                   p.ID,
		MembershipID:         p.MembershipID,
		Amount:               p.Amount,
		PaymentDate:          p.PaymentDate,
		PaymentMethod:        p.PaymentMethod,
		TransactionReference: p.TransactionReference,
		Notes:                p.Notes,
		CreatedAt:            p.CreatedAt,
	}
}

// ReceiptLinkResponse points at the rendered receipt
type ReceiptLinkResponse struct {
	PaymentID string `json:"payment_id"`
	URL       string `json:"url"`
}
