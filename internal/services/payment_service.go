package services

import (
	"context"

	"memberhub_backend/internal/clock"
	"memberhub_backend/internal/logger"
	"memberhub_backend/internal/metrics"
	"memberhub_backend/internal/models"
	"memberhub_backend/internal/repositories"
	"memberhub_backend/internal/services/dto"
	"memberhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type PaymentService interface {
	// RecordPayment inserts the payment and recomputes the membership's
	// paid amount from the sum of its payments, in one transaction.
	RecordPayment(ctx context.Context, db *gorm.DB, businessID string, req *dto.CreatePaymentRequest) (*dto.PaymentDTO, error)
	GetPayment(ctx context.Context, db *gorm.DB, businessID, paymentID string) (*dto.PaymentDTO, error)
	GetPayments(ctx context.Context, db *gorm.DB, businessID, membershipID string) ([]dto.PaymentDTO, error)
}

type paymentService struct {
	paymentRepo    repositories.PaymentRepository
	membershipRepo repositories.MembershipRepository
	notifier       NotificationService
	clock          clock.Clock
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	membershipRepo repositories.MembershipRepository,
	notifier NotificationService,
	clk clock.Clock,
) PaymentService {
	return &paymentService{
		paymentRepo:    paymentRepo,
		membershipRepo: membershipRepo,
		notifier:       notifier,
		clock:          clk,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, db *gorm.DB, businessID string, req *dto.CreatePaymentRequest) (*dto.PaymentDTO, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidPaymentAmount
	}
	if !req.PaymentMethod.IsValid() {
		return nil, apperrors.ErrInvalidPaymentMethod
	}

	now := s.clock.Now()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = req.PaymentDate.UTC()
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	// concurrent payments on one membership queue here, so each SUM below
	// sees every committed payment
	membership, err := s.membershipRepo.FindByIDForUpdate(tx, businessID, req.MembershipID)
	if err != nil {
		return nil, mapMembershipError(err)
	}

	payment := &models.Payment{
		BusinessID:           businessID,
		MembershipID:         membership.ID,
		Amount:               req.Amount.Round(2),
		PaymentDate:          paymentDate,
		PaymentMethod:        req.PaymentMethod,
		TransactionReference: req.TransactionReference,
		Notes:                req.Notes,
	}
	if err := s.paymentRepo.Create(tx, payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// recompute rather than increment, so the stored value always equals
	// the sum of the rows
	paid, err := s.paymentRepo.SumByMembership(tx, membership.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.membershipRepo.UpdatePaidAmount(tx, membership.ID, paid, now); err != nil {
		return nil, mapMembershipError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	metrics.RecordPayment(string(payment.PaymentMethod))
	logger.CtxInfo(ctx, "payment recorded", "payment_id", payment.ID, "membership_id", membership.ID,
		"amount", payment.Amount.StringFixed(2), "paid_total", paid.StringFixed(2))

	s.notifier.Notify(ctx, db, dto.CreateNotification{
		BusinessID:        businessID,
		Type:              models.NotificationTypePaymentReceived,
		Title:             "Payment received",
		Message:           "Received " + payment.Amount.StringFixed(2) + " via " + string(payment.PaymentMethod),
		RelatedEntityType: "payment",
		RelatedEntityID:   payment.ID,
		Metadata: map[string]interface{}{
			"membership_id": membership.ID,
			"paid_amount":   paid.StringFixed(2),
			"total_amount":  membership.TotalAmount.StringFixed(2),
		},
	})

	out := dto.NewPaymentDTO(payment)
	return &out, nil
}

func (s *paymentService) GetPayment(ctx context.Context, db *gorm.DB, businessID, paymentID string) (*dto.PaymentDTO, error) {
	payment, err := s.paymentRepo.FindByID(db, businessID, paymentID)
	if err != nil {
		return nil, mapPaymentError(err)
	}
	out := dto.NewPaymentDTO(payment)
	return &out, nil
}

func (s *paymentService) GetPayments(ctx context.Context, db *gorm.DB, businessID, membershipID string) ([]dto.PaymentDTO, error) {
	payments, err := s.paymentRepo.FindByBusiness(db, businessID, membershipID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.PaymentDTO, 0, len(payments))
	for i := range payments {
		out = append(out, dto.NewPaymentDTO(&payments[i]))
	}
	return out, nil
}

func mapPaymentError(err error) error {
	if apperrors.Is(err, repositories.ErrPaymentNotFound) {
		return apperrors.ErrPaymentNotFound
	}
	return apperrors.InternalError(err)
}
