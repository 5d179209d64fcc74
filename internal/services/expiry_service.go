package services

import (
	"context"
	"fmt"

	"memberhub_backend/internal/clock"
	"memberhub_backend/internal/logger"
	"memberhub_backend/internal/models"
	"memberhub_backend/internal/repositories"
	"memberhub_backend/internal/services/dto"

	"gorm.io/gorm"
)

// ExpiryResult summarises one sweep
type ExpiryResult struct {
	Expired int
	Failed  int
}

type ExpiryService interface {
	// ExpireOverdue moves every active membership past its expiry to
	// expired, across all businesses. A row that fails is logged and
	// skipped; a second run with no time passing changes nothing.
	ExpireOverdue(ctx context.Context, db *gorm.DB) (ExpiryResult, error)
	// SendRenewalReminders raises one reminder per membership expiring
	// within days. Memberships already reminded are skipped.
	SendRenewalReminders(ctx context.Context, db *gorm.DB, days int) (int, error)
}

type expiryService struct {
	membershipRepo   repositories.MembershipRepository
	notificationRepo repositories.NotificationRepository
	notifier         NotificationService
	clock            clock.Clock
}

func NewExpiryService(
	membershipRepo repositories.MembershipRepository,
	notificationRepo repositories.NotificationRepository,
	notifier NotificationService,
	clk clock.Clock,
) ExpiryService {
	return &expiryService{
		membershipRepo:   membershipRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		clock:            clk,
	}
}

func (s *expiryService) ExpireOverdue(ctx context.Context, db *gorm.DB) (ExpiryResult, error) {
	var result ExpiryResult
	now := s.clock.Now()

	due, err := s.membershipRepo.FindDueForExpiry(db, now, 0)
	if err != nil {
		return result, fmt.Errorf("find memberships due for expiry: %w", err)
	}

	for i := range due {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		m := &due[i]
		changed, err := s.membershipRepo.MarkExpired(db, m.ID, now)
		if err != nil {
			result.Failed++
			logger.WorkerLog("expiry", "mark_expired", err, "membership_id", m.ID, "business_id", m.BusinessID)
			continue
		}
		if !changed {
			// someone else got there first
			continue
		}
		result.Expired++

		s.notifier.Notify(ctx, db, dto.CreateNotification{
			BusinessID:        m.BusinessID,
			Type:              models.NotificationTypeMembershipExpired,
			Title:             "Membership expired",
			Message:           "A membership expired on " + m.ExpiryDate.Format("2006-01-02"),
			RelatedEntityType: "membership",
			RelatedEntityID:   m.ID,
			Metadata: map[string]interface{}{
				"member_id": m.MemberID,
			},
		})
	}

	logger.CtxInfo(ctx, "expiry sweep finished", "due", len(due), "expired", result.Expired, "failed", result.Failed)
	return result, nil
}

func (s *expiryService) SendRenewalReminders(ctx context.Context, db *gorm.DB, days int) (int, error) {
	now := s.clock.Now()

	expiring, err := s.membershipRepo.FindExpiringAcrossBusinesses(db, now, days)
	if err != nil {
		return 0, fmt.Errorf("find expiring memberships: %w", err)
	}

	sent := 0
	for i := range expiring {
		m := &expiring[i]

		reminded, err := s.notificationRepo.ExistsForEntity(db, models.NotificationTypeRenewalReminder, m.ID)
		if err != nil {
			logger.WorkerLog("expiry", "renewal_reminder_lookup", err, "membership_id", m.ID)
			continue
		}
		if reminded {
			continue
		}

		daysLeft := int(m.ExpiryDate.Sub(now).Hours() / 24)
		s.notifier.Notify(ctx, db, dto.CreateNotification{
			BusinessID:        m.BusinessID,
			Type:              models.NotificationTypeRenewalReminder,
			Title:             "Renewal due",
			Message:           fmt.Sprintf("A membership expires in %d day(s), on %s", daysLeft, m.ExpiryDate.Format("2006-01-02")),
			RelatedEntityType: "membership",
			RelatedEntityID:   m.ID,
			Metadata: map[string]interface{}{
				"member_id":      m.MemberID,
				"days_remaining": daysLeft,
				"outstanding":    m.RemainingAmount().StringFixed(2),
			},
		})
		sent++
	}

	return sent, nil
}
