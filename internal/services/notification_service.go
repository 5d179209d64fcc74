package services

import (
	"context"
	"encoding/json"

	"memberhub_backend/internal/clock"
	"memberhub_backend/internal/logger"
	"memberhub_backend/internal/metrics"
	"memberhub_backend/internal/models"
	"memberhub_backend/internal/repositories"
	"memberhub_backend/internal/services/dto"
	"memberhub_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Pusher delivers a payload to every live connection of a user
type Pusher interface {
	PushToUser(userID string, payload any)
}

// PushEnvelope is the websocket frame carrying a notification
type PushEnvelope struct {
	Type         string                    `json:"type"`
	Notification *dto.NotificationResponse `json:"notification"`
}

type NotificationService interface {
	// Notify persists and pushes. It never fails the caller: errors are
	// logged. An empty UserID addresses the business owner.
	Notify(ctx context.Context, db *gorm.DB, n dto.CreateNotification)

	GetNotifications(ctx context.Context, db *gorm.DB, userID string, query dto.NotificationListQuery) ([]*dto.NotificationResponse, error)
	GetUnreadCount(ctx context.Context, db *gorm.DB, userID string) (int64, error)
	MarkAsRead(ctx context.Context, db *gorm.DB, userID, notificationID string) error
	MarkAllAsRead(ctx context.Context, db *gorm.DB, userID string) (int64, error)

	SetPusher(p Pusher)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	businessRepo     repositories.BusinessRepository
	clock            clock.Clock
	pusher           Pusher
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	businessRepo repositories.BusinessRepository,
	clk clock.Clock,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		businessRepo:     businessRepo,
		clock:            clk,
	}
}

// SetPusher wires the websocket manager after both sides exist
func (s *notificationService) SetPusher(p Pusher) {
	s.pusher = p
}

func (s *notificationService) Notify(ctx context.Context, db *gorm.DB, n dto.CreateNotification) {
	userID := n.UserID
	if userID == "" {
		business, err := s.businessRepo.FindByID(db, n.BusinessID)
		if err != nil {
			logger.CtxWithError(ctx, "notification dropped: business owner lookup failed", err,
				"business_id", n.BusinessID, "type", n.Type)
			return
		}
		userID = business.UserID
	}

	var metadata datatypes.JSON
	if n.Metadata != nil {
		raw, err := json.Marshal(n.Metadata)
		if err != nil {
			logger.CtxWithError(ctx, "notification metadata not serialisable", err, "type", n.Type)
		} else {
			metadata = datatypes.JSON(raw)
		}
	}

	notification := &models.Notification{
		UserID:            userID,
		BusinessID:        n.BusinessID,
		Type:              n.Type,
		Title:             n.Title,
		Message:           n.Message,
		RelatedEntityType: n.RelatedEntityType,
		RelatedEntityID:   n.RelatedEntityID,
		Metadata:          metadata,
	}

	if err := s.notificationRepo.Create(db, notification); err != nil {
		logger.CtxWithError(ctx, "failed to persist notification", err, "user_id", userID, "type", n.Type)
		return
	}
	metrics.RecordNotification(string(n.Type))

	if s.pusher != nil {
		s.pusher.PushToUser(userID, PushEnvelope{
			Type:         "notification",
			Notification: dto.NewNotificationResponse(notification),
		})
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, db *gorm.DB, userID string, query dto.NotificationListQuery) ([]*dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindByUser(db, userID, repositories.NotificationCriteria{
		UnreadOnly: query.UnreadOnly,
		Skip:       query.Skip,
		Take:       query.Take,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, dto.NewNotificationResponse(&notifications[i]))
	}
	return out, nil
}

func (s *notificationService) GetUnreadCount(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, db *gorm.DB, userID, notificationID string) error {
	err := s.notificationRepo.MarkAsRead(db, notificationID, userID, s.clock.Now())
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	updated, err := s.notificationRepo.MarkAllAsRead(db, userID, s.clock.Now())
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return updated, nil
}
