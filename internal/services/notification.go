package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shared-lists/internal/apperr"
	"shared-lists/internal/models"
	"shared-lists/internal/store"
)

// NotificationService fans change messages out to list members and serves the
// per-user feed. Notifications are write-once; delivery is polled.
type NotificationService struct {
	store store.Store
	log   *zap.Logger
}

func NewNotificationService(st store.Store, log *zap.Logger) *NotificationService {
	return &NotificationService{store: st, log: log}
}

// NotifyMembers persists one notification per current member of list, skipping
// excludedUserID when non-empty. The whole fan-out is stamped with one
// timestamp and written as a single batch. Zero recipients is a no-op.
func (s *NotificationService) NotifyMembers(ctx context.Context, list *models.List, excludedUserID, message string) error {
	now := time.Now().UTC()
	var batch []models.Notification
	for _, member := range list.Members {
		if excludedUserID != "" && member.ID == excludedUserID {
			continue
		}
		listID := list.ID
		batch = append(batch, models.Notification{
			ID:        uuid.NewString(),
			UserID:    member.ID,
			ListID:    &listID,
			Message:   message,
			CreatedAt: now,
		})
	}
	if len(batch) == 0 {
		return nil
	}
	if err := s.store.CreateNotifications(ctx, batch); err != nil {
		return err
	}
	s.log.Info("notified list members",
		zap.String("list_id", list.ID),
		zap.Int("recipients", len(batch)))
	return nil
}

// ListForUser returns the user's notifications, most recent first, each with
// its list context when the list still exists. An existing user with no
// history gets an empty slice, not an error.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	if _, err := s.store.UserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	notifications, err := s.store.NotificationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}
