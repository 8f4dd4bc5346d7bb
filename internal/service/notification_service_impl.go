package service

import (
	"context"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
)

// notify stores one notification. The review state machine calls it with a
// tx-scoped repository so the notification commits with the state change.
func notify(ctx context.Context, repo repository.NotificationRepo, n *domain.Notification) error {
	if !n.Type.Valid() {
		return domain.Validationf("unknown notification type %q", n.Type)
	}
	return repo.Create(ctx, n)
}

type notificationService struct {
	notifications repository.NotificationRepo
	observer      UseCaseObserver
}

func NewNotificationService(notifications repository.NotificationRepo, observers ...UseCaseObserver) NotificationService {
	return &notificationService{
		notifications: notifications,
		observer:      useCaseObserverOrNoop(observers),
	}
}

func (s *notificationService) List(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	return s.notifications.ListByUser(ctx, userID, clampLimit(limit, EntryListLimit))
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID, "notification_id": id}
	defer func() { observe(ctx, s.observer, "notification-mark-read", startedAt, fields, &err) }()

	if err = s.notifications.MarkRead(ctx, userID, id); err != nil {
		return notFoundAs(err, "notification not found")
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (n int64, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID}
	defer func() { observe(ctx, s.observer, "notification-mark-all-read", startedAt, fields, &err) }()

	n, err = s.notifications.MarkAllRead(ctx, userID)
	fields["marked"] = n
	return n, err
}
