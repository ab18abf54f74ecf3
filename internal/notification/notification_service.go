package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yohan114/leave-management-system/internal/shared/apperror"
	"github.com/yohan114/leave-management-system/internal/shared/storage"
)

const listLimit = 50

type Service interface {
	// Notify is the emitter contract used by the leave request service.
	Notify(ctx context.Context, userID uuid.UUID, title, message, notifType, link string) error
	List(ctx context.Context, userID string) (ListResponse, error)
	MarkRead(ctx context.Context, userID string, req MarkReadRequest) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Notify(ctx context.Context, userID uuid.UUID, title, message, notifType, link string) error {
	n := &Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
		Link:    link,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("create notification failed",
			zap.String("user_id", userID.String()),
			zap.String("type", notifType),
			zap.Error(err),
		)
		return storage.MapError(err)
	}
	return nil
}

func (s *service) List(ctx context.Context, userID string) (ListResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return ListResponse{}, apperror.ErrUnauthorized
	}

	notifications, err := s.repo.ListByUser(ctx, userID, listLimit)
	if err != nil {
		return ListResponse{}, storage.MapError(err)
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return ListResponse{}, storage.MapError(err)
	}

	resp := ListResponse{
		Notifications: make([]NotificationResponse, len(notifications)),
		UnreadCount:   unread,
	}
	for i, n := range notifications {
		resp.Notifications[i] = NotificationResponse{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			Link:      n.Link,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, userID string, req MarkReadRequest) error {
	if _, err := uuid.Parse(userID); err != nil {
		return apperror.ErrUnauthorized
	}

	if req.MarkAll {
		return storage.MapError(s.repo.MarkAllRead(ctx, userID))
	}
	if len(req.IDs) == 0 {
		return nil
	}
	return storage.MapError(s.repo.MarkRead(ctx, userID, req.IDs))
}
