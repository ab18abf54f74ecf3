package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yohan114/leave-management-system/internal/notification"
)

type fakeRepo struct {
	createFn      func(ctx context.Context, n *notification.Notification) error
	listByUserFn  func(ctx context.Context, userID string, limit int) ([]notification.Notification, error)
	countUnreadFn func(ctx context.Context, userID string) (int64, error)
	markReadFn    func(ctx context.Context, userID string, ids []string) error
	markAllReadFn func(ctx context.Context, userID string) error
}

func (f *fakeRepo) WithTx(tx *gorm.DB) notification.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	if f.listByUserFn != nil {
		return f.listByUserFn(ctx, userID, limit)
	}
	return nil, nil
}

func (f *fakeRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	if f.countUnreadFn != nil {
		return f.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (f *fakeRepo) MarkRead(ctx context.Context, userID string, ids []string) error {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, userID, ids)
	}
	return nil
}

func (f *fakeRepo) MarkAllRead(ctx context.Context, userID string) error {
	if f.markAllReadFn != nil {
		return f.markAllReadFn(ctx, userID)
	}
	return nil
}

func TestNotificationService_Notify(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	var created *notification.Notification
	svc := notification.NewService(&fakeRepo{
		createFn: func(ctx context.Context, n *notification.Notification) error {
			created = n
			return nil
		},
	})

	err := svc.Notify(ctx, userID, "Leave Approved", "Your request has been approved", "approval", "/my-requests")

	assert.NoError(t, err)
	if assert.NotNil(t, created) {
		assert.Equal(t, userID, created.UserID)
		assert.Equal(t, "approval", created.Type)
		assert.False(t, created.IsRead)
	}
}

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	svc := notification.NewService(&fakeRepo{
		listByUserFn: func(ctx context.Context, uid string, limit int) ([]notification.Notification, error) {
			assert.Equal(t, userID.String(), uid)
			assert.Equal(t, 50, limit)
			return []notification.Notification{
				{ID: uuid.New(), UserID: userID, Title: "New Leave Request", Type: "leave_request", CreatedAt: time.Now()},
			}, nil
		},
		countUnreadFn: func(ctx context.Context, uid string) (int64, error) {
			return 1, nil
		},
	})

	resp, err := svc.List(ctx, userID.String())

	assert.NoError(t, err)
	assert.Len(t, resp.Notifications, 1)
	assert.Equal(t, int64(1), resp.UnreadCount)
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("mark all", func(t *testing.T) {
		allCalled := false
		svc := notification.NewService(&fakeRepo{
			markAllReadFn: func(ctx context.Context, uid string) error {
				allCalled = true
				return nil
			},
			markReadFn: func(ctx context.Context, uid string, ids []string) error {
				t.Fatal("must not mark individual ids")
				return nil
			},
		})

		err := svc.MarkRead(ctx, userID.String(), notification.MarkReadRequest{MarkAll: true})

		assert.NoError(t, err)
		assert.True(t, allCalled)
	})

	t.Run("specific ids", func(t *testing.T) {
		ids := []string{uuid.New().String(), uuid.New().String()}
		svc := notification.NewService(&fakeRepo{
			markReadFn: func(ctx context.Context, uid string, got []string) error {
				assert.Equal(t, ids, got)
				return nil
			},
		})

		err := svc.MarkRead(ctx, userID.String(), notification.MarkReadRequest{IDs: ids})

		assert.NoError(t, err)
	})

	t.Run("empty request is a no-op", func(t *testing.T) {
		svc := notification.NewService(&fakeRepo{
			markReadFn: func(ctx context.Context, uid string, ids []string) error {
				t.Fatal("must not touch storage")
				return nil
			},
		})

		err := svc.MarkRead(ctx, userID.String(), notification.MarkReadRequest{})

		assert.NoError(t, err)
	})
}
