package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ZBee-Tech/e-Conges/internal/domain"
	"github.com/ZBee-Tech/e-Conges/internal/leaverequest"
	"github.com/ZBee-Tech/e-Conges/internal/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeViewSource struct {
	pendingForFn func(ctx context.Context, actor domain.Actor) ([]leaverequest.LeaveRequestResponse, error)
}

func (f *fakeViewSource) PendingFor(ctx context.Context, actor domain.Actor) ([]leaverequest.LeaveRequestResponse, error) {
	return f.pendingForFn(ctx, actor)
}

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("employee message cites the leave type", func(t *testing.T) {
		source := &fakeViewSource{
			pendingForFn: func(ctx context.Context, actor domain.Actor) ([]leaverequest.LeaveRequestResponse, error) {
				return []leaverequest.LeaveRequestResponse{
					{LeaveType: "ANNUAL", FullName: "Awa Diop", Status: "Approved"},
				}, nil
			},
		}
		svc := notification.NewService(source)

		entries, err := svc.List(ctx, domain.Actor{
			UserID: uuid.New().String(),
			Role:   domain.RoleEmployee,
		})

		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		assert.Equal(t, "Your ANNUAL leave request has been approved", entries[0].Message)
		assert.False(t, entries[0].Read)
	})

	t.Run("approver message cites the requester", func(t *testing.T) {
		source := &fakeViewSource{
			pendingForFn: func(ctx context.Context, actor domain.Actor) ([]leaverequest.LeaveRequestResponse, error) {
				return []leaverequest.LeaveRequestResponse{
					{LeaveType: "SICK", FullName: "Moussa Ndiaye"},
				}, nil
			},
		}
		svc := notification.NewService(source)

		for _, role := range []domain.Role{domain.RoleHOD, domain.RoleHRManager, domain.RoleCEO} {
			entries, err := svc.List(ctx, domain.Actor{
				UserID: uuid.New().String(),
				Role:   role,
			})

			assert.NoError(t, err)
			assert.Len(t, entries, 1)
			assert.Equal(t, "Moussa Ndiaye is requesting leave approval", entries[0].Message)
		}
	})

	t.Run("empty view yields empty feed", func(t *testing.T) {
		source := &fakeViewSource{
			pendingForFn: func(ctx context.Context, actor domain.Actor) ([]leaverequest.LeaveRequestResponse, error) {
				return nil, nil
			},
		}
		svc := notification.NewService(source)

		entries, err := svc.List(ctx, domain.Actor{UserID: uuid.New().String(), Role: domain.RoleHOD})

		assert.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("negative source error", func(t *testing.T) {
		source := &fakeViewSource{
			pendingForFn: func(ctx context.Context, actor domain.Actor) ([]leaverequest.LeaveRequestResponse, error) {
				return nil, errors.New("db error")
			},
		}
		svc := notification.NewService(source)

		_, err := svc.List(ctx, domain.Actor{UserID: uuid.New().String(), Role: domain.RoleHOD})

		assert.Error(t, err)
	})
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	ctx := context.Background()
	actor := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleHOD}

	source := &fakeViewSource{
		pendingForFn: func(ctx context.Context, a domain.Actor) ([]leaverequest.LeaveRequestResponse, error) {
			return []leaverequest.LeaveRequestResponse{
				{FullName: "Awa Diop"},
				{FullName: "Moussa Ndiaye"},
			}, nil
		},
	}
	svc := notification.NewService(source)

	_, err := svc.List(ctx, actor)
	assert.NoError(t, err)

	unread, err := svc.HasUnread(ctx, actor)
	assert.NoError(t, err)
	assert.True(t, unread)

	assert.NoError(t, svc.MarkAllRead(ctx, actor))

	unread, err = svc.HasUnread(ctx, actor)
	assert.NoError(t, err)
	assert.False(t, unread)

	// Idempotent.
	assert.NoError(t, svc.MarkAllRead(ctx, actor))
	unread, err = svc.HasUnread(ctx, actor)
	assert.NoError(t, err)
	assert.False(t, unread)
}

func TestNotificationService_RefetchResetsReadState(t *testing.T) {
	ctx := context.Background()
	actor := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleHRManager}

	source := &fakeViewSource{
		pendingForFn: func(ctx context.Context, a domain.Actor) ([]leaverequest.LeaveRequestResponse, error) {
			return []leaverequest.LeaveRequestResponse{{FullName: "Awa Diop"}}, nil
		},
	}
	svc := notification.NewService(source)

	_, err := svc.List(ctx, actor)
	assert.NoError(t, err)
	assert.NoError(t, svc.MarkAllRead(ctx, actor))

	// A new fetch replaces the feed, so entries come back unread.
	entries, err := svc.List(ctx, actor)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.False(t, entries[0].Read)

	unread, err := svc.HasUnread(ctx, actor)
	assert.NoError(t, err)
	assert.True(t, unread)
}

func TestNotificationService_FeedsAreScopedPerUser(t *testing.T) {
	ctx := context.Background()
	first := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleHOD}
	second := domain.Actor{UserID: uuid.New().String(), Role: domain.RoleHOD}

	source := &fakeViewSource{
		pendingForFn: func(ctx context.Context, a domain.Actor) ([]leaverequest.LeaveRequestResponse, error) {
			return []leaverequest.LeaveRequestResponse{{FullName: "Awa Diop"}}, nil
		},
	}
	svc := notification.NewService(source)

	_, err := svc.List(ctx, first)
	assert.NoError(t, err)
	_, err = svc.List(ctx, second)
	assert.NoError(t, err)

	assert.NoError(t, svc.MarkAllRead(ctx, first))

	unread, err := svc.HasUnread(ctx, first)
	assert.NoError(t, err)
	assert.False(t, unread)

	unread, err = svc.HasUnread(ctx, second)
	assert.NoError(t, err)
	assert.True(t, unread)
}
