package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZBee-Tech/e-Conges/internal/domain"
	"github.com/ZBee-Tech/e-Conges/internal/notification"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error json.RawMessage `json:"error"`
}

type fakeNotificationService struct {
	listFn        func(ctx context.Context, actor domain.Actor) ([]notification.Entry, error)
	markAllReadFn func(ctx context.Context, actor domain.Actor) error
	hasUnreadFn   func(ctx context.Context, actor domain.Actor) (bool, error)
}

func (f *fakeNotificationService) List(ctx context.Context, actor domain.Actor) ([]notification.Entry, error) {
	return f.listFn(ctx, actor)
}
func (f *fakeNotificationService) MarkAllRead(ctx context.Context, actor domain.Actor) error {
	return f.markAllReadFn(ctx, actor)
}
func (f *fakeNotificationService) HasUnread(ctx context.Context, actor domain.Actor) (bool, error) {
	return f.hasUnreadFn(ctx, actor)
}

func setHODActor(c *gin.Context) {
	c.Set("user_id", uuid.New().String())
	c.Set("role", string(domain.RoleHOD))
	c.Set("organization_id", "org-dakar")
	c.Set("full_name", "Moussa Ndiaye")
}

func TestNotificationHandler_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeNotificationService{
			listFn: func(ctx context.Context, actor domain.Actor) ([]notification.Entry, error) {
				assert.Equal(t, domain.RoleHOD, actor.Role)
				return []notification.Entry{{Message: "Awa Diop is requesting leave approval"}}, nil
			},
		}

		h := notification.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/notifications", nil)
		setHODActor(c)

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Ok)
		var entries []notification.Entry
		assert.NoError(t, json.Unmarshal(env.Data, &entries))
		assert.Len(t, entries, 1)
		assert.False(t, entries[0].Read)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeNotificationService{
			listFn: func(ctx context.Context, actor domain.Actor) ([]notification.Entry, error) {
				return nil, errors.New("db error")
			},
		}

		h := notification.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/notifications", nil)
		setHODActor(c)

		h.List(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestNotificationHandler_MarkAllRead(t *testing.T) {
	called := false
	svc := &fakeNotificationService{
		markAllReadFn: func(ctx context.Context, actor domain.Actor) error {
			called = true
			return nil
		},
	}

	h := notification.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/notifications/read", nil)
	setHODActor(c)

	h.MarkAllRead(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestNotificationHandler_Unread(t *testing.T) {
	svc := &fakeNotificationService{
		hasUnreadFn: func(ctx context.Context, actor domain.Actor) (bool, error) {
			return true, nil
		},
	}

	h := notification.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/notifications/unread", nil)
	setHODActor(c)

	h.Unread(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var data map[string]bool
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data["unread"])
}
