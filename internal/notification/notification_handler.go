package notification

import (
	"net/http"

	"github.com/ZBee-Tech/e-Conges/internal/middleware"
	"github.com/ZBee-Tech/e-Conges/internal/shared/apperror"
	"github.com/ZBee-Tech/e-Conges/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("notification action failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) List(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	entries, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, entries, nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	if err := h.service.MarkAllRead(c.Request.Context(), actor); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true}, nil)
}

func (h *Handler) Unread(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	unread, err := h.service.HasUnread(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread": unread}, nil)
}
