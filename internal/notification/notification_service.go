package notification

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZBee-Tech/e-Conges/internal/domain"
	"github.com/ZBee-Tech/e-Conges/internal/leaverequest"

	"go.uber.org/zap"
)

// ViewSource supplies the role-scoped leave request view the feed is
// derived from.
type ViewSource interface {
	PendingFor(ctx context.Context, actor domain.Actor) ([]leaverequest.LeaveRequestResponse, error)
}

type Entry struct {
	Message string `json:"message"`
	Read    bool   `json:"read"`
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, actor domain.Actor) ([]Entry, error)
	MarkAllRead(ctx context.Context, actor domain.Actor) error
	HasUnread(ctx context.Context, actor domain.Actor) (bool, error)
}

// service keeps the feed per user in memory. Read flags live only until
// the next refetch replaces the feed, matching a session-local badge.
type service struct {
	source ViewSource
	logger *zap.Logger

	mu    sync.Mutex
	feeds map[string][]Entry
}

func NewService(source ViewSource, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{
		source: source,
		logger: l,
		feeds:  make(map[string][]Entry),
	}
}

func (s *service) List(ctx context.Context, actor domain.Actor) ([]Entry, error) {
	requests, err := s.source.PendingFor(ctx, actor)
	if err != nil {
		s.logger.Error("notification view fetch failed",
			zap.String("user_id", actor.UserID),
			zap.String("role", string(actor.Role)),
			zap.Error(err),
		)
		return nil, err
	}

	entries := make([]Entry, len(requests))
	for i, r := range requests {
		entries[i] = Entry{Message: messageFor(actor.Role, r)}
	}

	s.mu.Lock()
	s.feeds[actor.UserID] = entries
	s.mu.Unlock()

	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}

func (s *service) MarkAllRead(_ context.Context, actor domain.Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.feeds[actor.UserID] {
		s.feeds[actor.UserID][i].Read = true
	}
	return nil
}

func (s *service) HasUnread(_ context.Context, actor domain.Actor) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.feeds[actor.UserID] {
		if !e.Read {
			return true, nil
		}
	}
	return false, nil
}

func messageFor(role domain.Role, r leaverequest.LeaveRequestResponse) string {
	if role == domain.RoleEmployee {
		return fmt.Sprintf("Your %s leave request has been approved", r.LeaveType)
	}
	return fmt.Sprintf("%s is requesting leave approval", r.FullName)
}
