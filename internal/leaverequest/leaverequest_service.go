package leaverequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ZBee-Tech/e-Conges/internal/bootstrap"
	"github.com/ZBee-Tech/e-Conges/internal/domain"
	"github.com/ZBee-Tech/e-Conges/internal/events"
	leaverequesterrors "github.com/ZBee-Tech/e-Conges/internal/leaverequest/errors"
	"github.com/ZBee-Tech/e-Conges/internal/messaging/kafka"
	"github.com/ZBee-Tech/e-Conges/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const viewCacheTTL = 30 * time.Second

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateLeaveRequest) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (LeaveRequestResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, actor domain.Actor, id string) (LeaveRequestResponse, error)
	PendingFor(ctx context.Context, actor domain.Actor) ([]LeaveRequestResponse, error)
	AllForAdmin(ctx context.Context, filter AdminListFilter) ([]LeaveRequestResponse, error)
	ExportRows(ctx context.Context, filter AdminListFilter) ([]ExportRow, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	counterRepo counter.Repository
	outboxRepo  kafka.OutboxRepository
	rdb         *redis.Client
	audit       bootstrap.AuditLogger
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		counterRepo: counterRepo,
		outboxRepo:  outboxRepo,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

func NewServiceWithAudit(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	audit bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	s := NewService(db, repo, counterRepo, outboxRepo, rdb, logger...).(*service)
	s.audit = audit
	return s
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateLeaveRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("create leave request",
		zap.String("organization_id", actor.OrganizationID),
		zap.String("user_id", actor.UserID),
		zap.String("leave_type", req.LeaveType),
	)

	createdBy, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidDateRange
	}

	seq, err := s.counterRepo.GetNextValue(ctx, actor.OrganizationID, counter.TypeLeaveRequest)
	if err != nil {
		s.logger.Error("create leave request sequence failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &LeaveRequest{
		ID:             uuid.New(),
		RequestNumber:  fmt.Sprintf("LR-%06d", seq),
		OrganizationID: actor.OrganizationID,
		CreatedBy:      createdBy,
		FullName:       actor.FullName,
		LeaveType:      req.LeaveType,
		StartDate:      startDate,
		EndDate:        endDate,
		Reason:         req.Reason,
		HodStatus:      StatusPending,
		HrStatus:       StatusPending,
		CeoStatus:      StatusPending,
		Status:         StatusPending,
		CreatedAt:      time.Now().UTC(),
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.invalidateViews(ctx, l.OrganizationID, l.CreatedBy.String())

	s.logger.Info("leave request created",
		zap.String("request_id", l.ID.String()),
		zap.String("request_number", l.RequestNumber),
		zap.String("organization_id", l.OrganizationID),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (LeaveRequestResponse, error) {
	l, err := s.findByID(ctx, s.repo, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	// Admins and the CEO see everything; everyone else only their own
	// organization.
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleCEO:
	default:
		if l.OrganizationID != actor.OrganizationID {
			return LeaveRequestResponse{}, leaverequesterrors.ErrWrongOrganization
		}
	}

	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actor domain.Actor, id string) (LeaveRequestResponse, error) {
	return s.decide(ctx, actor, id, DecisionApprove)
}

func (s *service) Reject(ctx context.Context, actor domain.Actor, id string) (LeaveRequestResponse, error) {
	return s.decide(ctx, actor, id, DecisionReject)
}

// decide runs one approval action end to end: load, authorize, compute
// the next vector, persist conditionally, queue the outbox event. The
// guarded update means a stale read loses instead of clobbering a
// concurrent decision.
func (s *service) decide(ctx context.Context, actor domain.Actor, id string, decision Decision) (LeaveRequestResponse, error) {
	s.logger.Debug("decide leave request",
		zap.String("request_id", id),
		zap.String("role", string(actor.Role)),
		zap.String("decision", string(decision)),
	)

	stage, ok := StageForRole(actor.Role)
	if !ok {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotAnApprover
	}

	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findByID(ctx, qtx, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	// HOD and HR act within their organization only. The CEO queue is
	// cross-organization once HR approved.
	if stage != StageCEO && l.OrganizationID != actor.OrganizationID {
		s.logger.Warn("decide rejected for wrong organization",
			zap.String("request_id", id),
			zap.String("actor_org", actor.OrganizationID),
			zap.String("request_org", l.OrganizationID),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrWrongOrganization
	}

	next, err := NextStatus(l.Vector(), stage, decision)
	if err != nil {
		s.logger.Warn("decide out of order",
			zap.String("request_id", id),
			zap.String("stage", string(stage)),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	rows, err := qtx.ApplyDecision(ctx, id, stage, next)
	if err != nil {
		s.logger.Error("decide persist failed", zap.String("request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if rows == 0 {
		// Someone decided this stage between our read and the write.
		s.logger.Warn("decide lost conditional update",
			zap.String("request_id", id),
			zap.String("stage", string(stage)),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrDecisionConflict
	}

	if err := s.queueDecidedEvent(ctx, tx, l, stage, decision, next); err != nil {
		s.logger.Error("decide queue event failed", zap.String("request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide commit failed", zap.String("request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	l.HodStatus = next.Hod
	l.HrStatus = next.Hr
	l.CeoStatus = next.Ceo
	l.Status = next.Composite

	s.invalidateViews(ctx, l.OrganizationID, l.CreatedBy.String())

	if s.audit != nil {
		s.audit.Log(ctx, bootstrap.AuditLog{
			Action:  "LEAVE_REQUEST_DECIDED",
			Message: fmt.Sprintf("%s decided %s on leave request %s", stage, decision, l.RequestNumber),
			Meta: map[string]any{
				"request_id": l.ID.String(),
				"stage":      string(stage),
				"decision":   string(decision),
				"status":     next.Composite.Label(),
				"decided_by": actor.UserID,
			},
		})
	}

	s.logger.Info("leave request decided",
		zap.String("request_id", id),
		zap.String("stage", string(stage)),
		zap.String("decision", string(decision)),
		zap.String("status", next.Composite.Label()),
	)

	return mapToResponse(*l), nil
}

func (s *service) queueDecidedEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest, stage Stage, decision Decision, next StatusVector) error {
	if s.outboxRepo == nil {
		return nil
	}

	event := events.LeaveRequestDecidedEvent{
		EventType:      "leave_request_decided",
		RequestID:      l.ID.String(),
		OrganizationID: l.OrganizationID,
		Stage:          string(stage),
		Decision:       string(decision),
		Status:         next.Composite.Label(),
		OccurredAt:     time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveRequestDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// PendingFor builds the role-scoped view: the subset of requests the
// actor is entitled to see and act on. Unsupported roles get an empty
// view, not an error.
func (s *service) PendingFor(ctx context.Context, actor domain.Actor) ([]LeaveRequestResponse, error) {
	key := viewCacheKey(actor)

	if s.rdb != nil && key != "" {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var resp []LeaveRequestResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	fetch := func() ([]LeaveRequest, error) {
		switch actor.Role {
		case domain.RoleHOD:
			return s.repo.FindPendingForStage(ctx, StageHOD, actor.OrganizationID)
		case domain.RoleHRManager:
			return s.repo.FindPendingForStage(ctx, StageHR, actor.OrganizationID)
		case domain.RoleCEO:
			return s.repo.FindPendingForStage(ctx, StageCEO, "")
		case domain.RoleEmployee:
			return s.repo.FindApprovedForUser(ctx, actor.UserID)
		default:
			return []LeaveRequest{}, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		requests, err := fetch()
		if err != nil {
			return nil, err
		}
		return mapToListResponse(requests), nil
	})
	if err != nil {
		return nil, err
	}

	resp := v.([]LeaveRequestResponse)

	if s.rdb != nil && key != "" {
		if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
			_ = s.rdb.Set(ctx, key, string(payload), viewCacheTTL).Err()
		}
	}

	return resp, nil
}

func (s *service) AllForAdmin(ctx context.Context, filter AdminListFilter) ([]LeaveRequestResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	requests, err := s.repo.FindAll(ctx, filter.OrganizationID, filter.Limit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) ExportRows(ctx context.Context, filter AdminListFilter) ([]ExportRow, error) {
	requests, err := s.repo.FindAll(ctx, filter.OrganizationID, filter.Limit)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportRow, len(requests))
	for i, l := range requests {
		rows[i] = ExportRow{
			FullName:     l.FullName,
			LeaveType:    l.LeaveType,
			StartDate:    l.StartDate.Format("2006-01-02"),
			EndDate:      l.EndDate.Format("2006-01-02"),
			Reason:       l.Reason,
			Status:       l.Status.Label(),
			HodStatus:    l.HodStatus.Label(),
			HrStatus:     l.HrStatus.Label(),
			CeoStatus:    l.CeoStatus.Label(),
			Organization: l.OrganizationID,
			CreatedBy:    l.CreatedBy.String(),
			CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		}
	}
	return rows, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := s.findByID(ctx, qtx, id)
	if err != nil {
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateViews(ctx, l.OrganizationID, l.CreatedBy.String())
	return nil
}

func (s *service) findByID(ctx context.Context, repo Repository, id string) (*LeaveRequest, error) {
	l, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return nil, err
	}
	return l, nil
}

func viewCacheKey(actor domain.Actor) string {
	switch actor.Role {
	case domain.RoleHOD:
		return "leaveview:hod:" + actor.OrganizationID
	case domain.RoleHRManager:
		return "leaveview:hr:" + actor.OrganizationID
	case domain.RoleCEO:
		return "leaveview:ceo"
	case domain.RoleEmployee:
		return "leaveview:employee:" + actor.UserID
	default:
		return "leaveview:none:" + actor.UserID
	}
}

// invalidateViews drops every cached view a decision or submission could
// change: both organization queues, the global CEO queue and the
// requester's own feed.
func (s *service) invalidateViews(ctx context.Context, organizationID, userID string) {
	if s.rdb == nil {
		return
	}

	keys := []string{
		"leaveview:hod:" + organizationID,
		"leaveview:hr:" + organizationID,
		"leaveview:ceo",
		"leaveview:employee:" + userID,
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("view cache invalidation failed", zap.Error(err))
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:             l.ID.String(),
		RequestNumber:  l.RequestNumber,
		OrganizationID: l.OrganizationID,
		CreatedBy:      l.CreatedBy.String(),
		FullName:       l.FullName,
		LeaveType:      l.LeaveType,
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		Reason:         l.Reason,
		HodStatus:      l.HodStatus.Label(),
		HrStatus:       l.HrStatus.Label(),
		CeoStatus:      l.CeoStatus.Label(),
		Status:         l.Status.Label(),
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
