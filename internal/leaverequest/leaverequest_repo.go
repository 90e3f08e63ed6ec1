package leaverequest

import (
	"context"
	"database/sql"

	"github.com/ZBee-Tech/e-Conges/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindPendingForStage(ctx context.Context, stage Stage, organizationID string) ([]LeaveRequest, error)
	FindApprovedForUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	FindAll(ctx context.Context, organizationID string, limit int) ([]LeaveRequest, error)
	ApplyDecision(ctx context.Context, id string, stage Stage, next StatusVector) (int64, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

// FindPendingForStage returns the actionable queue of one approval
// stage. HOD and HR queues are organization-scoped; the CEO queue spans
// organizations and only contains requests HR already approved.
func (r *repository) FindPendingForStage(ctx context.Context, stage Stage, organizationID string) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).Model(&LeaveRequest{})

	switch stage {
	case StageHOD:
		db = db.Scopes(tenant.Scope(organizationID)).
			Where("hod_status = ?", StatusPending)
	case StageHR:
		db = db.Scopes(tenant.Scope(organizationID)).
			Where("hr_status = ?", StatusPending)
	case StageCEO:
		db = db.Where("ceo_status = ?", StatusPending).
			Where("hr_status = ?", StatusApproved)
	default:
		return []LeaveRequest{}, nil
	}

	var requests []LeaveRequest
	err := db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindApprovedForUser(ctx context.Context, userID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Where("status = ?", StatusApproved).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAll(ctx context.Context, organizationID string, limit int) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if organizationID != "" {
		db = db.Scopes(tenant.Scope(organizationID))
	}
	if limit > 0 {
		db = db.Limit(limit)
	}

	var requests []LeaveRequest
	err := db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// ApplyDecision persists one stage decision as a conditional update. The
// WHERE clause re-asserts the stage precondition, so a concurrent
// decision on the same stage can never both succeed: the loser matches
// zero rows and the caller classifies the miss.
func (r *repository) ApplyDecision(ctx context.Context, id string, stage Stage, next StatusVector) (int64, error) {
	db := r.db.WithContext(ctx).Model(&LeaveRequest{}).Where("id = ?", id)

	var updates map[string]any
	switch stage {
	case StageHOD:
		db = db.Where("hod_status = ?", StatusPending)
		updates = map[string]any{"hod_status": next.Hod, "status": next.Composite}
	case StageHR:
		db = db.Where("hod_status = ?", StatusApproved).
			Where("hr_status = ?", StatusPending)
		updates = map[string]any{"hr_status": next.Hr, "status": next.Composite}
	case StageCEO:
		db = db.Where("hr_status = ?", StatusApproved).
			Where("ceo_status = ?", StatusPending)
		updates = map[string]any{"ceo_status": next.Ceo, "status": next.Composite}
	default:
		return 0, gorm.ErrInvalidField
	}

	res := db.Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id = ?", id).Error
}
