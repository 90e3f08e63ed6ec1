package counter

import (
	"context"

	"gorm.io/gorm"
)

const TypeLeaveRequest = "leave_request"

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, organizationID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, organizationID string, counterType string) (int64, error) {
	var nextValue int64

	// Atomic UPSERT and increment; one sequence per organization/type
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO organization_counters (organization_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (organization_id, counter_type) DO UPDATE
		SET last_value = organization_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, organizationID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
