package leaverequest

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestNumber  string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_requests_org_number"`
	OrganizationID string    `gorm:"type:varchar(64);not null;index:idx_leave_requests_org_status;uniqueIndex:uq_leave_requests_org_number"`
	CreatedBy      uuid.UUID `gorm:"type:uuid;not null;index"`

	FullName  string    `gorm:"type:varchar(255);not null"`
	LeaveType string    `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"type:text"`

	HodStatus Status `gorm:"type:smallint;not null;default:0"`
	HrStatus  Status `gorm:"type:smallint;not null;default:0"`
	CeoStatus Status `gorm:"type:smallint;not null;default:0"`
	Status    Status `gorm:"type:smallint;not null;default:0;index:idx_leave_requests_org_status"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (l LeaveRequest) Vector() StatusVector {
	return StatusVector{
		Hod:       l.HodStatus,
		Hr:        l.HrStatus,
		Ceo:       l.CeoStatus,
		Composite: l.Status,
	}
}
