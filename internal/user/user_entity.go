package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID string    `gorm:"column:organization_id;type:varchar(64);not null;index"`
	FullName       string    `gorm:"column:full_name;type:varchar(255);not null"`
	Username       string    `gorm:"column:username;type:varchar(100);not null;uniqueIndex"`
	Email          string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	Password       string    `gorm:"column:password;type:text;not null"`
	Role           string    `gorm:"column:role;type:varchar(30);not null;default:'Employee'"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
