package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID   `gorm:"type:uuid;index;not null"`
	UserName    string      `gorm:"size:100;not null"`
	EntityType  string      `gorm:"size:50;index;not null"` // order, cash_cut, product...
	EntityID    uuid.UUID   `gorm:"type:uuid;not null"`
	Action      AuditAction `gorm:"size:20;not null"`
	Description string      `gorm:"size:255"`
	BeforeData  string      `gorm:"type:jsonb;default:'null'"`
	AfterData   string      `gorm:"type:jsonb;default:'null'"`
	CreatedAt   time.Time   `gorm:"index"`
}
