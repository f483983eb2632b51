package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/skolar-inc/skolar/internal/shared/constants"
)

// AuditLogModel represents the database persistence model for the
// append-only workflow audit trail. Every column except action is optional
// on older deployments; the recorder inserts only what the schema carries.
type AuditLogModel struct {
	ID        uint   `gorm:"primarykey"`
	Action    string `gorm:"not null;size:50;index"`
	SchoolID  *uint  `gorm:"index"`
	RequestID *uint  `gorm:"index"`
	ActorID   *uint
	ActorRole *string `gorm:"size:30"`
	Message   *string `gorm:"size:500"`
	Metadata  datatypes.JSON
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (AuditLogModel) TableName() string {
	return constants.TableAuditLogs
}
