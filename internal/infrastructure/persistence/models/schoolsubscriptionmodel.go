package models

import (
	"time"

	"github.com/skolar-inc/skolar/internal/shared/constants"
)

// SchoolSubscriptionModel represents the database persistence model for
// provisioned billing periods. Rows are append-only: a later approval
// supersedes a period, it never edits one.
type SchoolSubscriptionModel struct {
	ID              uint   `gorm:"primarykey"`
	SchoolID        uint   `gorm:"not null;index"`
	PlanID          uint   `gorm:"not null"`
	SourceRequestID uint   `gorm:"index"`
	Status          string `gorm:"not null;size:20"`
	StartDate       time.Time
	EndDate         *time.Time
	GraceEndDate    *time.Time
	ApprovedBy      uint
	ApprovedAt      time.Time
	CreatedAt       time.Time
}

// TableName specifies the table name for GORM
func (SchoolSubscriptionModel) TableName() string {
	return constants.TableSchoolSubscriptions
}
