package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/skolar-inc/skolar/internal/shared/constants"
)

// SubscriptionRequestModel represents the database persistence model for
// subscription requests.
//
// Only id, school_id, plan_id and status are assumed present on every
// deployment. The review columns are part of the extended schema; writes to
// them go through the capability probe, and reads tolerate their absence
// because the database simply returns fewer columns.
type SubscriptionRequestModel struct {
	ID             uint            `gorm:"primarykey"`
	SchoolID       uint            `gorm:"not null;index"`
	PlanID         uint            `gorm:"not null;index"`
	RequestedBy    uint            `gorm:"not null"`
	ExpectedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status         string          `gorm:"size:30;index"`
	ReviewNote     *string         `gorm:"size:500"`
	ReviewedBy     *uint
	ReviewedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionRequestModel) TableName() string {
	return constants.TableSubscriptionRequests
}
