package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/skolar-inc/skolar/internal/shared/constants"
)

// SubscriptionPlanModel represents the database persistence model for
// subscription plans. Plans are immutable reference data.
type SubscriptionPlanModel struct {
	ID           uint            `gorm:"primarykey"`
	Name         string          `gorm:"not null;size:100"`
	BillingCycle string          `gorm:"not null;size:20;default:monthly"`
	DurationDays int             `gorm:"not null;default:0"`
	GraceDays    int             `gorm:"not null;default:0"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionPlanModel) TableName() string {
	return constants.TableSubscriptionPlans
}
