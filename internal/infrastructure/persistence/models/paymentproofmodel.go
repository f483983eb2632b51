package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/skolar-inc/skolar/internal/shared/constants"
)

// PaymentProofModel represents the database persistence model for payment
// evidence submitted against a request. Rows are created by the school-facing
// upload flow; the review workflow only mirrors the decision onto status.
type PaymentProofModel struct {
	ID           uint            `gorm:"primarykey"`
	RequestID    uint            `gorm:"not null;index"`
	FilePath     string          `gorm:"not null;size:255"`
	AmountPaid   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TransferRef  string          `gorm:"size:100"`
	TransferBank string          `gorm:"size:100"`
	Status       string          `gorm:"size:20;default:pending"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (PaymentProofModel) TableName() string {
	return constants.TablePaymentProofs
}
