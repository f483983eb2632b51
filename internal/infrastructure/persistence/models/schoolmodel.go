package models

import (
	"time"

	"github.com/skolar-inc/skolar/internal/shared/constants"
)

// SchoolModel represents the database persistence model for schools (tenants).
// Schools are managed by an external onboarding flow; the billing workflow
// only reads them.
type SchoolModel struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"not null;size:150"`
	Status    string `gorm:"size:20;default:active"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (SchoolModel) TableName() string {
	return constants.TableSchools
}
