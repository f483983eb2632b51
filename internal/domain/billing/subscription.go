package billing

import (
	"fmt"
	"time"

	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
)

// SchoolSubscription is a provisioned billing period, created exclusively as
// the side effect of an approval and never edited in place. A later approval
// may supersede it with a new period.
type SchoolSubscription struct {
	id              uint
	schoolID        uint
	planID          uint
	sourceRequestID uint
	status          vo.SubscriptionStatus
	startDate       time.Time
	endDate         *time.Time
	graceEndDate    *time.Time
	approvedBy      uint
	approvedAt      time.Time
}

// NewSchoolSubscription creates the billing period provisioned by an
// approval.
func NewSchoolSubscription(
	schoolID, planID, sourceRequestID uint,
	period Period,
	approvedBy uint,
	approvedAt time.Time,
) (*SchoolSubscription, error) {
	if schoolID == 0 {
		return nil, fmt.Errorf("school ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if sourceRequestID == 0 {
		return nil, fmt.Errorf("source request ID is required")
	}
	if approvedBy == 0 {
		return nil, fmt.Errorf("approving operator ID is required")
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	return &SchoolSubscription{
		schoolID:        schoolID,
		planID:          planID,
		sourceRequestID: sourceRequestID,
		status:          period.Status,
		startDate:       period.StartDate,
		endDate:         period.EndDate,
		graceEndDate:    period.GraceEndDate,
		approvedBy:      approvedBy,
		approvedAt:      approvedAt,
	}, nil
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(
	id, schoolID, planID, sourceRequestID uint,
	status vo.SubscriptionStatus,
	startDate time.Time,
	endDate, graceEndDate *time.Time,
	approvedBy uint,
	approvedAt time.Time,
) (*SchoolSubscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if schoolID == 0 {
		return nil, fmt.Errorf("school ID is required")
	}

	return &SchoolSubscription{
		id:              id,
		schoolID:        schoolID,
		planID:          planID,
		sourceRequestID: sourceRequestID,
		status:          status,
		startDate:       startDate,
		endDate:         endDate,
		graceEndDate:    graceEndDate,
		approvedBy:      approvedBy,
		approvedAt:      approvedAt,
	}, nil
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *SchoolSubscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// ID returns the subscription ID
func (s *SchoolSubscription) ID() uint {
	return s.id
}

// SchoolID returns the owning school's ID
func (s *SchoolSubscription) SchoolID() uint {
	return s.schoolID
}

// PlanID returns the provisioned plan's ID
func (s *SchoolSubscription) PlanID() uint {
	return s.planID
}

// SourceRequestID returns the approved request that created this period
func (s *SchoolSubscription) SourceRequestID() uint {
	return s.sourceRequestID
}

// Status returns the subscription status
func (s *SchoolSubscription) Status() vo.SubscriptionStatus {
	return s.status
}

// StartDate returns the period start date
func (s *SchoolSubscription) StartDate() time.Time {
	return s.startDate
}

// EndDate returns the period end date, nil for lifetime periods
func (s *SchoolSubscription) EndDate() *time.Time {
	return s.endDate
}

// GraceEndDate returns the hard cutoff date, nil for lifetime periods
func (s *SchoolSubscription) GraceEndDate() *time.Time {
	return s.graceEndDate
}

// ApprovedBy returns the approving operator's ID
func (s *SchoolSubscription) ApprovedBy() uint {
	return s.approvedBy
}

// ApprovedAt returns when the approval was made
func (s *SchoolSubscription) ApprovedAt() time.Time {
	return s.approvedAt
}

// IsCurrentOn reports whether the period still covers the given date: a
// lifetime period always does, a metered one until its end date (the grace
// window counts as covered).
func (s *SchoolSubscription) IsCurrentOn(date time.Time) bool {
	if s.status == vo.SubscriptionLifetimeActive {
		return true
	}
	limit := s.endDate
	if s.graceEndDate != nil {
		limit = s.graceEndDate
	}
	if limit == nil {
		return true
	}
	return !limit.Before(date)
}
