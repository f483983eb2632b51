package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
)

// SubscriptionRequest is the aggregate root of the approval workflow: a
// school's request for a plan, tied to payment evidence, moving through
// review toward exactly one terminal decision.
type SubscriptionRequest struct {
	id             uint
	schoolID       uint
	planID         uint
	requestedBy    uint
	expectedAmount decimal.Decimal
	status         vo.RequestStatus
	reviewNote     *string
	reviewedBy     *uint
	reviewedAt     *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// ReconstructRequest rebuilds a request from persistence. An empty physical
// status is treated as pending_payment: legacy rows predate the status
// column.
func ReconstructRequest(
	id, schoolID, planID, requestedBy uint,
	expectedAmount decimal.Decimal,
	status vo.RequestStatus,
	reviewNote *string,
	reviewedBy *uint,
	reviewedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*SubscriptionRequest, error) {
	if id == 0 {
		return nil, fmt.Errorf("request ID cannot be zero")
	}
	if schoolID == 0 {
		return nil, fmt.Errorf("school ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if status == "" {
		status = vo.RequestStatusPendingPayment
	}
	if !vo.ValidRequestStatuses[status] {
		return nil, fmt.Errorf("invalid request status: %s", status)
	}

	return &SubscriptionRequest{
		id:             id,
		schoolID:       schoolID,
		planID:         planID,
		requestedBy:    requestedBy,
		expectedAmount: expectedAmount,
		status:         status,
		reviewNote:     reviewNote,
		reviewedBy:     reviewedBy,
		reviewedAt:     reviewedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

// ID returns the request ID
func (r *SubscriptionRequest) ID() uint {
	return r.id
}

// SchoolID returns the requesting school's ID
func (r *SubscriptionRequest) SchoolID() uint {
	return r.schoolID
}

// PlanID returns the requested plan's ID
func (r *SubscriptionRequest) PlanID() uint {
	return r.planID
}

// RequestedBy returns the submitting user's ID
func (r *SubscriptionRequest) RequestedBy() uint {
	return r.requestedBy
}

// ExpectedAmount returns the amount the school was expected to transfer.
func (r *SubscriptionRequest) ExpectedAmount() decimal.Decimal {
	return r.expectedAmount
}

// Status returns the logical workflow status
func (r *SubscriptionRequest) Status() vo.RequestStatus {
	return r.status
}

// ReviewNote returns the operator's note, if any
func (r *SubscriptionRequest) ReviewNote() *string {
	return r.reviewNote
}

// ReviewedBy returns the deciding operator's ID, if decided
func (r *SubscriptionRequest) ReviewedBy() *uint {
	return r.reviewedBy
}

// ReviewedAt returns when the decision was made, if decided
func (r *SubscriptionRequest) ReviewedAt() *time.Time {
	return r.reviewedAt
}

// CreatedAt returns when the request was submitted
func (r *SubscriptionRequest) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the request was last updated
func (r *SubscriptionRequest) UpdatedAt() time.Time {
	return r.updatedAt
}

// CanDecide reports whether the request is still in the reviewable
// superstate.
func (r *SubscriptionRequest) CanDecide() bool {
	return r.status.IsReviewable()
}

// Approve transitions the request to its approved terminal state.
func (r *SubscriptionRequest) Approve(operatorID uint, note string, at time.Time) error {
	return r.decide(vo.RequestStatusApproved, operatorID, note, at)
}

// Reject transitions the request to its rejected terminal state. A non-empty
// note is mandatory.
func (r *SubscriptionRequest) Reject(operatorID uint, note string, at time.Time) error {
	if strings.TrimSpace(note) == "" {
		return NewValidationError("a review note is required to reject a request")
	}
	return r.decide(vo.RequestStatusRejected, operatorID, note, at)
}

// ReturnToPending moves a reviewable request back to pending_payment without
// terminating it, used when the submitted evidence is insufficient. A
// non-empty note is mandatory.
func (r *SubscriptionRequest) ReturnToPending(operatorID uint, note string, at time.Time) error {
	if strings.TrimSpace(note) == "" {
		return NewValidationError("a review note is required to mark a request pending")
	}
	return r.decide(vo.RequestStatusPendingPayment, operatorID, note, at)
}

func (r *SubscriptionRequest) decide(target vo.RequestStatus, operatorID uint, note string, at time.Time) error {
	if !r.status.IsReviewable() {
		return ErrAlreadyProcessed
	}
	if operatorID == 0 {
		return NewValidationError("operator ID is required")
	}

	r.status = target
	r.reviewedBy = &operatorID
	r.reviewedAt = &at
	r.updatedAt = at
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		r.reviewNote = &trimmed
	}

	return nil
}
