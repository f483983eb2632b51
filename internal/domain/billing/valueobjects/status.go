// Package valueobjects defines the closed value types of the billing
// workflow. Business logic compares these logical values only; the literal
// spelling a deployment's schema accepts is resolved at the persistence
// boundary.
package valueobjects

import "fmt"

// RequestStatus is the logical workflow state of a subscription request.
type RequestStatus string

const (
	RequestStatusPendingPayment RequestStatus = "pending_payment"
	RequestStatusUnderReview    RequestStatus = "under_review"
	RequestStatusApproved       RequestStatus = "approved"
	RequestStatusRejected       RequestStatus = "rejected"
)

// ValidRequestStatuses is the set of known logical request statuses.
var ValidRequestStatuses = map[RequestStatus]bool{
	RequestStatusPendingPayment: true,
	RequestStatusUnderReview:    true,
	RequestStatusApproved:       true,
	RequestStatusRejected:       true,
}

func (s RequestStatus) String() string {
	return string(s)
}

// IsReviewable reports whether a decision may still be made on a request in
// this state. pending_payment and under_review form a single reviewable
// superstate.
func (s RequestStatus) IsReviewable() bool {
	return s == RequestStatusPendingPayment || s == RequestStatusUnderReview
}

// IsTerminal reports whether the state admits no further transitions.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// ParseRequestStatus converts a string into a RequestStatus.
func ParseRequestStatus(s string) (RequestStatus, error) {
	status := RequestStatus(s)
	if !ValidRequestStatuses[status] {
		return "", fmt.Errorf("invalid request status: %q", s)
	}
	return status, nil
}

// DecisionAction is an operator's verdict on a reviewable request.
type DecisionAction string

const (
	ActionApprove     DecisionAction = "approve_request"
	ActionReject      DecisionAction = "reject_request"
	ActionMarkPending DecisionAction = "mark_pending"
)

// ValidDecisionActions is the set of known decision actions.
var ValidDecisionActions = map[DecisionAction]bool{
	ActionApprove:     true,
	ActionReject:      true,
	ActionMarkPending: true,
}

func (a DecisionAction) String() string {
	return string(a)
}

// RequiresNote reports whether the action must carry a non-empty review note.
// Rejections and send-backs always need a stated reason.
func (a DecisionAction) RequiresNote() bool {
	return a == ActionReject || a == ActionMarkPending
}

// ParseDecisionAction converts a string into a DecisionAction.
func ParseDecisionAction(s string) (DecisionAction, error) {
	action := DecisionAction(s)
	if !ValidDecisionActions[action] {
		return "", fmt.Errorf("invalid decision action: %q", s)
	}
	return action, nil
}

// BillingCycle is a plan's billing cadence.
type BillingCycle string

const (
	CycleMonthly  BillingCycle = "monthly"
	CycleYearly   BillingCycle = "yearly"
	CycleLifetime BillingCycle = "lifetime"
)

func (c BillingCycle) String() string {
	return string(c)
}

// IsLifetime reports whether the cycle provisions a perpetual period.
func (c BillingCycle) IsLifetime() bool {
	return c == CycleLifetime
}

// DefaultDurationDays returns the fallback period length used when a plan
// carries no positive duration of its own.
func (c BillingCycle) DefaultDurationDays() int {
	if c == CycleMonthly {
		return 30
	}
	return 120
}

// SubscriptionStatus is the state of a provisioned billing period.
type SubscriptionStatus string

const (
	SubscriptionActive         SubscriptionStatus = "active"
	SubscriptionLifetimeActive SubscriptionStatus = "lifetime_active"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// ProofStatus mirrors the request's decision onto its payment evidence.
type ProofStatus string

const (
	ProofPending  ProofStatus = "pending"
	ProofApproved ProofStatus = "approved"
	ProofRejected ProofStatus = "rejected"
)

func (s ProofStatus) String() string {
	return string(s)
}
