package repository

import (
	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
)

// statusCandidates lists, per logical workflow state, the physical spellings
// deployments are known to use, in preference order. The same logical
// workflow runs against status enums defined at different times; hard-coding
// one spelling would silently corrupt data on older schemas.
var statusCandidates = map[vo.RequestStatus][]string{
	vo.RequestStatusPendingPayment: {"pending_payment", "pending", "open"},
	vo.RequestStatusUnderReview:    {"under_review", "pending_payment", "pending", "open"},
	vo.RequestStatusApproved:       {"approved", "active"},
	vo.RequestStatusRejected:       {"rejected", "declined"},
}

// logicalResolutionOrder fixes the order in which a non-exact physical value
// is mapped back to a logical state. Terminal states first; among the two
// reviewable states, which share legacy spellings, the entry state wins.
var logicalResolutionOrder = []vo.RequestStatus{
	vo.RequestStatusApproved,
	vo.RequestStatusRejected,
	vo.RequestStatusPendingPayment,
	vo.RequestStatusUnderReview,
}

// StatusResolver translates logical workflow states into the physical value
// the deployment's status column actually supports, and back. An empty
// supported set means the column has no enum constraint: logical values pass
// through unchanged.
type StatusResolver struct {
	supported map[string]struct{}
}

// NewStatusResolver creates a resolver for the given set of physical enum
// values. Pass nil when the status column is unconstrained free text.
func NewStatusResolver(physicalValues []string) *StatusResolver {
	supported := make(map[string]struct{}, len(physicalValues))
	for _, v := range physicalValues {
		supported[v] = struct{}{}
	}
	return &StatusResolver{supported: supported}
}

// ResolvePhysical returns the physical value to store for a logical state:
// the first supported candidate, or the logical value itself as a
// best-effort fallback when no candidate is supported (or the column is
// unconstrained).
func (r *StatusResolver) ResolvePhysical(logical vo.RequestStatus) string {
	if len(r.supported) == 0 {
		return logical.String()
	}
	for _, candidate := range statusCandidates[logical] {
		if _, ok := r.supported[candidate]; ok {
			return candidate
		}
	}
	return logical.String()
}

// MatchesLogical reports whether a stored physical value represents one of
// the given logical states. An empty physical value matches the reviewable
// states: legacy rows predate the status column.
func (r *StatusResolver) MatchesLogical(physical string, logical ...vo.RequestStatus) bool {
	for _, l := range logical {
		if physical == "" && l.IsReviewable() {
			return true
		}
		for _, candidate := range statusCandidates[l] {
			if physical == candidate {
				return true
			}
		}
	}
	return false
}

// LogicalOf maps a stored physical value back onto the logical state it
// represents. Unknown spellings and empty values resolve to pending_payment,
// the workflow's entry state.
func (r *StatusResolver) LogicalOf(physical string) vo.RequestStatus {
	if physical == "" {
		return vo.RequestStatusPendingPayment
	}
	if status, err := vo.ParseRequestStatus(physical); err == nil {
		return status
	}
	for _, l := range logicalResolutionOrder {
		for _, candidate := range statusCandidates[l] {
			if physical == candidate {
				return l
			}
		}
	}
	return vo.RequestStatusPendingPayment
}

// PhysicalCandidates returns every spelling that may represent the logical
// state in storage, for use in query filters.
func (r *StatusResolver) PhysicalCandidates(logical vo.RequestStatus) []string {
	candidates := statusCandidates[logical]
	out := make([]string, len(candidates))
	copy(out, candidates)
	return out
}
