package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
)

func TestResolvePhysical_ModernEnum(t *testing.T) {
	r := NewStatusResolver([]string{"pending_payment", "under_review", "approved", "rejected"})

	assert.Equal(t, "pending_payment", r.ResolvePhysical(vo.RequestStatusPendingPayment))
	assert.Equal(t, "under_review", r.ResolvePhysical(vo.RequestStatusUnderReview))
	assert.Equal(t, "approved", r.ResolvePhysical(vo.RequestStatusApproved))
	assert.Equal(t, "rejected", r.ResolvePhysical(vo.RequestStatusRejected))
}

func TestResolvePhysical_LegacyEnum(t *testing.T) {
	// Legacy deployments defined the enum before the workflow grew its
	// dedicated spellings.
	r := NewStatusResolver([]string{"pending", "active", "declined"})

	assert.Equal(t, "pending", r.ResolvePhysical(vo.RequestStatusPendingPayment))
	assert.Equal(t, "pending", r.ResolvePhysical(vo.RequestStatusUnderReview))
	assert.Equal(t, "active", r.ResolvePhysical(vo.RequestStatusApproved))
	assert.Equal(t, "declined", r.ResolvePhysical(vo.RequestStatusRejected))
}

func TestResolvePhysical_UnderReviewFallsBackThroughCandidates(t *testing.T) {
	r := NewStatusResolver([]string{"pending_payment", "approved", "rejected"})

	assert.Equal(t, "pending_payment", r.ResolvePhysical(vo.RequestStatusUnderReview))
}

func TestResolvePhysical_UnconstrainedColumnPassesThrough(t *testing.T) {
	r := NewStatusResolver(nil)

	assert.Equal(t, "under_review", r.ResolvePhysical(vo.RequestStatusUnderReview))
	assert.Equal(t, "approved", r.ResolvePhysical(vo.RequestStatusApproved))
}

func TestResolvePhysical_NoCandidateSupported(t *testing.T) {
	r := NewStatusResolver([]string{"created", "done"})

	// Best effort: the logical value goes through unchanged.
	assert.Equal(t, "rejected", r.ResolvePhysical(vo.RequestStatusRejected))
}

func TestMatchesLogical_EmptyValueIsReviewable(t *testing.T) {
	r := NewStatusResolver([]string{"pending", "active", "declined"})

	assert.True(t, r.MatchesLogical("", vo.RequestStatusPendingPayment))
	assert.True(t, r.MatchesLogical("", vo.RequestStatusUnderReview))
	assert.False(t, r.MatchesLogical("", vo.RequestStatusApproved))
	assert.False(t, r.MatchesLogical("", vo.RequestStatusRejected))
}

func TestMatchesLogical_CandidateSpellings(t *testing.T) {
	r := NewStatusResolver([]string{"pending", "active", "declined"})

	assert.True(t, r.MatchesLogical("pending", vo.RequestStatusPendingPayment))
	assert.True(t, r.MatchesLogical("open", vo.RequestStatusPendingPayment))
	assert.True(t, r.MatchesLogical("active", vo.RequestStatusApproved))
	assert.True(t, r.MatchesLogical("declined", vo.RequestStatusRejected))
	assert.False(t, r.MatchesLogical("active", vo.RequestStatusPendingPayment, vo.RequestStatusUnderReview))
}

func TestLogicalOf(t *testing.T) {
	r := NewStatusResolver([]string{"pending", "active", "declined"})

	tests := []struct {
		physical string
		want     vo.RequestStatus
	}{
		{"", vo.RequestStatusPendingPayment},
		{"pending", vo.RequestStatusPendingPayment},
		{"open", vo.RequestStatusPendingPayment},
		{"pending_payment", vo.RequestStatusPendingPayment},
		{"under_review", vo.RequestStatusUnderReview},
		{"approved", vo.RequestStatusApproved},
		{"active", vo.RequestStatusApproved},
		{"rejected", vo.RequestStatusRejected},
		{"declined", vo.RequestStatusRejected},
		{"garbage", vo.RequestStatusPendingPayment},
	}

	for _, tc := range tests {
		t.Run("physical_"+tc.physical, func(t *testing.T) {
			assert.Equal(t, tc.want, r.LogicalOf(tc.physical))
		})
	}
}

func TestPhysicalCandidates(t *testing.T) {
	r := NewStatusResolver(nil)

	assert.Equal(t, []string{"approved", "active"}, r.PhysicalCandidates(vo.RequestStatusApproved))
	assert.Equal(t, []string{"rejected", "declined"}, r.PhysicalCandidates(vo.RequestStatusRejected))
}
