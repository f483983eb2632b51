package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestStatus_Reviewable(t *testing.T) {
	assert.True(t, RequestStatusPendingPayment.IsReviewable())
	assert.True(t, RequestStatusUnderReview.IsReviewable())
	assert.False(t, RequestStatusApproved.IsReviewable())
	assert.False(t, RequestStatusRejected.IsReviewable())
}

func TestRequestStatus_Terminal(t *testing.T) {
	assert.True(t, RequestStatusApproved.IsTerminal())
	assert.True(t, RequestStatusRejected.IsTerminal())
	assert.False(t, RequestStatusPendingPayment.IsTerminal())
	assert.False(t, RequestStatusUnderReview.IsTerminal())
}

func TestParseRequestStatus(t *testing.T) {
	status, err := ParseRequestStatus("under_review")
	require.NoError(t, err)
	assert.Equal(t, RequestStatusUnderReview, status)

	_, err = ParseRequestStatus("cancelled")
	assert.Error(t, err)

	_, err = ParseRequestStatus("")
	assert.Error(t, err)
}

func TestDecisionAction_RequiresNote(t *testing.T) {
	assert.False(t, ActionApprove.RequiresNote())
	assert.True(t, ActionReject.RequiresNote())
	assert.True(t, ActionMarkPending.RequiresNote())
}

func TestParseDecisionAction(t *testing.T) {
	action, err := ParseDecisionAction("approve_request")
	require.NoError(t, err)
	assert.Equal(t, ActionApprove, action)

	_, err = ParseDecisionAction("escalate")
	assert.Error(t, err)
}

func TestBillingCycle_DefaultDurationDays(t *testing.T) {
	assert.Equal(t, 30, CycleMonthly.DefaultDurationDays())
	assert.Equal(t, 120, CycleYearly.DefaultDurationDays())
	assert.Equal(t, 120, CycleLifetime.DefaultDurationDays())
}

func TestBillingCycle_IsLifetime(t *testing.T) {
	assert.True(t, CycleLifetime.IsLifetime())
	assert.False(t, CycleMonthly.IsLifetime())
	assert.False(t, CycleYearly.IsLifetime())
}
