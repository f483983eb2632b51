package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
)

func newReviewableRequest(t *testing.T, status vo.RequestStatus) *SubscriptionRequest {
	t.Helper()
	req, err := ReconstructRequest(
		1, 7, 3, 15,
		decimal.NewFromInt(500000),
		status,
		nil, nil, nil,
		date(2024, 5, 1), date(2024, 5, 1),
	)
	require.NoError(t, err)
	return req
}

func TestReconstructRequest_EmptyStatusTreatedAsPending(t *testing.T) {
	req, err := ReconstructRequest(
		1, 7, 3, 15,
		decimal.Zero,
		"",
		nil, nil, nil,
		date(2024, 5, 1), date(2024, 5, 1),
	)

	require.NoError(t, err)
	assert.Equal(t, vo.RequestStatusPendingPayment, req.Status())
	assert.True(t, req.CanDecide())
}

func TestReconstructRequest_InvalidInput(t *testing.T) {
	_, err := ReconstructRequest(0, 7, 3, 15, decimal.Zero, vo.RequestStatusUnderReview, nil, nil, nil, time.Time{}, time.Time{})
	assert.Error(t, err)

	_, err = ReconstructRequest(1, 0, 3, 15, decimal.Zero, vo.RequestStatusUnderReview, nil, nil, nil, time.Time{}, time.Time{})
	assert.Error(t, err)

	_, err = ReconstructRequest(1, 7, 3, 15, decimal.Zero, "garbage", nil, nil, nil, time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestApprove_FromReviewableStates(t *testing.T) {
	for _, status := range []vo.RequestStatus{vo.RequestStatusPendingPayment, vo.RequestStatusUnderReview} {
		t.Run(status.String(), func(t *testing.T) {
			req := newReviewableRequest(t, status)
			at := date(2024, 6, 1)

			err := req.Approve(42, "looks good", at)

			require.NoError(t, err)
			assert.Equal(t, vo.RequestStatusApproved, req.Status())
			require.NotNil(t, req.ReviewedBy())
			assert.Equal(t, uint(42), *req.ReviewedBy())
			require.NotNil(t, req.ReviewedAt())
			assert.Equal(t, at, *req.ReviewedAt())
			require.NotNil(t, req.ReviewNote())
			assert.Equal(t, "looks good", *req.ReviewNote())
			assert.False(t, req.CanDecide())
		})
	}
}

func TestApprove_EmptyNoteAllowed(t *testing.T) {
	req := newReviewableRequest(t, vo.RequestStatusUnderReview)

	err := req.Approve(42, "", date(2024, 6, 1))

	require.NoError(t, err)
	assert.Equal(t, vo.RequestStatusApproved, req.Status())
	assert.Nil(t, req.ReviewNote())
}

func TestApprove_TerminalStateRejected(t *testing.T) {
	for _, status := range []vo.RequestStatus{vo.RequestStatusApproved, vo.RequestStatusRejected} {
		t.Run(status.String(), func(t *testing.T) {
			req := newReviewableRequest(t, status)

			err := req.Approve(42, "", date(2024, 6, 1))

			assert.ErrorIs(t, err, ErrAlreadyProcessed)
			assert.Equal(t, status, req.Status())
		})
	}
}

func TestReject_RequiresNote(t *testing.T) {
	req := newReviewableRequest(t, vo.RequestStatusUnderReview)

	err := req.Reject(42, "   ", date(2024, 6, 1))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, vo.RequestStatusUnderReview, req.Status())
	assert.Nil(t, req.ReviewedBy())
}

func TestReject_Valid(t *testing.T) {
	req := newReviewableRequest(t, vo.RequestStatusPendingPayment)

	err := req.Reject(42, "amount does not match the invoice", date(2024, 6, 1))

	require.NoError(t, err)
	assert.Equal(t, vo.RequestStatusRejected, req.Status())
	assert.False(t, req.CanDecide())
}

func TestReturnToPending_RequiresNote(t *testing.T) {
	req := newReviewableRequest(t, vo.RequestStatusUnderReview)

	err := req.ReturnToPending(42, "", date(2024, 6, 1))

	assert.True(t, IsValidation(err))
	assert.Equal(t, vo.RequestStatusUnderReview, req.Status())
}

func TestReturnToPending_KeepsRequestReviewable(t *testing.T) {
	req := newReviewableRequest(t, vo.RequestStatusUnderReview)

	err := req.ReturnToPending(42, "transfer slip unreadable, please re-upload", date(2024, 6, 1))

	require.NoError(t, err)
	assert.Equal(t, vo.RequestStatusPendingPayment, req.Status())
	assert.True(t, req.CanDecide())
}

func TestDecide_ZeroOperatorRejected(t *testing.T) {
	req := newReviewableRequest(t, vo.RequestStatusUnderReview)

	err := req.Approve(0, "", date(2024, 6, 1))

	assert.True(t, IsValidation(err))
}
