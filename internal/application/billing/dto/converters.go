package dto

import (
	"github.com/skolar-inc/skolar/internal/domain/billing"
)

// RequestSummaryToDTO converts a review queue entry to its API shape.
func RequestSummaryToDTO(summary *billing.RequestSummary) *RequestSummaryDTO {
	if summary == nil {
		return nil
	}

	request := summary.Request
	return &RequestSummaryDTO{
		ID:             request.ID(),
		SchoolID:       request.SchoolID(),
		SchoolName:     summary.SchoolName,
		PlanID:         request.PlanID(),
		PlanName:       summary.PlanName,
		BillingCycle:   summary.BillingCycle.String(),
		PlanAmount:     summary.PlanAmount.String(),
		ExpectedAmount: request.ExpectedAmount().String(),
		Status:         request.Status().String(),
		RequestedBy:    request.RequestedBy(),
		ReviewNote:     request.ReviewNote(),
		ReviewedBy:     request.ReviewedBy(),
		ReviewedAt:     FormatTimePtr(request.ReviewedAt()),
		CreatedAt:      FormatTime(request.CreatedAt()),
		LatestProof:    ProofToDTO(summary.LatestProof),
	}
}

// RequestSummariesToDTO converts a page of review queue entries.
func RequestSummariesToDTO(summaries []*billing.RequestSummary) []*RequestSummaryDTO {
	out := make([]*RequestSummaryDTO, len(summaries))
	for i, summary := range summaries {
		out[i] = RequestSummaryToDTO(summary)
	}
	return out
}

// ProofToDTO converts a payment proof to its API shape.
func ProofToDTO(proof *billing.PaymentProof) *ProofDTO {
	if proof == nil {
		return nil
	}
	return &ProofDTO{
		ID:           proof.ID(),
		FilePath:     proof.FilePath(),
		AmountPaid:   proof.AmountPaid().String(),
		TransferRef:  proof.TransferRef(),
		TransferBank: proof.TransferBank(),
		Status:       proof.Status().String(),
		CreatedAt:    FormatTime(proof.CreatedAt()),
	}
}

// SubscriptionToDTO converts a provisioned period to its API shape.
func SubscriptionToDTO(subscription *billing.SchoolSubscription) *SubscriptionDTO {
	if subscription == nil {
		return nil
	}
	return &SubscriptionDTO{
		ID:              subscription.ID(),
		SchoolID:        subscription.SchoolID(),
		PlanID:          subscription.PlanID(),
		SourceRequestID: subscription.SourceRequestID(),
		Status:          subscription.Status().String(),
		StartDate:       FormatDate(subscription.StartDate()),
		EndDate:         FormatDatePtr(subscription.EndDate()),
		GraceEndDate:    FormatDatePtr(subscription.GraceEndDate()),
		ApprovedBy:      subscription.ApprovedBy(),
		ApprovedAt:      FormatTime(subscription.ApprovedAt()),
	}
}
