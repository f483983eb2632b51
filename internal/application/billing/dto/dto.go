package dto

import "time"

// ProofDTO is the API shape of a submitted payment proof.
type ProofDTO struct {
	ID           uint   `json:"id"`
	FilePath     string `json:"file_path"`
	AmountPaid   string `json:"amount_paid"`
	TransferRef  string `json:"transfer_ref,omitempty"`
	TransferBank string `json:"transfer_bank,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// RequestSummaryDTO is the API shape of a review queue entry.
type RequestSummaryDTO struct {
	ID             uint      `json:"id"`
	SchoolID       uint      `json:"school_id"`
	SchoolName     string    `json:"school_name"`
	PlanID         uint      `json:"plan_id"`
	PlanName       string    `json:"plan_name"`
	BillingCycle   string    `json:"billing_cycle"`
	PlanAmount     string    `json:"plan_amount"`
	ExpectedAmount string    `json:"expected_amount"`
	Status         string    `json:"status"`
	RequestedBy    uint      `json:"requested_by"`
	ReviewNote     *string   `json:"review_note,omitempty"`
	ReviewedBy     *uint     `json:"reviewed_by,omitempty"`
	ReviewedAt     *string   `json:"reviewed_at,omitempty"`
	CreatedAt      string    `json:"created_at"`
	LatestProof    *ProofDTO `json:"latest_proof,omitempty"`
}

// SubscriptionDTO is the API shape of a provisioned billing period.
type SubscriptionDTO struct {
	ID              uint    `json:"id"`
	SchoolID        uint    `json:"school_id"`
	PlanID          uint    `json:"plan_id"`
	SourceRequestID uint    `json:"source_request_id"`
	Status          string  `json:"status"`
	StartDate       string  `json:"start_date"`
	EndDate         *string `json:"end_date,omitempty"`
	GraceEndDate    *string `json:"grace_end_date,omitempty"`
	ApprovedBy      uint    `json:"approved_by"`
	ApprovedAt      string  `json:"approved_at"`
}

// EntitlementDTO is the API shape of a school's current entitlement.
type EntitlementDTO struct {
	SchoolID     uint    `json:"school_id"`
	Entitled     bool    `json:"entitled"`
	Status       string  `json:"status,omitempty"`
	PlanID       uint    `json:"plan_id,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	GraceEndDate *string `json:"grace_end_date,omitempty"`
}

// FormatDate renders a calendar date for the API.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDatePtr renders an optional calendar date for the API.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// FormatTime renders a timestamp for the API.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtr renders an optional timestamp for the API.
func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
