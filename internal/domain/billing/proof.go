package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
)

// PaymentProof is evidence submitted against a request: a stored file
// reference plus transfer metadata. Proofs are created by the school-facing
// upload flow and are read-only inputs here; only their mirrored status is
// written back when a decision lands.
type PaymentProof struct {
	id           uint
	requestID    uint
	filePath     string
	amountPaid   decimal.Decimal
	transferRef  string
	transferBank string
	status       vo.ProofStatus
	createdAt    time.Time
}

// ReconstructProof rebuilds a payment proof from persistence. An empty
// status defaults to pending.
func ReconstructProof(
	id, requestID uint,
	filePath string,
	amountPaid decimal.Decimal,
	transferRef, transferBank string,
	status vo.ProofStatus,
	createdAt time.Time,
) (*PaymentProof, error) {
	if id == 0 {
		return nil, fmt.Errorf("proof ID cannot be zero")
	}
	if requestID == 0 {
		return nil, fmt.Errorf("request ID is required")
	}
	if status == "" {
		status = vo.ProofPending
	}

	return &PaymentProof{
		id:           id,
		requestID:    requestID,
		filePath:     filePath,
		amountPaid:   amountPaid,
		transferRef:  transferRef,
		transferBank: transferBank,
		status:       status,
		createdAt:    createdAt,
	}, nil
}

// ID returns the proof ID
func (p *PaymentProof) ID() uint {
	return p.id
}

// RequestID returns the owning request's ID
func (p *PaymentProof) RequestID() uint {
	return p.requestID
}

// FilePath returns the stored file reference
func (p *PaymentProof) FilePath() string {
	return p.filePath
}

// AmountPaid returns the transferred amount
func (p *PaymentProof) AmountPaid() decimal.Decimal {
	return p.amountPaid
}

// TransferRef returns the transfer reference number
func (p *PaymentProof) TransferRef() string {
	return p.transferRef
}

// TransferBank returns the originating bank name
func (p *PaymentProof) TransferBank() string {
	return p.transferBank
}

// Status returns the proof status
func (p *PaymentProof) Status() vo.ProofStatus {
	return p.status
}

// CreatedAt returns when the proof was uploaded
func (p *PaymentProof) CreatedAt() time.Time {
	return p.createdAt
}
