package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
)

// RequestListFilter narrows the review queue. An empty Status means all.
type RequestListFilter struct {
	Status   vo.RequestStatus
	SchoolID uint
	Page     int
	PageSize int
}

// RequestSummary is the read model of the review queue: a request joined
// with its plan, school, and most recently submitted proof.
type RequestSummary struct {
	Request      *SubscriptionRequest
	PlanName     string
	BillingCycle vo.BillingCycle
	PlanAmount   decimal.Decimal
	SchoolName   string
	LatestProof  *PaymentProof
}

// RequestRepository loads and persists subscription requests.
//
// GetByID and GetByIDForUpdate return (nil, nil) when no row exists.
// GetByIDForUpdate must be called inside a transaction; it acquires an
// exclusive lock on the row so the reviewable precondition can be re-checked
// with no time-of-check gap.
type RequestRepository interface {
	GetByID(ctx context.Context, id uint) (*SubscriptionRequest, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*SubscriptionRequest, error)
	UpdateDecision(ctx context.Context, request *SubscriptionRequest) error
	List(ctx context.Context, filter RequestListFilter) ([]*RequestSummary, int64, error)
	GetSummaryByID(ctx context.Context, id uint) (*RequestSummary, error)
}

// PlanRepository loads immutable plan reference data. GetByID returns
// (nil, nil) when no row exists.
type PlanRepository interface {
	GetByID(ctx context.Context, id uint) (*SubscriptionPlan, error)
}

// ProofRepository reads payment evidence and mirrors decisions onto it.
//
// UpdateStatusByRequestID is a no-op on deployments whose proof table carries
// no status column.
type ProofRepository interface {
	CountByRequestID(ctx context.Context, requestID uint) (int64, error)
	GetLatestByRequestID(ctx context.Context, requestID uint) (*PaymentProof, error)
	UpdateStatusByRequestID(ctx context.Context, requestID uint, status vo.ProofStatus) error
}

// SubscriptionRepository persists provisioned billing periods.
//
// GetLatestBySchoolID returns the school's most recently approved period, or
// (nil, nil) when the school has none.
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *SchoolSubscription) error
	GetLatestBySchoolID(ctx context.Context, schoolID uint) (*SchoolSubscription, error)
}

// AuditEntry describes one workflow transition for the append-only log.
type AuditEntry struct {
	Action    vo.DecisionAction
	SchoolID  uint
	RequestID uint
	ActorID   uint
	ActorRole string
	Message   string
	Metadata  map[string]any
	At        time.Time
}

// AuditRecorder appends immutable audit entries. Recording happens inside
// the approval transaction: a failed append rolls back the whole decision.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}
