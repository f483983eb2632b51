package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skolar-inc/skolar/internal/domain/billing"
	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
	"github.com/skolar-inc/skolar/internal/infrastructure/persistence/models"
	"github.com/skolar-inc/skolar/internal/infrastructure/persistence/schema"
	"github.com/skolar-inc/skolar/internal/shared/constants"
	"github.com/skolar-inc/skolar/internal/shared/db"
	"github.com/skolar-inc/skolar/internal/shared/logger"
	"github.com/skolar-inc/skolar/internal/shared/utils"
)

// RequestRepositoryImpl implements the billing.RequestRepository interface.
// All physical status spellings are translated at this boundary; the domain
// only ever sees logical states.
type RequestRepositoryImpl struct {
	db     *gorm.DB
	probe  schema.Capabilities
	logger logger.Interface

	resolverOnce sync.Once
	resolver     *StatusResolver
}

// NewRequestRepository creates a new subscription request repository.
func NewRequestRepository(gdb *gorm.DB, probe schema.Capabilities, logger logger.Interface) *RequestRepositoryImpl {
	return &RequestRepositoryImpl{
		db:     gdb,
		probe:  probe,
		logger: logger,
	}
}

var _ billing.RequestRepository = (*RequestRepositoryImpl)(nil)

// Resolver returns the status resolver for the request table, reading the
// supported enum values once per process.
func (r *RequestRepositoryImpl) Resolver() *StatusResolver {
	r.resolverOnce.Do(func() {
		values := r.probe.EnumValues(constants.TableSubscriptionRequests, "status")
		r.resolver = NewStatusResolver(values)
	})
	return r.resolver
}

// GetByID loads a request without locking. Returns (nil, nil) when absent.
func (r *RequestRepositoryImpl) GetByID(ctx context.Context, id uint) (*billing.SubscriptionRequest, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	return r.getByID(tx, id)
}

// GetByIDForUpdate loads a request under an exclusive row lock. Must run
// inside a transaction.
func (r *RequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint) (*billing.SubscriptionRequest, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	// sqlite serializes writers at the database level and rejects the
	// FOR UPDATE syntax.
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.getByID(tx, id)
}

func (r *RequestRepositoryImpl) getByID(tx *gorm.DB, id uint) (*billing.SubscriptionRequest, error) {
	var model models.SubscriptionRequestModel
	if err := tx.Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to load subscription request", "request_id", id, "error", err)
		return nil, billing.NewPersistenceError("load subscription request", err)
	}
	return r.toDomain(&model)
}

func (r *RequestRepositoryImpl) toDomain(model *models.SubscriptionRequestModel) (*billing.SubscriptionRequest, error) {
	request, err := billing.ReconstructRequest(
		model.ID,
		model.SchoolID,
		model.PlanID,
		model.RequestedBy,
		model.ExpectedAmount,
		r.Resolver().LogicalOf(model.Status),
		model.ReviewNote,
		model.ReviewedBy,
		model.ReviewedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, billing.NewPersistenceError("reconstruct subscription request", err)
	}
	return request, nil
}

// UpdateDecision persists a decision onto the request row. The status value
// is translated to the deployment's physical spelling; review columns are
// written only when the schema carries them.
func (r *RequestRepositoryImpl) UpdateDecision(ctx context.Context, request *billing.SubscriptionRequest) error {
	tx := db.GetTxFromContext(ctx, r.db)
	table := constants.TableSubscriptionRequests

	updates := map[string]interface{}{
		"status": r.Resolver().ResolvePhysical(request.Status()),
	}
	if r.probe.HasColumn(table, "review_note") && request.ReviewNote() != nil {
		updates["review_note"] = *request.ReviewNote()
	}
	if r.probe.HasColumn(table, "reviewed_by") && request.ReviewedBy() != nil {
		updates["reviewed_by"] = *request.ReviewedBy()
	}
	if r.probe.HasColumn(table, "reviewed_at") && request.ReviewedAt() != nil {
		updates["reviewed_at"] = *request.ReviewedAt()
	}
	if r.probe.HasColumn(table, "updated_at") {
		updates["updated_at"] = request.UpdatedAt()
	}

	if err := tx.Table(table).Where("id = ?", request.ID()).Updates(updates).Error; err != nil {
		r.logger.Errorw("failed to persist request decision",
			"request_id", request.ID(),
			"status", request.Status(),
			"error", err)
		return billing.NewPersistenceError("update request decision", err)
	}

	return nil
}

// requestSummaryRow is the scan target for the review queue query.
type requestSummaryRow struct {
	ID             uint
	SchoolID       uint
	PlanID         uint
	RequestedBy    uint
	ExpectedAmount decimal.Decimal
	Status         string
	ReviewNote     *string
	ReviewedBy     *uint
	ReviewedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	PlanName       string
	BillingCycle   string
	PlanAmount     decimal.Decimal
	SchoolName     string
}

// List returns the review queue page matching the filter, newest first,
// each request joined with its plan, school, and latest proof.
func (r *RequestRepositoryImpl) List(ctx context.Context, filter billing.RequestListFilter) ([]*billing.RequestSummary, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	pagination := utils.ValidatePagination(filter.Page, filter.PageSize)

	q := r.summaryQuery(tx)
	if filter.SchoolID != 0 {
		q = q.Where("r.school_id = ?", filter.SchoolID)
	}
	if filter.Status != "" {
		candidates := r.Resolver().PhysicalCandidates(filter.Status)
		if filter.Status.IsReviewable() {
			// Legacy rows may carry an empty or NULL status.
			q = q.Where("r.status IN ? OR r.status IS NULL OR r.status = ''", candidates)
		} else {
			q = q.Where("r.status IN ?", candidates)
		}
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count subscription requests", "error", err)
		return nil, 0, billing.NewPersistenceError("count subscription requests", err)
	}

	var rows []requestSummaryRow
	if err := q.Order("r.created_at DESC, r.id DESC").
		Limit(pagination.PageSize).
		Offset(pagination.Offset()).
		Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to list subscription requests", "error", err)
		return nil, 0, billing.NewPersistenceError("list subscription requests", err)
	}

	summaries, err := r.buildSummaries(tx, rows)
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

// GetSummaryByID returns one request joined with its plan, school, and
// latest proof. Returns (nil, nil) when absent.
func (r *RequestRepositoryImpl) GetSummaryByID(ctx context.Context, id uint) (*billing.RequestSummary, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []requestSummaryRow
	if err := r.summaryQuery(tx).Where("r.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to load request summary", "request_id", id, "error", err)
		return nil, billing.NewPersistenceError("load request summary", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	summaries, err := r.buildSummaries(tx, rows)
	if err != nil {
		return nil, err
	}
	return summaries[0], nil
}

func (r *RequestRepositoryImpl) summaryQuery(tx *gorm.DB) *gorm.DB {
	return tx.Table(constants.TableSubscriptionRequests+" AS r").
		Select("r.*, p.name AS plan_name, p.billing_cycle, p.amount AS plan_amount, s.name AS school_name").
		Joins("JOIN " + models.SubscriptionPlanModel{}.TableName() + " AS p ON p.id = r.plan_id").
		Joins("JOIN " + models.SchoolModel{}.TableName() + " AS s ON s.id = r.school_id")
}

func (r *RequestRepositoryImpl) buildSummaries(tx *gorm.DB, rows []requestSummaryRow) ([]*billing.RequestSummary, error) {
	if len(rows) == 0 {
		return []*billing.RequestSummary{}, nil
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	latest, err := r.latestProofs(tx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]*billing.RequestSummary, len(rows))
	for i, row := range rows {
		request, err := billing.ReconstructRequest(
			row.ID, row.SchoolID, row.PlanID, row.RequestedBy,
			row.ExpectedAmount,
			r.Resolver().LogicalOf(row.Status),
			row.ReviewNote, row.ReviewedBy, row.ReviewedAt,
			row.CreatedAt, row.UpdatedAt,
		)
		if err != nil {
			return nil, billing.NewPersistenceError("reconstruct subscription request", err)
		}

		cycle := vo.BillingCycle(row.BillingCycle)
		summaries[i] = &billing.RequestSummary{
			Request:      request,
			PlanName:     row.PlanName,
			BillingCycle: cycle,
			PlanAmount:   row.PlanAmount,
			SchoolName:   row.SchoolName,
			LatestProof:  latest[row.ID],
		}
	}

	return summaries, nil
}

// latestProofs returns the most recently created proof per request id.
func (r *RequestRepositoryImpl) latestProofs(tx *gorm.DB, requestIDs []uint) (map[uint]*billing.PaymentProof, error) {
	var proofModels []models.PaymentProofModel
	if err := tx.Where("request_id IN ?", requestIDs).
		Order("created_at DESC, id DESC").
		Find(&proofModels).Error; err != nil {
		r.logger.Errorw("failed to load payment proofs", "error", err)
		return nil, billing.NewPersistenceError("load payment proofs", err)
	}

	latest := make(map[uint]*billing.PaymentProof, len(requestIDs))
	for i := range proofModels {
		model := &proofModels[i]
		if _, ok := latest[model.RequestID]; ok {
			continue
		}
		proof, err := billing.ReconstructProof(
			model.ID, model.RequestID, model.FilePath,
			model.AmountPaid, model.TransferRef, model.TransferBank,
			vo.ProofStatus(model.Status), model.CreatedAt,
		)
		if err != nil {
			return nil, billing.NewPersistenceError("reconstruct payment proof", err)
		}
		latest[model.RequestID] = proof
	}

	return latest, nil
}
