package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/skolar-inc/skolar/internal/domain/billing"
	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
	"github.com/skolar-inc/skolar/internal/infrastructure/persistence/models"
	"github.com/skolar-inc/skolar/internal/infrastructure/persistence/schema"
	"github.com/skolar-inc/skolar/internal/shared/constants"
	"github.com/skolar-inc/skolar/internal/shared/db"
	"github.com/skolar-inc/skolar/internal/shared/logger"
)

// ProofRepositoryImpl implements the billing.ProofRepository interface.
type ProofRepositoryImpl struct {
	db     *gorm.DB
	probe  schema.Capabilities
	logger logger.Interface
}

// NewProofRepository creates a new payment proof repository.
func NewProofRepository(gdb *gorm.DB, probe schema.Capabilities, logger logger.Interface) *ProofRepositoryImpl {
	return &ProofRepositoryImpl{db: gdb, probe: probe, logger: logger}
}

var _ billing.ProofRepository = (*ProofRepositoryImpl)(nil)

// CountByRequestID returns how many proofs have been submitted for a request.
func (r *ProofRepositoryImpl) CountByRequestID(ctx context.Context, requestID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.Model(&models.PaymentProofModel{}).
		Where("request_id = ?", requestID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count payment proofs", "request_id", requestID, "error", err)
		return 0, billing.NewPersistenceError("count payment proofs", err)
	}
	return count, nil
}

// GetLatestByRequestID returns the most recently submitted proof for a
// request, or (nil, nil) when none exists.
func (r *ProofRepositoryImpl) GetLatestByRequestID(ctx context.Context, requestID uint) (*billing.PaymentProof, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.PaymentProofModel
	if err := tx.Where("request_id = ?", requestID).
		Order("created_at DESC, id DESC").
		Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to load latest payment proof", "request_id", requestID, "error", err)
		return nil, billing.NewPersistenceError("load latest payment proof", err)
	}

	proof, err := billing.ReconstructProof(
		model.ID, model.RequestID, model.FilePath,
		model.AmountPaid, model.TransferRef, model.TransferBank,
		vo.ProofStatus(model.Status), model.CreatedAt,
	)
	if err != nil {
		return nil, billing.NewPersistenceError("reconstruct payment proof", err)
	}
	return proof, nil
}

// UpdateStatusByRequestID mirrors a decision onto every proof of the
// request. Skipped on deployments whose proof table has no status column.
func (r *ProofRepositoryImpl) UpdateStatusByRequestID(ctx context.Context, requestID uint, status vo.ProofStatus) error {
	if !r.probe.HasColumn(constants.TablePaymentProofs, "status") {
		return nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	updates := map[string]interface{}{"status": status.String()}
	if r.probe.HasColumn(constants.TablePaymentProofs, "updated_at") {
		updates["updated_at"] = tx.NowFunc()
	}

	if err := tx.Table(constants.TablePaymentProofs).
		Where("request_id = ?", requestID).
		Updates(updates).Error; err != nil {
		r.logger.Errorw("failed to update payment proof status",
			"request_id", requestID,
			"status", status,
			"error", err)
		return billing.NewPersistenceError("update payment proof status", err)
	}
	return nil
}
