package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/skolar-inc/skolar/internal/domain/billing"
	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
	"github.com/skolar-inc/skolar/internal/infrastructure/persistence/models"
	"github.com/skolar-inc/skolar/internal/shared/db"
	"github.com/skolar-inc/skolar/internal/shared/logger"
)

// PlanRepositoryImpl implements the billing.PlanRepository interface.
type PlanRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewPlanRepository creates a new subscription plan repository.
func NewPlanRepository(gdb *gorm.DB, logger logger.Interface) *PlanRepositoryImpl {
	return &PlanRepositoryImpl{db: gdb, logger: logger}
}

var _ billing.PlanRepository = (*PlanRepositoryImpl)(nil)

// GetByID loads a plan. Returns (nil, nil) when absent.
func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*billing.SubscriptionPlan, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.SubscriptionPlanModel
	if err := tx.Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to load subscription plan", "plan_id", id, "error", err)
		return nil, billing.NewPersistenceError("load subscription plan", err)
	}

	plan, err := billing.ReconstructPlan(
		model.ID,
		model.Name,
		vo.BillingCycle(model.BillingCycle),
		model.DurationDays,
		model.GraceDays,
		model.Amount,
		model.CreatedAt,
	)
	if err != nil {
		return nil, billing.NewPersistenceError("reconstruct subscription plan", err)
	}
	return plan, nil
}
