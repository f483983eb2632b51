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

// SubscriptionRepositoryImpl implements the billing.SubscriptionRepository
// interface.
type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	probe  schema.Capabilities
	logger logger.Interface
}

// NewSubscriptionRepository creates a new school subscription repository.
func NewSubscriptionRepository(gdb *gorm.DB, probe schema.Capabilities, logger logger.Interface) *SubscriptionRepositoryImpl {
	return &SubscriptionRepositoryImpl{db: gdb, probe: probe, logger: logger}
}

var _ billing.SubscriptionRepository = (*SubscriptionRepositoryImpl)(nil)

// Create inserts the provisioned period and backfills its generated id.
// Optional columns are written only when the schema carries them.
func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, subscription *billing.SchoolSubscription) error {
	tx := db.GetTxFromContext(ctx, r.db)
	table := constants.TableSchoolSubscriptions

	values := map[string]interface{}{
		"school_id":  subscription.SchoolID(),
		"plan_id":    subscription.PlanID(),
		"status":     subscription.Status().String(),
		"start_date": subscription.StartDate(),
	}
	if r.probe.HasColumn(table, "source_request_id") {
		values["source_request_id"] = subscription.SourceRequestID()
	}
	if r.probe.HasColumn(table, "end_date") && subscription.EndDate() != nil {
		values["end_date"] = *subscription.EndDate()
	}
	if r.probe.HasColumn(table, "grace_end_date") && subscription.GraceEndDate() != nil {
		values["grace_end_date"] = *subscription.GraceEndDate()
	}
	if r.probe.HasColumn(table, "approved_by") {
		values["approved_by"] = subscription.ApprovedBy()
	}
	if r.probe.HasColumn(table, "approved_at") {
		values["approved_at"] = subscription.ApprovedAt()
	}
	if r.probe.HasColumn(table, "created_at") {
		values["created_at"] = tx.NowFunc()
	}

	if err := tx.Table(table).Create(values).Error; err != nil {
		r.logger.Errorw("failed to create school subscription",
			"school_id", subscription.SchoolID(),
			"request_id", subscription.SourceRequestID(),
			"error", err)
		return billing.NewPersistenceError("create school subscription", err)
	}

	// Map-based inserts do not backfill the generated key. Inside the
	// caller's transaction this row is the school's newest.
	var id uint
	if err := tx.Table(table).
		Select("id").
		Where("school_id = ?", subscription.SchoolID()).
		Order("id DESC").
		Limit(1).
		Scan(&id).Error; err != nil {
		r.logger.Errorw("failed to read back subscription id",
			"school_id", subscription.SchoolID(),
			"error", err)
		return billing.NewPersistenceError("read back subscription id", err)
	}
	if id != 0 {
		if err := subscription.SetID(id); err != nil {
			return billing.NewPersistenceError("assign subscription id", err)
		}
	}

	return nil
}

// GetLatestBySchoolID returns the school's most recently approved period, or
// (nil, nil) when the school has none. Ordered by approval time when the
// schema records it, by insertion order otherwise.
func (r *SubscriptionRepositoryImpl) GetLatestBySchoolID(ctx context.Context, schoolID uint) (*billing.SchoolSubscription, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	order := "id DESC"
	if r.probe.HasColumn(constants.TableSchoolSubscriptions, "approved_at") {
		order = "approved_at DESC, id DESC"
	}

	var model models.SchoolSubscriptionModel
	if err := tx.Where("school_id = ?", schoolID).
		Order(order).
		Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to load latest subscription", "school_id", schoolID, "error", err)
		return nil, billing.NewPersistenceError("load latest subscription", err)
	}

	subscription, err := billing.ReconstructSubscription(
		model.ID, model.SchoolID, model.PlanID, model.SourceRequestID,
		vo.SubscriptionStatus(model.Status),
		model.StartDate, model.EndDate, model.GraceEndDate,
		model.ApprovedBy, model.ApprovedAt,
	)
	if err != nil {
		return nil, billing.NewPersistenceError("reconstruct school subscription", err)
	}
	return subscription, nil
}
