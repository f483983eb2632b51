package repository

import (
	"context"
	"encoding/json"
	"sync"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/skolar-inc/skolar/internal/domain/billing"
	"github.com/skolar-inc/skolar/internal/infrastructure/persistence/models"
	"github.com/skolar-inc/skolar/internal/infrastructure/persistence/schema"
	"github.com/skolar-inc/skolar/internal/shared/constants"
	"github.com/skolar-inc/skolar/internal/shared/db"
	"github.com/skolar-inc/skolar/internal/shared/logger"
)

// auditColumns is the full column set of the audit table. Deployments that
// carry all of them take the model-based insert path.
var auditColumns = []string{
	"school_id", "request_id", "actor_id", "actor_role",
	"message", "metadata", "created_at",
}

// AuditLogRepositoryImpl implements the billing.AuditRecorder interface on
// top of the append-only audit table. Minimal deployments ship without the
// table; recording is then skipped so decisions still go through.
type AuditLogRepositoryImpl struct {
	db     *gorm.DB
	probe  schema.Capabilities
	logger logger.Interface

	warnOnce sync.Once
}

// NewAuditLogRepository creates a new audit log repository.
func NewAuditLogRepository(gdb *gorm.DB, probe schema.Capabilities, logger logger.Interface) *AuditLogRepositoryImpl {
	return &AuditLogRepositoryImpl{db: gdb, probe: probe, logger: logger}
}

var _ billing.AuditRecorder = (*AuditLogRepositoryImpl)(nil)

// Record appends one workflow transition. Inside a decision transaction a
// failed insert propagates and rolls the decision back; a missing table only
// logs a warning once per process.
func (r *AuditLogRepositoryImpl) Record(ctx context.Context, entry billing.AuditEntry) error {
	table := constants.TableAuditLogs
	if !r.probe.TableExists(table) {
		r.warnOnce.Do(func() {
			r.logger.Warnw("audit table missing, workflow transitions will not be recorded",
				"table", table)
		})
		return nil
	}

	tx := db.GetTxFromContext(ctx, r.db)

	if r.hasFullSchema(table) {
		return r.recordModel(tx, entry)
	}
	return r.recordFiltered(tx, entry)
}

func (r *AuditLogRepositoryImpl) hasFullSchema(table string) bool {
	for _, column := range auditColumns {
		if !r.probe.HasColumn(table, column) {
			return false
		}
	}
	return true
}

func (r *AuditLogRepositoryImpl) recordModel(tx *gorm.DB, entry billing.AuditEntry) error {
	model := models.AuditLogModel{
		Action:    entry.Action.String(),
		SchoolID:  &entry.SchoolID,
		RequestID: &entry.RequestID,
		ActorID:   &entry.ActorID,
		CreatedAt: entry.At,
	}
	if entry.ActorRole != "" {
		role := entry.ActorRole
		model.ActorRole = &role
	}
	if entry.Message != "" {
		message := entry.Message
		model.Message = &message
	}
	if len(entry.Metadata) > 0 {
		payload, err := json.Marshal(entry.Metadata)
		if err != nil {
			return billing.NewPersistenceError("encode audit metadata", err)
		}
		model.Metadata = datatypes.JSON(payload)
	}

	if err := tx.Create(&model).Error; err != nil {
		r.logger.Errorw("failed to append audit entry",
			"action", entry.Action,
			"request_id", entry.RequestID,
			"error", err)
		return billing.NewPersistenceError("append audit entry", err)
	}
	return nil
}

// recordFiltered inserts through a column-filtered map for deployments whose
// audit table predates some of the columns.
func (r *AuditLogRepositoryImpl) recordFiltered(tx *gorm.DB, entry billing.AuditEntry) error {
	table := constants.TableAuditLogs

	values := map[string]interface{}{
		"action": entry.Action.String(),
	}
	if r.probe.HasColumn(table, "school_id") {
		values["school_id"] = entry.SchoolID
	}
	if r.probe.HasColumn(table, "request_id") {
		values["request_id"] = entry.RequestID
	}
	if r.probe.HasColumn(table, "actor_id") {
		values["actor_id"] = entry.ActorID
	}
	if r.probe.HasColumn(table, "actor_role") && entry.ActorRole != "" {
		values["actor_role"] = entry.ActorRole
	}
	if r.probe.HasColumn(table, "message") && entry.Message != "" {
		values["message"] = entry.Message
	}
	if r.probe.HasColumn(table, "metadata") && len(entry.Metadata) > 0 {
		payload, err := json.Marshal(entry.Metadata)
		if err != nil {
			return billing.NewPersistenceError("encode audit metadata", err)
		}
		values["metadata"] = payload
	}
	if r.probe.HasColumn(table, "created_at") {
		values["created_at"] = entry.At
	}

	if err := tx.Table(table).Create(values).Error; err != nil {
		r.logger.Errorw("failed to append audit entry",
			"action", entry.Action,
			"request_id", entry.RequestID,
			"error", err)
		return billing.NewPersistenceError("append audit entry", err)
	}
	return nil
}
