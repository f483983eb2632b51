// Package schema discovers, at the storage boundary, which tables and
// columns a deployment actually has. The billing workflow runs against
// schemas defined at different times: older installs lack reviewer and audit
// columns, some status enums use legacy spellings. All "does column X exist"
// branching funnels through the probe so the workflow itself stays free of
// schema-version conditionals.
package schema

import (
	"sync"

	"gorm.io/gorm"

	"github.com/skolar-inc/skolar/internal/shared/logger"
)

// Capabilities answers which optional tables, columns and enum values the
// current schema supports. Absence always means "feature not available",
// never a fatal condition.
type Capabilities interface {
	Columns(table string) map[string]struct{}
	HasColumn(table, column string) bool
	TableExists(table string) bool
	EnumValues(table, column string) []string
}

// Probe implements Capabilities on top of the gorm migrator. Results are
// memoized per table for the process lifetime; the schema is assumed stable
// within a run.
type Probe struct {
	db     *gorm.DB
	logger logger.Interface

	mu      sync.Mutex
	columns map[string]map[string]struct{}
	enums   map[string]map[string][]string
	tables  map[string]bool
}

// NewProbe creates a schema capability probe.
func NewProbe(db *gorm.DB, logger logger.Interface) *Probe {
	return &Probe{
		db:      db,
		logger:  logger,
		columns: make(map[string]map[string]struct{}),
		enums:   make(map[string]map[string][]string),
		tables:  make(map[string]bool),
	}
}

var _ Capabilities = (*Probe)(nil)

// Columns returns the set of column names the table carries. Introspection
// failure (or a missing table) yields an empty set.
func (p *Probe) Columns(table string) map[string]struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadLocked(table)
}

// HasColumn reports whether the table carries the given column.
func (p *Probe) HasColumn(table, column string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.loadLocked(table)[column]
	return ok
}

// TableExists reports whether the table exists at all.
func (p *Probe) TableExists(table string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if exists, ok := p.tables[table]; ok {
		return exists
	}
	exists := p.db.Migrator().HasTable(table)
	p.tables[table] = exists
	return exists
}

// EnumValues returns the literal values the column's enum accepts, or nil
// when the column is not enum-typed or the dialect exposes no enum metadata.
func (p *Probe) EnumValues(table, column string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loadLocked(table)
	return p.enums[table][column]
}

// loadLocked introspects a table once and caches the result. Callers must
// hold p.mu.
func (p *Probe) loadLocked(table string) map[string]struct{} {
	if cols, ok := p.columns[table]; ok {
		return cols
	}

	cols := make(map[string]struct{})
	enums := make(map[string][]string)

	columnTypes, err := p.db.Migrator().ColumnTypes(table)
	if err != nil {
		p.logger.Warnw("schema introspection failed, treating table capabilities as empty",
			"table", table,
			"error", err)
		p.columns[table] = cols
		p.enums[table] = enums
		return cols
	}

	for _, ct := range columnTypes {
		name := ct.Name()
		cols[name] = struct{}{}
		if full, ok := ct.ColumnType(); ok {
			if values := parseEnumType(full); len(values) > 0 {
				enums[name] = values
			}
		}
	}

	p.columns[table] = cols
	p.enums[table] = enums
	return cols
}
