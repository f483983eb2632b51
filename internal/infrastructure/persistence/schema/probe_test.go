package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/skolar-inc/skolar/internal/shared/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestProbe_ColumnsDiscovered(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE probe_requests (id INTEGER PRIMARY KEY, school_id INTEGER NOT NULL, status TEXT)`).Error)
	t.Cleanup(func() { db.Exec(`DROP TABLE probe_requests`) })

	probe := NewProbe(db, logger.NewLogger())

	assert.True(t, probe.HasColumn("probe_requests", "school_id"))
	assert.True(t, probe.HasColumn("probe_requests", "status"))
	assert.False(t, probe.HasColumn("probe_requests", "reviewed_by"))

	cols := probe.Columns("probe_requests")
	assert.Len(t, cols, 3)
}

func TestProbe_MissingTableYieldsEmptySet(t *testing.T) {
	db := newTestDB(t)
	probe := NewProbe(db, logger.NewLogger())

	assert.Empty(t, probe.Columns("no_such_table"))
	assert.False(t, probe.HasColumn("no_such_table", "anything"))
	assert.False(t, probe.TableExists("no_such_table"))
}

func TestProbe_TableExists(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE probe_audit (id INTEGER PRIMARY KEY, action TEXT NOT NULL)`).Error)
	t.Cleanup(func() { db.Exec(`DROP TABLE probe_audit`) })

	probe := NewProbe(db, logger.NewLogger())

	assert.True(t, probe.TableExists("probe_audit"))
}

func TestProbe_ResultsMemoized(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE probe_memo (id INTEGER PRIMARY KEY, note TEXT)`).Error)

	probe := NewProbe(db, logger.NewLogger())
	require.True(t, probe.HasColumn("probe_memo", "note"))

	// Schema is assumed stable within a run: a dropped table must not
	// invalidate the cached capability set.
	require.NoError(t, db.Exec(`DROP TABLE probe_memo`).Error)
	assert.True(t, probe.HasColumn("probe_memo", "note"))
}

func TestProbe_EnumValuesNilWithoutEnumSupport(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE probe_enum (id INTEGER PRIMARY KEY, status TEXT)`).Error)
	t.Cleanup(func() { db.Exec(`DROP TABLE probe_enum`) })

	probe := NewProbe(db, logger.NewLogger())

	// sqlite exposes no enum metadata, so the column is treated as free text.
	assert.Nil(t, probe.EnumValues("probe_enum", "status"))
}

func TestParseEnumType(t *testing.T) {
	tests := []struct {
		name       string
		columnType string
		want       []string
	}{
		{"plain enum", "enum('pending','active','declined')", []string{"pending", "active", "declined"}},
		{"single value", "enum('approved')", []string{"approved"}},
		{"uppercase keyword", "ENUM('a','b')", []string{"a", "b"}},
		{"escaped quote", "enum('it''s','plain')", []string{"it's", "plain"}},
		{"varchar", "varchar(30)", nil},
		{"text", "text", nil},
		{"empty", "", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseEnumType(tc.columnType))
		})
	}
}
