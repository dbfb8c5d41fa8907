package migration

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dggcrm/dggcrm/internal/infrastructure/database"
	"github.com/dggcrm/dggcrm/internal/shared/config"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

func TestNewManagerPicksStrategy(t *testing.T) {
	log := logger.NewNopLogger()

	m, err := NewManager(&config.DatabaseConfig{Driver: constants.DriverSQLite}, log)
	require.NoError(t, err)
	assert.Equal(t, "gorm_auto_migrate", m.GetStrategy().GetName())
	_, ok := m.Versioned()
	assert.False(t, ok)

	m, err = NewManager(&config.DatabaseConfig{Driver: constants.DriverPostgres}, log)
	require.NoError(t, err)
	assert.Equal(t, "goose", m.GetStrategy().GetName())
	s, ok := m.Versioned()
	require.True(t, ok)
	assert.Equal(t, "postgres", s.dialect)

	m, err = NewManager(&config.DatabaseConfig{Driver: constants.DriverMySQL, AutoMigrate: true}, log)
	require.NoError(t, err)
	assert.Equal(t, "gorm_auto_migrate", m.GetStrategy().GetName())

	_, err = NewManager(&config.DatabaseConfig{Driver: "oracle"}, log)
	assert.Error(t, err)
}

func TestEmbeddedScriptsCoverEveryTable(t *testing.T) {
	tables := []string{
		constants.TableUsers, constants.TableUserEmailAddresses, constants.TableSocialAccounts,
		constants.TableContacts, constants.TableTags, constants.TableTagAssignments,
		constants.TableContactActivities, constants.TableGroups, constants.TableGroupMemberships,
		constants.TableEvents, constants.TableEventParticipations, constants.TableUsersInEvents,
		constants.TableTickets, constants.TableTicketComments, constants.TableTicketAsks,
		constants.TableTicketAuditLogs,
	}

	for _, dir := range dialectDirs {
		raw, err := fs.ReadFile(scriptsFS, "scripts/"+dir+"/00001_init_schema.sql")
		require.NoError(t, err, dir)
		sql := string(raw)
		assert.Contains(t, sql, "-- +goose Up")
		assert.Contains(t, sql, "-- +goose Down")
		for _, table := range tables {
			assert.Contains(t, sql, "CREATE TABLE "+table+" (", "%s missing %s", dir, table)
			assert.Contains(t, sql, "DROP TABLE IF EXISTS "+table+";", "%s missing drop for %s", dir, table)
		}
	}
}

func TestAutoMigrateOnSQLite(t *testing.T) {
	gdb, err := database.Open(&config.DatabaseConfig{Driver: constants.DriverSQLite, Database: ":memory:"})
	require.NoError(t, err)

	m, err := NewManager(&config.DatabaseConfig{Driver: constants.DriverSQLite}, logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, m.Migrate(gdb))

	assert.True(t, gdb.Migrator().HasTable(constants.TableGroups))
	assert.True(t, gdb.Migrator().HasTable(constants.TableTicketAuditLogs))
	assert.True(t, gdb.Migrator().HasColumn(constants.TableUserEmailAddresses, "is_primary"))
}

func TestGeneratorWritesEveryDialect(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "mysql"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "mysql", "00004_old.sql"), []byte("-- +goose Up\n"), 0o644))

	g := NewGenerator(root, logger.NewNopLogger())
	g.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	paths, err := g.CreateMigration("Add_Ticket_Index")
	require.NoError(t, err)
	require.Len(t, paths, 2)

	for _, p := range paths {
		assert.Equal(t, "00005_add_ticket_index.sql", filepath.Base(p))
		raw, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(raw), "-- +goose Up"))
		assert.Contains(t, string(raw), "2024-05-01 12:00:00")
	}

	_, err = g.CreateMigration("drop table;")
	assert.Error(t, err)
}
