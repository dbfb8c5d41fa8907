package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dggcrm/dggcrm/internal/infrastructure/database"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/models"
	"github.com/dggcrm/dggcrm/internal/infrastructure/repository"
	"github.com/dggcrm/dggcrm/internal/shared/authorization"
	"github.com/dggcrm/dggcrm/internal/shared/config"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

const seedDoc = `
accounts:
  - email: Lead@Example.com
    username: lead
    role: admin
  - email: helper@example.com
    first_name: Help
tags:
  - name: Volunteer
    color: "#22aa44"
  - name: donor
`

type recordingSyncer struct {
	roles map[uint]authorization.UserRole
}

func (r *recordingSyncer) SetUserRole(userID uint, role authorization.UserRole) error {
	r.roles[userID] = role
	return nil
}

func setupSeeder(t *testing.T) (*Seeder, *gorm.DB, *recordingSyncer) {
	t.Helper()
	gdb, err := database.Open(&config.DatabaseConfig{Driver: constants.DriverSQLite, Database: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(models.All()...))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	log := logger.NewNopLogger()
	syncer := &recordingSyncer{roles: map[uint]authorization.UserRole{}}
	s := NewSeeder(repository.NewUserRepository(gdb, log), repository.NewTagRepository(gdb), syncer, log)
	return s, gdb, syncer
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("accounts:\n  - email: a@b.c\n    password: nope\n"))
	assert.Error(t, err)

	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Accounts)
}

func TestSeeder_Run(t *testing.T) {
	s, gdb, syncer := setupSeeder(t)
	ctx := context.Background()

	doc, err := Parse(strings.NewReader(seedDoc))
	require.NoError(t, err)

	res, err := s.Run(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, &Result{AccountsCreated: 2, TagsCreated: 2}, res)

	var lead models.UserModel
	require.NoError(t, gdb.Where("email = ?", "lead@example.com").Take(&lead).Error)
	assert.Equal(t, "admin", lead.Role)
	assert.Equal(t, authorization.RoleAdmin, syncer.roles[lead.ID])

	var helper models.UserModel
	require.NoError(t, gdb.Where("email = ?", "helper@example.com").Take(&helper).Error)
	assert.Equal(t, "helper", helper.Username)
	assert.Equal(t, authorization.RoleNeedsApproval, syncer.roles[helper.ID])

	t.Run("second run is a no-op", func(t *testing.T) {
		res, err := s.Run(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, &Result{}, res)
	})

	t.Run("role and color changes are applied", func(t *testing.T) {
		changed, err := Parse(strings.NewReader(`
accounts:
  - email: helper@example.com
    role: organizer
tags:
  - name: VOLUNTEER
    color: "#000000"
`))
		require.NoError(t, err)

		res, err := s.Run(ctx, changed)
		require.NoError(t, err)
		assert.Equal(t, &Result{AccountsUpdated: 1, TagsUpdated: 1}, res)
		assert.Equal(t, authorization.RoleOrganizer, syncer.roles[helper.ID])

		var tag models.TagModel
		require.NoError(t, gdb.Where("LOWER(name) = ?", "volunteer").Take(&tag).Error)
		assert.Equal(t, "#000000", tag.Color)
	})
}

func TestSeeder_UnknownRole(t *testing.T) {
	s, _, _ := setupSeeder(t)

	_, err := s.Run(context.Background(), &File{Accounts: []Account{{Email: "x@example.com", Role: "superuser"}}})
	assert.ErrorContains(t, err, "unknown role")
}
