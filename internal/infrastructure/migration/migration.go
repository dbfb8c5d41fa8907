package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/models"
	"github.com/dggcrm/dggcrm/internal/shared/config"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks a strategy for the configured database. sqlite and
// databases with auto_migrate enabled use GORM AutoMigrate, everything else
// runs the embedded goose scripts.
func NewManager(cfg *config.DatabaseConfig, log logger.Interface) (*Manager, error) {
	if cfg.Driver == constants.DriverSQLite || cfg.AutoMigrate {
		return NewManagerWithStrategy(NewGormAutoMigrateStrategy(log), log), nil
	}

	strategy, err := NewGooseStrategy(cfg.Driver, log)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.Named("migration.manager"),
	}
}

// Migrate brings the schema up to date with every persistence model.
func (m *Manager) Migrate(db *gorm.DB) error {
	all := models.All()
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(all))

	if err := m.strategy.Migrate(db, all...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully",
		"strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// Versioned returns the goose strategy when the manager runs SQL scripts.
func (m *Manager) Versioned() (*GooseStrategy, bool) {
	s, ok := m.strategy.(*GooseStrategy)
	return s, ok
}
