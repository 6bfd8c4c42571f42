package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/thriftwise/thriftwise/internal/shared/constants"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

// ScriptsPath is where `migrate create` writes new scripts, relative to the repo root.
const ScriptsPath = "internal/infrastructure/migration/scripts"

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks goose scripts for MySQL outside development and AutoMigrate otherwise.
// The embedded scripts are written in the MySQL dialect.
func NewManager(environment, driver string) *Manager {
	var strategy Strategy

	switch {
	case strings.ToLower(environment) == constants.EnvDevelopment:
		strategy = NewGormAutoMigrateStrategy()
	case driver == "" || driver == "mysql":
		strategy = NewGooseStrategy("mysql")
	default:
		strategy = NewGormAutoMigrateStrategy()
	}

	return NewManagerWithStrategy(strategy)
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB, models ...interface{}) error {
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully",
		"strategy", m.strategy.GetName())

	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
