// Package bootstrap holds the start-up sequence shared by the CLI commands.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/dggcrm/dggcrm/internal/infrastructure/config"
	"github.com/dggcrm/dggcrm/internal/infrastructure/database"
	"github.com/dggcrm/dggcrm/internal/infrastructure/permission"
	"github.com/dggcrm/dggcrm/internal/shared/biztime"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

// ResolveEnv lets the ENV variable override the --env flag.
func ResolveEnv(flagValue string) string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		return envVar
	}
	return flagValue
}

// GinMode maps an environment name to a gin mode.
func GinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}

// Init loads configuration, sets up logging and the business timezone. The
// database is connected only when withDB is set.
func Init(env string, withDB bool) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = GinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == "debug"); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if withDB {
		if err := database.Init(&cfg.Database); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return cfg, log, nil
}

// Enforcer opens the policy enforcer on the initialized database with the
// built-in role policies loaded.
func Enforcer(cfg *config.Config, log logger.Interface) (*permission.Enforcer, error) {
	enforcer, err := permission.NewEnforcer(database.Get(), cfg.Permission.ModelPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := enforcer.InitRolePolicies(); err != nil {
		return nil, fmt.Errorf("failed to initialize role policies: %w", err)
	}
	return enforcer, nil
}
