package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

var (
	migrationNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)
	versionPrefix        = regexp.MustCompile(`^(\d+)_`)
)

// dialectDirs are the script directories kept in lockstep, one per
// supported server dialect.
var dialectDirs = []string{"mysql", "postgres"}

// Generator creates new goose migration files. Each migration is written
// once per dialect with the same sequential version.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	now         func() time.Time
}

func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log.Named("migration.generator"),
		now:         time.Now,
	}
}

// CreateMigration writes <version>_<name>.sql into every dialect directory
// and returns the created paths.
func (g *Generator) CreateMigration(name string) ([]string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !migrationNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid migration name %q: use lowercase letters, digits and underscores", name)
	}

	version, err := g.nextVersion()
	if err != nil {
		return nil, err
	}

	g.logger.Infow("creating new migration", "name", name, "version", version)

	fileName := fmt.Sprintf("%05d_%s.sql", version, name)
	content := g.template(name)

	paths := make([]string, 0, len(dialectDirs))
	for _, dir := range dialectDirs {
		dirPath := filepath.Join(g.scriptsPath, dir)
		if err := os.MkdirAll(dirPath, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create scripts directory: %w", err)
		}
		path := filepath.Join(dirPath, fileName)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write migration file: %w", err)
		}
		paths = append(paths, path)
	}

	g.logger.Infow("migration files created successfully", "files", paths)
	return paths, nil
}

// nextVersion is one past the highest version found in any dialect directory.
func (g *Generator) nextVersion() (int64, error) {
	var highest int64
	for _, dir := range dialectDirs {
		entries, err := os.ReadDir(filepath.Join(g.scriptsPath, dir))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, fmt.Errorf("failed to read scripts directory: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
				continue
			}
			m := versionPrefix.FindStringSubmatch(e.Name())
			if m == nil {
				continue
			}
			v, err := strconv.ParseInt(m[1], 10, 64)
			if err == nil && v > highest {
				highest = v
			}
		}
	}
	return highest + 1, nil
}

func (g *Generator) template(name string) string {
	return fmt.Sprintf(`-- Migration: %s
-- Created: %s

-- +goose Up

-- +goose Down
`, name, g.now().UTC().Format("2006-01-02 15:04:05"))
}
