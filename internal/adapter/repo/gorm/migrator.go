package gormrepo

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

const createSchemaMigrationsSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// ApplyMigrations runs the pending *.sql files of dir in lexical order and
// returns the versions it applied.
func ApplyMigrations(ctx context.Context, db *gorm.DB, dir string, logger *slog.Logger) ([]string, error) {
	return ApplyMigrationsFS(ctx, db, os.DirFS(dir), logger)
}

func ApplyMigrationsFS(ctx context.Context, db *gorm.DB, fsys fs.FS, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := db.WithContext(ctx).Exec(createSchemaMigrationsSQL).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := migrationFiles(fsys)
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0, len(files))
	for _, name := range files {
		version := strings.TrimSuffix(name, ".sql")
		var count int64
		if err := db.WithContext(ctx).Table("schema_migrations").Where("version = ?", version).Count(&count).Error; err != nil {
			return applied, fmt.Errorf("check migration %s: %w", version, err)
		}
		if count > 0 {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
			if err := tx.Exec(`INSERT INTO schema_migrations(version, applied_at) VALUES (?, ?)`, version, time.Now().UTC()).Error; err != nil {
				return fmt.Errorf("record migration %s: %w", version, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}
		logger.Info("migration applied", "version", version)
		applied = append(applied, version)
	}
	return applied, nil
}

func migrationFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migration dir: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}
