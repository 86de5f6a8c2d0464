package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tadreeb/academy/internal/db"
	"github.com/tadreeb/academy/internal/pkg/logger"
)

//go:embed sql/*.sql
var embedded embed.FS

// Migration is one SQL file identified by its numeric prefix.
type Migration struct {
	Version string
	Name    string
	SQL     string
}

// Migrator manages database migrations
type Migrator struct {
	db   *pgxpool.Pool
	fsys fs.FS
}

// NewMigrator creates a migrator over the migrations compiled into the binary
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return NewMigratorFS(pool, sub)
}

// NewMigratorFS creates a migrator reading *.sql files from the root of fsys
func NewMigratorFS(pool *pgxpool.Pool, fsys fs.FS) *Migrator {
	return &Migrator{db: pool, fsys: fsys}
}

// Embedded returns the built-in migration files.
func Embedded() ([]Migration, error) {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		return nil, err
	}
	return Collect(sub)
}

// Collect reads *.sql files from the root of fsys sorted by name.
// The version is the file name prefix before the first underscore.
func Collect(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(names)

	seen := make(map[string]string, len(names))
	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		base := strings.TrimSuffix(path.Base(name), ".sql")
		version, _, ok := strings.Cut(base, "_")
		if !ok || version == "" {
			return nil, fmt.Errorf("migration %q must be named <version>_<description>.sql", name)
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("migrations %q and %q share version %s", prev, name, version)
		}
		seen[version] = name

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		migrations = append(migrations, Migration{Version: version, Name: name, SQL: string(content)})
	}
	return migrations, nil
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := m.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1);`
	if err := m.db.QueryRow(ctx, query, version).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// Up applies every pending migration in version order and returns how many ran.
// Each file and its schema_migrations row commit in the same transaction.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return 0, err
	}

	migrations, err := Collect(m.fsys)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, mig := range migrations {
		done, err := m.isMigrationApplied(ctx, mig.Version)
		if err != nil {
			return applied, err
		}
		if done {
			logger.Debug().Str("migration", mig.Name).Msg("Migration already applied, skipping")
			continue
		}

		start := time.Now()
		err = db.RunInTx(ctx, m.db, func(ctx context.Context, tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.SQL); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", mig.Name, err)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO schema_migrations (version, name, applied_at) VALUES ($1, $2, $3)`,
				mig.Version, mig.Name, time.Now()); err != nil {
				return fmt.Errorf("failed to record migration %s: %w", mig.Name, err)
			}
			return nil
		})
		if err != nil {
			logger.Error().Err(err).Str("migration", mig.Name).Msg("Migration failed")
			return applied, err
		}

		applied++
		logger.Info().Str("migration", mig.Name).Dur("took", time.Since(start)).Msg("Migration applied")
	}

	logger.Info().Int("applied", applied).Int("total", len(migrations)).Msg("Database migrations complete")
	return applied, nil
}
