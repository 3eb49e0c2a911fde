package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/rex/pkg/logger"
)

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// Migrator applies goose SQL migrations from an fs.FS.
type Migrator struct {
	pool  *pgxpool.Pool
	fsys  fs.FS
	log   *slog.Logger
	dir   string
	table string
}

// MigratorOption configures a Migrator.
type MigratorOption func(*Migrator)

// WithMigrationsDir sets the directory inside the FS. Defaults to ".".
func WithMigrationsDir(dir string) MigratorOption {
	return func(m *Migrator) {
		if dir != "" {
			m.dir = dir
		}
	}
}

// WithMigrationsTable sets the version table. Defaults to "schema_migrations".
func WithMigrationsTable(table string) MigratorOption {
	return func(m *Migrator) {
		if table != "" {
			m.table = table
		}
	}
}

// WithMigrationsLogger routes goose output to l.
func WithMigrationsLogger(l *slog.Logger) MigratorOption {
	return func(m *Migrator) {
		if l != nil {
			m.log = l
		}
	}
}

// NewMigrator creates a migrator over migrations in fsys.
func NewMigrator(pool *pgxpool.Pool, fsys fs.FS, opts ...MigratorOption) *Migrator {
	m := &Migrator{
		pool:  pool,
		fsys:  fsys,
		dir:   ".",
		table: "schema_migrations",
		log:   logger.NewNope(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MigrationStatus describes one migration file.
type MigrationStatus struct {
	Source  string
	Version int64
	Applied bool
}

// Up applies all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	return m.run(func(db *sql.DB) error {
		if err := goose.UpContext(ctx, db, m.dir); err != nil {
			return errors.Join(ErrApplyMigrations, err)
		}
		return nil
	})
}

// Down rolls back the latest migration.
func (m *Migrator) Down(ctx context.Context) error {
	return m.run(func(db *sql.DB) error {
		if err := goose.DownContext(ctx, db, m.dir); err != nil {
			return errors.Join(ErrRollbackMigration, err)
		}
		return nil
	})
}

// Status lists the known migrations and whether each is applied.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	var out []MigrationStatus
	err := m.run(func(db *sql.DB) error {
		current, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return errors.Join(ErrMigrationStatus, err)
		}
		migrations, err := goose.CollectMigrations(m.dir, 0, goose.MaxVersion)
		if err != nil {
			return errors.Join(ErrMigrationStatus, err)
		}
		for _, mig := range migrations {
			out = append(out, MigrationStatus{
				Version: mig.Version,
				Source:  mig.Source,
				Applied: mig.Version <= current,
			})
		}
		return nil
	})
	return out, err
}

// Migrate applies all pending migrations in fsys.
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, opts ...MigratorOption) error {
	return NewMigrator(pool, fsys, opts...).Up(ctx)
}

// run configures goose for this migrator and calls fn under the global lock.
func (m *Migrator) run(fn func(db *sql.DB) error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	// Shares the pool's connections, so it is not closed here.
	db := stdlib.OpenDBFromPool(m.pool)

	goose.SetBaseFS(m.fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&gooseLogger{log: m.log})
	goose.SetTableName(m.table)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrSetDialect, err)
	}
	return fn(db)
}

type gooseLogger struct {
	log *slog.Logger
}

func (g *gooseLogger) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...), slog.String("component", "migrations"))
}

// Fatalf only logs: goose returns the error to the caller as well.
func (g *gooseLogger) Fatalf(format string, args ...any) {
	g.log.Error(fmt.Sprintf(format, args...), slog.String("component", "migrations"))
}
