package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Migrator applies the schema migrations found under a source URL such as
// "file://migrations".
type Migrator struct {
	db     *sql.DB
	m      *migrate.Migrate
	logger *slog.Logger
}

// NewMigrator opens a dedicated database/sql connection through the pgx
// stdlib driver and binds it to the migration source.
func NewMigrator(databaseURL, migrationsPath string, logger *slog.Logger) (*Migrator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database for migrations: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return &Migrator{db: db, m: m, logger: logger}, nil
}

// Up applies all pending migrations. It reports whether anything changed.
func (mg *Migrator) Up() (bool, error) {
	return mg.result(mg.m.Up())
}

// Steps applies n migrations forward, or |n| backward when n is negative.
func (mg *Migrator) Steps(n int) (bool, error) {
	return mg.result(mg.m.Steps(n))
}

// Version returns the current schema version and whether it is dirty.
// A database without migrations reports version 0.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func (mg *Migrator) result(err error) (bool, error) {
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.Info("No new migrations to apply")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("apply migrations: %w", err)
	}
	mg.logger.Info("Database migrations applied successfully")
	return true, nil
}

// Close releases the migration source and database handles.
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database: %w", dbErr)
	}
	return nil
}

// RunMigrations applies every pending "up" migration and closes the migrator.
func RunMigrations(databaseURL, migrationsPath string, logger *slog.Logger) error {
	mg, err := NewMigrator(databaseURL, migrationsPath, logger)
	if err != nil {
		return err
	}
	_, upErr := mg.Up()
	closeErr := mg.Close()
	if upErr != nil {
		return upErr
	}
	return closeErr
}
