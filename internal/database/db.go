package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/newsroom-web/internal/config"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed migrations
var migrationsFS embed.FS

// DB wraps the sql.DB connection with additional functionality
type DB struct {
	*sql.DB
	driver string
	dsn    string
	log    zerolog.Logger
}

// New opens the document store with connection pooling
func New(cfg *config.DatabaseConfig, log zerolog.Logger) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverPostgres
	}

	if driver == DriverSQLite {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	dsn := cfg.GetDSN()
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool
	if driver == DriverSQLite {
		// single writer keeps increments serialized and avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.MaxLifetime)
	}

	// Test connection with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapper := &DB{
		DB:     db,
		driver: driver,
		dsn:    dsn,
		log:    log.With().Str("component", "database").Logger(),
	}

	wrapper.log.Info().
		Str("driver", driver).
		Str("host", cfg.Host).
		Str("database", cfg.Name).
		Msg("Document store connection established")

	return wrapper, nil
}

// Driver returns the name of the underlying driver
func (db *DB) Driver() string {
	return db.driver
}

// Rebind converts '?' placeholders into the driver's bind syntax
func (db *DB) Rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// RunMigrations applies all pending embedded migrations using golang-migrate
func (db *DB) RunMigrations() error {
	db.log.Info().Str("driver", db.driver).Msg("Running database migrations")

	m, err := db.migrator()
	if err != nil {
		return err
	}
	defer db.closeMigrator(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	db.log.Info().
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("Migrations completed")

	return nil
}

// MigrateDown rolls back the last migration
func (db *DB) MigrateDown() error {
	db.log.Info().Msg("Rolling back last migration")

	m, err := db.migrator()
	if err != nil {
		return err
	}
	defer db.closeMigrator(m)

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	db.log.Info().Msg("Migration rolled back")
	return nil
}

// migrator builds a migrate instance over the embedded migrations for the active driver.
// It runs on its own handle so that closing it leaves the shared pool open.
func (db *DB) migrator() (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations/"+db.driver)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	conn, err := sql.Open(db.driver, db.dsn)
	if err != nil {
		source.Close()
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}

	var driver migratedb.Driver
	switch db.driver {
	case DriverSQLite:
		driver, err = sqlite.WithInstance(conn, &sqlite.Config{})
	default:
		driver, err = postgres.WithInstance(conn, &postgres.Config{})
	}
	if err != nil {
		source.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, db.driver, driver)
	if err != nil {
		source.Close()
		driver.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// closeMigrator releases the migration source and its connection
func (db *DB) closeMigrator(m *migrate.Migrate) {
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		db.log.Warn().Err(sourceErr).Msg("Failed to close migration source")
	}
	if dbErr != nil {
		db.log.Warn().Err(dbErr).Msg("Failed to close migration connection")
	}
}

// HealthCheck verifies the database connection is healthy
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// Stats returns database connection pool statistics
func (db *DB) Stats() sql.DBStats {
	return db.DB.Stats()
}
