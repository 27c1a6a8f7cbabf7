package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

var (
	DB *sqlx.DB

	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("db: not found")
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ParseURL picks a driver from the url scheme. postgres:// and postgresql://
// go to lib/pq; sqlite:// (or a bare file path) opens a local sqlite file,
// which is how a single-device install keeps its reader state.
func ParseURL(databaseURL string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres, databaseURL
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(databaseURL, "sqlite://")
	default:
		return DriverSQLite, databaseURL
	}
}

// Open connects once without retrying.
func Open(databaseURL string) (*sqlx.DB, error) {
	driver, dsn := ParseURL(databaseURL)
	conn, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// one writer, and ":memory:" is per connection
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
			conn.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	return conn, nil
}

// Init opens the database and assigns it to DB, retrying while the server
// comes up.
func Init(databaseURL string) error {
	const maxRetries = 10
	const retryInterval = 2 * time.Second

	err := retry.Do(
		func() error {
			conn, err := Open(databaseURL)
			if err != nil {
				return err
			}
			DB = conn
			return nil
		},
		retry.Attempts(maxRetries),
		retry.Delay(retryInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			log.Error().Err(err).
				Uint("attempt", attempt+1).
				Msgf("failed to connect to database, retrying in %s", retryInterval)
		}),
	)
	if err != nil {
		return fmt.Errorf("could not connect to database after %d attempts: %w", maxRetries, err)
	}

	log.Info().Str("driver", DB.DriverName()).Msg("connected to database")
	return nil
}

// MigrationsDir returns the dialect subdirectory of base for conn.
func MigrationsDir(base string, conn *sqlx.DB) string {
	return filepath.Join(base, conn.DriverName())
}

// finds all "*.up.sql" files in migrationsPath (sorted by name)
// and executes their SQL contents in order. It ignores "*.down.sql" files.
func RunMigrations(conn *sqlx.DB, migrationsPath string) error {
	pattern := filepath.Join(migrationsPath, "*.up.sql")
	files, err := filepath.Glob(pattern)
	if err != nil {
		log.Error().Msg("failed to list up migrations")
		return fmt.Errorf("failed to glob migrations: %w", err)
	}
	if len(files) == 0 {
		log.Warn().Str("path", migrationsPath).Msg("no migrations found")
		return nil
	}

	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			log.Error().Msg("failed to read migration file")
			return fmt.Errorf("could not read migration %q: %w", file, err)
		}
		sqlStmt := strings.TrimSpace(string(sqlBytes))
		if sqlStmt == "" {
			continue
		}
		if _, err := conn.Exec(sqlStmt); err != nil {
			return fmt.Errorf("error executing migration %q: %w", file, err)
		}
		log.Debug().Str("file", filepath.Base(file)).Msg("[db] migration applied")
	}
	return nil
}
