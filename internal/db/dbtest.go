package db

import (
	"errors"
	"os"

	"github.com/jmoiron/sqlx"
)

// OpenTestDB opens TEST_DATABASE_URL and migrates it. Integration tests skip
// when the variable is unset.
func OpenTestDB(migrationsBase string) (*sqlx.DB, error) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		return nil, errors.New("TEST_DATABASE_URL environment variable is not set")
	}
	return OpenMigrated(dbURL, migrationsBase)
}

// OpenMigrated opens databaseURL and applies the dialect's migrations.
func OpenMigrated(databaseURL, migrationsBase string) (*sqlx.DB, error) {
	conn, err := Open(databaseURL)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(conn, MigrationsDir(migrationsBase, conn)); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
