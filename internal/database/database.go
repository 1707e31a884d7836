package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// defaultSearchLimit caps search results when neither the filter nor the
// configuration supplies a limit.
const defaultSearchLimit = 10

type Database struct {
	db          *sql.DB
	path        string
	logger      *logrus.Logger
	searchLimit int
}

func NewDatabase(dbPath string, logger *logrus.Logger) (*Database, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	// Ensure parent directory exists before the driver creates the file
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	return &Database{db: db, path: dbPath, logger: logger, searchLimit: defaultSearchLimit}, nil
}

// SetSearchLimit overrides the default cap on search results, typically from
// the SEARCH_LIMIT configuration. Non-positive values are ignored.
func (d *Database) SetSearchLimit(limit int) {
	if limit > 0 {
		d.searchLimit = limit
	}
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) GetDB() *sql.DB {
	return d.db
}

// Path returns the location of the underlying SQLite file.
func (d *Database) Path() string {
	return d.path
}
