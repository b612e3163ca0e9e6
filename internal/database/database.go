package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tahcohcat/ttsstudio/internal/logger"
)

type DB struct {
	*sqlx.DB
}

// NewDB opens (or creates) the sqlite history database and ensures the
// schema exists.
func NewDB(path string) (*DB, error) {
	if path == "" {
		path = "ttsstudio.db" // Default SQLite file
	}

	db, err := sqlx.Connect("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	dbWrapper := &DB{DB: db}

	if err := dbWrapper.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Named("database").Debug("Database connection established and tables initialized")
	return dbWrapper, nil
}

func (db *DB) createTables() error {
	generationsTable := `
	CREATE TABLE IF NOT EXISTS generations (
		id TEXT PRIMARY KEY,
		file_name TEXT NOT NULL,
		path TEXT NOT NULL,
		voice TEXT NOT NULL,
		style TEXT NOT NULL,
		tone TEXT NOT NULL,
		punctuation TEXT NOT NULL,
		delivery TEXT NOT NULL,
		emphasis TEXT NOT NULL,
		speed REAL NOT NULL,
		characters INTEGER NOT NULL,
		words INTEGER NOT NULL,
		size_bytes INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_generations_file_name ON generations(file_name);`,
	}

	if _, err := db.Exec(generationsTable); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	for _, index := range indexes {
		if _, err := db.Exec(index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
