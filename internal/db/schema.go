package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// note: as per SQLites's manual suggestions, we do not use 'AUTOINCREMENT' on
// the 'INTEGER PRIMARY KEY' columns.
var schema_stmts = []string{
	`PRAGMA journal_mode=WAL;`,
	`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY,
		ran_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
		fen TEXT NOT NULL,
		depth INTEGER NOT NULL,
		nodes INTEGER NOT NULL,
		threads INTEGER NOT NULL DEFAULT 1,
		hash_mb INTEGER NOT NULL DEFAULT -1,
		elapsed_ms INTEGER NOT NULL DEFAULT 0,
		table_usage REAL NOT NULL DEFAULT 0,
		CHECK (depth >= 0),
		CHECK (threads >= 1)
	);`,
	`CREATE TABLE IF NOT EXISTS refs (
		fen TEXT NOT NULL,
		depth INTEGER NOT NULL,
		nodes INTEGER NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (fen, depth)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_runs_ran_at ON runs(ran_at);`,
	`CREATE INDEX IF NOT EXISTS idx_runs_fen_depth ON runs(fen, depth);`,
}

type Store struct {
	db *sqlx.DB
}

func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// keep it predictable; one process writes at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	for _, stmt := range schema_stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
