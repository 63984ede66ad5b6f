package db

import "context"

// Add a finished run to the database. Returns the inserted run ID.
func (s *Store) InsertRun(ctx context.Context, r Run) (int64, error) {
	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO runs (fen, depth, nodes, threads, hash_mb, elapsed_ms, table_usage)
		VALUES (:fen, :depth, :nodes, :threads, :hash_mb, :elapsed_ms, :table_usage)
	`, r)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// list most recent runs
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	var out []Run
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, ran_at, fen, depth, nodes, threads, hash_mb, elapsed_ms, table_usage
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	return out, err
}

// fastest recorded run for a position and depth
func (s *Store) FastestRun(ctx context.Context, fen string, depth int) (Run, error) {
	var r Run
	err := s.db.GetContext(ctx, &r, `
		SELECT id, ran_at, fen, depth, nodes, threads, hash_mb, elapsed_ms, table_usage
		FROM runs
		WHERE fen = ? AND depth = ?
		ORDER BY elapsed_ms ASC, id ASC
		LIMIT 1
	`, fen, depth)
	return r, err
}
