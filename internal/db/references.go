package db

import "context"

// find the reference count for a position at a depth
func (s *Store) Reference(ctx context.Context, fen string, depth int) (Reference, error) {
	var r Reference
	err := s.db.GetContext(ctx, &r, `
		SELECT fen, depth, nodes, source
		FROM refs
		WHERE fen = ? AND depth = ?
	`, fen, depth)
	return r, err
}

// insert or update a reference count
func (s *Store) UpsertReference(ctx context.Context, r Reference) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO refs (fen, depth, nodes, source)
		VALUES (:fen, :depth, :nodes, :source)
		ON CONFLICT(fen, depth) DO UPDATE SET
			nodes = excluded.nodes,
			source = excluded.source
	`, r)
	return err
}
