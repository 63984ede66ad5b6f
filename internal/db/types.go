package db

// Run is one finished perft invocation.
type Run struct {
	ID         int64   `db:"id"`
	RanAt      string  `db:"ran_at"`
	FEN        string  `db:"fen"`
	Depth      int     `db:"depth"`
	Nodes      int64   `db:"nodes"`
	Threads    int     `db:"threads"`
	HashMB     int     `db:"hash_mb"`
	ElapsedMS  int64   `db:"elapsed_ms"`
	TableUsage float64 `db:"table_usage"`
}

// Reference is a trusted leaf count for a position at a depth.
type Reference struct {
	FEN    string `db:"fen"`
	Depth  int    `db:"depth"`
	Nodes  int64  `db:"nodes"`
	Source string `db:"source"`
}
