// Package perft counts the leaf nodes of a game tree to a fixed depth.
//
// The move generator is consumed through Position; the drivers only walk the
// tree, optionally memoizing subtree counts in a shared tt.Table.
package perft

import (
	"errors"
	"fmt"
	"io"

	"perft/internal/tt"
)

var (
	ErrInvalidThreads = errors.New("thread count must be at least 1")
	ErrInvalidDepth   = errors.New("depth must not be negative")
)

// Move is one legal transition from a Position.
type Move interface {
	String() string
}

// Position is a game state. Implementations are immutable: Apply returns a
// new Position and must be safe to call concurrently on the same receiver.
type Position interface {
	// Fingerprint is a hash of the full game state. Positions sharing a
	// fingerprint are treated as identical.
	Fingerprint() uint64
	// LegalMoves enumerates the legal moves in a stable order.
	LegalMoves() []Move
	Apply(m Move) Position
}

// MoveCount is the number of leaves below one root move.
type MoveCount struct {
	Move  string
	Nodes uint64
}

func (mc MoveCount) String() string {
	return fmt.Sprintf("%s: %d", mc.Move, mc.Nodes)
}

// Count returns the number of leaves depth plies below pos. table may be nil.
func Count(pos Position, depth int, table *tt.Table) uint64 {
	if depth <= 0 {
		return 1
	}
	if depth == 1 {
		return uint64(len(pos.LegalMoves()))
	}

	// a slot's depth is a single byte
	if depth > tt.MaxDepth {
		table = nil
	}

	var key uint64
	if table != nil {
		key = pos.Fingerprint()
		if e, ok := table.Probe(key); ok && int(e.Depth) == depth {
			return e.Nodes
		}
	}

	var total uint64
	for _, m := range pos.LegalMoves() {
		total += Count(pos.Apply(m), depth-1, table)
	}

	if table != nil {
		table.Insert(key, total, uint8(depth))
	}
	return total
}

// Divide counts every root move separately, writing a "move: nodes" line per
// root move to w when w is not nil. The counts come back in root move order.
func Divide(pos Position, depth int, table *tt.Table, w io.Writer) ([]MoveCount, uint64) {
	if depth <= 0 {
		return nil, 1
	}

	moves := pos.LegalMoves()
	counts := make([]MoveCount, 0, len(moves))
	var total uint64
	for _, m := range moves {
		n := Count(pos.Apply(m), depth-1, table)
		total += n

		mc := MoveCount{Move: m.String(), Nodes: n}
		counts = append(counts, mc)
		if w != nil {
			fmt.Fprintln(w, mc)
		}
	}
	return counts, total
}
