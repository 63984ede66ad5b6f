package perft

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"perft/internal/tt"
)

// CountParallel is Count with the root moves split across threads workers
// sharing table.
func CountParallel(pos Position, depth int, table *tt.Table, threads int) (uint64, error) {
	_, total, err := DivideParallel(pos, depth, table, threads, nil)
	return total, err
}

// DivideParallel splits the root moves into threads contiguous chunks of
// ceil(moves/threads) and counts each chunk on its own worker. Workers share
// table and add their local totals into a single atomic accumulator.
//
// Per-move lines written to w may interleave between workers; the returned
// counts are always in root move order.
func DivideParallel(pos Position, depth int, table *tt.Table, threads int, w io.Writer) ([]MoveCount, uint64, error) {
	if threads < 1 {
		return nil, 0, fmt.Errorf("%w: got %d", ErrInvalidThreads, threads)
	}
	if depth < 0 {
		return nil, 0, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	if depth == 0 {
		return nil, 1, nil
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return nil, 0, nil
	}
	if w != nil {
		w = zerolog.SyncWriter(w)
	}

	chunkSize := (len(moves) + threads - 1) / threads
	counts := make([]MoveCount, len(moves))
	var total atomic.Uint64

	var g errgroup.Group
	g.SetLimit(threads)
	for i, chunk := range lo.Chunk(moves, chunkSize) {
		chunk := chunk
		offset := i * chunkSize
		g.Go(func() error {
			var local uint64
			for j, m := range chunk {
				n := Count(pos.Apply(m), depth-1, table)
				local += n

				// each worker owns its own index range
				counts[offset+j] = MoveCount{Move: m.String(), Nodes: n}
				if w != nil {
					fmt.Fprintln(w, counts[offset+j])
				}
			}
			total.Add(local)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return counts, total.Load(), nil
}
