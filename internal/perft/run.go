package perft

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"perft/internal/tt"
)

// NoHash disables the transposition table in Options.HashMB.
const NoHash = -1

type Options struct {
	// HashMB is the table budget in megabytes; NoHash (any negative value)
	// runs without a table. Zero gives a table with no usable slots.
	HashMB int
	// Threads is the worker count; 1 runs the sequential driver.
	Threads int
	// Divide receives one line per root move when not nil.
	Divide io.Writer
}

type Result struct {
	Nodes   uint64
	Depth   int
	Threads int
	HashMB  int
	Elapsed time.Duration
	// Usage is the fraction of table slots in use after the run; only
	// meaningful when Hashed is set.
	Usage  float64
	Hashed bool
	Moves  []MoveCount
}

// NPS returns nodes per second.
func (r Result) NPS() float64 {
	secs := r.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.Nodes) / secs
}

func (r Result) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d nodes in %s -> %s nodes/s",
		r.Nodes, r.Elapsed, humanize.Comma(int64(r.NPS())))
	if r.Hashed {
		fmt.Fprintf(&sb, "\nHash Table Usage: %.2f%%", r.Usage*100)
	}
	return sb.String()
}

// Run counts the leaves below pos with the driver selected by opts.
func Run(pos Position, depth int, opts Options) (Result, error) {
	if opts.Threads < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidThreads, opts.Threads)
	}
	if depth < 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}

	res := Result{Depth: depth, Threads: opts.Threads, HashMB: opts.HashMB}
	var table *tt.Table
	if opts.HashMB >= 0 {
		table = tt.New(opts.HashMB)
		res.Hashed = true
	}

	log.Debug().Int("depth", depth).
		Int("threads", opts.Threads).
		Int("hash-mb", opts.HashMB).
		Msg("perft-start")

	start := time.Now()
	if opts.Threads == 1 {
		res.Moves, res.Nodes = Divide(pos, depth, table, opts.Divide)
	} else {
		var err error
		res.Moves, res.Nodes, err = DivideParallel(pos, depth, table, opts.Threads, opts.Divide)
		if err != nil {
			return Result{}, fmt.Errorf("parallel perft: %w", err)
		}
	}
	res.Elapsed = time.Since(start)

	if table != nil {
		res.Usage = table.Usage()
	}

	log.Debug().Uint64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Float64("nps", res.NPS()).
		Msg("perft-finished")
	return res, nil
}

// RunSingle counts sequentially without a table.
func RunSingle(pos Position, depth int, w io.Writer) (Result, error) {
	return Run(pos, depth, Options{HashMB: NoHash, Threads: 1, Divide: w})
}

// RunSingleHashed counts sequentially with a table of megabytes.
func RunSingleHashed(pos Position, depth, megabytes int, w io.Writer) (Result, error) {
	return Run(pos, depth, Options{HashMB: max(megabytes, 0), Threads: 1, Divide: w})
}

// RunMulti counts on threads workers without a table.
func RunMulti(pos Position, depth, threads int, w io.Writer) (Result, error) {
	return Run(pos, depth, Options{HashMB: NoHash, Threads: threads, Divide: w})
}

// RunMultiHashed counts on threads workers sharing a table of megabytes.
func RunMultiHashed(pos Position, depth, megabytes, threads int, w io.Writer) (Result, error) {
	return Run(pos, depth, Options{HashMB: max(megabytes, 0), Threads: threads, Divide: w})
}
