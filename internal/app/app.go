package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"perft/internal/chessboard"
	"perft/internal/config"
	"perft/internal/db"
	"perft/internal/perft"
	"perft/internal/suite"
)

type App struct {
	cfg   config.Config
	store *db.Store

	closeOnce sync.Once
}

func New(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{cfg: cfg}
	if cfg.DBPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		store, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		a.store = store
	}
	return a, nil
}

func (a *App) options() perft.Options {
	return perft.Options{HashMB: a.cfg.HashMB, Threads: a.cfg.Threads}
}

// Perft counts from the configured position, writes the report to out and
// records the run when a store is configured.
func (a *App) Perft(ctx context.Context, out io.Writer) (perft.Result, error) {
	b, err := chessboard.FromFEN(a.cfg.FEN)
	if err != nil {
		return perft.Result{}, err
	}

	opts := a.options()
	if a.cfg.Divide {
		opts.Divide = out
	}
	res, err := perft.Run(b, a.cfg.Depth, opts)
	if err != nil {
		return perft.Result{}, err
	}
	fmt.Fprintln(out, res)

	log.Info().Str("fen", b.FEN()).
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Str("nps", humanize.Comma(int64(res.NPS()))).
		Msg("perft-finished")

	if a.store != nil {
		if err := a.record(ctx, b.FEN(), res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (a *App) record(ctx context.Context, fen string, res perft.Result) error {
	hashMB := res.HashMB
	if !res.Hashed {
		hashMB = perft.NoHash
	}
	id, err := a.store.InsertRun(ctx, db.Run{
		FEN:        fen,
		Depth:      res.Depth,
		Nodes:      int64(res.Nodes),
		Threads:    res.Threads,
		HashMB:     hashMB,
		ElapsedMS:  res.Elapsed.Milliseconds(),
		TableUsage: res.Usage,
	})
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	log.Debug().Int64("run-id", id).Msg("run-recorded")

	ref, err := a.store.Reference(ctx, fen, res.Depth)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("lookup reference: %w", err)
	}
	if uint64(ref.Nodes) != res.Nodes {
		log.Warn().Str("fen", fen).
			Int("depth", res.Depth).
			Int64("reference", ref.Nodes).
			Uint64("nodes", res.Nodes).
			Str("source", ref.Source).
			Msg("perft-reference-mismatch")
	}
	return nil
}

// Suite checks cases up to maxDepth with the configured driver. Reference
// counts are saved to the store when one is configured.
func (a *App) Suite(ctx context.Context, cases []suite.Case, maxDepth int) ([]suite.Mismatch, error) {
	opts := a.options()
	count := func(fen string, depth int) (uint64, error) {
		b, err := chessboard.FromFEN(fen)
		if err != nil {
			return 0, err
		}
		res, err := perft.Run(b, depth, opts)
		if err != nil {
			return 0, err
		}
		log.Info().Str("fen", fen).
			Int("depth", depth).
			Uint64("nodes", res.Nodes).
			Dur("elapsed", res.Elapsed).
			Msg("suite-case")
		return res.Nodes, nil
	}

	mismatches, err := suite.Check(cases, maxDepth, count)
	if err != nil {
		return mismatches, err
	}

	if a.store != nil {
		for _, c := range cases {
			b, err := chessboard.FromFEN(c.FEN)
			if err != nil {
				return mismatches, err
			}
			for depth, nodes := range c.Nodes {
				if err := a.store.UpsertReference(ctx, db.Reference{
					FEN:    b.FEN(),
					Depth:  depth + 1,
					Nodes:  int64(nodes),
					Source: c.Name,
				}); err != nil {
					return mismatches, fmt.Errorf("save reference: %w", err)
				}
			}
		}
	}
	return mismatches, nil
}

func (a *App) Close() {
	a.closeOnce.Do(func() {
		if a.store != nil {
			_ = a.store.Close()
		}
	})
}
