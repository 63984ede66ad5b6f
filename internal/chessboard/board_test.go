package chessboard_test

import (
	"strings"
	"testing"

	"github.com/matryer/is"

	"perft/internal/chessboard"
	"perft/internal/perft"
	"perft/internal/tt"
)

// Results from https://www.chessprogramming.org/Perft_Results.
func TestKnownPerftValues(t *testing.T) {
	want := []uint64{1, 20, 400, 8902, 197281}

	drivers := map[string]func(p perft.Position, depth int) (perft.Result, error){
		"single": func(p perft.Position, depth int) (perft.Result, error) {
			return perft.RunSingle(p, depth, nil)
		},
		"single-hashed": func(p perft.Position, depth int) (perft.Result, error) {
			return perft.RunSingleHashed(p, depth, 16, nil)
		},
		"multi": func(p perft.Position, depth int) (perft.Result, error) {
			return perft.RunMulti(p, depth, 4, nil)
		},
		"multi-hashed": func(p perft.Position, depth int) (perft.Result, error) {
			return perft.RunMultiHashed(p, depth, 16, 4, nil)
		},
	}

	for name, run := range drivers {
		t.Run(name, func(t *testing.T) {
			for depth, nodes := range want {
				res, err := run(chessboard.Start(), depth)
				if err != nil {
					t.Fatalf("depth %d: %v", depth, err)
				}
				if res.Nodes != nodes {
					t.Fatalf("depth %d => got %d want %d", depth, res.Nodes, nodes)
				}
			}
		})
	}
}

func TestReferencePositions(t *testing.T) {
	tests := []struct {
		fen   string
		depth int
		nodes uint64
	}{
		{
			fen:   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			depth: 2,
			nodes: 2039,
		},
		{
			fen:   "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			depth: 3,
			nodes: 2812,
		},
		{
			fen:   "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			depth: 2,
			nodes: 264,
		},
		{
			fen:   "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
			depth: 2,
			nodes: 1486,
		},
		{
			fen:   "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
			depth: 2,
			nodes: 2079,
		},
	}

	for _, tc := range tests {
		b, err := chessboard.FromFEN(tc.fen)
		if err != nil {
			t.Fatalf("invalid FEN %q: %v", tc.fen, err)
		}
		if got := perft.Count(b, tc.depth, nil); got != tc.nodes {
			t.Fatalf("fen %q => got %d want %d", tc.fen, got, tc.nodes)
		}
		got, err := perft.CountParallel(b, tc.depth, tt.New(4), 3)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.nodes {
			t.Fatalf("fen %q parallel => got %d want %d", tc.fen, got, tc.nodes)
		}
	}
}

func TestCheckmatedPositionYieldsZero(t *testing.T) {
	is := is.New(t)
	// fool's mate, white to move
	b, err := chessboard.FromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	is.NoErr(err)
	is.Equal(len(b.LegalMoves()), 0)
	for depth := 1; depth <= 3; depth++ {
		is.Equal(perft.Count(b, depth, nil), uint64(0))
		got, err := perft.CountParallel(b, depth, tt.New(1), 4)
		is.NoErr(err)
		is.Equal(got, uint64(0))
	}
}

func TestDivideStartPosition(t *testing.T) {
	is := is.New(t)
	counts, total := perft.Divide(chessboard.Start(), 2, nil, nil)
	is.Equal(len(counts), 20)
	is.Equal(total, uint64(400))
	for _, mc := range counts {
		is.Equal(mc.Nodes, uint64(20))
	}
}

func TestFingerprintTransposition(t *testing.T) {
	is := is.New(t)
	play := func(moves ...string) *chessboard.Board {
		b := chessboard.Start()
		for _, m := range moves {
			var err error
			b, err = b.Play(m)
			is.NoErr(err)
		}
		return b
	}

	a := play("g1f3", "g8f6", "b1c3")
	b := play("b1c3", "g8f6", "g1f3")
	is.Equal(a.Fingerprint(), b.Fingerprint())
	is.True(a.Fingerprint() != chessboard.Start().Fingerprint())

	// knights out and back
	e := play("g1f3", "g8f6", "f3g1", "f6g8")
	is.Equal(e.Fingerprint(), chessboard.Start().Fingerprint())
}

func TestFingerprintStateBits(t *testing.T) {
	is := is.New(t)
	fp := func(fen string) uint64 {
		b, err := chessboard.FromFEN(fen)
		is.NoErr(err)
		return b.Fingerprint()
	}

	full := fp("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	is.True(full != fp("r3k2r/8/8/8/8/8/8/R3K2R w Kkq - 0 1"))
	is.True(full != fp("r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1"))
	is.True(full != fp("r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1"))
	// clocks do not matter
	is.Equal(full, fp("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 12 40"))

	withEP := fp("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	withoutEP := fp("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq - 0 3")
	is.True(withEP != withoutEP)
}

func TestFromFENInvalid(t *testing.T) {
	is := is.New(t)
	_, err := chessboard.FromFEN("not a fen")
	is.True(err != nil)
}

func TestPlayIllegalMove(t *testing.T) {
	is := is.New(t)
	_, err := chessboard.Start().Play("e2e5")
	is.True(err != nil)

	b, err := chessboard.Start().Play("e2e4")
	is.NoErr(err)
	is.True(strings.HasPrefix(b.FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq "))
}
