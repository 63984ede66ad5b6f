// Package suite holds perft reference positions and checks drivers against
// them.
package suite

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Case is a position with known leaf counts; Nodes[d-1] is the count at
// depth d.
type Case struct {
	Name  string
	FEN   string
	Nodes []uint64
}

// Expected returns the reference count at depth.
func (c Case) Expected(depth int) (uint64, bool) {
	if depth == 0 {
		return 1, true
	}
	if depth < 0 || depth > len(c.Nodes) {
		return 0, false
	}
	return c.Nodes[depth-1], true
}

// MaxDepth is the deepest depth with a reference count.
func (c Case) MaxDepth() int {
	return len(c.Nodes)
}

// Standard returns the chessprogramming.org perft positions.
func Standard() []Case {
	return []Case{
		{
			Name:  "startpos",
			FEN:   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			Nodes: []uint64{20, 400, 8902, 197281, 4865609, 119060324},
		},
		{
			Name:  "kiwipete",
			FEN:   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			Nodes: []uint64{48, 2039, 97862, 4085603, 193690690},
		},
		{
			Name:  "position3",
			FEN:   "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			Nodes: []uint64{14, 191, 2812, 43238, 674624, 11030083},
		},
		{
			Name:  "position4",
			FEN:   "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			Nodes: []uint64{6, 264, 9467, 422333, 15833292},
		},
		{
			Name:  "position5",
			FEN:   "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
			Nodes: []uint64{44, 1486, 62379, 2103487, 89941194},
		},
		{
			Name:  "position6",
			FEN:   "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
			Nodes: []uint64{46, 2079, 89890, 3894594, 164075551},
		},
	}
}

// ParseEPD reads perft suite lines of the form
//
//	<fen> ;D1 20 ;D2 400 ;D3 8902
//
// Blank lines and lines starting with '#' are skipped. Depths must be
// consecutive starting at 1. A FEN with only four fields gets "0 1" clocks.
func ParseEPD(r io.Reader) ([]Case, error) {
	var cases []Case
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		c.Name = fmt.Sprintf("line%d", lineNo)
		cases = append(cases, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read epd: %w", err)
	}
	return cases, nil
}

func parseLine(line string) (Case, error) {
	parts := strings.Split(line, ";")
	fen := strings.TrimSpace(parts[0])
	switch len(strings.Fields(fen)) {
	case 4:
		fen += " 0 1"
	case 6:
	default:
		return Case{}, fmt.Errorf("bad fen %q", fen)
	}

	c := Case{FEN: fen}
	for _, p := range parts[1:] {
		fields := strings.Fields(p)
		if len(fields) != 2 || !strings.HasPrefix(fields[0], "D") {
			return Case{}, fmt.Errorf("bad depth field %q", strings.TrimSpace(p))
		}
		depth, err := strconv.Atoi(fields[0][1:])
		if err != nil {
			return Case{}, fmt.Errorf("bad depth %q: %w", fields[0], err)
		}
		if depth != len(c.Nodes)+1 {
			return Case{}, fmt.Errorf("depth %d out of order", depth)
		}
		nodes, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return Case{}, fmt.Errorf("bad count %q: %w", fields[1], err)
		}
		c.Nodes = append(c.Nodes, nodes)
	}
	if len(c.Nodes) == 0 {
		return Case{}, fmt.Errorf("no depth counts for %q", fen)
	}
	return c, nil
}

// Counter counts the leaves below fen at depth.
type Counter func(fen string, depth int) (uint64, error)

type Mismatch struct {
	Case  string
	FEN   string
	Depth int
	Want  uint64
	Got   uint64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s depth %d: got %d want %d (%s)", m.Case, m.Depth, m.Got, m.Want, m.FEN)
}

// Check runs every case from depth 1 up to min(maxDepth, case depth) and
// returns the counts that disagree with the reference. An error from count
// stops the run.
func Check(cases []Case, maxDepth int, count Counter) ([]Mismatch, error) {
	var out []Mismatch
	for _, c := range cases {
		for depth := 1; depth <= min(maxDepth, c.MaxDepth()); depth++ {
			want, _ := c.Expected(depth)
			got, err := count(c.FEN, depth)
			if err != nil {
				return out, fmt.Errorf("%s depth %d: %w", c.Name, depth, err)
			}
			if got != want {
				out = append(out, Mismatch{Case: c.Name, FEN: c.FEN, Depth: depth, Want: want, Got: got})
			}
		}
	}
	return out, nil
}
