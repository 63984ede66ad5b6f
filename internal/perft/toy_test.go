package perft_test

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"

	"perft/internal/perft"
)

// toy is a small counting game with plenty of transpositions: a move adds
// to one of two counters and the legal moves depend only on the counters.
type toy struct {
	a, b  int
	limit int
	// raw fingerprints are small integers, which multiply-shift indexing
	// sends to the first slot of any table.
	raw bool
}

type toyMove struct {
	counter byte
	step    int
}

func (m toyMove) String() string {
	return fmt.Sprintf("%c%d", m.counter, m.step)
}

func (p toy) Fingerprint() uint64 {
	if p.raw {
		return uint64(p.a)<<16 | uint64(p.b)
	}
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(p.a))
	binary.LittleEndian.PutUint64(buf[8:], uint64(p.b))
	return xxhash.Sum64(buf[:])
}

func (p toy) LegalMoves() []perft.Move {
	if p.a+p.b >= p.limit {
		return nil
	}
	width := (p.a*3+p.b)%4 + 1
	moves := make([]perft.Move, 0, width)
	for i := 0; i < width; i++ {
		counter := byte('a')
		if i%2 == 1 {
			counter = 'b'
		}
		moves = append(moves, toyMove{counter: counter, step: i/2 + 1})
	}
	return moves
}

func (p toy) Apply(m perft.Move) perft.Position {
	tm := m.(toyMove)
	next := p
	if tm.counter == 'a' {
		next.a += tm.step
	} else {
		next.b += tm.step
	}
	return next
}

// bruteForce is a plain recursive leaf count with no shortcuts.
func bruteForce(p perft.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var total uint64
	for _, m := range p.LegalMoves() {
		total += bruteForce(p.Apply(m), depth-1)
	}
	return total
}
