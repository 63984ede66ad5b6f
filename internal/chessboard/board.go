// Package chessboard adapts github.com/notnil/chess positions for perft.
package chessboard

import (
	"fmt"

	"github.com/notnil/chess"

	"perft/internal/perft"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Board is an immutable chess position.
type Board struct {
	pos *chess.Position
}

// Start returns the standard initial position.
func Start() *Board {
	return &Board{pos: chess.StartingPosition()}
}

// FromFEN parses a position from FEN.
func FromFEN(fen string) (*Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	g := chess.NewGame(opt)
	return &Board{pos: g.Position()}, nil
}

func (b *Board) Fingerprint() uint64 {
	return fingerprint(b.pos)
}

func (b *Board) LegalMoves() []perft.Move {
	valid := b.pos.ValidMoves()
	moves := make([]perft.Move, len(valid))
	for i, m := range valid {
		moves[i] = m
	}
	return moves
}

// Apply panics if m did not come from LegalMoves.
func (b *Board) Apply(m perft.Move) perft.Position {
	return &Board{pos: b.pos.Update(m.(*chess.Move))}
}

// Play applies the legal move written in UCI notation, e.g. "e2e4" or "e7e8q".
func (b *Board) Play(uci string) (*Board, error) {
	for _, m := range b.pos.ValidMoves() {
		if m.String() == uci {
			return &Board{pos: b.pos.Update(m)}, nil
		}
	}
	return nil, fmt.Errorf("illegal move %q in %s", uci, b.FEN())
}

func (b *Board) FEN() string {
	return b.pos.String()
}

func (b *Board) String() string {
	return b.FEN()
}
