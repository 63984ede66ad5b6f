package chessboard

import (
	"github.com/notnil/chess"
	"lukechampine.com/frand"
)

const bignum = 1<<63 - 2

// zobrist keys, indexed by chess.Piece (row 0 is NoPiece and stays unused).
var keys struct {
	pieces      [13][64]uint64
	castle      [4]uint64
	enPassant   [8]uint64
	blackToMove uint64
}

func init() {
	for p := chess.WhiteKing; p <= chess.BlackPawn; p++ {
		for sq := 0; sq < 64; sq++ {
			keys.pieces[p][sq] = frand.Uint64n(bignum) + 1
		}
	}
	for i := range keys.castle {
		keys.castle[i] = frand.Uint64n(bignum) + 1
	}
	for i := range keys.enPassant {
		keys.enPassant[i] = frand.Uint64n(bignum) + 1
	}
	keys.blackToMove = frand.Uint64n(bignum) + 1
}

// fingerprint hashes piece placement, side to move, castling rights and the
// en passant file. Move clocks are left out: they never change a subtree.
func fingerprint(pos *chess.Position) uint64 {
	var key uint64
	b := pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if p := b.Piece(sq); p != chess.NoPiece {
			key ^= keys.pieces[p][sq]
		}
	}

	cr := pos.CastleRights()
	if cr.CanCastle(chess.White, chess.KingSide) {
		key ^= keys.castle[0]
	}
	if cr.CanCastle(chess.White, chess.QueenSide) {
		key ^= keys.castle[1]
	}
	if cr.CanCastle(chess.Black, chess.KingSide) {
		key ^= keys.castle[2]
	}
	if cr.CanCastle(chess.Black, chess.QueenSide) {
		key ^= keys.castle[3]
	}

	if ep := pos.EnPassantSquare(); ep != chess.NoSquare {
		key ^= keys.enPassant[ep.File()]
	}
	if pos.Turn() == chess.Black {
		key ^= keys.blackToMove
	}
	return key
}
