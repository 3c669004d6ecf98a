package engine

import "math/rand"

// Zobrist key tables, initialized once at package init time with a fixed
// seed so that hashes are reproducible across runs — grounded directly on
// the teacher's engine/zobrist.go, extended with separate castling and
// en-passant tables per spec.md §3 invariant 7 (the hash is the XOR of
// piece-square keys, castling-state keys, en-passant-target keys, and a
// side-to-move key).
var (
	// zobristPieceKeys[colorIndex][pieceType][square]
	zobristPieceKeys [2][7][64]uint64
	zobristSideToMove uint64
	// zobristCastlingKeys is indexed by the packed 4-bit castling state
	// (2 bits per color).
	zobristCastlingKeys [16]uint64
	// zobristEnPassantKeys is indexed by column (0..7); the hash only
	// includes one of these when an en-passant target is present.
	zobristEnPassantKeys [8]uint64
)

func init() {
	rng := rand.New(rand.NewSource(0x5D4E3C2B1A))

	for c := 0; c < 2; c++ {
		for t := Pawn; t <= King; t++ {
			for sq := 0; sq < 64; sq++ {
				zobristPieceKeys[c][t][sq] = rng.Uint64()
			}
		}
	}
	zobristSideToMove = rng.Uint64()
	for i := range zobristCastlingKeys {
		zobristCastlingKeys[i] = rng.Uint64()
	}
	for i := range zobristEnPassantKeys {
		zobristEnPassantKeys[i] = rng.Uint64()
	}
}

func pieceHashKey(p ColoredPiece, sq Coord) uint64 {
	if p.IsEmpty() {
		return 0
	}
	return zobristPieceKeys[colorIndex(p.Color())][p.Type()][sq]
}

// castlingHashIndex packs White's then Black's 2-bit eligibility into one
// 4-bit index for zobristCastlingKeys.
func castlingHashIndex(white, black CastlingEligibility) int {
	return int(white) | int(black)<<2
}

func castlingHashKey(white, black CastlingEligibility) uint64 {
	return zobristCastlingKeys[castlingHashIndex(white, black)]
}

func enPassantHashKey(target EnPassantTarget) uint64 {
	if !target.Present {
		return 0
	}
	return zobristEnPassantKeys[target.Coord.Column()]
}

func sideToMoveHashKey(who Color) uint64 {
	if who == Black {
		return zobristSideToMove
	}
	return 0
}
