package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithMoveFlipsActiveColorAndAdvancesClocks(t *testing.T) {
	b := DefaultPosition()
	next := b.WithMove(White, Make(MakeCoord(6, 4), MakeCoord(4, 4))) // e2e4

	assert.Equal(t, Black, next.ActiveColor)
	assert.Equal(t, uint16(1), next.FullMoveClock)
	assert.Equal(t, uint16(0), next.HalfMoveClock)

	after := next.WithMove(Black, Make(MakeCoord(1, 3), MakeCoord(2, 3))) // d7d6
	assert.Equal(t, uint16(2), after.FullMoveClock)
}

func TestWithMoveHashMatchesRecompute(t *testing.T) {
	b := DefaultPosition()
	next := b.WithMove(White, Make(MakeCoord(6, 4), MakeCoord(4, 4)))
	assert.Equal(t, next.recomputeHash(), next.Hash)

	next = next.WithMove(Black, Make(MakeCoord(1, 4), MakeCoord(3, 4)))
	assert.Equal(t, next.recomputeHash(), next.Hash)
}

func TestWithMoveMaterialMatchesRecompute(t *testing.T) {
	b := DefaultPosition()
	next := b.WithMove(White, Make(MakeCoord(6, 4), MakeCoord(4, 4)))
	next = next.WithMove(Black, Make(MakeCoord(1, 4), MakeCoord(3, 4)))
	next = next.WithMove(White, MakeNormalCapturing(MakeCoord(6, 3), MakeCoord(3, 4)))
	assert.Equal(t, next.recomputeMaterial(), next.Material)
}

func TestWithMoveCastlingMovesRookToo(t *testing.T) {
	b := NewBoardBuilder().
		WithPiece(MakeCoord(7, 4), NewColoredPiece(White, King)).
		WithPiece(MakeCoord(7, 7), NewColoredPiece(White, Rook)).
		WithPiece(MakeCoord(0, 4), NewColoredPiece(Black, King)).
		Build()

	next := b.WithMove(White, MakeCastling(MakeCoord(7, 4), MakeCoord(7, 6)))
	assert.Equal(t, NewColoredPiece(White, King), next.PieceAt(MakeCoord(7, 6)))
	assert.Equal(t, NewColoredPiece(White, Rook), next.PieceAt(MakeCoord(7, 5)))
	assert.True(t, next.PieceAt(MakeCoord(7, 4)).IsEmpty())
	assert.True(t, next.PieceAt(MakeCoord(7, 7)).IsEmpty())
	assert.Equal(t, MakeCoord(7, 6), next.KingPosition(White))
	assert.False(t, next.AbleToCastle(White, EitherSideEligible))
}

func TestWithMoveKingMoveLosesBothCastlingRights(t *testing.T) {
	b := DefaultPosition()
	next := b.WithMove(White, Make(MakeCoord(6, 4), MakeCoord(4, 4)))
	next = next.WithMove(Black, Make(MakeCoord(1, 4), MakeCoord(3, 4)))
	next = next.WithMove(White, Make(MakeCoord(7, 4), MakeCoord(6, 4)))
	assert.False(t, next.AbleToCastle(White, EitherSideEligible))
}

func TestWithMoveDoubleAdvanceCreatesEnPassantTarget(t *testing.T) {
	b := DefaultPosition()
	next := b.WithMove(White, Make(MakeCoord(6, 4), MakeCoord(4, 4))) // e2e4
	require.True(t, next.EnPassant.Present)
	assert.Equal(t, White, next.EnPassant.VulnerableColor)
	assert.Equal(t, MakeCoord(5, 4), next.EnPassant.Coord) // e3
}

// TestEnPassantSequenceScenario reproduces spec.md §8 scenario 5: after
// e2e4, d7d5, e4e5, f7f5, Black's en passant target is f6 with
// vulnerable_color=Black, and White has a pseudo-legal "e5 f6 ep" move.
func TestEnPassantSequenceScenario(t *testing.T) {
	b := DefaultPosition()
	b = b.WithMove(White, Make(MakeCoord(6, 4), MakeCoord(4, 4))) // e2e4
	b = b.WithMove(Black, Make(MakeCoord(1, 3), MakeCoord(3, 3))) // d7d5
	b = b.WithMove(White, Make(MakeCoord(4, 4), MakeCoord(3, 4))) // e4e5
	b = b.WithMove(Black, Make(MakeCoord(1, 5), MakeCoord(3, 5))) // f7f5

	require.True(t, b.EnPassant.Present)
	assert.Equal(t, Black, b.EnPassant.VulnerableColor)
	assert.Equal(t, MakeCoord(2, 5), b.EnPassant.Coord) // f6

	moves := GenerateAllPotentialMoves(b, White)
	found := false
	expected := MakeEnPassant(MakeCoord(3, 4), MakeCoord(2, 5)) // e5 f6 ep
	for i := 0; i < moves.Len(); i++ {
		if moves.At(i) == expected {
			found = true
		}
	}
	assert.True(t, found, "expected e5xf6 ep in %s", moves.String())
}
