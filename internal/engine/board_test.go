package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPositionSetup(t *testing.T) {
	b := DefaultPosition()

	assert.Equal(t, White, b.ActiveColor)
	assert.Equal(t, MakeCoord(7, 4), b.KingPosition(White))
	assert.Equal(t, MakeCoord(0, 4), b.KingPosition(Black))
	assert.Equal(t, 0, b.Material.OverallScore(White))
	assert.Equal(t, 0, b.Position.OverallScore(White))
	assert.True(t, b.AbleToCastle(White, EitherSideEligible))
	assert.True(t, b.AbleToCastle(Black, EitherSideEligible))
}

func TestDefaultPositionHashMatchesRecompute(t *testing.T) {
	b := DefaultPosition()
	assert.Equal(t, b.recomputeHash(), b.Hash)
}

func TestDefaultPositionMaterialMatchesRecompute(t *testing.T) {
	b := DefaultPosition()
	assert.Equal(t, b.recomputeMaterial(), b.Material)
}

func TestDefaultPositionGeneratesTwentyMoves(t *testing.T) {
	b := DefaultPosition()
	moves := GenerateAllPotentialMoves(b, White)
	require.Equal(t, 20, moves.Len())
}

func TestDefaultPositionMoveDumpString(t *testing.T) {
	b := DefaultPosition()
	moves := GenerateAllPotentialMoves(b, White)
	s := moves.String()
	assert.Contains(t, s, "[a2 a4]")
	assert.Contains(t, s, "[a2 a3]")
	assert.Contains(t, s, "[b2 b4]")
	assert.Contains(t, s, "[b2 b3]")
	assert.Contains(t, s, "[g1 f3]")
	assert.Contains(t, s, "[g1 h3]")
}

func TestCheckmateIsPossible(t *testing.T) {
	// Bare kings: no forced mate.
	bare := NewBoardBuilder().
		WithPiece(MakeCoord(0, 4), NewColoredPiece(Black, King)).
		WithPiece(MakeCoord(7, 4), NewColoredPiece(White, King)).
		Build()
	assert.False(t, bare.Material.CheckmateIsPossible())

	// K+B vs K: insufficient material.
	kb := NewBoardBuilder().
		WithPiece(MakeCoord(0, 4), NewColoredPiece(Black, King)).
		WithPiece(MakeCoord(7, 4), NewColoredPiece(White, King)).
		WithPiece(MakeCoord(7, 2), NewColoredPiece(White, Bishop)).
		Build()
	assert.False(t, kb.Material.CheckmateIsPossible())

	// K+N+N vs K: sufficient (per spec.md's stated scenario, though in
	// practice two knights alone cannot force mate against best defense).
	knn := NewBoardBuilder().
		WithPiece(MakeCoord(0, 4), NewColoredPiece(Black, King)).
		WithPiece(MakeCoord(7, 4), NewColoredPiece(White, King)).
		WithPiece(MakeCoord(7, 1), NewColoredPiece(White, Knight)).
		WithPiece(MakeCoord(7, 6), NewColoredPiece(White, Knight)).
		Build()
	assert.True(t, knn.Material.CheckmateIsPossible())
}
