package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestFromFENDefaultPosition(t *testing.T) {
	b, err := FromFEN(startingFEN)
	require.NoError(t, err)

	want := DefaultPosition()
	assert.Equal(t, want.Squares, b.Squares)
	assert.Equal(t, want.ActiveColor, b.ActiveColor)
	assert.Equal(t, want.Hash, b.Hash)
	assert.Equal(t, want.Material, b.Material)
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range []string{
		startingFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4r3/8/8/8/8/8/k7/4K2R w K - 0 1",
	} {
		b, err := FromFEN(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, b.ToFEN(b.ActiveColor), fen)
	}
}

func TestFromFENEnPassantField(t *testing.T) {
	b, err := FromFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)
	require.True(t, b.EnPassant.Present)
	assert.Equal(t, Black, b.EnPassant.VulnerableColor)
	assert.Equal(t, "d6", b.EnPassant.Coord.String())
}

func TestFromFENRejectsMalformed(t *testing.T) {
	_, err := FromFEN("not a fen")
	assert.Error(t, err)

	_, err = FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1")
	assert.Error(t, err)
}
