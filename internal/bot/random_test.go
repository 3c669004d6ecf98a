package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrdich/wisdomgo/internal/engine"
)

func TestRandomEngineClosedRejectsSelectMove(t *testing.T) {
	eng, err := NewRandomEngine()
	require.NoError(t, err)
	require.NoError(t, eng.Close())

	_, err = eng.SelectMove(context.Background(), engine.DefaultPosition(), engine.White)
	assert.Error(t, err)
}

func TestFilterCapturesOnlyReturnsCapturingMoves(t *testing.T) {
	board, err := engine.FromFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	moves := engine.GenerateLegalMoves(board, engine.White).Slice()
	captures := filterCaptures(board, moves)
	require.Len(t, captures, 1)
	assert.True(t, captures[0].IsCapturing())
}

func TestFilterChecksReturnsCheckingMoves(t *testing.T) {
	board, err := engine.FromFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	moves := engine.GenerateLegalMoves(board, engine.White).Slice()
	checks := filterChecks(board, engine.White, moves)
	assert.NotEmpty(t, checks)
}
