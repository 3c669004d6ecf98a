package bot

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/mgrdich/wisdomgo/internal/engine"
)

// randomEngine implements the Easy bot using weighted random move selection.
type randomEngine struct {
	name      string
	timeLimit time.Duration
	closed    bool
	rng       *rand.Rand
}

// SelectMove returns a move using weighted selection (70% tactical bias).
func (e *randomEngine) SelectMove(_ context.Context, board *engine.Board, side engine.Color) (engine.Move, error) {
	if e.closed {
		return engine.NoMove, errors.New("bot: engine is closed")
	}

	moveList := engine.GenerateLegalMoves(board, side)
	if moveList.IsEmpty() {
		return engine.NoMove, errors.New("bot: no legal moves available")
	}
	moves := moveList.Slice()
	if len(moves) == 1 {
		return moves[0], nil
	}

	captures := filterCaptures(board, moves)
	checks := filterChecks(board, side, moves)

	if e.rng.Float64() < 0.7 && len(captures) > 0 {
		return captures[e.rng.Intn(len(captures))], nil
	}
	if e.rng.Float64() < 0.5 && len(checks) > 0 {
		return checks[e.rng.Intn(len(checks))], nil
	}
	return moves[e.rng.Intn(len(moves))], nil
}

// filterCaptures returns all moves that capture an opponent's piece.
func filterCaptures(board *engine.Board, moves []engine.Move) []engine.Move {
	var captures []engine.Move
	for _, m := range moves {
		if m.IsCapturing() {
			captures = append(captures, m)
		}
	}
	return captures
}

// filterChecks returns all moves that give check to the opponent's king.
func filterChecks(board *engine.Board, side engine.Color, moves []engine.Move) []engine.Move {
	opponent := side.Opposite()
	var checks []engine.Move
	for _, m := range moves {
		child := board.WithMove(side, m)
		if engine.IsKingThreatened(child, opponent, child.KingPosition(opponent)) {
			checks = append(checks, m)
		}
	}
	return checks
}

// Name returns the human-readable name of this engine.
func (e *randomEngine) Name() string {
	return e.name
}

// Close releases resources held by the engine.
func (e *randomEngine) Close() error {
	e.closed = true
	return nil
}

// Info returns metadata about this engine.
func (e *randomEngine) Info() Info {
	return Info{
		Name:       e.name,
		Author:     "TermChess",
		Version:    "1.0",
		Type:       TypeInternal,
		Difficulty: Easy,
		Features: map[string]bool{
			"random_selection":   true,
			"tactical_awareness": true,
			"weighted_selection": true,
		},
	}
}
