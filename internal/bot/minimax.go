package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mgrdich/wisdomgo/internal/engine"
	"github.com/mgrdich/wisdomgo/internal/search"
)

// searchEngine implements Medium and Hard bots atop internal/search's
// iterative-deepening alpha-beta negamax search.
type searchEngine struct {
	name       string
	difficulty Difficulty
	maxDepth   int
	timeLimit  time.Duration
	closed     bool

	tt      *search.TranspositionTable
	history *search.History
}

// MinimaxConfig holds runtime-tunable parameters for a searchEngine.
type MinimaxConfig struct {
	SearchDepth *int
	TimeLimit   *time.Duration
}

// Name returns the human-readable name of this engine.
func (e *searchEngine) Name() string {
	return e.name
}

// Close releases resources held by the engine.
func (e *searchEngine) Close() error {
	e.closed = true
	return nil
}

// Configure allows runtime tuning of engine parameters.
func (e *searchEngine) Configure(config MinimaxConfig) error {
	if config.SearchDepth != nil {
		if *config.SearchDepth < 1 || *config.SearchDepth > 20 {
			return fmt.Errorf("search depth must be 1-20, got %d", *config.SearchDepth)
		}
		e.maxDepth = *config.SearchDepth
	}
	if config.TimeLimit != nil {
		if *config.TimeLimit <= 0 {
			return fmt.Errorf("time limit must be positive, got %v", *config.TimeLimit)
		}
		e.timeLimit = *config.TimeLimit
	}
	return nil
}

// Info returns metadata about this engine.
func (e *searchEngine) Info() Info {
	return Info{
		Name:       e.name,
		Author:     "TermChess",
		Version:    "1.0",
		Type:       TypeInternal,
		Difficulty: e.difficulty,
		Features: map[string]bool{
			"alpha_beta":          true,
			"iterative_deepening": true,
			"transposition_table": true,
			"move_ordering":       true,
		},
	}
}

// SelectMove runs iterative deepening up to maxDepth, bounded by timeLimit,
// and returns the best move found. The engine's own transposition table
// persists across calls, so later moves in a game benefit from earlier
// search work on shared subtrees.
func (e *searchEngine) SelectMove(ctx context.Context, board *engine.Board, side engine.Color) (engine.Move, error) {
	if e.closed {
		return engine.NoMove, errors.New("bot: engine is closed")
	}

	moves := engine.GenerateLegalMoves(board, side)
	if moves.IsEmpty() {
		return engine.NoMove, errors.New("bot: no legal moves available")
	}
	if moves.Len() == 1 {
		return moves.At(0), nil
	}

	timer := search.NewMoveTimer(e.timeLimit, func() bool {
		select {
		case <-ctx.Done():
			return true
		default:
			return false
		}
	})

	s := search.NewIterativeSearch(e.tt, e.history, timer)
	result := s.IterativeDeepen(board, side, e.maxDepth)
	if !result.HasMove {
		return moves.At(0), nil
	}
	return result.Move, nil
}
