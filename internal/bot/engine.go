// Package bot provides chess opponents built on internal/engine move
// generation and internal/search's alpha-beta negamax search.
package bot

import (
	"context"

	"github.com/mgrdich/wisdomgo/internal/engine"
)

// Engine represents a chess bot that can select moves.
// This is the minimal interface all engines must implement.
type Engine interface {
	// SelectMove returns the bot's chosen move for the given position, from
	// side's perspective. The context allows cancellation if the bot
	// exceeds time limits.
	SelectMove(ctx context.Context, board *engine.Board, side engine.Color) (engine.Move, error)

	// Name returns a human-readable name for this engine.
	Name() string

	// Close releases any resources held by the engine.
	// Implementations should be idempotent (safe to call multiple times).
	Close() error
}

// Configurable engines can accept configuration before or during use.
// No engine in this package implements it; searchEngine is tuned through
// Configure(MinimaxConfig) instead.
type Configurable interface {
	Engine
	Configure(options map[string]any) error
}

// Info provides metadata about the engine.
type Info struct {
	Name       string          // Human-readable name
	Author     string          // Engine author
	Version    string          // Engine version
	Type       EngineType      // Internal, UCI, or RL
	Difficulty Difficulty      // Easy, Medium, Hard
	Features   map[string]bool // Supported features
}

// Inspectable engines can report metadata.
// Useful for UI display and debugging.
type Inspectable interface {
	Engine
	Info() Info
}

// EngineType categorizes engine implementations.
type EngineType int

const (
	// TypeInternal represents built-in Go implementations.
	TypeInternal EngineType = iota
)

// String returns a string representation of the engine type.
func (t EngineType) String() string {
	switch t {
	case TypeInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Difficulty levels for internal engines.
type Difficulty int

const (
	// Easy difficulty: random move selection with a tactical bias.
	Easy Difficulty = iota
	// Medium difficulty: shallow alpha-beta search.
	Medium
	// Hard difficulty: deeper alpha-beta search with a larger time budget.
	Hard
)

// String returns a string representation of the difficulty level.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return "Unknown"
	}
}
