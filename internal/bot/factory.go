package bot

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mgrdich/wisdomgo/internal/search"
)

// EngineOption is a functional option for engine creation.
type EngineOption func(*engineConfig) error

// engineConfig holds configuration options for engine creation.
type engineConfig struct {
	difficulty  Difficulty
	timeLimit   time.Duration
	searchDepth int
}

// WithTimeLimit sets a custom time limit for move selection.
func WithTimeLimit(d time.Duration) EngineOption {
	return func(c *engineConfig) error {
		if d <= 0 {
			return fmt.Errorf("time limit must be positive")
		}
		c.timeLimit = d
		return nil
	}
}

// WithSearchDepth sets a custom maximum search depth.
func WithSearchDepth(depth int) EngineOption {
	return func(c *engineConfig) error {
		if depth < 1 || depth > 20 {
			return fmt.Errorf("search depth must be 1-20")
		}
		c.searchDepth = depth
		return nil
	}
}

// NewRandomEngine creates an Easy bot with weighted random move selection.
func NewRandomEngine(opts ...EngineOption) (Engine, error) {
	cfg := &engineConfig{
		difficulty: Easy,
		timeLimit:  2 * time.Second,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return &randomEngine{
		name:      "Easy Bot",
		timeLimit: cfg.timeLimit,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// NewSearchEngine creates a Medium or Hard bot backed by internal/search's
// iterative-deepening alpha-beta search.
func NewSearchEngine(difficulty Difficulty, opts ...EngineOption) (Engine, error) {
	cfg := &engineConfig{difficulty: difficulty}

	switch difficulty {
	case Medium:
		cfg.timeLimit = 4 * time.Second
		cfg.searchDepth = 5
	case Hard:
		cfg.timeLimit = 8 * time.Second
		cfg.searchDepth = 9
	default:
		return nil, fmt.Errorf("invalid difficulty for search engine: %d (expected Medium or Hard)", difficulty)
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	name := fmt.Sprintf("%s Bot", difficulty.String())
	return &searchEngine{
		name:       name,
		difficulty: cfg.difficulty,
		maxDepth:   cfg.searchDepth,
		timeLimit:  cfg.timeLimit,
		tt:         search.NewTranspositionTable(1 << 16),
		history:    search.NewHistory(),
	}, nil
}
