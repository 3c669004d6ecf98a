package search

import "github.com/mgrdich/wisdomgo/internal/engine"

// Infinity bounds the root alpha-beta window. It sits comfortably above
// checkmateBaseScore plus any plausible moves_away offset, so mate scores
// never wrap around it.
const Infinity = 1 << 30

// SearchResult is the outcome of one completed (or interrupted) iterative
// deepening pass, per spec.md §4.6.
type SearchResult struct {
	Move     engine.Move
	HasMove  bool
	Score    int
	Depth    int
	TimedOut bool
}

// IsCheckmatingOpponentScore reports whether score represents a forced mate
// for the side the score is relative to, per spec.md §4.6's early-exit
// condition in iteratively_deepen.
func IsCheckmatingOpponentScore(score int) bool {
	return score > engine.Max_Non_Checkmate_Score
}

// IterativeSearch holds the mutable search state — transposition table,
// history, and timer — shared across one iterative deepening call and all
// of its recursive search nodes, grounded on the teacher's minimaxEngine
// shape (internal/bot/minimax.go) but extended with a real TT and history
// per spec.md §4.6.
type IterativeSearch struct {
	TT      *TranspositionTable
	History *History
	Timer   *MoveTimer

	searchingColor engine.Color
	searchDepth    int
	timedOut       bool
}

// NewIterativeSearch wires a search instance around a transposition table,
// history, and timer supplied by the caller (so they can be shared or reset
// across moves of a single game).
func NewIterativeSearch(tt *TranspositionTable, history *History, timer *MoveTimer) *IterativeSearch {
	return &IterativeSearch{TT: tt, History: history, Timer: timer}
}

// IterativeDeepen runs depth 1, then every odd depth up to maxDepth,
// returning the best result found before the timer fired or a forced mate
// was found, per spec.md §4.6's iteratively_deepen.
func (s *IterativeSearch) IterativeDeepen(board *engine.Board, side engine.Color, maxDepth int) SearchResult {
	s.searchingColor = side

	var best SearchResult
	for depth := 1; depth <= maxDepth; depth = nextSearchDepth(depth) {
		s.timedOut = false
		s.searchDepth = depth

		score, move := s.search(board, side, depth, -Infinity, Infinity, 0)
		if s.timedOut {
			best.TimedOut = true
			return best
		}

		if move != engine.NoMove {
			best = SearchResult{Move: move, HasMove: true, Score: score, Depth: depth}
			if IsCheckmatingOpponentScore(score) {
				return best
			}
		}
	}
	return best
}

func nextSearchDepth(depth int) int {
	if depth == 1 {
		return 3
	}
	return depth + 2
}

// search implements the negamax alpha-beta recursion of spec.md §4.6,
// returning the score from side's perspective together with the move that
// achieved it (NoMove for non-root callers that only need the score, and
// for terminal nodes).
func (s *IterativeSearch) search(board *engine.Board, side engine.Color, depth, alpha, beta, ply int) (int, engine.Move) {
	if IsProbablyDrawingMove(s.History, board) {
		return DrawingScore(s.searchingColor, side), engine.NoMove
	}
	if depth < 0 {
		return engine.Evaluate(board, side, s.searchDepth-depth), engine.NoMove
	}

	originalAlpha := alpha
	hash := board.Hash

	if ply > 0 {
		if ttScore, ok := s.TT.Probe(hash, depth, alpha, beta, ply); ok {
			return ttScore, s.TT.GetBestMove(hash)
		}
	}

	ttMove := s.TT.GetBestMove(hash)
	moves := orderedMoves(board, side, ttMove)

	bestMove := engine.NoMove
	best := -Infinity

	for _, move := range moves {
		if s.Timer.Triggered() {
			s.timedOut = true
			return -Infinity, engine.NoMove
		}

		child := board.WithMove(side, move)
		if !engine.IsLegalPositionAfterMove(child, side, move) {
			continue
		}

		pop := s.History.PushTentative(child)
		childScore, _ := s.search(child, side.Opposite(), depth-1, -beta, -alpha, ply+1)
		score := -childScore
		pop()

		if s.timedOut {
			return -Infinity, engine.NoMove
		}

		if score > best {
			best = score
			bestMove = move
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}

	if bestMove == engine.NoMove {
		best = engine.EvaluateWithoutLegalMoves(board, side, s.searchDepth-depth)
	}

	if !s.timedOut {
		var bound Bound
		switch {
		case best <= originalAlpha:
			bound = UpperBound
		case best >= beta:
			bound = LowerBound
		default:
			bound = Exact
		}
		s.TT.Store(hash, best, depth, bound, bestMove, ply)
	}

	return best, bestMove
}

// orderedMoves places ttMove first (if it's still pseudo-legal here), then
// the generator's own capture/MVV-LVA/promotion ordering, per spec.md
// §4.6's "Move ordering places the TT move first ... then the generator's
// ordering."
func orderedMoves(board *engine.Board, side engine.Color, ttMove engine.Move) []engine.Move {
	potential := engine.GenerateAllPotentialMoves(board, side)
	slice := potential.Slice()

	if ttMove == engine.NoMove {
		return slice
	}

	ordered := make([]engine.Move, 0, len(slice))
	found := false
	for _, m := range slice {
		if m == ttMove {
			found = true
			continue
		}
		ordered = append(ordered, m)
	}
	if !found {
		return slice
	}
	return append([]engine.Move{ttMove}, ordered...)
}
