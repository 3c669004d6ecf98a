package search

import "github.com/mgrdich/wisdomgo/internal/engine"

// History is an append-only mapping from BoardCode to repetition count, per
// spec.md §3. Entries come in two flavors: committed (game moves actually
// played) and tentative (pushed during search, popped on return in LIFO
// order).
type History struct {
	counts map[engine.BoardCode]int

	halfMoveClock uint16

	tentativeDepth int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{counts: make(map[engine.BoardCode]int)}
}

// PushCommitted records a move actually played in the game (not search
// speculation). It is never popped.
func (h *History) PushCommitted(board *engine.Board) {
	h.push(board)
}

func (h *History) push(board *engine.Board) {
	h.counts[board.Hash]++
	h.halfMoveClock = board.HalfMoveClock
}

// popperFunc pops the most recently pushed tentative entry; returned by
// PushTentative so callers can defer it without tracking state themselves.
type popperFunc func()

// PushTentative records a board reached during search and returns a closure
// that undoes exactly that push. Tentative pushes/pops must nest in LIFO
// order, per spec.md §3 — search.go always does `defer history.PushTentative(child)()`-
// style pairing to guarantee this.
func (h *History) PushTentative(board *engine.Board) popperFunc {
	h.counts[board.Hash]++
	prevClock := h.halfMoveClock
	h.halfMoveClock = board.HalfMoveClock

	hash := board.Hash
	h.tentativeDepth++
	return func() {
		h.tentativeDepth--
		h.counts[hash]--
		if h.counts[hash] <= 0 {
			delete(h.counts, hash)
		}
		h.halfMoveClock = prevClock
	}
}

// IsProbablyThirdRepetition reports whether board's position has already
// occurred at least twice before (making this occurrence the third), per
// spec.md §4.6. It is a cheap full-history check of the counts map.
func (h *History) IsProbablyThirdRepetition(board *engine.Board) bool {
	return h.counts[board.Hash] >= 2
}

// HasBeenFiftyMovesWithoutProgress reports whether board's half-move clock
// has reached the fifty-move (100-halfmove) threshold without a pawn move
// or capture, per spec.md §4.6.
func HasBeenFiftyMovesWithoutProgress(board *engine.Board) bool {
	return board.HalfMoveClock >= 100
}

// IsProbablyDrawingMove reports whether board should be treated as a drawn
// terminal node during search, per spec.md §4.6.
func IsProbablyDrawingMove(h *History, board *engine.Board) bool {
	return h.IsProbablyThirdRepetition(board) || HasBeenFiftyMovesWithoutProgress(board)
}

// DrawingScore is a small negative score for the side actually searching
// (draws are boring when you might be ahead) and zero otherwise, per
// spec.md §4.6.
func DrawingScore(searchingColor, side engine.Color) int {
	if searchingColor == side {
		return -drawPenalty
	}
	return 0
}

const drawPenalty = 10
