// Package search implements iterative-deepening alpha-beta negamax search
// over the engine package's board representation, backed by a Zobrist-hashed
// transposition table and a repetition/progress history.
package search

import (
	"github.com/mgrdich/wisdomgo/internal/engine"
)

// Bound tells probe() which side of a window a stored score is trustworthy
// on.
type Bound uint8

const (
	// Exact means best was the true minimax value (neither cutoff fired).
	Exact Bound = iota
	// LowerBound means a beta cutoff fired; best is at least the true value.
	LowerBound
	// UpperBound means no move raised alpha; best is at most the true value.
	UpperBound
)

type ttEntry struct {
	occupied  bool
	hash      engine.BoardCode
	depth     int
	score     int
	bound     Bound
	bestMove  engine.Move
	storedPly int
}

// defaultBuckets is the table's bucket count, a power of two so the hash
// can be masked instead of modded.
const defaultBuckets = 1 << 20

// TranspositionTable is a fixed-capacity hash-keyed cache of prior search
// results, replace-by-depth per bucket, per spec.md §4.6.
type TranspositionTable struct {
	buckets []ttEntry
	mask    uint64

	Probes        int
	Hits          int
	StoredEntries int
}

// NewTranspositionTable allocates a table with the given power-of-two bucket
// count. A non-power-of-two size is rounded down to the nearest one.
func NewTranspositionTable(buckets int) *TranspositionTable {
	if buckets <= 0 {
		buckets = defaultBuckets
	}
	size := 1
	for size*2 <= buckets {
		size *= 2
	}
	return &TranspositionTable{
		buckets: make([]ttEntry, size),
		mask:    uint64(size - 1),
	}
}

func (t *TranspositionTable) index(hash engine.BoardCode) uint64 {
	return uint64(hash) & t.mask
}

// mateAdjustForRetrieval re-relativises a stored mate score from storedPly
// to the requesting ply: a mate recorded N plies from its own root needs
// shifting by the difference between where it was stored and where it is
// now being read, so closer-to-root mates still look more attractive than
// farther ones.
func mateAdjustForRetrieval(score, storedPly, ply int) int {
	if score > engine.Max_Non_Checkmate_Score {
		return score - (ply - storedPly)
	}
	if score < -engine.Max_Non_Checkmate_Score {
		return score + (ply - storedPly)
	}
	return score
}

// mateAdjustForStorage is the inverse of mateAdjustForRetrieval, applied
// before an entry is written.
func mateAdjustForStorage(score, ply int) int {
	if score > engine.Max_Non_Checkmate_Score {
		return score + ply
	}
	if score < -engine.Max_Non_Checkmate_Score {
		return score - ply
	}
	return score
}

// Probe returns the stored score for hash iff it was stored at depth ≥
// requested depth, and its bound type certifies it's usable against the
// requested [alpha, beta) window, per spec.md §4.6.
func (t *TranspositionTable) Probe(hash engine.BoardCode, depth int, alpha, beta, ply int) (int, bool) {
	t.Probes++
	e := &t.buckets[t.index(hash)]
	if !e.occupied || e.hash != hash || e.depth < depth {
		return 0, false
	}

	score := mateAdjustForRetrieval(e.score, e.storedPly, ply)
	switch e.bound {
	case Exact:
		t.Hits++
		return score, true
	case LowerBound:
		if score >= beta {
			t.Hits++
			return score, true
		}
	case UpperBound:
		if score <= alpha {
			t.Hits++
			return score, true
		}
	}
	return 0, false
}

// GetBestMove returns the move stored for hash regardless of bound or
// depth, used to seed move ordering; the zero Move means nothing is stored.
func (t *TranspositionTable) GetBestMove(hash engine.BoardCode) engine.Move {
	e := &t.buckets[t.index(hash)]
	if !e.occupied || e.hash != hash {
		return engine.NoMove
	}
	return e.bestMove
}

// Store writes an entry, replacing the bucket's current occupant only if
// the new depth is at least as deep, per spec.md §4.6.
func (t *TranspositionTable) Store(hash engine.BoardCode, score, depth int, bound Bound, bestMove engine.Move, ply int) {
	idx := t.index(hash)
	e := &t.buckets[idx]
	if e.occupied && e.depth > depth {
		return
	}
	if !e.occupied {
		t.StoredEntries++
	}
	e.occupied = true
	e.hash = hash
	e.depth = depth
	e.score = mateAdjustForStorage(score, ply)
	e.bound = bound
	e.bestMove = bestMove
	e.storedPly = ply
}

// Clear resets every bucket and stat counter.
func (t *TranspositionTable) Clear() {
	for i := range t.buckets {
		t.buckets[i] = ttEntry{}
	}
	t.Probes = 0
	t.Hits = 0
	t.StoredEntries = 0
}
