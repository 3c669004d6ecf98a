// Package game coordinates one chess game: the current board, its
// repetition/progress history, and each side's player kind (human or
// computer), delegating move legality to internal/engine and computer move
// selection to internal/search.
package game

import (
	"context"
	"errors"
	"time"

	"github.com/mgrdich/wisdomgo/internal/engine"
	"github.com/mgrdich/wisdomgo/internal/search"
)

// PlayerKind distinguishes a human player, who supplies moves externally,
// from a computer player, whose moves come from ComputerMove.
type PlayerKind int

const (
	// Human indicates moves for this side arrive from outside the game
	// (console input, UI interaction).
	Human PlayerKind = iota
	// Computer indicates moves for this side are chosen by ComputerMove.
	Computer
)

// Outcome classifies how a finished game ended.
type Outcome int

const (
	// Ongoing means the game has not yet concluded.
	Ongoing Outcome = iota
	// WhiteWins means White delivered checkmate.
	WhiteWins
	// BlackWins means Black delivered checkmate.
	BlackWins
	// Draw covers stalemate, threefold repetition, and the fifty-move rule.
	Draw
)

// EndReason records why a game with a non-Ongoing Outcome ended.
type EndReason int

const (
	// NotOver is the zero value for a game still in progress.
	NotOver EndReason = iota
	// Checkmate means the side to move has no legal moves and is in check.
	Checkmate
	// Stalemate means the side to move has no legal moves and is not in check.
	Stalemate
	// ThreefoldRepetition means the current position has occurred three times.
	ThreefoldRepetition
	// FiftyMoveRule means a hundred half-moves have passed without a capture
	// or pawn move.
	FiftyMoveRule
)

// Status reports whether a game is over, and if so, how.
type Status struct {
	Outcome Outcome
	Reason  EndReason
}

// SearchConfig bounds a computer player's move search.
type SearchConfig struct {
	MaxDepth    int
	MoveTimeout time.Duration
}

// DefaultSearchConfig mirrors the teacher's Medium-bot defaults.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{MaxDepth: 7, MoveTimeout: 5 * time.Second}
}

// Game owns one game's board, move/repetition history, and each side's
// player kind, generalized from the teacher's bvb.GameSession (which always
// paired two computer players) to spec.md's any-side-may-be-human model.
type Game struct {
	Board   *engine.Board
	History *search.History
	TT      *search.TranspositionTable
	Search  SearchConfig

	players [3]PlayerKind // indexed by engine.Color (slot 0, no color, is unused)
	moves   []engine.Move
}

// New starts a fresh game from the standard starting position.
func New(white, black PlayerKind, cfg SearchConfig) *Game {
	board := engine.DefaultPosition()
	g := &Game{
		Board:   board,
		History: search.NewHistory(),
		TT:      search.NewTranspositionTable(1 << 18),
		Search:  cfg,
	}
	g.players[engine.White] = white
	g.players[engine.Black] = black
	g.History.PushCommitted(board)
	return g
}

// FromBoard resumes a game from an already-reached position (e.g. loaded
// from a save file), with an empty repetition history — the caller is
// responsible for replaying prior moves via MakeMove if repetition
// detection across the resumed game matters.
func FromBoard(board *engine.Board, white, black PlayerKind, cfg SearchConfig) *Game {
	g := &Game{
		Board:   board,
		History: search.NewHistory(),
		TT:      search.NewTranspositionTable(1 << 18),
		Search:  cfg,
	}
	g.players[engine.White] = white
	g.players[engine.Black] = black
	g.History.PushCommitted(board)
	return g
}

// PlayerToMove returns whether the side whose turn it is is human or
// computer-controlled.
func (g *Game) PlayerToMove() PlayerKind {
	return g.players[g.Board.ActiveColor]
}

// PlayerFor returns the configured player kind for the given color.
func (g *Game) PlayerFor(c engine.Color) PlayerKind {
	return g.players[c]
}

// SetPlayer changes which kind of player controls color c, e.g. in response
// to the console host's computer_{white,black}/human_{white,black} commands.
func (g *Game) SetPlayer(c engine.Color, kind PlayerKind) {
	g.players[c] = kind
}

// ReplaceBoard discards the current position and move history in favor of
// board, as when the console host's load/fen commands bring in a position
// from outside the game. Repetition history restarts from board alone,
// since moves prior to it were not observed by this Game.
func (g *Game) ReplaceBoard(board *engine.Board) {
	g.Board = board
	g.moves = nil
	g.History = search.NewHistory()
	g.History.PushCommitted(board)
}

// LegalMoves returns the legal moves available to the side to move.
func (g *Game) LegalMoves() engine.MoveList {
	return engine.GenerateLegalMoves(g.Board, g.Board.ActiveColor)
}

// ErrIllegalMove is returned by MakeMove when the supplied move is not
// among the side to move's legal moves.
var ErrIllegalMove = errors.New("game: illegal move")

// ErrGameOver is returned by MakeMove and ComputerMove once Status reports a
// concluded game.
var ErrGameOver = errors.New("game: game is already over")

// MakeMove applies move for the side to move, after confirming it is
// legal. The new position is pushed onto History as committed (not
// tentative), matching how a real game's move list only ever grows.
func (g *Game) MakeMove(move engine.Move) error {
	if g.Status().Outcome != Ongoing {
		return ErrGameOver
	}
	side := g.Board.ActiveColor
	legal := engine.GenerateLegalMoves(g.Board, side)
	found := false
	for i := 0; i < legal.Len(); i++ {
		if legal.At(i) == move {
			found = true
			break
		}
	}
	if !found {
		return ErrIllegalMove
	}

	g.Board = g.Board.WithMove(side, move)
	g.moves = append(g.moves, move)
	g.History.PushCommitted(g.Board)
	return nil
}

// ComputerMove selects and applies a move for the side to move using
// iterative-deepening search bounded by Search.MaxDepth and
// Search.MoveTimeout. It returns the move chosen.
func (g *Game) ComputerMove(ctx context.Context) (engine.Move, error) {
	if g.Status().Outcome != Ongoing {
		return engine.NoMove, ErrGameOver
	}
	side := g.Board.ActiveColor

	cancelled := false
	timer := search.NewMoveTimer(g.Search.MoveTimeout, func() bool {
		select {
		case <-ctx.Done():
			cancelled = true
			return true
		default:
			return false
		}
	})

	s := search.NewIterativeSearch(g.TT, g.History, timer)
	result := s.IterativeDeepen(g.Board, side, g.Search.MaxDepth)
	if !result.HasMove {
		if cancelled {
			return engine.NoMove, ctx.Err()
		}
		return engine.NoMove, errors.New("game: search found no move")
	}

	if err := g.MakeMove(result.Move); err != nil {
		return engine.NoMove, err
	}
	return result.Move, nil
}

// MoveHistory returns a copy of every move played so far, in order.
func (g *Game) MoveHistory() []engine.Move {
	moves := make([]engine.Move, len(g.moves))
	copy(moves, g.moves)
	return moves
}

// Status reports whether the game is over, and why.
func (g *Game) Status() Status {
	side := g.Board.ActiveColor

	if g.History.IsProbablyThirdRepetition(g.Board) {
		return Status{Outcome: Draw, Reason: ThreefoldRepetition}
	}
	if search.HasBeenFiftyMovesWithoutProgress(g.Board) {
		return Status{Outcome: Draw, Reason: FiftyMoveRule}
	}
	if engine.IsCheckmated(g.Board, side) {
		if side == engine.White {
			return Status{Outcome: BlackWins, Reason: Checkmate}
		}
		return Status{Outcome: WhiteWins, Reason: Checkmate}
	}
	if engine.IsStalemated(g.Board, side) {
		return Status{Outcome: Draw, Reason: Stalemate}
	}
	return Status{Outcome: Ongoing, Reason: NotOver}
}
