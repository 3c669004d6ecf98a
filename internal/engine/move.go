package engine

import (
	"fmt"
	"strings"
)

// MoveCategory distinguishes the handful of move shapes that need special
// handling in Board.WithMove, per spec.md §3.
type MoveCategory uint8

const (
	// Default is a non-capturing, non-special move.
	Default MoveCategory = 0
	// NormalCapturing removes the piece sitting on the destination square.
	NormalCapturing MoveCategory = 1
	// EnPassant captures a pawn standing beside (not on) the destination.
	EnPassant MoveCategory = 2
	// Castling moves the king two squares and its rook alongside it.
	Castling MoveCategory = 3
)

// Move is the 32-bit packed move record from spec.md's Design Notes:
//
//	src:6 dst:6 category:2 promotedPiece:5 captureFlag:1 reserved:12
//
// promotedPiece packs a ColoredPiece (3 type bits + 2 color bits),
// PieceAndColorNone when the move isn't a promotion. The capture flag is
// distinct from category: Castling/EnPassant moves are implicitly
// capturing for pseudo-legal purposes without setting NormalCapturing.
type Move uint32

const (
	moveSrcShift   = 0
	moveSrcMask    = 0x3F
	moveDstShift   = 6
	moveDstMask    = 0x3F
	moveCatShift   = 12
	moveCatMask    = 0x3
	movePromShift  = 14
	movePromMask   = 0x1F
	moveCapShift   = 19
	moveCapMask    = 0x1
)

// NoMove is the zero value; src==dst==0 never occurs for a real move because
// a move always changes squares, so it doubles as an "absent move" sentinel.
const NoMove Move = 0

// Make constructs a plain Default move from src to dst.
func Make(src, dst Coord) Move {
	return Move(uint32(src)<<moveSrcShift | uint32(dst)<<moveDstShift)
}

// MakeNormalCapturing constructs a NormalCapturing move.
func MakeNormalCapturing(src, dst Coord) Move {
	return Make(src, dst).withCategory(NormalCapturing).WithCapture()
}

// MakeEnPassant constructs an EnPassant move. EnPassant is implicitly
// capturing.
func MakeEnPassant(src, dst Coord) Move {
	return Make(src, dst).withCategory(EnPassant).WithCapture()
}

// MakeCastling constructs a Castling move. Castling is implicitly capturing
// for pseudo-legal generation purposes (it moves two pieces at once) even
// though no piece is removed from the board.
func MakeCastling(src, dst Coord) Move {
	return Make(src, dst).withCategory(Castling).WithCapture()
}

func (m Move) withCategory(cat MoveCategory) Move {
	return Move(uint32(m)&^(uint32(moveCatMask)<<moveCatShift) | uint32(cat)<<moveCatShift)
}

// WithPromotion returns a copy of m promoting to the given colored piece
// (one of Queen/Rook/Bishop/Knight of the moving side).
func (m Move) WithPromotion(promoted ColoredPiece) Move {
	return Move(uint32(m)&^(uint32(movePromMask)<<movePromShift) | uint32(promoted)<<movePromShift)
}

// WithCapture sets the capture flag without changing category.
func (m Move) WithCapture() Move {
	return Move(uint32(m) | uint32(moveCapMask)<<moveCapShift)
}

// Src returns the move's source square.
func (m Move) Src() Coord {
	return Coord((uint32(m) >> moveSrcShift) & moveSrcMask)
}

// Dst returns the move's destination square.
func (m Move) Dst() Coord {
	return Coord((uint32(m) >> moveDstShift) & moveDstMask)
}

// Category returns the move's category.
func (m Move) Category() MoveCategory {
	return MoveCategory((uint32(m) >> moveCatShift) & moveCatMask)
}

// PromotedPiece returns the piece a pawn promotes into, or
// PieceAndColorNone for a non-promoting move.
func (m Move) PromotedPiece() ColoredPiece {
	return ColoredPiece((uint32(m) >> movePromShift) & movePromMask)
}

// IsPromoting reports whether this move promotes a pawn.
func (m Move) IsPromoting() bool {
	return m.PromotedPiece() != PieceAndColorNone
}

// IsCapturing reports whether this move removes an opposing piece from the
// board (directly, or via en passant).
func (m Move) IsCapturing() bool {
	return (uint32(m)>>moveCapShift)&moveCapMask != 0
}

// IsCastling reports whether this move is a castling move.
func (m Move) IsCastling() bool {
	return m.Category() == Castling
}

// IsCastlingOnKingside reports whether a castling move castles kingside
// (king moves toward column 7).
func (m Move) IsCastlingOnKingside() bool {
	return m.IsCastling() && m.Dst().Column() == 6
}

// IsEnPassant reports whether this move is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Category() == EnPassant
}

// String renders the canonical printer form from spec.md §6:
// "<src><space|x><dst>" plus " ep" for en passant or "(<P>)" for promotion;
// "O-O"/"O-O-O" for castling.
func (m Move) String() string {
	if m.IsCastling() {
		if m.IsCastlingOnKingside() {
			return "O-O"
		}
		return "O-O-O"
	}

	sep := " "
	if m.IsCapturing() {
		sep = "x"
	}
	s := m.Src().String() + sep + m.Dst().String()

	switch {
	case m.IsEnPassant():
		s += " ep"
	case m.IsPromoting():
		s += "(" + promotionLetter(m.PromotedPiece().Type()) + ")"
	}
	return s
}

func promotionLetter(t PieceType) string {
	switch t {
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	default:
		return "?"
	}
}

// ParseMoveString parses the move notations accepted per spec.md §6:
// "e2e4", "e2 e4", "e2xe5", "e7e8(Q)", "e2xd3 (Q)", "e5d6 ep", "o-o"/"O-O",
// "o-o-o"/"O-O-O". who is the side to move, needed to pick the castling
// rook/king squares and the promotion piece's color.
func ParseMoveString(s string, who Color) (Move, error) {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)

	switch lower {
	case "o-o":
		return castlingMove(who, true), nil
	case "o-o-o":
		return castlingMove(who, false), nil
	}

	rest := strings.ReplaceAll(trimmed, " ", "")
	isEnPassant := false
	if strings.HasSuffix(strings.ToLower(rest), "ep") {
		isEnPassant = true
		rest = rest[:len(rest)-2]
	}

	var promotion PieceType
	if idx := strings.IndexByte(rest, '('); idx >= 0 {
		end := strings.IndexByte(rest, ')')
		if end < 0 || end < idx {
			return NoMove, fmt.Errorf("engine: malformed promotion in move %q", s)
		}
		letter := strings.ToUpper(rest[idx+1 : end])
		switch letter {
		case "Q":
			promotion = Queen
		case "R":
			promotion = Rook
		case "B":
			promotion = Bishop
		case "N":
			promotion = Knight
		default:
			return NoMove, fmt.Errorf("engine: invalid promotion piece %q", letter)
		}
		rest = rest[:idx]
	}

	isCapture := false
	var srcStr, dstStr string
	if idx := strings.IndexByte(strings.ToLower(rest), 'x'); idx >= 0 {
		isCapture = true
		srcStr, dstStr = rest[:idx], rest[idx+1:]
	} else if len(rest) == 4 {
		srcStr, dstStr = rest[:2], rest[2:]
	} else {
		return NoMove, fmt.Errorf("engine: malformed move %q", s)
	}

	src, err := ParseCoord(srcStr)
	if err != nil {
		return NoMove, fmt.Errorf("engine: malformed move %q: %w", s, err)
	}
	dst, err := ParseCoord(dstStr)
	if err != nil {
		return NoMove, fmt.Errorf("engine: malformed move %q: %w", s, err)
	}

	var mv Move
	switch {
	case isEnPassant:
		mv = MakeEnPassant(src, dst)
	case isCapture:
		mv = MakeNormalCapturing(src, dst)
	default:
		mv = Make(src, dst)
	}

	if promotion != NoPieceType {
		mv = mv.WithPromotion(NewColoredPiece(who, promotion))
	}

	return mv, nil
}

func castlingMove(who Color, kingside bool) Move {
	row := 7
	if who == Black {
		row = 0
	}
	srcCol := 4
	dstCol := 6
	if !kingside {
		dstCol = 2
	}
	return MakeCastling(MakeCoord(row, srcCol), MakeCoord(row, dstCol))
}

// maxMovesPerPosition bounds MoveList's inline arena. 218 is the largest
// known pseudo-legal move count for a reachable chess position; spec.md's
// Design Notes round this up to "≤ ~220 in practice".
const maxMovesPerPosition = 220

// MoveList is a fixed-capacity, allocation-free move container, per
// spec.md's Design Notes ("fixed-capacity inline vector ... to avoid heap
// traffic without global state").
type MoveList struct {
	moves [maxMovesPerPosition]Move
	count int
}

// Append adds a move to the list. Panics if the list is full — pseudo-legal
// generation never produces more than maxMovesPerPosition moves in a legal
// chess position, so overflow indicates a bug, not user input.
func (l *MoveList) Append(m Move) {
	if l.count >= len(l.moves) {
		panic("engine: MoveList overflow")
	}
	l.moves[l.count] = m
	l.count++
}

// Len returns the number of moves currently held.
func (l *MoveList) Len() int {
	return l.count
}

// At returns the i'th move.
func (l *MoveList) At(i int) Move {
	return l.moves[i]
}

// Slice returns a view of the held moves. The returned slice aliases the
// list's backing array and is only valid until the next Append.
func (l *MoveList) Slice() []Move {
	return l.moves[:l.count]
}

// IsEmpty reports whether the list holds no moves.
func (l *MoveList) IsEmpty() bool {
	return l.count == 0
}

func (l MoveList) String() string {
	var b strings.Builder
	b.WriteString("{ ")
	for i := 0; i < l.count; i++ {
		b.WriteString("[")
		b.WriteString(l.moves[i].String())
		b.WriteString("] ")
	}
	b.WriteString("}")
	return b.String()
}
