package engine

// BoardBuilder constructs a Board from either the default starting
// position or a FEN string, per spec.md §3's Lifecycle paragraph: "Boards
// are values ... created from a BoardBuilder ... and thereafter only
// derived via WithMove."
type BoardBuilder struct {
	board Board
}

// NewBoardBuilder starts from an empty board: no pieces, White to move,
// both sides fully eligible to castle, no en passant target.
func NewBoardBuilder() *BoardBuilder {
	return &BoardBuilder{
		board: Board{
			ActiveColor:   White,
			CastlingWhite: EitherSideEligible,
			CastlingBlack: EitherSideEligible,
			FullMoveClock: 1,
		},
	}
}

// WithPiece places a piece on a square.
func (b *BoardBuilder) WithPiece(sq Coord, piece ColoredPiece) *BoardBuilder {
	b.board.Squares[sq] = piece
	return b
}

// WithActiveColor sets the side to move.
func (b *BoardBuilder) WithActiveColor(c Color) *BoardBuilder {
	b.board.ActiveColor = c
	return b
}

// Build finalizes the board: computes king positions, drops castling rights
// whose king or rook is not on its home square, material, position score,
// and Zobrist hash from the placed pieces.
func (b *BoardBuilder) Build() *Board {
	board := b.board
	for sq := Coord(0); sq < 64; sq++ {
		p := board.Squares[sq]
		if p.Type() == King {
			board.kingPos[colorIndex(p.Color())] = sq
		}
	}
	for _, c := range [2]Color{White, Black} {
		rights, row := &board.CastlingWhite, 7
		if c == Black {
			rights, row = &board.CastlingBlack, 0
		}
		if board.Squares[MakeCoord(row, 4)] != NewColoredPiece(c, King) {
			*rights = rights.LoseBoth()
		}
		if board.Squares[MakeCoord(row, 0)] != NewColoredPiece(c, Rook) {
			*rights = rights.LoseQueenside()
		}
		if board.Squares[MakeCoord(row, 7)] != NewColoredPiece(c, Rook) {
			*rights = rights.LoseKingside()
		}
	}
	board.Material = newMaterial(&board)
	board.Position = newPosition(&board)
	board.Hash = board.recomputeHash()
	return &board
}

// DefaultPosition returns the standard chess starting position.
func DefaultPosition() *Board {
	b := NewBoardBuilder()
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, t := range backRank {
		b.WithPiece(MakeCoord(0, col), NewColoredPiece(Black, t))
		b.WithPiece(MakeCoord(7, col), NewColoredPiece(White, t))
	}
	for col := 0; col < 8; col++ {
		b.WithPiece(MakeCoord(1, col), NewColoredPiece(Black, Pawn))
		b.WithPiece(MakeCoord(6, col), NewColoredPiece(White, Pawn))
	}
	return b.Build()
}
