package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// FromFEN parses Forsyth-Edwards Notation into a Board, per spec.md §6's
// six-field grammar: piece placement, active color, castling availability,
// en passant target, halfmove clock, fullmove number.
func FromFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("engine: invalid FEN %q: expected 6 fields, got %d", fen, len(fields))
	}

	builder := NewBoardBuilder()
	if err := parseFENPlacement(builder, fields[0]); err != nil {
		return nil, err
	}

	active, err := parseFENColor(fields[1])
	if err != nil {
		return nil, err
	}
	builder.WithActiveColor(active)

	white, black, err := parseFENCastling(fields[2])
	if err != nil {
		return nil, err
	}

	ep, err := parseFENEnPassant(fields[3])
	if err != nil {
		return nil, err
	}

	halfMove, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("engine: invalid FEN %q: bad halfmove clock: %w", fen, err)
	}
	fullMove, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, fmt.Errorf("engine: invalid FEN %q: bad fullmove number: %w", fen, err)
	}

	board := builder.Build()
	board.CastlingWhite = white
	board.CastlingBlack = black
	board.EnPassant = ep
	board.HalfMoveClock = uint16(halfMove)
	board.FullMoveClock = uint16(fullMove)
	board.Hash = board.recomputeHash()
	return board, nil
}

func parseFENPlacement(b *BoardBuilder, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return fmt.Errorf("engine: invalid FEN placement %q: expected 8 ranks, got %d", placement, len(rows))
	}
	for i, rowStr := range rows {
		row := i // FEN lists rank 8 first; row 0 is Black's back rank (rank 8).
		col := 0
		for _, ch := range rowStr {
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			piece, err := fenCharToPiece(ch)
			if err != nil {
				return err
			}
			if col > 7 {
				return fmt.Errorf("engine: invalid FEN placement %q: rank overflow", placement)
			}
			b.WithPiece(MakeCoord(row, col), piece)
			col++
		}
		if col != 8 {
			return fmt.Errorf("engine: invalid FEN placement %q: rank %d has %d squares, want 8", placement, i, col)
		}
	}
	return nil
}

func fenCharToPiece(ch rune) (ColoredPiece, error) {
	color := White
	lower := ch
	if ch >= 'a' && ch <= 'z' {
		color = Black
	} else {
		lower = ch + ('a' - 'A')
	}
	var t PieceType
	switch lower {
	case 'p':
		t = Pawn
	case 'n':
		t = Knight
	case 'b':
		t = Bishop
	case 'r':
		t = Rook
	case 'q':
		t = Queen
	case 'k':
		t = King
	default:
		return PieceAndColorNone, fmt.Errorf("engine: invalid FEN piece letter %q", string(ch))
	}
	return NewColoredPiece(color, t), nil
}

func parseFENColor(s string) (Color, error) {
	switch s {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	default:
		return ColorNone, fmt.Errorf("engine: invalid FEN active color %q", s)
	}
}

func parseFENCastling(s string) (white, black CastlingEligibility, err error) {
	white = NeitherSideEligible
	black = NeitherSideEligible
	if s == "-" {
		return white, black, nil
	}
	for _, ch := range s {
		switch ch {
		case 'K':
			white &^= kingsideIneligibleBit
		case 'Q':
			white &^= queensideIneligibleBit
		case 'k':
			black &^= kingsideIneligibleBit
		case 'q':
			black &^= queensideIneligibleBit
		default:
			return 0, 0, fmt.Errorf("engine: invalid FEN castling field %q", s)
		}
	}
	return white, black, nil
}

func parseFENEnPassant(s string) (EnPassantTarget, error) {
	if s == "-" {
		return EnPassantTarget{}, nil
	}
	coord, err := ParseCoord(s)
	if err != nil {
		return EnPassantTarget{}, fmt.Errorf("engine: invalid FEN en passant target %q: %w", s, err)
	}
	// Row 2 is rank 6 (a Black pawn just double-advanced from rank 7 to
	// rank 5, leaving this square behind it); row 5 is rank 3, the White
	// equivalent.
	vulnerable := White
	if coord.Row() == 2 {
		vulnerable = Black
	}
	return EnPassantTarget{Present: true, VulnerableColor: vulnerable, Coord: coord}, nil
}

// ToFEN renders board in Forsyth-Edwards Notation with turn as the active
// color field, per spec.md §6.
func (b *Board) ToFEN(turn Color) string {
	var sb strings.Builder
	for row := 0; row <= 7; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b.Squares[MakeCoord(row, col)]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(fenPieceChar(p))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if turn == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}

	sb.WriteByte(' ')
	castling := fenCastlingField(b)
	sb.WriteString(castling)

	sb.WriteByte(' ')
	if b.EnPassant.Present {
		sb.WriteString(b.EnPassant.Coord.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(int(b.HalfMoveClock)))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(int(b.FullMoveClock)))

	return sb.String()
}

func fenPieceChar(p ColoredPiece) byte {
	c := pieceLetter(p.Type())
	if p.Color() == Black {
		c = toLower(c)
	}
	return c
}

func fenCastlingField(b *Board) string {
	var sb strings.Builder
	if b.CastlingWhite.CanCastleKingside() {
		sb.WriteByte('K')
	}
	if b.CastlingWhite.CanCastleQueenside() {
		sb.WriteByte('Q')
	}
	if b.CastlingBlack.CanCastleKingside() {
		sb.WriteByte('k')
	}
	if b.CastlingBlack.CanCastleQueenside() {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
