package engine

// knightOffsets and kingOffsets are precomputed once (as package-level
// tables rather than per-call literals) per spec.md's Design Notes
// ("precomputed knight-move tables ... compute once at startup").
var knightOffsets = [8][2]int{
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
}

var kingOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

var diagonalDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var orthogonalDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// IsKingThreatened reports whether kingCoord is attacked by any piece of
// the opposing color, per spec.md §4.3. This single oracle backs check
// detection, checkmate/stalemate detection, and castling-transit legality.
// It is direction-dispatched and short-circuits on the first attacker found
// in each direction, grounded on the teacher's engine/attacks.go.
func IsKingThreatened(b *Board, who Color, kingCoord Coord) bool {
	return IsSquareAttacked(b, kingCoord, who.Opposite())
}

// IsSquareAttacked reports whether sq is attacked by any piece of byColor.
func IsSquareAttacked(b *Board, sq Coord, byColor Color) bool {
	if !sq.IsValid() {
		return false
	}
	row, col := sq.Row(), sq.Column()

	if attackedByPawn(b, row, col, byColor) {
		return true
	}
	if attackedByOffsetPiece(b, row, col, byColor, knightOffsets, Knight) {
		return true
	}
	if attackedByOffsetPiece(b, row, col, byColor, kingOffsets, King) {
		return true
	}
	if attackedBySliding(b, row, col, byColor, diagonalDirs, Bishop) {
		return true
	}
	if attackedBySliding(b, row, col, byColor, orthogonalDirs, Rook) {
		return true
	}
	return false
}

// pawnDirection is the row delta a pawn of this color advances by.
func pawnDirection(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func attackedByPawn(b *Board, row, col int, byColor Color) bool {
	// A byColor pawn attacks diagonally forward from the attacker's point of
	// view; the attacker sits one row "behind" (from the target square's
	// perspective) in the direction opposite the attacker's own advance.
	attackerRow := row - pawnDirection(byColor)
	if !IsValidRow(attackerRow) {
		return false
	}
	for _, dc := range [2]int{-1, 1} {
		attackerCol := col + dc
		if !IsValidColumn(attackerCol) {
			continue
		}
		p := b.Squares[MakeCoord(attackerRow, attackerCol)]
		if p.Type() == Pawn && p.Color() == byColor {
			return true
		}
	}
	return false
}

func attackedByOffsetPiece(b *Board, row, col int, byColor Color, offsets [8][2]int, t PieceType) bool {
	for _, off := range offsets {
		r, c := row+off[0], col+off[1]
		if !IsValidRow(r) || !IsValidColumn(c) {
			continue
		}
		p := b.Squares[MakeCoord(r, c)]
		if p.Type() == t && p.Color() == byColor {
			return true
		}
	}
	return false
}

func attackedBySliding(b *Board, row, col int, byColor Color, dirs [4][2]int, alsoType PieceType) bool {
	for _, dir := range dirs {
		for dist := 1; dist <= 7; dist++ {
			r, c := row+dir[0]*dist, col+dir[1]*dist
			if !IsValidRow(r) || !IsValidColumn(c) {
				break
			}
			p := b.Squares[MakeCoord(r, c)]
			if p.IsEmpty() {
				continue
			}
			if p.Color() == byColor && (p.Type() == alsoType || p.Type() == Queen) {
				return true
			}
			break
		}
	}
	return false
}
