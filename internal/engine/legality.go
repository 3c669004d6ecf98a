package engine

// IsLegalPositionAfterMove implements spec.md §4.4: newBoard is the result
// of board.WithMove(who, move); this reports whether that resulting
// position is legal for who to have produced.
func IsLegalPositionAfterMove(newBoard *Board, who Color, move Move) bool {
	kingCoord := newBoard.KingPosition(who)
	if IsKingThreatened(newBoard, who, kingCoord) {
		return false
	}

	if move.IsCastling() {
		kingRow := kingCoord.Row()
		kingCol := kingCoord.Column()
		dir := 1
		if move.IsCastlingOnKingside() {
			dir = -1
		}
		transit1 := MakeCoord(kingRow, kingCol+dir)
		transit2 := MakeCoord(kingRow, kingCol+2*dir)
		if IsKingThreatened(newBoard, who, transit1) || IsKingThreatened(newBoard, who, transit2) {
			return false
		}
	}

	return true
}
