package engine

// Max_Non_Checkmate_Score is the threshold below which all non-forced-mate
// evaluations fall, per spec.md §4.5. Anything above it in magnitude is a
// mate score, offset by plies-from-root so nearer mates dominate farther
// ones.
const Max_Non_Checkmate_Score = 1_000_000

const checkmateBaseScore = 100_000_000

// checkmateScoreInMoves is a large constant minus n plies, so mate-in-1
// scores higher than mate-in-3, per spec.md §4.5.
func checkmateScoreInMoves(movesAway int) int {
	return checkmateBaseScore - movesAway
}

// castlePenalty is the per-lost-castling-right penalty and its
// currently-castled bonus, grounded on the original evaluate.cpp's
// Castle_Penalty = 50 and "isCastled" discount of 2x the penalty.
const castlePenalty = 50

// pieceSquareValue is the positional bonus/penalty for placing piece on sq,
// from White's orientation (Black's tables are mirrored by row), grounded on
// the teacher's bot/eval.go piece-square tables, rescaled from pawn-units
// (float64) to integer centipawns to match pieceWeight's scale.
func pieceSquareValue(piece ColoredPiece, sq Coord) int {
	if piece.IsEmpty() {
		return 0
	}
	row, col := sq.Row(), sq.Column()
	if piece.Color() == Black {
		row = 7 - row
	}
	table := pieceSquareTable(piece.Type())
	return table[row][col]
}

func pieceSquareTable(t PieceType) *[8][8]int {
	switch t {
	case Pawn:
		return &pawnSquareTable
	case Knight:
		return &knightSquareTable
	case Bishop:
		return &bishopSquareTable
	case Rook:
		return &rookSquareTable
	case Queen:
		return &queenSquareTable
	case King:
		return &kingSquareTable
	default:
		return &zeroSquareTable
	}
}

var zeroSquareTable [8][8]int

// The tables below are indexed [row][col] with row 0 = White's back rank's
// opposite end (Black's home row, per pieceSquareValue's mirroring), i.e.
// row 7 is a White pawn's own home row and row 0 is its promotion rank —
// matching the teacher's bot/eval.go orientation, scaled by 100.
var pawnSquareTable = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{10, 10, 20, 30, 30, 20, 10, 10},
	{5, 5, 10, 25, 25, 10, 5, 5},
	{0, 0, 0, 20, 20, 0, 0, 0},
	{5, -5, -10, 0, 0, -10, -5, 5},
	{5, 10, 10, -20, -20, 10, 10, 5},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var knightSquareTable = [8][8]int{
	{-50, -40, -30, -30, -30, -30, -40, -50},
	{-40, -20, 0, 0, 0, 0, -20, -40},
	{-30, 0, 10, 15, 15, 10, 0, -30},
	{-30, 5, 15, 20, 20, 15, 5, -30},
	{-30, 0, 15, 20, 20, 15, 0, -30},
	{-30, 5, 10, 15, 15, 10, 5, -30},
	{-40, -20, 0, 5, 5, 0, -20, -40},
	{-50, -40, -30, -30, -30, -30, -40, -50},
}

var bishopSquareTable = [8][8]int{
	{-20, -10, -10, -10, -10, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 10, 10, 5, 0, -10},
	{-10, 5, 5, 10, 10, 5, 5, -10},
	{-10, 0, 10, 10, 10, 10, 0, -10},
	{-10, 10, 10, 10, 10, 10, 10, -10},
	{-10, 5, 0, 0, 0, 0, 5, -10},
	{-20, -10, -10, -10, -10, -10, -10, -20},
}

var rookSquareTable = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{5, 10, 10, 10, 10, 10, 10, 5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{0, 0, 0, 5, 5, 0, 0, 0},
}

var queenSquareTable = [8][8]int{
	{-20, -10, -10, -5, -5, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 5, 5, 5, 0, -10},
	{-5, 0, 5, 5, 5, 5, 0, -5},
	{0, 0, 5, 5, 5, 5, 0, -5},
	{-10, 5, 5, 5, 5, 5, 0, -10},
	{-10, 0, 5, 0, 0, 0, 0, -10},
	{-20, -10, -10, -5, -5, -10, -10, -20},
}

var kingSquareTable = [8][8]int{
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-20, -30, -30, -40, -40, -30, -30, -20},
	{-10, -20, -20, -20, -20, -20, -20, -10},
	{20, 20, 0, 0, 0, 0, 20, 20},
	{20, 30, 10, 0, 0, 10, 30, 20},
}

const (
	kingsideCastledKingColumn  = 6
	kingsideCastledRookColumn  = 5
	queensideCastledKingColumn = 2
	queensideCastledRookColumn = 3
)

// heuristicIsCastled reports whether who's king sits on a castled square
// with its rook already swung round, per the original evaluate.cpp.
func heuristicIsCastled(b *Board, who Color) bool {
	kingPos := b.KingPosition(who)
	if kingPos.Row() != homeRow(who) {
		return false
	}
	rook := NewColoredPiece(who, Rook)
	switch kingPos.Column() {
	case kingsideCastledKingColumn:
		return b.PieceAt(MakeCoord(kingPos.Row(), kingsideCastledRookColumn)) == rook
	case queensideCastledKingColumn:
		return b.PieceAt(MakeCoord(kingPos.Row(), queensideCastledRookColumn)) == rook
	default:
		return false
	}
}

// unableToCastlePenalty charges 50 centipawns per permanently lost castling
// right and refunds twice that if who's king has already visibly castled,
// per the original evaluate.cpp.
func unableToCastlePenalty(b *Board, who Color) int {
	eligibility := b.CastlingEligibilityFor(who)
	if eligibility == EitherSideEligible {
		return 0
	}
	result := 0
	if !eligibility.CanCastleKingside() {
		result += castlePenalty
	}
	if !eligibility.CanCastleQueenside() {
		result += castlePenalty
	}
	if heuristicIsCastled(b, who) {
		result -= 2 * castlePenalty
	}
	return result
}

// Evaluate scores board from who's perspective, in centipawn-scaled units,
// per spec.md §4.5.
func Evaluate(board *Board, who Color, movesAway int) int {
	opponent := who.Opposite()

	if IsCheckmated(board, who) {
		return -checkmateScoreInMoves(movesAway)
	}
	if IsCheckmated(board, opponent) {
		return checkmateScoreInMoves(movesAway)
	}

	score := board.Material.OverallScore(who) + board.Position.OverallScore(who)
	score -= unableToCastlePenalty(board, who)
	score += unableToCastlePenalty(board, opponent)
	return score
}

// EvaluateWithoutLegalMoves scores a position where who has no legal moves:
// checkmate if threatened, else a draw (stalemate), per spec.md §4.5.
func EvaluateWithoutLegalMoves(board *Board, who Color, movesAway int) int {
	kingCoord := board.KingPosition(who)
	if IsKingThreatened(board, who, kingCoord) {
		return -checkmateScoreInMoves(movesAway)
	}
	return 0
}

// IsCheckmated reports whether who is checkmated: king threatened and no
// legal moves remain, per spec.md §4.5.
func IsCheckmated(board *Board, who Color) bool {
	coord := board.KingPosition(who)
	if !IsKingThreatened(board, who, coord) {
		return false
	}
	moves := GenerateLegalMoves(board, who)
	return moves.IsEmpty()
}

// IsStalemated reports whether who is stalemated: king not threatened but no
// legal moves remain, per spec.md §4.5.
func IsStalemated(board *Board, who Color) bool {
	coord := board.KingPosition(who)
	if IsKingThreatened(board, who, coord) {
		return false
	}
	moves := GenerateLegalMoves(board, who)
	return moves.IsEmpty()
}
