package engine

import "sort"

// GenerateAllPotentialMoves enumerates pseudo-legal moves for every piece of
// color who, per spec.md §4.2: king, queen, rook, bishop, knight, pawn
// order, then stably sorted by capture/MVV-LVA/promotion priority.
func GenerateAllPotentialMoves(b *Board, who Color) MoveList {
	var list MoveList

	for sq := Coord(0); sq < 64; sq++ {
		p := b.Squares[sq]
		if p.Color() == who && p.Type() == King {
			generateKingMoves(b, who, sq, &list)
		}
	}
	for sq := Coord(0); sq < 64; sq++ {
		p := b.Squares[sq]
		if p.Color() == who && p.Type() == Queen {
			generateSlidingMoves(b, who, sq, &list, append(append([][2]int{}, orthogonalDirs[:]...), diagonalDirs[:]...))
		}
	}
	for sq := Coord(0); sq < 64; sq++ {
		p := b.Squares[sq]
		if p.Color() == who && p.Type() == Rook {
			generateSlidingMoves(b, who, sq, &list, orthogonalDirs[:])
		}
	}
	for sq := Coord(0); sq < 64; sq++ {
		p := b.Squares[sq]
		if p.Color() == who && p.Type() == Bishop {
			generateSlidingMoves(b, who, sq, &list, diagonalDirs[:])
		}
	}
	for sq := Coord(0); sq < 64; sq++ {
		p := b.Squares[sq]
		if p.Color() == who && p.Type() == Knight {
			generateKnightMoves(b, who, sq, &list)
		}
	}
	for sq := Coord(0); sq < 64; sq++ {
		p := b.Squares[sq]
		if p.Color() == who && p.Type() == Pawn {
			generatePawnMoves(b, who, sq, &list)
		}
	}

	sortMoves(b, &list)
	return list
}

func addSimpleOrCapture(b *Board, list *MoveList, src, dst Coord) {
	target := b.Squares[dst]
	if target.IsEmpty() {
		list.Append(Make(src, dst))
	} else if target.Color() != b.Squares[src].Color() {
		list.Append(MakeNormalCapturing(src, dst))
	}
}

func generateKingMoves(b *Board, who Color, src Coord, list *MoveList) {
	row, col := src.Row(), src.Column()
	for _, off := range kingOffsets {
		r, c := row+off[0], col+off[1]
		if !IsValidRow(r) || !IsValidColumn(c) {
			continue
		}
		addSimpleOrCapture(b, list, src, MakeCoord(r, c))
	}

	eligibility := b.CastlingEligibilityFor(who)
	if eligibility.CanCastleQueenside() &&
		b.Squares[MakeCoord(row, 1)].IsEmpty() &&
		b.Squares[MakeCoord(row, 2)].IsEmpty() &&
		b.Squares[MakeCoord(row, 3)].IsEmpty() {
		list.Append(MakeCastling(MakeCoord(row, 4), MakeCoord(row, 2)))
	}
	if eligibility.CanCastleKingside() &&
		b.Squares[MakeCoord(row, 5)].IsEmpty() &&
		b.Squares[MakeCoord(row, 6)].IsEmpty() {
		list.Append(MakeCastling(MakeCoord(row, 4), MakeCoord(row, 6)))
	}
}

func generateKnightMoves(b *Board, who Color, src Coord, list *MoveList) {
	row, col := src.Row(), src.Column()
	for _, off := range knightOffsets {
		r, c := row+off[0], col+off[1]
		if !IsValidRow(r) || !IsValidColumn(c) {
			continue
		}
		addSimpleOrCapture(b, list, src, MakeCoord(r, c))
	}
}

func generateSlidingMoves(b *Board, who Color, src Coord, list *MoveList, dirs [][2]int) {
	row, col := src.Row(), src.Column()
	for _, dir := range dirs {
		for dist := 1; dist <= 7; dist++ {
			r, c := row+dir[0]*dist, col+dir[1]*dist
			if !IsValidRow(r) || !IsValidColumn(c) {
				break
			}
			dst := MakeCoord(r, c)
			target := b.Squares[dst]
			if target.IsEmpty() {
				list.Append(Make(src, dst))
				continue
			}
			if target.Color() != who {
				list.Append(MakeNormalCapturing(src, dst))
			}
			break
		}
	}
}

func generatePawnMoves(b *Board, who Color, src Coord, list *MoveList) {
	dir := pawnDirection(who)
	row, col := src.Row(), src.Column()
	promotionRow := 0
	startRow := 6
	if who == Black {
		promotionRow = 7
		startRow = 1
	}

	forwardRow := row + dir
	if IsValidRow(forwardRow) {
		forwardSq := MakeCoord(forwardRow, col)
		if b.Squares[forwardSq].IsEmpty() {
			appendPawnMove(list, who, src, forwardSq, false, forwardRow == promotionRow)

			if row == startRow {
				twoRow := row + 2*dir
				twoSq := MakeCoord(twoRow, col)
				if b.Squares[twoSq].IsEmpty() {
					list.Append(Make(src, twoSq))
				}
			}
		}
	}

	for _, dc := range [2]int{-1, 1} {
		captureCol := col + dc
		if !IsValidColumn(captureCol) || !IsValidRow(forwardRow) {
			continue
		}
		captureSq := MakeCoord(forwardRow, captureCol)
		target := b.Squares[captureSq]
		if !target.IsEmpty() && target.Color() != who {
			appendPawnMove(list, who, src, captureSq, true, forwardRow == promotionRow)
		}
	}

	generateEnPassant(b, who, src, row, col, list)
}

func appendPawnMove(list *MoveList, who Color, src, dst Coord, capturing, promoting bool) {
	if !promoting {
		if capturing {
			list.Append(MakeNormalCapturing(src, dst))
		} else {
			list.Append(Make(src, dst))
		}
		return
	}
	for _, t := range [4]PieceType{Queen, Rook, Bishop, Knight} {
		var mv Move
		if capturing {
			mv = MakeNormalCapturing(src, dst)
		} else {
			mv = Make(src, dst)
		}
		list.Append(mv.WithPromotion(NewColoredPiece(who, t)))
	}
}

func generateEnPassant(b *Board, who Color, src Coord, row, col int, list *MoveList) {
	target := b.EnPassant
	if !target.Present || target.VulnerableColor == who {
		return
	}
	capturedRow := target.Coord.Row() + pawnDirection(target.VulnerableColor)
	if row != capturedRow {
		return
	}
	if abs(col-target.Coord.Column()) != 1 {
		return
	}
	list.Append(MakeEnPassant(src, target.Coord))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// sortMoves implements spec.md §4.2's stable ordering: any-capturing
// before non-capturing; among captures, MVV-LVA descending (en passant
// diff=0); promotions before non-promotions; among promotions, by
// promoted-piece weight descending; ties broken by src then dst index.
func sortMoves(b *Board, list *MoveList) {
	moves := list.Slice()
	sort.SliceStable(moves, func(i, j int) bool {
		return moveOrderKey(b, moves[i]).less(moveOrderKey(b, moves[j]))
	})
}

type orderKey struct {
	capturing   bool
	mvvLva      int
	promoting   bool
	promoWeight int
	src, dst    Coord
}

func (k orderKey) less(o orderKey) bool {
	if k.capturing != o.capturing {
		return k.capturing // capturing sorts first -> "less" means higher priority
	}
	if k.capturing && k.mvvLva != o.mvvLva {
		return k.mvvLva > o.mvvLva
	}
	if k.promoting != o.promoting {
		return k.promoting
	}
	if k.promoting && k.promoWeight != o.promoWeight {
		return k.promoWeight > o.promoWeight
	}
	if k.src != o.src {
		return k.src < o.src
	}
	return k.dst < o.dst
}

func moveOrderKey(b *Board, m Move) orderKey {
	k := orderKey{
		capturing: m.IsCapturing(),
		promoting: m.IsPromoting(),
		src:       m.Src(),
		dst:       m.Dst(),
	}
	if k.capturing && !m.IsEnPassant() {
		dstPiece := b.Squares[m.Dst()]
		srcPiece := b.Squares[m.Src()]
		k.mvvLva = pieceWeight(dstPiece.Type()) - pieceWeight(srcPiece.Type())
	}
	if k.promoting {
		k.promoWeight = pieceWeight(m.PromotedPiece().Type())
	}
	return k
}

// GenerateLegalMoves filters GenerateAllPotentialMoves by legality, per
// spec.md §4.2: simulate each move and discard it if the resulting
// position is illegal for who.
func GenerateLegalMoves(b *Board, who Color) MoveList {
	var legal MoveList
	potential := GenerateAllPotentialMoves(b, who)
	for i := 0; i < potential.Len(); i++ {
		m := potential.At(i)
		child := b.WithMove(who, m)
		if IsLegalPositionAfterMove(child, who, m) {
			legal.Append(m)
		}
	}
	return legal
}
