package engine

// WithMove produces a new Board reflecting move, played by who. b itself is
// never mutated — this is the sole way derived positions are produced, per
// spec.md §3's Lifecycle paragraph and §4.1's algorithm. The precondition
// (move is pseudo-legal for who, generated by the move generator from this
// exact board) is assumed; callers that violate it get undefined behavior,
// matching spec.md §4.1's Errors paragraph.
func (b *Board) WithMove(who Color, m Move) *Board {
	next := *b // cheap value copy; see spec.md Design Notes on Board size.

	src := m.Src()
	dst := m.Dst()
	srcPiece := b.Squares[src]
	dstPiece := b.Squares[dst]

	next.assertInvariant(srcPiece.Color() == who, "moving piece must belong to who")

	var hashDelta uint64
	hashDelta ^= pieceHashKey(srcPiece, src)

	// Step 2: category-specific piece motion, producing the final piece
	// placed on dst (accounting for promotion in step 3) and clearing any
	// captured piece.
	var placedOnDst ColoredPiece = srcPiece
	var capturedPiece ColoredPiece
	var capturedSq Coord = NoCoord

	switch m.Category() {
	case Castling:
		row := src.Row()
		var rookSrcCol, rookDstCol int
		if m.IsCastlingOnKingside() {
			rookSrcCol, rookDstCol = 7, 5
		} else {
			rookSrcCol, rookDstCol = 0, 3
		}
		rookSrc := MakeCoord(row, rookSrcCol)
		rookDst := MakeCoord(row, rookDstCol)
		rook := b.Squares[rookSrc]

		next.Squares[src] = PieceAndColorNone
		next.Squares[dst] = srcPiece
		next.Squares[rookSrc] = PieceAndColorNone
		next.Squares[rookDst] = rook

		next.Position.remove(rook, rookSrc)
		next.Position.add(rook, rookDst)
		hashDelta ^= pieceHashKey(rook, rookSrc)
		hashDelta ^= pieceHashKey(rook, rookDst)

	case EnPassant:
		capturedSq = MakeCoord(src.Row(), dst.Column())
		capturedPiece = b.Squares[capturedSq]
		next.Squares[capturedSq] = PieceAndColorNone
		next.Squares[src] = PieceAndColorNone
		next.Squares[dst] = srcPiece

	case NormalCapturing:
		capturedSq = dst
		capturedPiece = dstPiece
		next.Squares[src] = PieceAndColorNone
		next.Squares[dst] = srcPiece

	default: // Default
		next.Squares[src] = PieceAndColorNone
		next.Squares[dst] = srcPiece
	}

	// Step 3: promotion replaces the piece placed on dst.
	if m.IsPromoting() {
		placedOnDst = m.PromotedPiece()
		next.Squares[dst] = placedOnDst
	}

	// Position/material for src and dst squares (castling rook handled
	// above; en passant / normal capture handled below via capturedPiece).
	next.Position.remove(srcPiece, src)
	next.Position.add(placedOnDst, dst)
	hashDelta ^= pieceHashKey(placedOnDst, dst)

	if capturedPiece != PieceAndColorNone {
		next.Position.remove(capturedPiece, capturedSq)
		next.Material.remove(capturedPiece)
		hashDelta ^= pieceHashKey(capturedPiece, capturedSq)
	}

	if m.IsPromoting() {
		next.Material.remove(srcPiece)
		next.Material.add(placedOnDst)
	}

	// Step 4: king tracking.
	if srcPiece.Type() == King {
		next.kingPos[colorIndex(who)] = dst
	}

	// Step 5: castling eligibility updates (monotonic losses only).
	oldWhite, oldBlack := next.CastlingWhite, next.CastlingBlack
	updateCastlingEligibility(&next, who, srcPiece, src, capturedPiece, capturedSq)
	hashDelta ^= castlingHashKey(oldWhite, oldBlack)
	hashDelta ^= castlingHashKey(next.CastlingWhite, next.CastlingBlack)

	// Step 6: en passant target update.
	oldEP := next.EnPassant
	next.EnPassant = computeEnPassantTarget(who, srcPiece, src, dst)
	hashDelta ^= enPassantHashKey(oldEP)
	hashDelta ^= enPassantHashKey(next.EnPassant)

	// Step 9: half-move clock.
	if srcPiece.Type() == Pawn || m.IsCapturing() {
		next.HalfMoveClock = 0
	} else {
		next.HalfMoveClock++
	}

	// Step 10: full-move clock.
	if who == Black {
		next.FullMoveClock++
	}

	// Step 11: side-to-move hash component, step 12: flip active color.
	hashDelta ^= sideToMoveHashKey(next.ActiveColor)
	next.ActiveColor = who.Opposite()
	hashDelta ^= sideToMoveHashKey(next.ActiveColor)

	next.Hash = BoardCode(uint64(b.Hash) ^ hashDelta)

	next.assertInvariant(next.kingPos[0].IsValid() && next.kingPos[1].IsValid(), "both kings must remain on the board")

	return &next
}

// updateCastlingEligibility applies spec.md §4.1 step 5: moving a king
// loses both rights for who; moving a rook off its home corner loses that
// side; capturing an opponent rook on its home corner loses that side for
// the opponent. Losses are idempotent (OR-ing an already-set bit is a
// no-op).
func updateCastlingEligibility(b *Board, who Color, srcPiece ColoredPiece, src Coord, captured ColoredPiece, capturedSq Coord) {
	if srcPiece.Type() == King {
		b.setCastlingEligibilityFor(who, b.CastlingEligibilityFor(who).LoseBoth())
	} else if srcPiece.Type() == Rook && src.Row() == homeRow(who) {
		switch src.Column() {
		case 0:
			b.setCastlingEligibilityFor(who, b.CastlingEligibilityFor(who).LoseQueenside())
		case 7:
			b.setCastlingEligibilityFor(who, b.CastlingEligibilityFor(who).LoseKingside())
		}
	}

	if captured != PieceAndColorNone && captured.Type() == Rook {
		opp := who.Opposite()
		if capturedSq.Row() == homeRow(opp) {
			switch capturedSq.Column() {
			case 0:
				b.setCastlingEligibilityFor(opp, b.CastlingEligibilityFor(opp).LoseQueenside())
			case 7:
				b.setCastlingEligibilityFor(opp, b.CastlingEligibilityFor(opp).LoseKingside())
			}
		}
	}
}

// computeEnPassantTarget applies spec.md §4.1 step 6: a pawn double-advance
// creates a new target on the skipped square; any other move clears it.
func computeEnPassantTarget(who Color, srcPiece ColoredPiece, src, dst Coord) EnPassantTarget {
	if srcPiece.Type() == Pawn {
		rowDelta := dst.Row() - src.Row()
		if rowDelta == 2 || rowDelta == -2 {
			midRow := (src.Row() + dst.Row()) / 2
			return EnPassantTarget{Present: true, VulnerableColor: who, Coord: MakeCoord(midRow, src.Column())}
		}
	}
	return EnPassantTarget{}
}
