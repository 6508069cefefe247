package bitboard

// Move generation runs in two phases: pseudo-legal enumeration per piece
// family, then a legality filter that applies each candidate and rejects any
// that leaves the mover's king attacked. Castling additionally requires the
// traversed squares to be safe, which is checked during enumeration.

// IsSquareAttacked reports whether the given square is attacked by a side.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.squareAttacked(sq, by, b.AllOccupancy())
}

// squareAttacked answers the attack query under an explicit occupancy, so
// callers can probe hypothetical positions (castling paths, en passant).
func (b *Board) squareAttacked(sq Square, by Color, occ uint64) bool {
	side := int(by)
	// A pawn of 'by' attacks sq exactly when a pawn of the other color on sq
	// would attack the pawn's square.
	if pawnAttacks[by.Opposite()][sq]&b.pawns[side] != 0 {
		return true
	}
	if knightAttacks[sq]&b.knights[side] != 0 {
		return true
	}
	if kingAttacks[sq]&b.kings[side] != 0 {
		return true
	}
	if RookAttacks(sq, occ)&(b.rooks[side]|b.queens[side]) != 0 {
		return true
	}
	if BishopAttacks(sq, occ)&(b.bishops[side]|b.queens[side]) != 0 {
		return true
	}
	return false
}

// InCheck reports whether the given side's king is attacked.
func (b *Board) InCheck(color Color) bool {
	king := b.KingSquare(color)
	if king == NoSquare {
		return false
	}
	return b.IsSquareAttacked(king, color.Opposite())
}

// GenerateMoves returns all legal moves for the side to move. The order of
// the returned moves is unspecified.
func (b *Board) GenerateMoves() []Move {
	return b.GenerateMovesInto(make([]Move, 0, 64))
}

// GenerateMovesInto appends all legal moves for the side to move into dst,
// reusing its capacity. dst is truncated first.
func (b *Board) GenerateMovesInto(dst []Move) []Move {
	moves := b.GeneratePseudoMovesInto(dst)
	legal := moves[:0]
	for _, m := range moves {
		if ok, st := b.MakeMove(m); ok {
			b.UnmakeMove(m, st)
			legal = append(legal, m)
		}
	}
	return legal
}

// GeneratePseudoMoves returns all pseudo-legal moves: piece rules and
// blockers are obeyed, castling requires rights, an empty path and safe
// king squares, but the mover may still be left in check.
func (b *Board) GeneratePseudoMoves() []Move {
	return b.GeneratePseudoMovesInto(make([]Move, 0, 64))
}

// GeneratePseudoMovesInto writes the pseudo-legal moves into dst, reusing its
// capacity. dst is truncated first.
func (b *Board) GeneratePseudoMovesInto(dst []Move) []Move {
	moves := dst[:0]
	side := b.sideToMove
	us := int(side)
	them := 1 - us

	ownOcc := b.occupancy[us]
	oppOcc := b.occupancy[them]
	allOcc := ownOcc | oppOcc

	moves = b.pawnMoves(moves, side, oppOcc, allOcc)

	// Knights.
	for pieces := b.knights[us]; pieces != 0; {
		from := Square(popLSB(&pieces))
		moves = b.pieceMoves(moves, from, knightAttacks[from]&^ownOcc, oppOcc)
	}

	// Sliders.
	for pieces := b.bishops[us]; pieces != 0; {
		from := Square(popLSB(&pieces))
		moves = b.pieceMoves(moves, from, BishopAttacks(from, allOcc)&^ownOcc, oppOcc)
	}
	for pieces := b.rooks[us]; pieces != 0; {
		from := Square(popLSB(&pieces))
		moves = b.pieceMoves(moves, from, RookAttacks(from, allOcc)&^ownOcc, oppOcc)
	}
	for pieces := b.queens[us]; pieces != 0; {
		from := Square(popLSB(&pieces))
		moves = b.pieceMoves(moves, from, QueenAttacks(from, allOcc)&^ownOcc, oppOcc)
	}

	// King.
	if king := b.KingSquare(side); king != NoSquare {
		moves = b.pieceMoves(moves, king, kingAttacks[king]&^ownOcc, oppOcc)
		moves = b.castleMoves(moves, side, allOcc)
	}

	return moves
}

// pieceMoves expands a target bitboard into moves from one source square.
func (b *Board) pieceMoves(moves []Move, from Square, targets, oppOcc uint64) []Move {
	moved := b.pieces[int(from)]
	for targets != 0 {
		to := Square(popLSB(&targets))
		captured := NoPiece
		if oppOcc&bb(to) != 0 {
			captured = b.pieces[int(to)]
		}
		moves = append(moves, NewMove(from, to, moved, captured, NoPiece, FlagNone))
	}
	return moves
}

// pawnMoves emits pushes, double pushes, captures, en passant and promotion
// expansions for the side's pawns. A promotion expands into exactly four
// moves: queen, rook, bishop, knight.
func (b *Board) pawnMoves(moves []Move, side Color, oppOcc, allOcc uint64) []Move {
	us := int(side)
	forward := 8
	startRank, promoRank := 1, 7
	if side == Black {
		forward = -8
		startRank, promoRank = 6, 0
	}

	for pieces := b.pawns[us]; pieces != 0; {
		from := popLSB(&pieces)
		fromSq := Square(from)
		pawn := b.pieces[from]

		// Pushes.
		one := from + forward
		if one >= 0 && one < 64 && allOcc&(1<<uint(one)) == 0 {
			if one/8 == promoRank {
				moves = b.promotions(moves, fromSq, Square(one), pawn, NoPiece)
			} else {
				moves = append(moves, NewMove(fromSq, Square(one), pawn, NoPiece, NoPiece, FlagNone))
				if from/8 == startRank {
					two := one + forward
					if allOcc&(1<<uint(two)) == 0 {
						moves = append(moves, NewMove(fromSq, Square(two), pawn, NoPiece, NoPiece, FlagNone))
					}
				}
			}
		}

		// Captures.
		attacks := pawnAttacks[side][from]
		for targets := attacks & oppOcc; targets != 0; {
			to := Square(popLSB(&targets))
			captured := b.pieces[int(to)]
			if to.Rank() == promoRank {
				moves = b.promotions(moves, fromSq, to, pawn, captured)
			} else {
				moves = append(moves, NewMove(fromSq, to, pawn, captured, NoPiece, FlagNone))
			}
		}

		// En passant: the captured pawn sits one rank behind the target.
		if ep := b.enPassantSquare; ep != NoSquare && attacks&bb(ep) != 0 {
			captured := BlackPawn
			if side == Black {
				captured = WhitePawn
			}
			moves = append(moves, NewMove(fromSq, ep, pawn, captured, NoPiece, FlagEnPassant))
		}
	}
	return moves
}

// promotions appends the four promotion moves for one pawn advance.
func (b *Board) promotions(moves []Move, from, to Square, pawn, captured Piece) []Move {
	color := pawn.Color()
	for _, pt := range [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight} {
		moves = append(moves, NewMove(from, to, pawn, captured, PieceFromType(color, pt), FlagNone))
	}
	return moves
}

// Castle path squares, by side: squares that must be empty between king and
// rook, and the king-traversed squares that must not be attacked.
const (
	whiteKingSideEmpty  = uint64(1)<<5 | uint64(1)<<6                // f1 g1
	whiteQueenSideEmpty = uint64(1)<<1 | uint64(1)<<2 | uint64(1)<<3 // b1 c1 d1
	blackKingSideEmpty  = uint64(1)<<61 | uint64(1)<<62              // f8 g8
	blackQueenSideEmpty = uint64(1)<<57 | uint64(1)<<58 | uint64(1)<<59
)

// castleMoves emits castling candidates. Castling requires the right, an
// empty path, the rook on its home square, and that the king's current and
// traversed squares (destination included) are not attacked.
func (b *Board) castleMoves(moves []Move, side Color, allOcc uint64) []Move {
	if side == White {
		if b.pieces[4] != WhiteKing || b.IsSquareAttacked(4, Black) {
			return moves
		}
		if b.castlingRights&CastleWhiteKing != 0 &&
			allOcc&whiteKingSideEmpty == 0 && b.pieces[7] == WhiteRook &&
			!b.IsSquareAttacked(5, Black) && !b.IsSquareAttacked(6, Black) {
			moves = append(moves, NewMove(4, 6, WhiteKing, NoPiece, NoPiece, FlagCastle))
		}
		if b.castlingRights&CastleWhiteQueen != 0 &&
			allOcc&whiteQueenSideEmpty == 0 && b.pieces[0] == WhiteRook &&
			!b.IsSquareAttacked(3, Black) && !b.IsSquareAttacked(2, Black) {
			moves = append(moves, NewMove(4, 2, WhiteKing, NoPiece, NoPiece, FlagCastle))
		}
		return moves
	}
	if b.pieces[60] != BlackKing || b.IsSquareAttacked(60, White) {
		return moves
	}
	if b.castlingRights&CastleBlackKing != 0 &&
		allOcc&blackKingSideEmpty == 0 && b.pieces[63] == BlackRook &&
		!b.IsSquareAttacked(61, White) && !b.IsSquareAttacked(62, White) {
		moves = append(moves, NewMove(60, 62, BlackKing, NoPiece, NoPiece, FlagCastle))
	}
	if b.castlingRights&CastleBlackQueen != 0 &&
		allOcc&blackQueenSideEmpty == 0 && b.pieces[56] == BlackRook &&
		!b.IsSquareAttacked(59, White) && !b.IsSquareAttacked(58, White) {
		moves = append(moves, NewMove(60, 58, BlackKing, NoPiece, NoPiece, FlagCastle))
	}
	return moves
}

// Perft counts leaf nodes reachable from the position at the given depth.
// It is the standard correctness oracle for the move generator.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	ctx := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(b, depth, &ctx)
}

type perftCtx struct {
	bufs [][]Move
}

func (ctx *perftCtx) bufFor(depth int) []Move {
	if ctx.bufs[depth] == nil {
		ctx.bufs[depth] = make([]Move, 0, 128)
	}
	return ctx.bufs[depth][:0]
}

func perftRec(b *Board, depth int, ctx *perftCtx) uint64 {
	moves := b.GeneratePseudoMovesInto(ctx.bufFor(depth))
	var nodes uint64
	for _, m := range moves {
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		if depth == 1 {
			nodes++
		} else {
			nodes += perftRec(b, depth-1, ctx)
		}
		b.UnmakeMove(m, st)
	}
	return nodes
}

// PerftDivide maps each legal root move to its node count at depth-1, for
// debugging against a reference generator.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.GenerateMoves() {
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		result[m] = Perft(b, depth-1)
		b.UnmakeMove(m, st)
	}
	return result
}
