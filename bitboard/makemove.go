package bitboard

// maxClock caps the half/fullmove counters; they are informational only.
const maxClock = 0xFFFF

// MoveState is the delta MakeMove records so UnmakeMove restores exactly.
type MoveState struct {
	move          Move
	captured      Piece
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
}

// NullState records what MakeNullMove changes.
type NullState struct {
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
	prevSide      Color
}

// MakeMove applies a move. It returns ok=false and restores the position when
// the move would leave the mover's own king attacked; this is the legality
// filter pseudo-legal candidates pass through.
func (b *Board) MakeMove(m Move) (ok bool, st MoveState) {
	st.move = m
	st.captured = NoPiece
	st.prevCastling = b.castlingRights
	st.prevEnPassant = b.enPassantSquare
	st.prevHalfmove = b.halfmoveClock
	st.prevFullmove = b.fullmoveNumber
	st.prevZobrist = b.zobristKey

	from := m.From()
	to := m.To()
	moved := m.MovedPiece()
	promo := m.PromotionPiece()
	flag := m.Flags()
	mover := b.sideToMove

	// The en-passant target is cleared on every move; a double push below
	// may set a fresh one.
	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
		b.enPassantSquare = NoSquare
	}

	// Remove the captured piece. For en passant it sits one rank behind the
	// target square.
	capSq := to
	if flag == FlagEnPassant {
		if mover == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
	}
	if p := b.takePiece(capSq); p != NoPiece {
		st.captured = p
	}

	// Move the piece, swapping in the promotion piece on the last rank.
	b.takePiece(from)
	if promo != NoPiece {
		b.putPiece(to, promo)
	} else {
		b.putPiece(to, moved)
	}

	// Castling moves the rook in the same step.
	if flag == FlagCastle {
		switch to {
		case 6: // g1
			b.takePiece(7)
			b.putPiece(5, WhiteRook)
		case 2: // c1
			b.takePiece(0)
			b.putPiece(3, WhiteRook)
		case 62: // g8
			b.takePiece(63)
			b.putPiece(61, BlackRook)
		case 58: // c8
			b.takePiece(56)
			b.putPiece(59, BlackRook)
		}
	}

	// Castling rights drop when the king moves, when a rook leaves its home
	// square, or when anything lands on a home square. The rule is
	// positional: once cleared a right never comes back.
	newRights := b.castlingRights
	switch moved {
	case WhiteKing:
		newRights &^= CastleWhiteKing | CastleWhiteQueen
	case BlackKing:
		newRights &^= CastleBlackKing | CastleBlackQueen
	}
	for _, sq := range [2]Square{from, to} {
		switch sq {
		case 0:
			newRights &^= CastleWhiteQueen
		case 7:
			newRights &^= CastleWhiteKing
		case 56:
			newRights &^= CastleBlackQueen
		case 63:
			newRights &^= CastleBlackKing
		}
	}
	if newRights != b.castlingRights {
		b.zobristKey ^= zobristCastle[int(b.castlingRights)]
		b.zobristKey ^= zobristCastle[int(newRights)]
		b.castlingRights = newRights
	}

	// A double pawn push sets the en-passant target to the passed square.
	if moved.Type() == PieceTypePawn && (int(to)-int(from) == 16 || int(from)-int(to) == 16) {
		ep := (from + to) / 2
		b.enPassantSquare = ep
		b.zobristKey ^= zobristEnPassant[ep.File()]
	}

	b.sideToMove = mover.Opposite()
	b.zobristKey ^= zobristSide

	// Legality: the mover's king must not be attacked afterwards.
	king := b.KingSquare(mover)
	if king == NoSquare || b.IsSquareAttacked(king, b.sideToMove) {
		b.UnmakeMove(m, st)
		return false, st
	}

	if moved.Type() == PieceTypePawn || st.captured != NoPiece {
		b.halfmoveClock = 0
	} else if b.halfmoveClock < maxClock {
		b.halfmoveClock++
	}
	if mover == Black && b.fullmoveNumber < maxClock {
		b.fullmoveNumber++
	}

	return true, st
}

// UnmakeMove restores the position recorded by a MakeMove call.
func (b *Board) UnmakeMove(m Move, st MoveState) {
	b.sideToMove = b.sideToMove.Opposite()

	from := m.From()
	to := m.To()
	moved := m.MovedPiece()
	flag := m.Flags()

	// Undo the rook leg of castling.
	if flag == FlagCastle {
		switch to {
		case 6:
			b.takePiece(5)
			b.putPiece(7, WhiteRook)
		case 2:
			b.takePiece(3)
			b.putPiece(0, WhiteRook)
		case 62:
			b.takePiece(61)
			b.putPiece(63, BlackRook)
		case 58:
			b.takePiece(59)
			b.putPiece(56, BlackRook)
		}
	}

	// Put the moved piece back (a promotion reverts to the pawn).
	b.takePiece(to)
	b.putPiece(from, moved)

	// Restore the captured piece on its square.
	if st.captured != NoPiece {
		capSq := to
		if flag == FlagEnPassant {
			if moved.Color() == White {
				capSq = to - 8
			} else {
				capSq = to + 8
			}
		}
		b.putPiece(capSq, st.captured)
	}

	b.castlingRights = st.prevCastling
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove
	b.zobristKey = st.prevZobrist
}

// Apply plays a move that must be legal and returns an undo closure. It
// panics on an illegal move; use MakeMove when the move is unvetted.
func (b *Board) Apply(m Move) func() {
	ok, st := b.MakeMove(m)
	if !ok {
		panic("bitboard: Apply called with illegal move " + m.String())
	}
	return func() { b.UnmakeMove(m, st) }
}

// MakeNullMove passes the turn without moving a piece: the en-passant target
// is cleared, the side toggles, and the clocks advance as a quiet half-move.
func (b *Board) MakeNullMove() (st NullState) {
	st.prevEnPassant = b.enPassantSquare
	st.prevHalfmove = b.halfmoveClock
	st.prevFullmove = b.fullmoveNumber
	st.prevZobrist = b.zobristKey
	st.prevSide = b.sideToMove

	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
		b.enPassantSquare = NoSquare
	}
	if b.halfmoveClock < maxClock {
		b.halfmoveClock++
	}
	if b.sideToMove == Black && b.fullmoveNumber < maxClock {
		b.fullmoveNumber++
	}
	b.sideToMove = b.sideToMove.Opposite()
	b.zobristKey ^= zobristSide
	return st
}

// UnmakeNullMove restores the state prior to MakeNullMove.
func (b *Board) UnmakeNullMove(st NullState) {
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove
	b.sideToMove = st.prevSide
	b.zobristKey = st.prevZobrist
}
