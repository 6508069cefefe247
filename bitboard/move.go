package bitboard

import "errors"

// Move packs a move into 32 bits: source and target squares, moving piece,
// captured piece, promotion piece and special-move flags.
type Move uint32

const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	movePieceShift   = 12 // 4 bits
	moveCaptureShift = 16 // 4 bits
	movePromoteShift = 20 // 4 bits
	moveFlagShift    = 24 // 2 bits
)

// Move flags. Promotion is indicated by a non-zero promotion piece.
const (
	FlagNone uint8 = iota
	FlagCastle
	FlagEnPassant
)

// NewMove assembles a Move from its components.
func NewMove(from, to Square, piece, captured, promotion Piece, flag uint8) Move {
	return Move(uint32(from&0x3F) |
		uint32(to&0x3F)<<moveToShift |
		uint32(piece&0xF)<<movePieceShift |
		uint32(captured&0xF)<<moveCaptureShift |
		uint32(promotion&0xF)<<movePromoteShift |
		uint32(flag&0x3)<<moveFlagShift)
}

// From returns the source square.
func (m Move) From() Square { return Square(uint32(m) >> moveFromShift & 0x3F) }

// To returns the target square.
func (m Move) To() Square { return Square(uint32(m) >> moveToShift & 0x3F) }

// MovedPiece returns the piece being moved.
func (m Move) MovedPiece() Piece { return Piece(uint32(m) >> movePieceShift & 0xF) }

// CapturedPiece returns the captured piece, or NoPiece.
func (m Move) CapturedPiece() Piece { return Piece(uint32(m) >> moveCaptureShift & 0xF) }

// PromotionPiece returns the promotion piece, or NoPiece.
func (m Move) PromotionPiece() Piece { return Piece(uint32(m) >> movePromoteShift & 0xF) }

// Flags returns the special-move flags.
func (m Move) Flags() uint8 { return uint8(uint32(m) >> moveFlagShift & 0x3) }

// IsCapture reports whether the move captures, including en passant.
func (m Move) IsCapture() bool {
	return m.CapturedPiece() != NoPiece || m.Flags() == FlagEnPassant
}

// String renders the move in UCI form: source square, target square, and a
// lowercase promotion letter when promoting. Castling appears as the king's
// two-square move (e1g1, e1c1, e8g8, e8c8).
func (m Move) String() string {
	s := m.From().String() + m.To().String()
	switch m.PromotionPiece().Type() {
	case PieceTypeQueen:
		s += "q"
	case PieceTypeRook:
		s += "r"
	case PieceTypeBishop:
		s += "b"
	case PieceTypeKnight:
		s += "n"
	}
	return s
}

var errBadMove = errors.New("bitboard: malformed UCI move")

// ParseMove converts UCI text (e2e4, e7e8q) into a bare from/to/promotion
// move. The result carries no piece or flag information; resolve it against
// the generated move list before applying it.
func ParseMove(text string) (Move, error) {
	if len(text) < 4 || len(text) > 5 {
		return 0, errBadMove
	}
	from, err := parseSquare(text[0:2])
	if err != nil {
		return 0, err
	}
	to, err := parseSquare(text[2:4])
	if err != nil {
		return 0, err
	}
	var promo Piece
	if len(text) == 5 {
		switch text[4] {
		case 'q':
			promo = WhiteQueen
		case 'r':
			promo = WhiteRook
		case 'b':
			promo = WhiteBishop
		case 'n':
			promo = WhiteKnight
		default:
			return 0, errBadMove
		}
	}
	return NewMove(from, to, NoPiece, NoPiece, promo, FlagNone), nil
}

func parseSquare(alg string) (Square, error) {
	if len(alg) != 2 || alg[0] < 'a' || alg[0] > 'h' || alg[1] < '1' || alg[1] > '8' {
		return NoSquare, errBadMove
	}
	return Square(int(alg[1]-'1')*8 + int(alg[0]-'a')), nil
}
