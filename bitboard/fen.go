package bitboard

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the standard initial position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrMalformedFEN wraps every structural defect ParseFEN reports.
var ErrMalformedFEN = fmt.Errorf("bitboard: malformed FEN")

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedFEN, fmt.Sprintf(format, args...))
}

func pieceFromChar(ch byte) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	}
	return NoPiece
}

func charFromPiece(p Piece) byte {
	const letters = " pnbrqk"
	ch := letters[p.Type()]
	if p.Color() == White {
		ch -= 'a' - 'A'
	}
	return ch
}

// ParseFEN parses a six-field FEN string into a fresh Board. All six fields
// must be present and the placement must describe exactly 8 files on each of
// 8 ranks.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fenError("want 6 fields, have %d", len(fields))
	}

	b := &Board{enPassantSquare: NoSquare}

	// Placement, rank 8 first.
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenError("want 8 ranks, have %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p := pieceFromChar(ch)
			if p == NoPiece {
				return nil, fenError("unknown piece letter %q", ch)
			}
			if file >= 8 {
				return nil, fenError("rank %d overflows 8 files", rank+1)
			}
			b.putPiece(Square(rank*8+file), p)
			file++
		}
		if file != 8 {
			return nil, fenError("rank %d has %d files", rank+1, file)
		}
	}

	// Active color.
	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, fenError("active color %q", fields[1])
	}

	// Castling availability.
	if fields[2] != "-" {
		for j := 0; j < len(fields[2]); j++ {
			switch fields[2][j] {
			case 'K':
				b.castlingRights |= CastleWhiteKing
			case 'Q':
				b.castlingRights |= CastleWhiteQueen
			case 'k':
				b.castlingRights |= CastleBlackKing
			case 'q':
				b.castlingRights |= CastleBlackQueen
			default:
				return nil, fenError("castling letter %q", fields[2][j])
			}
		}
	}

	// En-passant target square.
	if fields[3] != "-" {
		sq, err := parseSquare(fields[3])
		if err != nil {
			return nil, fenError("en-passant square %q", fields[3])
		}
		b.enPassantSquare = sq
	}

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return nil, fenError("halfmove clock %q", fields[4])
	}
	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 0 {
		return nil, fenError("fullmove number %q", fields[5])
	}
	b.halfmoveClock = min(halfmove, maxClock)
	b.fullmoveNumber = min(fullmove, maxClock)

	b.zobristKey = b.ComputeZobrist()
	return b, nil
}

// ToFEN prints the position as a six-field FEN string, castling letters in
// KQkq order. For input with single-space separators, castling letters in
// KQkq order and clocks within 0xFFFF, ParseFEN followed by ToFEN reproduces
// the input exactly.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.pieces[rank*8+file]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(charFromPiece(p))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if b.sideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if b.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if b.castlingRights&CastleWhiteKing != 0 {
			sb.WriteByte('K')
		}
		if b.castlingRights&CastleWhiteQueen != 0 {
			sb.WriteByte('Q')
		}
		if b.castlingRights&CastleBlackKing != 0 {
			sb.WriteByte('k')
		}
		if b.castlingRights&CastleBlackQueen != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.enPassantSquare.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}
