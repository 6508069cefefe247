package engine

import (
	"fmt"
	"strings"

	"github.com/dehidehidehi-org/kairuku-chess/bitboard"
)

// Startpos is the position name the UCI `position` command uses for the
// standard initial position.
const Startpos = "startpos"

// ErrIllegalMove reports a UCI move that is not legal in the position it was
// to be applied to.
var ErrIllegalMove = fmt.Errorf("engine: illegal move")

// SetPosition builds a board from "startpos" or a FEN string and applies the
// given UCI moves in order. Each move is resolved against the legal-move list
// of its position; a miss aborts with ErrIllegalMove.
func SetPosition(position string, moves []string) (*bitboard.Board, error) {
	fen := position
	if position == Startpos {
		fen = bitboard.FENStartPos
	}
	b, err := bitboard.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	for _, text := range moves {
		m, err := ResolveMove(b, text)
		if err != nil {
			return nil, err
		}
		if ok, _ := b.MakeMove(m); !ok {
			return nil, fmt.Errorf("%w: %s", ErrIllegalMove, text)
		}
	}
	return b, nil
}

// ResolveMove matches UCI text against the legal moves of the position,
// returning the fully specified move.
func ResolveMove(b *bitboard.Board, text string) (bitboard.Move, error) {
	want := strings.ToLower(strings.TrimSpace(text))
	if _, err := bitboard.ParseMove(want); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrIllegalMove, text)
	}
	for _, m := range b.GenerateMoves() {
		if m.String() == want {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrIllegalMove, text)
}
