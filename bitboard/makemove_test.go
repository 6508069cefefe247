package bitboard_test

import (
	"math/bits"
	"testing"

	"github.com/dehidehidehi-org/kairuku-chess/bitboard"
)

// applyUCI resolves a UCI string against the legal-move list and applies it.
func applyUCI(t *testing.T, b *bitboard.Board, text string) {
	t.Helper()
	for _, m := range b.GenerateMoves() {
		if m.String() == text {
			if ok, _ := b.MakeMove(m); !ok {
				t.Fatalf("MakeMove(%s) rejected a generated move", text)
			}
			return
		}
	}
	t.Fatalf("%s is not legal in %s", text, b.ToFEN())
}

func TestMakeUnmakeRestoresExactly(t *testing.T) {
	fens := []string{
		bitboard.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/8/8/3pP3/8/8/8/k6K w - d6 0 1",
		"8/P7/8/8/8/8/8/k6K w - - 0 1",
	}
	for _, fen := range fens {
		b := mustParse(t, fen)
		startFEN := b.ToFEN()
		startHash := b.Hash()
		for _, m := range b.GenerateMoves() {
			ok, st := b.MakeMove(m)
			if !ok {
				t.Fatalf("%s: MakeMove(%s) rejected a generated move", fen, m)
			}
			if !b.Validate() {
				t.Fatalf("%s: board invalid after %s", fen, m)
			}
			b.UnmakeMove(m, st)
			if got := b.ToFEN(); got != startFEN {
				t.Fatalf("%s: FEN after unmake of %s: got %q", fen, m, got)
			}
			if b.Hash() != startHash {
				t.Fatalf("%s: hash not restored after unmake of %s", fen, m)
			}
		}
	}
}

func TestIncrementalHashMatchesScratch(t *testing.T) {
	b := mustParse(t, bitboard.FENStartPos)
	// Deterministic walk through generated moves.
	for ply := 0; ply < 60; ply++ {
		moves := b.GenerateMoves()
		if len(moves) == 0 {
			break
		}
		b.Apply(moves[ply%len(moves)])
		if b.Hash() != b.ComputeZobrist() {
			t.Fatalf("ply %d: incremental hash %x != scratch %x", ply, b.Hash(), b.ComputeZobrist())
		}
	}
}

func TestOccupanciesStayDisjointWithOneKingEach(t *testing.T) {
	b := mustParse(t, bitboard.FENStartPos)
	for ply := 0; ply < 60; ply++ {
		moves := b.GenerateMoves()
		if len(moves) == 0 {
			break
		}
		b.Apply(moves[(ply*7)%len(moves)])
		white := b.PieceBitboards(bitboard.White)
		black := b.PieceBitboards(bitboard.Black)
		if white.All&black.All != 0 {
			t.Fatalf("ply %d: occupancies overlap", ply)
		}
		if bits.OnesCount64(white.Kings) != 1 || bits.OnesCount64(black.Kings) != 1 {
			t.Fatalf("ply %d: king counts %d/%d", ply,
				bits.OnesCount64(white.Kings), bits.OnesCount64(black.Kings))
		}
	}
}

func TestCastlingRightsAreMonotone(t *testing.T) {
	b := mustParse(t, bitboard.FENStartPos)
	prev := b.CastlingRightsMask()
	for ply := 0; ply < 80; ply++ {
		moves := b.GenerateMoves()
		if len(moves) == 0 {
			break
		}
		b.Apply(moves[(ply*3)%len(moves)])
		cur := b.CastlingRightsMask()
		if cur&^prev != 0 {
			t.Fatalf("ply %d: castling rights gained bits %04b -> %04b", ply, prev, cur)
		}
		prev = cur
	}
}

func TestRuyLopezStateAfterFiveMoves(t *testing.T) {
	b := mustParse(t, bitboard.FENStartPos)
	for _, text := range []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5"} {
		applyUCI(t, b, text)
	}
	if b.SideToMove() != bitboard.Black {
		t.Fatalf("side to move: got %v want Black", b.SideToMove())
	}
	if b.InCheck(bitboard.Black) {
		t.Fatal("black should not be in check")
	}
	wantRights := bitboard.CastleWhiteKing | bitboard.CastleWhiteQueen |
		bitboard.CastleBlackKing | bitboard.CastleBlackQueen
	if b.CastlingRightsMask() != wantRights {
		t.Fatalf("castling rights: got %04b want KQkq", b.CastlingRightsMask())
	}
	if b.EnPassantSquare() != bitboard.NoSquare {
		t.Fatalf("en passant: got %v want none", b.EnPassantSquare())
	}
	if b.HalfmoveClock() != 3 {
		t.Fatalf("halfmove clock: got %d want 3", b.HalfmoveClock())
	}
}

func TestKingSideCastleMovesRookAndClearsRights(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	applyUCI(t, b, "e1g1")
	if got := b.PieceAt(5); got != bitboard.WhiteRook {
		t.Fatalf("f1: got %v want white rook", got)
	}
	if got := b.PieceAt(6); got != bitboard.WhiteKing {
		t.Fatalf("g1: got %v want white king", got)
	}
	if b.PieceAt(7) != bitboard.NoPiece || b.PieceAt(4) != bitboard.NoPiece {
		t.Fatal("e1/h1 not vacated")
	}
	if b.CastlingRightsMask()&(bitboard.CastleWhiteKing|bitboard.CastleWhiteQueen) != 0 {
		t.Fatalf("white castling rights not cleared: %04b", b.CastlingRightsMask())
	}
	if b.CastlingRightsMask()&(bitboard.CastleBlackKing|bitboard.CastleBlackQueen) == 0 {
		t.Fatal("black castling rights lost")
	}
}

func TestEnPassantRemovesCapturedPawn(t *testing.T) {
	b := mustParse(t, "8/8/8/3pP3/8/8/8/k6K w - d6 0 1")
	applyUCI(t, b, "e5d6")
	if got := b.PieceAt(43); got != bitboard.WhitePawn { // d6
		t.Fatalf("d6: got %v want white pawn", got)
	}
	if got := b.PieceAt(35); got != bitboard.NoPiece { // d5
		t.Fatalf("d5: got %v want empty", got)
	}
	if black := b.PieceBitboards(bitboard.Black); black.Pawns != 0 {
		t.Fatalf("black pawns remain: %x", black.Pawns)
	}
}

func TestDoublePushSetsAndClearsEnPassant(t *testing.T) {
	b := mustParse(t, bitboard.FENStartPos)
	applyUCI(t, b, "g2g4")
	if got := b.EnPassantSquare(); got.String() != "g3" {
		t.Fatalf("en passant after g2g4: got %v want g3", got)
	}
	applyUCI(t, b, "g8f6")
	if got := b.EnPassantSquare(); got != bitboard.NoSquare {
		t.Fatalf("en passant after reply: got %v want none", got)
	}
}

func TestRookCaptureOnHomeSquareClearsRight(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/6p1/R3K2R b KQkq - 0 1")
	applyUCI(t, b, "g2h1q")
	if b.CastlingRightsMask()&bitboard.CastleWhiteKing != 0 {
		t.Fatalf("white king-side right survives capture on h1: %04b", b.CastlingRightsMask())
	}
	if b.CastlingRightsMask()&bitboard.CastleWhiteQueen == 0 {
		t.Fatal("white queen-side right lost")
	}
}

func TestNullMoveRoundTrip(t *testing.T) {
	b := mustParse(t, "rnbqkbnr/pppppppp/8/8/6P1/8/PPPPPP1P/RNBQKBNR b KQkq g3 0 1")
	fen := b.ToFEN()
	hash := b.Hash()
	st := b.MakeNullMove()
	if b.SideToMove() != bitboard.White {
		t.Fatal("null move did not toggle side")
	}
	if b.EnPassantSquare() != bitboard.NoSquare {
		t.Fatal("null move did not clear en passant")
	}
	b.UnmakeNullMove(st)
	if b.ToFEN() != fen || b.Hash() != hash {
		t.Fatal("null move not restored exactly")
	}
}
