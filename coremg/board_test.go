package coremg_test

import (
	"errors"
	"testing"

	"chess-core/coremg"
	"chess-core/fen"
)

var gen = coremg.NewGenerator(nil)

func mustParse(t testing.TB, s string) *coremg.Board {
	t.Helper()
	b, err := fen.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return b
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := coremg.NewBoard()
	if b.AllOccupancy() != 0 {
		t.Fatalf("occupancy: got %#x want 0", b.AllOccupancy())
	}
	if b.EnPassantSquare() != coremg.NoSquare {
		t.Fatalf("en passant: got %v want none", b.EnPassantSquare())
	}
	if b.SideToMove() != coremg.White || b.CastlingRights() != 0 {
		t.Fatalf("unexpected state: side %v rights %d", b.SideToMove(), b.CastlingRights())
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("empty board invalid: %v", err)
	}
}

func TestSetPieceKeepsOccupancyConsistent(t *testing.T) {
	b := coremg.NewBoard()
	b.SetPiece(coremg.E1, coremg.WhiteKing)
	b.SetPiece(coremg.E8, coremg.BlackKing)
	b.SetPiece(coremg.D4, coremg.WhiteQueen)
	b.SetPiece(coremg.D4, coremg.BlackKnight) // replaces the queen

	if got := b.PieceAt(coremg.D4); got != coremg.BlackKnight {
		t.Fatalf("d4: got %v want black knight", got)
	}
	if b.Pieces(coremg.WhiteQueen) != 0 {
		t.Fatalf("replaced queen still on a bitboard")
	}
	if got, want := b.Occupancy(coremg.White), uint64(1)<<uint(coremg.E1); got != want {
		t.Fatalf("white occupancy: got %#x want %#x", got, want)
	}
	if got := b.Occupancy(coremg.Both); got != b.Occupancy(coremg.White)|b.Occupancy(coremg.Black) {
		t.Fatalf("both occupancy %#x is not the union", got)
	}
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}

	b.ClearSquare(coremg.D4)
	if b.PieceAt(coremg.D4) != coremg.NoPiece || b.Occupancy(coremg.Black) != uint64(1)<<uint(coremg.E8) {
		t.Fatalf("ClearSquare left a piece behind")
	}
	if got := b.KingSquare(coremg.Black); got != coremg.E8 {
		t.Fatalf("black king: got %v want e8", got)
	}
}

func TestBitboardsStartPos(t *testing.T) {
	b := mustParse(t, fen.StartPos)
	w := b.Bitboards(coremg.White)
	if w.Pawns != 0xFF00 || w.Kings != 1<<4 || w.Rooks != 0x81 || w.All != 0xFFFF {
		t.Fatalf("white bitboards: %+v", w)
	}
	bl := b.Bitboards(coremg.Black)
	if bl.Pawns != 0x00FF000000000000 || bl.Queens != 1<<59 || bl.All != 0xFFFF000000000000 {
		t.Fatalf("black bitboards: %+v", bl)
	}
}

func TestValidateRejectsBrokenBoards(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *coremg.Board)
	}{
		{"two kings", func(b *coremg.Board) {
			b.SetPiece(coremg.E1, coremg.WhiteKing)
			b.SetPiece(coremg.E2, coremg.WhiteKing)
		}},
		{"pawn on last rank", func(b *coremg.Board) {
			b.SetPiece(coremg.A8, coremg.WhitePawn)
		}},
		{"en passant on wrong rank", func(b *coremg.Board) {
			b.SetEnPassant(coremg.E3) // white to move needs a sixth-rank target
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := coremg.NewBoard()
			tt.setup(b)
			if err := b.Validate(); !errors.Is(err, coremg.ErrInvalidBoard) {
				t.Fatalf("expected ErrInvalidBoard, got %v", err)
			}
		})
	}
}

func TestSnapshotIsValueCopy(t *testing.T) {
	b := mustParse(t, fen.StartPos)
	saved := *b
	b.SetPiece(coremg.E4, coremg.WhiteQueen)
	if *b == saved {
		t.Fatalf("mutation not visible")
	}
	*b = saved
	if got := fen.Format(b); got != fen.StartPos {
		t.Fatalf("restore: got %q want %q", got, fen.StartPos)
	}
}

func TestSquareText(t *testing.T) {
	if coremg.A1.String() != "a1" || coremg.H8.String() != "h8" || coremg.E4.String() != "e4" {
		t.Fatalf("square names: %s %s %s", coremg.A1, coremg.H8, coremg.E4)
	}
	if coremg.NoSquare.String() != "-" {
		t.Fatalf("NoSquare: got %q", coremg.NoSquare.String())
	}
	sq, err := coremg.ParseSquare("g7")
	if err != nil || sq != coremg.G7 {
		t.Fatalf("ParseSquare(g7): got %v, %v", sq, err)
	}
	if _, err := coremg.ParseSquare("i9"); !errors.Is(err, coremg.ErrInvalidSquare) {
		t.Fatalf("ParseSquare(i9): expected ErrInvalidSquare, got %v", err)
	}
}

func TestPieceEncoding(t *testing.T) {
	for _, c := range []coremg.Color{coremg.White, coremg.Black} {
		for pt := coremg.PieceTypePawn; pt <= coremg.PieceTypeKing; pt++ {
			p := coremg.PieceFromType(c, pt)
			if p.Type() != pt || p.Color() != c {
				t.Fatalf("PieceFromType(%v, %d) = %d: type %d color %v", c, pt, p, p.Type(), p.Color())
			}
			if p > 0xF {
				t.Fatalf("piece %d does not fit four bits", p)
			}
		}
	}
	if coremg.White.Other() != coremg.Black || coremg.Black.Other() != coremg.White {
		t.Fatalf("Other is not an involution")
	}
}
