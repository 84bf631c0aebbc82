package coremg_test

import (
	"testing"

	"chess-core/coremg"
)

func TestMoveFieldsRoundTrip(t *testing.T) {
	flagSets := []coremg.MoveFlags{
		coremg.FlagNone,
		coremg.FlagCapture,
		coremg.FlagDoublePush,
		coremg.FlagCapture | coremg.FlagEnPassant,
		coremg.FlagCastle,
		coremg.FlagCapture | coremg.FlagDoublePush | coremg.FlagEnPassant | coremg.FlagCastle,
	}
	promos := []coremg.Piece{coremg.NoPiece, coremg.WhiteQueen, coremg.BlackKnight, coremg.BlackRook}
	for from := coremg.A1; from <= coremg.H8; from += 7 {
		for to := coremg.H8; to >= coremg.A1; to -= 5 {
			for p := coremg.WhitePawn; p <= coremg.BlackKing; p++ {
				for _, promo := range promos {
					for _, flags := range flagSets {
						m := coremg.NewMove(from, to, p, promo, flags)
						if m.From() != from || m.To() != to || m.MovedPiece() != p ||
							m.PromotionPiece() != promo || m.Flags() != flags {
							t.Fatalf("NewMove(%v,%v,%d,%d,%#x) decoded as %v,%v,%d,%d,%#x",
								from, to, p, promo, flags,
								m.From(), m.To(), m.MovedPiece(), m.PromotionPiece(), m.Flags())
						}
						if m.IsCapture() != (flags&coremg.FlagCapture != 0) ||
							m.IsDoublePush() != (flags&coremg.FlagDoublePush != 0) ||
							m.IsEnPassant() != (flags&coremg.FlagEnPassant != 0) ||
							m.IsCastle() != (flags&coremg.FlagCastle != 0) {
							t.Fatalf("flag predicates disagree with %#x", flags)
						}
					}
				}
			}
		}
	}
}

func TestMoveBitLayout(t *testing.T) {
	// e7xd8=Q: from 52, to 59, white pawn, white queen, capture bit
	m := coremg.NewMove(coremg.E7, coremg.D8, coremg.WhitePawn, coremg.WhiteQueen, coremg.FlagCapture)
	want := uint32(52) | 59<<6 | 1<<12 | 5<<16 | 1<<20
	if uint32(m) != want {
		t.Fatalf("packed move: got %#x want %#x", uint32(m), want)
	}
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		m    coremg.Move
		want string
	}{
		{coremg.NewMove(coremg.E2, coremg.E4, coremg.WhitePawn, coremg.NoPiece, coremg.FlagDoublePush), "e2e4"},
		{coremg.NewMove(coremg.E7, coremg.E8, coremg.WhitePawn, coremg.WhiteQueen, coremg.FlagNone), "e7e8q"},
		{coremg.NewMove(coremg.B2, coremg.A1, coremg.BlackPawn, coremg.BlackKnight, coremg.FlagCapture), "b2a1n"},
		{coremg.NewMove(coremg.E8, coremg.C8, coremg.BlackKing, coremg.NoPiece, coremg.FlagCastle), "e8c8"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String: got %q want %q", got, tt.want)
		}
	}
}

func TestMoveListOverflowPanics(t *testing.T) {
	var l coremg.MoveList
	m := coremg.NewMove(coremg.A1, coremg.A2, coremg.WhiteRook, coremg.NoPiece, coremg.FlagNone)
	for i := 0; i < coremg.MaxMoves; i++ {
		l.Add(m)
	}
	if l.Len() != coremg.MaxMoves || len(l.Moves()) != coremg.MaxMoves {
		t.Fatalf("len: got %d want %d", l.Len(), coremg.MaxMoves)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on overflow")
		}
	}()
	l.Add(m)
}

func TestMoveListResetAndContains(t *testing.T) {
	var l coremg.MoveList
	a := coremg.NewMove(coremg.G1, coremg.F3, coremg.WhiteKnight, coremg.NoPiece, coremg.FlagNone)
	b := coremg.NewMove(coremg.G1, coremg.H3, coremg.WhiteKnight, coremg.NoPiece, coremg.FlagNone)
	l.Add(a)
	if !l.Contains(a) || l.Contains(b) || l.At(0) != a {
		t.Fatalf("Contains/At mismatch")
	}
	l.Reset()
	if l.Len() != 0 || l.Contains(a) {
		t.Fatalf("Reset left %d moves", l.Len())
	}
}
