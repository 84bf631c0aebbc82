package attacks_test

import (
	"math/bits"
	"testing"

	"chess-core/attacks"
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// every target must stay within maxStep files and ranks of the origin
func checkNoWrap(t *testing.T, name string, sq int, mask uint64, maxStep int) {
	t.Helper()
	for m := mask; m != 0; m &= m - 1 {
		to := bits.TrailingZeros64(m)
		df := abs(to%8 - sq%8)
		dr := abs(to/8 - sq/8)
		if df > maxStep || dr > maxStep {
			t.Fatalf("%s from %d reaches %d (file delta %d, rank delta %d)", name, sq, to, df, dr)
		}
	}
}

func TestLeaperMasksDoNotWrap(t *testing.T) {
	for sq := 0; sq < 64; sq++ {
		checkNoWrap(t, "knight", sq, attacks.MaskKnightAttacks(sq), 2)
		checkNoWrap(t, "king", sq, attacks.MaskKingAttacks(sq), 1)
		checkNoWrap(t, "white pawn", sq, attacks.MaskPawnAttacks(attacks.White, sq), 1)
		checkNoWrap(t, "black pawn", sq, attacks.MaskPawnAttacks(attacks.Black, sq), 1)
	}
}

func TestLeaperMaskCounts(t *testing.T) {
	tests := []struct {
		name string
		mask uint64
		want int
	}{
		{"knight a1", attacks.MaskKnightAttacks(0), 2},
		{"knight h8", attacks.MaskKnightAttacks(63), 2},
		{"knight b1", attacks.MaskKnightAttacks(1), 3},
		{"knight d4", attacks.MaskKnightAttacks(27), 8},
		{"knight g7", attacks.MaskKnightAttacks(54), 4},
		{"king a1", attacks.MaskKingAttacks(0), 3},
		{"king h4", attacks.MaskKingAttacks(31), 5},
		{"king e4", attacks.MaskKingAttacks(28), 8},
		{"white pawn a2", attacks.MaskPawnAttacks(attacks.White, 8), 1},
		{"white pawn e2", attacks.MaskPawnAttacks(attacks.White, 12), 2},
		{"white pawn e8", attacks.MaskPawnAttacks(attacks.White, 60), 0},
		{"black pawn h7", attacks.MaskPawnAttacks(attacks.Black, 55), 1},
		{"black pawn e1", attacks.MaskPawnAttacks(attacks.Black, 4), 0},
	}
	for _, tt := range tests {
		if got := bits.OnesCount64(tt.mask); got != tt.want {
			t.Errorf("%s: got %d squares want %d", tt.name, got, tt.want)
		}
	}
}

func TestPawnAttackDirections(t *testing.T) {
	// e4 = 28: white attacks d5/f5, black attacks d3/f3
	if got, want := attacks.MaskPawnAttacks(attacks.White, 28), uint64(1)<<35|uint64(1)<<37; got != want {
		t.Fatalf("white pawn e4: got %#x want %#x", got, want)
	}
	if got, want := attacks.MaskPawnAttacks(attacks.Black, 28), uint64(1)<<19|uint64(1)<<21; got != want {
		t.Fatalf("black pawn e4: got %#x want %#x", got, want)
	}
}

func TestRelevantOccupancyBits(t *testing.T) {
	for sq := 0; sq < 64; sq++ {
		if got := bits.OnesCount64(attacks.MaskRookOccupancy(sq)); uint8(got) != attacks.DefaultMagics.RookBits[sq] {
			t.Fatalf("rook mask bits on %d: got %d want %d", sq, got, attacks.DefaultMagics.RookBits[sq])
		}
		if got := bits.OnesCount64(attacks.MaskBishopOccupancy(sq)); uint8(got) != attacks.DefaultMagics.BishopBits[sq] {
			t.Fatalf("bishop mask bits on %d: got %d want %d", sq, got, attacks.DefaultMagics.BishopBits[sq])
		}
	}
	if got := bits.OnesCount64(attacks.MaskRookOccupancy(0)); got != 12 {
		t.Fatalf("rook a1 relevant bits: got %d want 12", got)
	}
	if got := bits.OnesCount64(attacks.MaskBishopOccupancy(27)); got != 9 {
		t.Fatalf("bishop d4 relevant bits: got %d want 9", got)
	}
	// masks never contain edge squares beyond the ray, nor the origin
	for sq := 0; sq < 64; sq++ {
		if attacks.MaskRookOccupancy(sq)&(1<<uint(sq)) != 0 || attacks.MaskBishopOccupancy(sq)&(1<<uint(sq)) != 0 {
			t.Fatalf("mask on %d contains its origin", sq)
		}
	}
}

func TestOnTheFlyStopsAtFirstBlocker(t *testing.T) {
	// rook a1, blocker a4 (24): a2, a3, a4 on the file plus the whole first rank
	got := attacks.RookAttacksOnTheFly(0, uint64(1)<<24)
	want := uint64(1)<<8 | uint64(1)<<16 | uint64(1)<<24 | 0xFE
	if got != want {
		t.Fatalf("rook a1 blocked at a4: got %#x want %#x", got, want)
	}
	// bishop c1 (2), blocker e3 (20): b2, a3, d2, e3
	got = attacks.BishopAttacksOnTheFly(2, uint64(1)<<20)
	want = uint64(1)<<9 | uint64(1)<<16 | uint64(1)<<11 | uint64(1)<<20
	if got != want {
		t.Fatalf("bishop c1 blocked at e3: got %#x want %#x", got, want)
	}
}

func TestSetOccupancyEnumeratesSubsets(t *testing.T) {
	mask := attacks.MaskBishopOccupancy(27)
	n := bits.OnesCount64(mask)
	seen := make(map[uint64]bool, 1<<uint(n))
	for index := 0; index < 1<<uint(n); index++ {
		occ := attacks.SetOccupancy(index, n, mask)
		if occ&^mask != 0 {
			t.Fatalf("subset %d escapes mask: %#x", index, occ)
		}
		seen[occ] = true
	}
	if len(seen) != 1<<uint(n) {
		t.Fatalf("distinct subsets: got %d want %d", len(seen), 1<<uint(n))
	}
}
