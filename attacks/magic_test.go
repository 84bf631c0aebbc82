package attacks_test

import (
	"errors"
	"math/bits"
	"testing"

	"chess-core/attacks"
)

var tables = attacks.New()

func TestTablesMatchOracleExhaustive(t *testing.T) {
	if err := tables.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestQueenIsUnionOfSliders(t *testing.T) {
	occ := uint64(0x0000_1824_0042_8100)
	for sq := 0; sq < 64; sq++ {
		want := attacks.BishopAttacksOnTheFly(sq, occ) | attacks.RookAttacksOnTheFly(sq, occ)
		if got := tables.QueenAttacks(sq, occ); got != want {
			t.Fatalf("queen on %d: got %#x want %#x", sq, got, want)
		}
	}
}

func TestLookupIgnoresIrrelevantOccupancy(t *testing.T) {
	// edge squares and the origin never change the attack set
	for sq := 0; sq < 64; sq++ {
		full := ^uint64(0)
		if got, want := tables.RookAttacks(sq, full), attacks.RookAttacksOnTheFly(sq, full); got != want {
			t.Fatalf("rook on %d, full board: got %#x want %#x", sq, got, want)
		}
		if got, want := tables.BishopAttacks(sq, 0), attacks.BishopAttacksOnTheFly(sq, 0); got != want {
			t.Fatalf("bishop on %d, empty board: got %#x want %#x", sq, got, want)
		}
	}
}

func TestRandIsDeterministic(t *testing.T) {
	r := attacks.NewRand(attacks.DefaultSeed)
	if got := r.Uint32(); got != 1741896308 {
		t.Fatalf("first draw: got %d want %d", got, 1741896308)
	}
	a, b := attacks.NewRand(7), attacks.NewRand(7)
	for i := 0; i < 100; i++ {
		if x, y := a.MagicCandidate(), b.MagicCandidate(); x != y {
			t.Fatalf("draw %d differs: %#x vs %#x", i, x, y)
		}
	}
	z := attacks.NewRand(0)
	d := attacks.NewRand(attacks.DefaultSeed)
	if z.Uint64() != d.Uint64() {
		t.Fatalf("zero seed should fall back to DefaultSeed")
	}
}

func TestFindMagicReproducesBakedRookMagics(t *testing.T) {
	// The search visits rook squares first, so the leading squares can be
	// replayed from a fresh generator.
	rng := attacks.NewRand(attacks.DefaultSeed)
	for sq := 0; sq < 4; sq++ {
		relevant := uint8(bits.OnesCount64(attacks.MaskRookOccupancy(sq)))
		magic, err := attacks.FindMagic(rng, sq, relevant, attacks.Rook, attacks.DefaultMaxTrials)
		if err != nil {
			t.Fatalf("FindMagic rook %d: %v", sq, err)
		}
		if magic != attacks.DefaultMagics.Rook[sq] {
			t.Fatalf("rook magic %d: got %#x want %#x", sq, magic, attacks.DefaultMagics.Rook[sq])
		}
	}
}

func TestSearchMagicsReproducesDefaults(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full magic search in short mode")
	}
	m, err := attacks.SearchMagics(attacks.DefaultSeed, attacks.DefaultMaxTrials)
	if err != nil {
		t.Fatalf("SearchMagics: %v", err)
	}
	if m != attacks.DefaultMagics {
		t.Fatalf("search output differs from baked constants; rerun go generate ./attacks")
	}
}

func TestFreshMagicsBuildValidTables(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full magic search in short mode")
	}
	m, err := attacks.SearchMagics(12345, attacks.DefaultMaxTrials)
	if err != nil {
		t.Fatalf("SearchMagics: %v", err)
	}
	tb, err := attacks.NewFromMagics(&m)
	if err != nil {
		t.Fatalf("NewFromMagics: %v", err)
	}
	if err := tb.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestFindMagicGivesUp(t *testing.T) {
	rng := attacks.NewRand(attacks.DefaultSeed)
	_, err := attacks.FindMagic(rng, 0, 12, attacks.Rook, 0)
	if !errors.Is(err, attacks.ErrMagicNotFound) {
		t.Fatalf("expected ErrMagicNotFound, got %v", err)
	}
}

func TestNewFromMagicsRejectsCollision(t *testing.T) {
	m := attacks.DefaultMagics
	m.Rook[0] = 1
	if _, err := attacks.NewFromMagics(&m); !errors.Is(err, attacks.ErrBadMagic) {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}

	m = attacks.DefaultMagics
	m.BishopBits[27] = 12
	if _, err := attacks.NewFromMagics(&m); !errors.Is(err, attacks.ErrBadMagic) {
		t.Fatalf("expected ErrBadMagic for oversized bishop table, got %v", err)
	}
}

func TestMagicAccessors(t *testing.T) {
	magic, n := tables.Magic(attacks.Rook, 0)
	if magic != attacks.DefaultMagics.Rook[0] || n != 12 {
		t.Fatalf("rook a1 magic: got %#x/%d", magic, n)
	}
	if tables.Mask(attacks.Bishop, 27) != attacks.MaskBishopOccupancy(27) {
		t.Fatalf("bishop d4 mask mismatch")
	}
	if tables.KnightAttacks(27) != attacks.MaskKnightAttacks(27) || tables.KingAttacks(0) != attacks.MaskKingAttacks(0) {
		t.Fatalf("leaper tables differ from masks")
	}
	if tables.PawnAttacks(attacks.Black, 28) != attacks.MaskPawnAttacks(attacks.Black, 28) {
		t.Fatalf("pawn table differs from mask")
	}
}
