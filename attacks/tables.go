package attacks

//go:generate go run ../cmd/magicgen -o magics_gen.go

import "fmt"

// Tables holds every precomputed attack set. It is immutable once built and
// may be shared by any number of goroutines.
type Tables struct {
	pawn   [2][64]uint64
	knight [64]uint64
	king   [64]uint64

	bishopMask  [64]uint64
	rookMask    [64]uint64
	bishopMagic [64]uint64
	rookMagic   [64]uint64
	bishopBits  [64]uint8
	rookBits    [64]uint8

	bishopAttacks [64][512]uint64
	rookAttacks   [64][4096]uint64
}

// New builds tables from DefaultMagics. It panics if the baked constants are
// inconsistent, which means magics_gen.go was edited by hand.
func New() *Tables {
	t, err := NewFromMagics(&DefaultMagics)
	if err != nil {
		panic(err)
	}
	return t
}

// NewFromMagics builds tables from the given multipliers. Each multiplier is
// checked against every subset of its square's relevant occupancy while the
// table is filled; a destructive collision returns ErrBadMagic.
func NewFromMagics(m *Magics) (*Tables, error) {
	t := &Tables{}
	for sq := 0; sq < 64; sq++ {
		t.pawn[White][sq] = MaskPawnAttacks(White, sq)
		t.pawn[Black][sq] = MaskPawnAttacks(Black, sq)
		t.knight[sq] = MaskKnightAttacks(sq)
		t.king[sq] = MaskKingAttacks(sq)
	}
	if err := t.initSliders(Bishop, m.Bishop, m.BishopBits); err != nil {
		return nil, err
	}
	if err := t.initSliders(Rook, m.Rook, m.RookBits); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tables) initSliders(s Slider, magics [64]uint64, relevant [64]uint8) error {
	for sq := 0; sq < 64; sq++ {
		mask := OccupancyMask(s, sq)
		n := relevant[sq]
		var table []uint64
		if s == Bishop {
			if n > 9 {
				return fmt.Errorf("%w: bishop square %d needs %d bits", ErrBadMagic, sq, n)
			}
			t.bishopMask[sq], t.bishopMagic[sq], t.bishopBits[sq] = mask, magics[sq], n
			table = t.bishopAttacks[sq][:]
		} else {
			if n > 12 {
				return fmt.Errorf("%w: rook square %d needs %d bits", ErrBadMagic, sq, n)
			}
			t.rookMask[sq], t.rookMagic[sq], t.rookBits[sq] = mask, magics[sq], n
			table = t.rookAttacks[sq][:]
		}

		subsets := 1 << uint(popCount(mask))
		for index := 0; index < subsets; index++ {
			occ := SetOccupancy(index, popCount(mask), mask)
			attacks := AttacksOnTheFly(s, sq, occ)
			slot := magicIndex(occ, magics[sq], n)
			if slot >= uint64(len(table)) {
				return fmt.Errorf("%w: %s square %d slot %d out of range", ErrBadMagic, s, sq, slot)
			}
			if table[slot] != 0 && table[slot] != attacks {
				return fmt.Errorf("%w: %s square %d, magic %#x", ErrBadMagic, s, sq, magics[sq])
			}
			table[slot] = attacks
		}
	}
	return nil
}

// BishopAttacks returns the bishop attack set from sq for the given board occupancy.
func (t *Tables) BishopAttacks(sq int, occupancy uint64) uint64 {
	occupancy &= t.bishopMask[sq]
	occupancy *= t.bishopMagic[sq]
	occupancy >>= 64 - uint(t.bishopBits[sq])
	return t.bishopAttacks[sq][occupancy]
}

// RookAttacks returns the rook attack set from sq for the given board occupancy.
func (t *Tables) RookAttacks(sq int, occupancy uint64) uint64 {
	occupancy &= t.rookMask[sq]
	occupancy *= t.rookMagic[sq]
	occupancy >>= 64 - uint(t.rookBits[sq])
	return t.rookAttacks[sq][occupancy]
}

// QueenAttacks is the union of the bishop and rook lookups.
func (t *Tables) QueenAttacks(sq int, occupancy uint64) uint64 {
	return t.BishopAttacks(sq, occupancy) | t.RookAttacks(sq, occupancy)
}

// PawnAttacks returns the capture squares of a pawn of side on sq.
func (t *Tables) PawnAttacks(side, sq int) uint64 { return t.pawn[side][sq] }

// KnightAttacks returns the knight jumps from sq.
func (t *Tables) KnightAttacks(sq int) uint64 { return t.knight[sq] }

// KingAttacks returns the king steps from sq.
func (t *Tables) KingAttacks(sq int) uint64 { return t.king[sq] }

// Mask returns the relevant occupancy mask used by the slider's lookup on sq.
func (t *Tables) Mask(s Slider, sq int) uint64 {
	if s == Bishop {
		return t.bishopMask[sq]
	}
	return t.rookMask[sq]
}

// Magic returns the multiplier and relevant-bit count of the slider on sq.
func (t *Tables) Magic(s Slider, sq int) (uint64, uint8) {
	if s == Bishop {
		return t.bishopMagic[sq], t.bishopBits[sq]
	}
	return t.rookMagic[sq], t.rookBits[sq]
}

// Verify replays every subset of every relevant mask through the lookup and
// compares it with the ray-walking oracle.
func (t *Tables) Verify() error {
	for _, s := range []Slider{Bishop, Rook} {
		for sq := 0; sq < 64; sq++ {
			mask := t.Mask(s, sq)
			n := popCount(mask)
			for index := 0; index < 1<<uint(n); index++ {
				occ := SetOccupancy(index, n, mask)
				want := AttacksOnTheFly(s, sq, occ)
				var got uint64
				if s == Bishop {
					got = t.BishopAttacks(sq, occ)
				} else {
					got = t.RookAttacks(sq, occ)
				}
				if got != want {
					return fmt.Errorf("%w: %s square %d occupancy %#x: got %#x want %#x",
						ErrBadMagic, s, sq, occ, got, want)
				}
			}
		}
	}
	return nil
}
