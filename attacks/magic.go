package attacks

import (
	"errors"
	"fmt"
	"math/bits"
)

// Slider selects the sliding piece family of a magic table.
type Slider uint8

const (
	Rook Slider = iota
	Bishop
)

func (s Slider) String() string {
	if s == Bishop {
		return "bishop"
	}
	return "rook"
}

// DefaultSeed is the xorshift state the baked multipliers were searched with.
const DefaultSeed uint32 = 1804289383

// DefaultMaxTrials bounds the candidates tried per square before giving up.
const DefaultMaxTrials = 100_000_000

var (
	// ErrMagicNotFound is returned when no multiplier survives maxTrials candidates.
	ErrMagicNotFound = errors.New("attacks: magic number not found")
	// ErrBadMagic is returned when a multiplier maps two subsets with different
	// attack sets to the same slot.
	ErrBadMagic = errors.New("attacks: magic number collides")
)

// Magics is the output of the offline search: one multiplier and one
// relevant-bit count per square for each slider.
type Magics struct {
	Rook       [64]uint64
	RookBits   [64]uint8
	Bishop     [64]uint64
	BishopBits [64]uint8
}

// Rand is the xorshift32 generator used by the magic search.
type Rand struct {
	state uint32
}

// NewRand returns a generator seeded with seed. A zero seed would never
// leave zero, so it is replaced by DefaultSeed.
func NewRand(seed uint32) *Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Rand{state: seed}
}

// Uint32 advances the generator.
func (r *Rand) Uint32() uint32 {
	n := r.state
	n ^= n << 13
	n ^= n >> 17
	n ^= n << 5
	r.state = n
	return n
}

// Uint64 assembles a 64-bit value from the low 16 bits of four draws.
func (r *Rand) Uint64() uint64 {
	n1 := uint64(r.Uint32()) & 0xFFFF
	n2 := uint64(r.Uint32()) & 0xFFFF
	n3 := uint64(r.Uint32()) & 0xFFFF
	n4 := uint64(r.Uint32()) & 0xFFFF
	return n1 | n2<<16 | n3<<32 | n4<<48
}

// MagicCandidate returns a sparse 64-bit value; sparse multipliers are far
// more likely to hash well.
func (r *Rand) MagicCandidate() uint64 {
	return r.Uint64() & r.Uint64() & r.Uint64()
}

// OccupancyMask returns the relevant occupancy of the slider on sq.
func OccupancyMask(s Slider, sq int) uint64 {
	if s == Bishop {
		return MaskBishopOccupancy(sq)
	}
	return MaskRookOccupancy(sq)
}

// AttacksOnTheFly dispatches to the slow ray walker of the slider.
func AttacksOnTheFly(s Slider, sq int, block uint64) uint64 {
	if s == Bishop {
		return BishopAttacksOnTheFly(sq, block)
	}
	return RookAttacksOnTheFly(sq, block)
}

// magicIndex hashes an already masked occupancy.
func magicIndex(occ, magic uint64, relevantBits uint8) uint64 {
	return (occ * magic) >> (64 - uint(relevantBits))
}

// FindMagic searches a multiplier for sq that sends every subset of the
// slider's relevant occupancy to a slot in a table of 1<<relevantBits entries
// without two different attack sets sharing a slot.
func FindMagic(rng *Rand, sq int, relevantBits uint8, s Slider, maxTrials int) (uint64, error) {
	mask := OccupancyMask(s, sq)
	n := 1 << uint(relevantBits)

	occupancies := make([]uint64, n)
	attacks := make([]uint64, n)
	for index := 0; index < n; index++ {
		occupancies[index] = SetOccupancy(index, int(relevantBits), mask)
		attacks[index] = AttacksOnTheFly(s, sq, occupancies[index])
	}

	used := make([]uint64, n)
	for trial := 0; trial < maxTrials; trial++ {
		magic := rng.MagicCandidate()

		// Too few high bits in mask*magic almost never hashes; skip early.
		if bits.OnesCount64((mask*magic)&0xFF00000000000000) < 6 {
			continue
		}

		for i := range used {
			used[i] = 0
		}
		fail := false
		for index := 0; index < n && !fail; index++ {
			slot := magicIndex(occupancies[index], magic, relevantBits)
			// Slider attack sets are never empty, so zero marks a free slot.
			if used[slot] == 0 {
				used[slot] = attacks[index]
			} else if used[slot] != attacks[index] {
				fail = true
			}
		}
		if !fail {
			return magic, nil
		}
	}
	return 0, fmt.Errorf("%w: %s on square %d after %d trials", ErrMagicNotFound, s, sq, maxTrials)
}

// SearchMagics runs FindMagic for every rook square and then every bishop
// square from a single generator seeded with seed. The result depends only
// on the seed.
func SearchMagics(seed uint32, maxTrials int) (Magics, error) {
	var m Magics
	rng := NewRand(seed)
	for sq := 0; sq < 64; sq++ {
		relevant := uint8(bits.OnesCount64(MaskRookOccupancy(sq)))
		magic, err := FindMagic(rng, sq, relevant, Rook, maxTrials)
		if err != nil {
			return Magics{}, err
		}
		m.Rook[sq], m.RookBits[sq] = magic, relevant
	}
	for sq := 0; sq < 64; sq++ {
		relevant := uint8(bits.OnesCount64(MaskBishopOccupancy(sq)))
		magic, err := FindMagic(rng, sq, relevant, Bishop, maxTrials)
		if err != nil {
			return Magics{}, err
		}
		m.Bishop[sq], m.BishopBits[sq] = magic, relevant
	}
	return m, nil
}
