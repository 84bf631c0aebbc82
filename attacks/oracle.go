package attacks

import "math/bits"

// BishopAttacksOnTheFly walks the four diagonals from sq. Each ray includes
// the first square present in block and stops there.
// Used only while building and verifying tables.
func BishopAttacksOnTheFly(sq int, block uint64) uint64 {
	rank, file := sq/8, sq%8
	var attacks uint64

	// NE
	for r, f := rank+1, file+1; r <= 7 && f <= 7; r, f = r+1, f+1 {
		bit := uint64(1) << uint(r*8+f)
		attacks |= bit
		if bit&block != 0 {
			break
		}
	}
	// SW
	for r, f := rank-1, file-1; r >= 0 && f >= 0; r, f = r-1, f-1 {
		bit := uint64(1) << uint(r*8+f)
		attacks |= bit
		if bit&block != 0 {
			break
		}
	}
	// NW
	for r, f := rank+1, file-1; r <= 7 && f >= 0; r, f = r+1, f-1 {
		bit := uint64(1) << uint(r*8+f)
		attacks |= bit
		if bit&block != 0 {
			break
		}
	}
	// SE
	for r, f := rank-1, file+1; r >= 0 && f <= 7; r, f = r-1, f+1 {
		bit := uint64(1) << uint(r*8+f)
		attacks |= bit
		if bit&block != 0 {
			break
		}
	}
	return attacks
}

// RookAttacksOnTheFly is the rook counterpart of BishopAttacksOnTheFly.
func RookAttacksOnTheFly(sq int, block uint64) uint64 {
	rank, file := sq/8, sq%8
	var attacks uint64

	for r := rank + 1; r <= 7; r++ {
		bit := uint64(1) << uint(r*8+file)
		attacks |= bit
		if bit&block != 0 {
			break
		}
	}
	for r := rank - 1; r >= 0; r-- {
		bit := uint64(1) << uint(r*8+file)
		attacks |= bit
		if bit&block != 0 {
			break
		}
	}
	for f := file + 1; f <= 7; f++ {
		bit := uint64(1) << uint(rank*8+f)
		attacks |= bit
		if bit&block != 0 {
			break
		}
	}
	for f := file - 1; f >= 0; f-- {
		bit := uint64(1) << uint(rank*8+f)
		attacks |= bit
		if bit&block != 0 {
			break
		}
	}
	return attacks
}

// SetOccupancy returns the index-th subset of mask: bit i of index selects
// the i-th lowest set bit of mask.
func SetOccupancy(index, bitsInMask int, mask uint64) uint64 {
	var occupancy uint64
	for count := 0; count < bitsInMask && mask != 0; count++ {
		sq := bits.TrailingZeros64(mask)
		mask &= mask - 1
		if index&(1<<uint(count)) != 0 {
			occupancy |= 1 << uint(sq)
		}
	}
	return occupancy
}

func popCount(b uint64) int { return bits.OnesCount64(b) }
