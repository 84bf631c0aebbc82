package attacks

// Squares are numbered little-endian rank-file: a1 = 0, h1 = 7, a8 = 56, h8 = 63.
// A shift by +1 moves one file towards H, +8 one rank towards the eighth.

// File masks used to cut shifts that would wrap around the board edge.
const (
	NotAFile  uint64 = 0xFEFEFEFEFEFEFEFE
	NotHFile  uint64 = 0x7F7F7F7F7F7F7F7F
	NotABFile uint64 = 0xFCFCFCFCFCFCFCFC
	NotGHFile uint64 = 0x3F3F3F3F3F3F3F3F
)

// Sides, matching coremg.White and coremg.Black.
const (
	White = 0
	Black = 1
)

// MaskPawnAttacks returns the squares a pawn of the given side attacks from sq.
func MaskPawnAttacks(side, sq int) uint64 {
	b := uint64(1) << uint(sq)
	if side == White {
		return (b<<9)&NotAFile | (b<<7)&NotHFile
	}
	return (b>>7)&NotAFile | (b>>9)&NotHFile
}

// MaskKnightAttacks returns the knight jumps from sq on an empty board.
func MaskKnightAttacks(sq int) uint64 {
	b := uint64(1) << uint(sq)
	var attacks uint64
	attacks |= (b << 17) & NotAFile
	attacks |= (b << 15) & NotHFile
	attacks |= (b << 10) & NotABFile
	attacks |= (b << 6) & NotGHFile
	attacks |= (b >> 17) & NotHFile
	attacks |= (b >> 15) & NotAFile
	attacks |= (b >> 10) & NotGHFile
	attacks |= (b >> 6) & NotABFile
	return attacks
}

// MaskKingAttacks returns the king steps from sq on an empty board.
func MaskKingAttacks(sq int) uint64 {
	b := uint64(1) << uint(sq)
	var attacks uint64
	attacks |= b << 8
	attacks |= b >> 8
	attacks |= (b << 9) & NotAFile
	attacks |= (b << 7) & NotHFile
	attacks |= (b >> 7) & NotAFile
	attacks |= (b >> 9) & NotHFile
	attacks |= (b << 1) & NotAFile
	attacks |= (b >> 1) & NotHFile
	return attacks
}

// MaskBishopOccupancy returns the relevant occupancy for a bishop on sq:
// every diagonal square that can block it, board edges excluded.
func MaskBishopOccupancy(sq int) uint64 {
	rank, file := sq/8, sq%8
	var mask uint64
	for r, f := rank+1, file+1; r <= 6 && f <= 6; r, f = r+1, f+1 {
		mask |= 1 << uint(r*8+f)
	}
	for r, f := rank+1, file-1; r <= 6 && f >= 1; r, f = r+1, f-1 {
		mask |= 1 << uint(r*8+f)
	}
	for r, f := rank-1, file+1; r >= 1 && f <= 6; r, f = r-1, f+1 {
		mask |= 1 << uint(r*8+f)
	}
	for r, f := rank-1, file-1; r >= 1 && f >= 1; r, f = r-1, f-1 {
		mask |= 1 << uint(r*8+f)
	}
	return mask
}

// MaskRookOccupancy returns the relevant occupancy for a rook on sq.
func MaskRookOccupancy(sq int) uint64 {
	rank, file := sq/8, sq%8
	var mask uint64
	// North (exclude last rank)
	for r := rank + 1; r <= 6; r++ {
		mask |= 1 << uint(r*8+file)
	}
	// South (exclude rank 0)
	for r := rank - 1; r >= 1; r-- {
		mask |= 1 << uint(r*8+file)
	}
	// East (exclude file 7)
	for f := file + 1; f <= 6; f++ {
		mask |= 1 << uint(rank*8+f)
	}
	// West (exclude file 0)
	for f := file - 1; f >= 1; f-- {
		mask |= 1 << uint(rank*8+f)
	}
	return mask
}
