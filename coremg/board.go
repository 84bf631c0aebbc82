package coremg

import (
	"errors"
	"fmt"
	"math/bits"
)

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone || pt > PieceTypeKing {
		return NoPiece
	}
	if color == Black {
		return Piece(pt) | 8
	}
	return Piece(pt)
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
	// Both indexes the combined occupancy.
	Both Color = 2
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "both"
}

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ

	CastlingAll = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
)

// Square represents a board position (0-63), a1 = 0, h1 = 7, a8 = 56.
type Square int

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const NoSquare Square = -1

// File returns 0 for the a-file through 7 for the h-file.
func (sq Square) File() int { return int(sq) % 8 }

// Rank returns 0 for the first rank through 7 for the eighth.
func (sq Square) Rank() int { return int(sq) / 8 }

// String returns algebraic coordinates ("e4"), or "-" for NoSquare.
func (sq Square) String() string {
	if sq < A1 || sq > H8 {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// ErrInvalidSquare is returned by ParseSquare.
var ErrInvalidSquare = errors.New("invalid algebraic square")

// ParseSquare converts algebraic coordinates such as "e4" into a Square.
func ParseSquare(alg string) (Square, error) {
	if len(alg) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, alg)
	}
	file := alg[0]
	rank := alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, alg)
	}
	return Square(int(file-'a') + int(rank-'1')*8), nil
}

// Bitboards exposes the per-piece bitboards for a color.
type Bitboards struct {
	Pawns   uint64
	Knights uint64
	Bishops uint64
	Rooks   uint64
	Queens  uint64
	Kings   uint64
	All     uint64
}

// Board is the complete position state needed for move generation. It is a
// plain comparable value: copying it takes a snapshot and assigning the copy
// back restores it.
type Board struct {
	// pieces[color][type-1]
	pieces [2][6]uint64

	// occupancy[White], occupancy[Black], occupancy[Both]
	occupancy [3]uint64

	sideToMove Color

	// En passant target square (if a pawn moved two steps last move, otherwise NoSquare)
	enPassantSquare Square

	castlingRights CastlingRights
}

// NewBoard returns an empty board with White to move, no castling rights and
// no en passant target.
func NewBoard() *Board {
	return &Board{enPassantSquare: NoSquare}
}

// ErrInvalidBoard is wrapped by every error Validate returns.
var ErrInvalidBoard = errors.New("invalid board")

// ==========================
// Bitboard helpers
// ==========================

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// updateOccupancy recomputes all three occupancies from the piece bitboards.
func (b *Board) updateOccupancy() {
	for c := White; c <= Black; c++ {
		p := &b.pieces[c]
		b.occupancy[c] = p[0] | p[1] | p[2] | p[3] | p[4] | p[5]
	}
	b.occupancy[Both] = b.occupancy[White] | b.occupancy[Black]
}

// ==========================
// Read access
// ==========================

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// CastlingRights returns the castling rights still held by both sides.
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }

// AllOccupancy returns a bitboard of all occupied squares.
func (b *Board) AllOccupancy() uint64 { return b.occupancy[Both] }

// Occupancy returns the occupancy bitboard of White, Black or Both.
func (b *Board) Occupancy(c Color) uint64 { return b.occupancy[c] }

// Pieces returns the bitboard of the given concrete piece.
func (b *Board) Pieces(p Piece) uint64 {
	pt := p.Type()
	if pt == PieceTypeNone || pt > PieceTypeKing {
		return 0
	}
	return b.pieces[p.Color()][pt-1]
}

// Bitboards returns the per-piece bitboards for the requested side.
func (b *Board) Bitboards(color Color) Bitboards {
	p := &b.pieces[color]
	return Bitboards{
		Pawns:   p[PieceTypePawn-1],
		Knights: p[PieceTypeKnight-1],
		Bishops: p[PieceTypeBishop-1],
		Rooks:   p[PieceTypeRook-1],
		Queens:  p[PieceTypeQueen-1],
		Kings:   p[PieceTypeKing-1],
		All:     b.occupancy[color],
	}
}

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece {
	bit := bb(sq)
	if b.occupancy[Both]&bit == 0 {
		return NoPiece
	}
	for c := White; c <= Black; c++ {
		if b.occupancy[c]&bit == 0 {
			continue
		}
		for i, set := range b.pieces[c] {
			if set&bit != 0 {
				return PieceFromType(c, PieceType(i+1))
			}
		}
	}
	return NoPiece
}

// KingSquare returns the square of the given side's king, or NoSquare if it
// has none.
func (b *Board) KingSquare(c Color) Square {
	kings := b.pieces[c][PieceTypeKing-1]
	if kings == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(kings))
}

// ==========================
// Construction
// ==========================

// SetPiece sets a piece on a square, replacing any existing piece. Setting
// NoPiece clears the square.
func (b *Board) SetPiece(sq Square, p Piece) {
	bit := bb(sq)
	for c := range b.pieces {
		for i := range b.pieces[c] {
			b.pieces[c][i] &^= bit
		}
	}
	if pt := p.Type(); pt != PieceTypeNone && pt <= PieceTypeKing {
		b.pieces[p.Color()][pt-1] |= bit
	}
	b.updateOccupancy()
}

// ClearSquare removes any piece from the given square.
func (b *Board) ClearSquare(sq Square) { b.SetPiece(sq, NoPiece) }

// SetSideToMove updates the side to play. Normal move making toggles automatically.
func (b *Board) SetSideToMove(c Color) { b.sideToMove = c }

// SetEnPassant sets the en passant target square (NoSquare for none).
func (b *Board) SetEnPassant(sq Square) { b.enPassantSquare = sq }

// SetCastlingRights replaces the castling rights.
func (b *Board) SetCastlingRights(cr CastlingRights) { b.castlingRights = cr & CastlingAll }

// Validate checks that no square holds two pieces, that the occupancies match
// the piece bitboards, and that the side to move, king count, pawn ranks and
// en passant target describe a reachable kind of position.
func (b *Board) Validate() error {
	var seen uint64
	var occ [3]uint64
	for c := White; c <= Black; c++ {
		for i, set := range b.pieces[c] {
			if seen&set != 0 {
				sq := Square(bits.TrailingZeros64(seen & set))
				return fmt.Errorf("%w: square %s holds two pieces", ErrInvalidBoard, sq)
			}
			seen |= set
			occ[c] |= set
			if PieceType(i+1) == PieceTypeKing && bits.OnesCount64(set) > 1 {
				return fmt.Errorf("%w: %s has %d kings", ErrInvalidBoard, c, bits.OnesCount64(set))
			}
		}
	}
	occ[Both] = occ[White] | occ[Black]
	if occ != b.occupancy {
		return fmt.Errorf("%w: occupancy out of sync with piece bitboards", ErrInvalidBoard)
	}
	const backRanks = 0xFF000000000000FF
	if (b.pieces[White][0]|b.pieces[Black][0])&backRanks != 0 {
		return fmt.Errorf("%w: pawn on first or last rank", ErrInvalidBoard)
	}
	if b.sideToMove != White && b.sideToMove != Black {
		return fmt.Errorf("%w: side to move %d", ErrInvalidBoard, b.sideToMove)
	}
	if ep := b.enPassantSquare; ep != NoSquare {
		want := 5
		if b.sideToMove == Black {
			want = 2
		}
		if ep < A1 || ep > H8 || ep.Rank() != want {
			return fmt.Errorf("%w: en passant square %s with %s to move", ErrInvalidBoard, ep, b.sideToMove)
		}
	}
	return nil
}
