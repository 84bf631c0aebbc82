package coremg

// Move encodes a chess move in a 32-bit value.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	movePieceShift   = 12 // 4 bits
	movePromoteShift = 16 // 4 bits
)

// MoveFlags holds the single-bit markers of a Move, already in position.
type MoveFlags uint32

// Move flags
const (
	FlagNone       MoveFlags = 0
	FlagCapture    MoveFlags = 1 << 20
	FlagDoublePush MoveFlags = 1 << 21
	// En passant moves carry FlagCapture as well.
	FlagEnPassant MoveFlags = 1 << 22
	FlagCastle    MoveFlags = 1 << 23

	flagMask = FlagCapture | FlagDoublePush | FlagEnPassant | FlagCastle
)

// NewMove constructs a Move value from components. It does not validate them.
func NewMove(from, to Square, piece, promotion Piece, flags MoveFlags) Move {
	m := uint32(from&0x3F) |
		(uint32(to&0x3F) << moveToShift) |
		(uint32(piece&0xF) << movePieceShift) |
		(uint32(promotion&0xF) << movePromoteShift) |
		uint32(flags&flagMask)
	return Move(m)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }

// MovedPiece returns the piece code that is moved.
func (m Move) MovedPiece() Piece { return Piece((uint32(m) >> movePieceShift) & 0xF) }

// PromotionPiece returns the promotion piece code (or NoPiece if not a promotion).
func (m Move) PromotionPiece() Piece { return Piece((uint32(m) >> movePromoteShift) & 0xF) }

// Flags returns the special move flags.
func (m Move) Flags() MoveFlags { return MoveFlags(m) & flagMask }

// IsCapture reports whether the move removes an enemy piece, en passant included.
func (m Move) IsCapture() bool { return MoveFlags(m)&FlagCapture != 0 }

// IsDoublePush reports a two-square pawn advance.
func (m Move) IsDoublePush() bool { return MoveFlags(m)&FlagDoublePush != 0 }

// IsEnPassant reports an en passant capture.
func (m Move) IsEnPassant() bool { return MoveFlags(m)&FlagEnPassant != 0 }

// IsCastle reports a castling king move; the rook travels with it.
func (m Move) IsCastle() bool { return MoveFlags(m)&FlagCastle != 0 }

var promotionLetters = [...]byte{PieceTypeKnight: 'n', PieceTypeBishop: 'b', PieceTypeRook: 'r', PieceTypeQueen: 'q'}

// String produces the coordinate form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	buf := make([]byte, 0, 5)
	buf = append(buf, m.From().String()...)
	buf = append(buf, m.To().String()...)
	if promo := m.PromotionPiece().Type(); promo >= PieceTypeKnight && promo <= PieceTypeQueen {
		buf = append(buf, promotionLetters[promo])
	}
	return string(buf)
}

// MaxMoves bounds the pseudo-legal moves of any position; the known maximum
// for a reachable position is 218.
const MaxMoves = 256

// MoveList is a fixed-capacity move buffer. The zero value is an empty list.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// Add appends m. It panics when the list is full.
func (l *MoveList) Add(m Move) {
	if l.count >= MaxMoves {
		panic("coremg: move list overflow")
	}
	l.moves[l.count] = m
	l.count++
}

// Len returns the number of moves in the list.
func (l *MoveList) Len() int { return l.count }

// At returns the i-th move.
func (l *MoveList) At(i int) Move { return l.moves[i] }

// Moves returns a view of the stored moves. It is only valid until the next
// Add or Reset.
func (l *MoveList) Moves() []Move { return l.moves[:l.count] }

// Reset empties the list.
func (l *MoveList) Reset() { l.count = 0 }

// Contains reports whether m is in the list.
func (l *MoveList) Contains(m Move) bool {
	for _, x := range l.moves[:l.count] {
		if x == m {
			return true
		}
	}
	return false
}
