package coremg

// MoveMode selects which moves MakeMove accepts.
type MoveMode uint8

const (
	// AllMoves applies any pseudo-legal move.
	AllMoves MoveMode = iota
	// CapturesOnly refuses non-captures without touching the board.
	CapturesOnly
)

// castlingRightsMask[sq] is ANDed into the rights for both the source and
// the destination of every move. Touching a king or rook home square drops
// the rights that depend on it.
var castlingRightsMask = [64]CastlingRights{
	13, 15, 15, 15, 12, 15, 15, 14,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	7, 15, 15, 15, 3, 15, 15, 11,
}

// MakeMove applies a pseudo-legal move produced by GenerateMoves for the
// current position. It returns false, leaving the board exactly as it was,
// when the move would leave the mover's king attacked (or the mover has no
// king), or when mode is CapturesOnly and m is not a capture.
func (g *Generator) MakeMove(b *Board, m Move, mode MoveMode) bool {
	if mode == CapturesOnly {
		if !m.IsCapture() {
			return false
		}
		return g.MakeMove(b, m, AllMoves)
	}

	saved := *b

	from := m.From()
	to := m.To()
	fromBB := bb(from)
	toBB := bb(to)
	us := b.sideToMove
	them := us.Other()
	own := &b.pieces[us]
	opp := &b.pieces[them]

	moved := m.MovedPiece().Type()
	own[moved-1] &^= fromBB
	own[moved-1] |= toBB

	if m.IsCapture() {
		for i := range opp {
			if opp[i]&toBB != 0 {
				opp[i] &^= toBB
				break
			}
		}
	}

	if promo := m.PromotionPiece(); promo != NoPiece {
		own[moved-1] &^= toBB
		own[promo.Type()-1] |= toBB
	}

	// The captured pawn stands behind the target square.
	if m.IsEnPassant() {
		if us == White {
			opp[PieceTypePawn-1] &^= bb(to - 8)
		} else {
			opp[PieceTypePawn-1] &^= bb(to + 8)
		}
	}

	b.enPassantSquare = NoSquare
	if m.IsDoublePush() {
		if us == White {
			b.enPassantSquare = to - 8
		} else {
			b.enPassantSquare = to + 8
		}
	}

	if m.IsCastle() {
		var rookFrom, rookTo Square
		switch to {
		case G1:
			rookFrom, rookTo = H1, F1
		case C1:
			rookFrom, rookTo = A1, D1
		case G8:
			rookFrom, rookTo = H8, F8
		case C8:
			rookFrom, rookTo = A8, D8
		}
		if rookFrom != rookTo {
			own[PieceTypeRook-1] &^= bb(rookFrom)
			own[PieceTypeRook-1] |= bb(rookTo)
		}
	}

	b.castlingRights &= castlingRightsMask[from]
	b.castlingRights &= castlingRightsMask[to]

	b.updateOccupancy()
	b.sideToMove = them

	ks := b.KingSquare(us)
	if ks == NoSquare || g.IsSquareAttacked(b, ks, them) {
		*b = saved
		return false
	}
	return true
}

// PushMove makes m and, if it was accepted, pushes the prior position onto
// stack for PopMove. On rejection the board and stack are unchanged.
func (g *Generator) PushMove(b *Board, m Move, stack *[]Board) bool {
	saved := *b
	if !g.MakeMove(b, m, AllMoves) {
		return false
	}
	*stack = append(*stack, saved)
	return true
}

// PopMove restores the position saved by the last PushMove.
// It panics if the stack is empty.
func (g *Generator) PopMove(b *Board, stack *[]Board) {
	n := len(*stack)
	if n == 0 {
		panic("coremg: PopMove: empty stack")
	}
	*b = (*stack)[n-1]
	*stack = (*stack)[:n-1]
}
