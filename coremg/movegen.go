package coremg

import "chess-core/attacks"

// Generator produces and applies moves using a shared set of attack tables.
// It holds no mutable state and may be used from any number of goroutines,
// each working on its own Board.
type Generator struct {
	t *attacks.Tables
}

// NewGenerator returns a generator backed by t. A nil t builds tables from
// the baked magic numbers.
func NewGenerator(t *attacks.Tables) *Generator {
	if t == nil {
		t = attacks.New()
	}
	return &Generator{t: t}
}

// Tables returns the attack tables the generator reads.
func (g *Generator) Tables() *attacks.Tables { return g.t }

// ==========================
// Attack queries
// ==========================

// IsSquareAttacked reports whether the given square is attacked by the given color.
func (g *Generator) IsSquareAttacked(b *Board, sq Square, by Color) bool {
	s := int(sq)
	p := &b.pieces[by]
	occ := b.occupancy[Both]

	// Pawn attacks via reverse mask
	if g.t.PawnAttacks(int(by.Other()), s)&p[PieceTypePawn-1] != 0 {
		return true
	}
	if g.t.KnightAttacks(s)&p[PieceTypeKnight-1] != 0 {
		return true
	}
	if g.t.KingAttacks(s)&p[PieceTypeKing-1] != 0 {
		return true
	}
	queens := p[PieceTypeQueen-1]
	if g.t.BishopAttacks(s, occ)&(p[PieceTypeBishop-1]|queens) != 0 {
		return true
	}
	return g.t.RookAttacks(s, occ)&(p[PieceTypeRook-1]|queens) != 0
}

// InCheck reports whether the specified color's king is currently in check.
// A side without a king is never in check.
func (g *Generator) InCheck(b *Board, color Color) bool {
	ks := b.KingSquare(color)
	if ks == NoSquare {
		return false
	}
	return g.IsSquareAttacked(b, ks, color.Other())
}

// ==========================
// Generation
// ==========================

// GenerateMoves resets list and fills it with every pseudo-legal move of the
// side to move. Moves may still leave the mover's own king attacked; MakeMove
// rejects those.
func (g *Generator) GenerateMoves(b *Board, list *MoveList) {
	list.Reset()
	g.generate(b, list, false)
}

// GenerateCaptures resets list and fills it with the capturing subset of
// GenerateMoves, en passant and capturing promotions included.
func (g *Generator) GenerateCaptures(b *Board, list *MoveList) {
	list.Reset()
	g.generate(b, list, true)
}

func (g *Generator) generate(b *Board, list *MoveList, capturesOnly bool) {
	us := b.sideToMove
	them := us.Other()
	own := b.occupancy[us]
	opp := b.occupancy[them]
	all := b.occupancy[Both]

	g.pawnMoves(b, list, capturesOnly)

	// Leapers and sliders share the target classification.
	targetMask := ^own
	if capturesOnly {
		targetMask = opp
	}
	for pt := PieceTypeKnight; pt <= PieceTypeKing; pt++ {
		piece := PieceFromType(us, pt)
		for set := b.pieces[us][pt-1]; set != 0; {
			from := popLSB(&set)
			var targets uint64
			switch pt {
			case PieceTypeKnight:
				targets = g.t.KnightAttacks(from)
			case PieceTypeBishop:
				targets = g.t.BishopAttacks(from, all)
			case PieceTypeRook:
				targets = g.t.RookAttacks(from, all)
			case PieceTypeQueen:
				targets = g.t.QueenAttacks(from, all)
			case PieceTypeKing:
				targets = g.t.KingAttacks(from)
			}
			for t := targets & targetMask; t != 0; {
				to := popLSB(&t)
				flags := FlagNone
				if opp&(uint64(1)<<uint(to)) != 0 {
					flags = FlagCapture
				}
				list.Add(NewMove(Square(from), Square(to), piece, NoPiece, flags))
			}
		}
	}

	if !capturesOnly {
		g.castlingMoves(b, list)
	}
}

// promotion order: queen first, as most callers try it first
var promotionTypes = [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight}

func addPromotions(list *MoveList, from, to Square, pawn Piece, flags MoveFlags) {
	c := pawn.Color()
	for _, pt := range promotionTypes {
		list.Add(NewMove(from, to, pawn, PieceFromType(c, pt), flags))
	}
}

func (g *Generator) pawnMoves(b *Board, list *MoveList, capturesOnly bool) {
	us := b.sideToMove
	opp := b.occupancy[us.Other()]
	all := b.occupancy[Both]
	pawn := PieceFromType(us, PieceTypePawn)

	push, startRank, lastRank := 8, 1, 7
	if us == Black {
		push, startRank, lastRank = -8, 6, 0
	}

	for pawns := b.pieces[us][PieceTypePawn-1]; pawns != 0; {
		from := popLSB(&pawns)
		fromSq := Square(from)

		if !capturesOnly {
			one := from + push
			if one >= 0 && one < 64 && all&(uint64(1)<<uint(one)) == 0 {
				if one/8 == lastRank {
					addPromotions(list, fromSq, Square(one), pawn, FlagNone)
				} else {
					list.Add(NewMove(fromSq, Square(one), pawn, NoPiece, FlagNone))
					two := one + push
					if from/8 == startRank && all&(uint64(1)<<uint(two)) == 0 {
						list.Add(NewMove(fromSq, Square(two), pawn, NoPiece, FlagDoublePush))
					}
				}
			}
		}

		caps := g.t.PawnAttacks(int(us), from)
		for targets := caps & opp; targets != 0; {
			to := popLSB(&targets)
			if to/8 == lastRank {
				addPromotions(list, fromSq, Square(to), pawn, FlagCapture)
			} else {
				list.Add(NewMove(fromSq, Square(to), pawn, NoPiece, FlagCapture))
			}
		}
		if ep := b.enPassantSquare; ep != NoSquare && caps&bb(ep) != 0 {
			list.Add(NewMove(fromSq, ep, pawn, NoPiece, FlagCapture|FlagEnPassant))
		}
	}
}

// castlingMoves emits castling when the right is held, the king and rook
// stand on their home squares, the squares between them are empty and
// neither the king's square nor the square it crosses is attacked. The
// destination square is left to MakeMove's king-safety check.
func (g *Generator) castlingMoves(b *Board, list *MoveList) {
	us := b.sideToMove
	them := us.Other()
	all := b.occupancy[Both]
	king := b.pieces[us][PieceTypeKing-1]
	rooks := b.pieces[us][PieceTypeRook-1]

	kingSq, kingSide, queenSide := E1, CastlingWhiteK, CastlingWhiteQ
	if us == Black {
		kingSq, kingSide, queenSide = E8, CastlingBlackK, CastlingBlackQ
	}
	if king&bb(kingSq) == 0 {
		return
	}
	kingPiece := PieceFromType(us, PieceTypeKing)

	// Squares relative to the king's home square: f = +1, g = +2, h = +3,
	// d = -1, c = -2, b = -3, a = -4.
	if b.castlingRights&kingSide != 0 && rooks&bb(kingSq+3) != 0 &&
		all&(bb(kingSq+1)|bb(kingSq+2)) == 0 &&
		!g.IsSquareAttacked(b, kingSq, them) &&
		!g.IsSquareAttacked(b, kingSq+1, them) {
		list.Add(NewMove(kingSq, kingSq+2, kingPiece, NoPiece, FlagCastle))
	}
	if b.castlingRights&queenSide != 0 && rooks&bb(kingSq-4) != 0 &&
		all&(bb(kingSq-1)|bb(kingSq-2)|bb(kingSq-3)) == 0 &&
		!g.IsSquareAttacked(b, kingSq, them) &&
		!g.IsSquareAttacked(b, kingSq-1, them) {
		list.Add(NewMove(kingSq, kingSq-2, kingPiece, NoPiece, FlagCastle))
	}
}
