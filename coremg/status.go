package coremg

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidMoveText is returned by ParseMove for text that is not a
	// coordinate move.
	ErrInvalidMoveText = errors.New("invalid move text")
	// ErrIllegalMove is returned by ParseMove for a well-formed move that is
	// not legal in the position.
	ErrIllegalMove = errors.New("illegal move")
)

// LegalMoves returns the pseudo-legal moves that MakeMove accepts.
func (g *Generator) LegalMoves(b *Board) []Move {
	var list MoveList
	g.GenerateMoves(b, &list)
	legal := make([]Move, 0, list.Len())
	for _, m := range list.Moves() {
		saved := *b
		if g.MakeMove(b, m, AllMoves) {
			legal = append(legal, m)
			*b = saved
		}
	}
	return legal
}

// HasLegalMoves reports whether the side to move has any legal moves.
func (g *Generator) HasLegalMoves(b *Board) bool {
	var list MoveList
	g.GenerateMoves(b, &list)
	for _, m := range list.Moves() {
		saved := *b
		if g.MakeMove(b, m, AllMoves) {
			*b = saved
			return true
		}
	}
	return false
}

// InCheckmate reports whether the side to move is checkmated.
func (g *Generator) InCheckmate(b *Board) bool {
	return g.InCheck(b, b.sideToMove) && !g.HasLegalMoves(b)
}

// InStalemate reports whether the side to move is stalemated.
func (g *Generator) InStalemate(b *Board) bool {
	return !g.InCheck(b, b.sideToMove) && !g.HasLegalMoves(b)
}

// ParseMove converts coordinate text (e2e4, e7e8q) into the matching legal
// move of the position, flags included.
func (g *Generator) ParseMove(b *Board, text string) (Move, error) {
	s := strings.TrimSpace(strings.ToLower(text))
	if len(s) < 4 || len(s) > 5 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoveText, text)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoveText, text)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoveText, text)
	}
	promo := PieceTypeNone
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = PieceTypeQueen
		case 'r':
			promo = PieceTypeRook
		case 'b':
			promo = PieceTypeBishop
		case 'n':
			promo = PieceTypeKnight
		default:
			return 0, fmt.Errorf("%w: %q: bad promotion piece", ErrInvalidMoveText, text)
		}
	}
	for _, m := range g.LegalMoves(b) {
		if m.From() == from && m.To() == to && m.PromotionPiece().Type() == promo {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrIllegalMove, s)
}
