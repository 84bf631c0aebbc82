// Package fen reads and writes Forsyth-Edwards Notation for coremg boards.
package fen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chess-core/coremg"
)

// StartPos is the FEN string for the standard initial chess position.
const StartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is wrapped by every error Parse returns.
var ErrInvalidFEN = errors.New("invalid FEN")

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch rune) coremg.Piece {
	switch ch {
	case 'P':
		return coremg.WhitePawn
	case 'N':
		return coremg.WhiteKnight
	case 'B':
		return coremg.WhiteBishop
	case 'R':
		return coremg.WhiteRook
	case 'Q':
		return coremg.WhiteQueen
	case 'K':
		return coremg.WhiteKing
	case 'p':
		return coremg.BlackPawn
	case 'n':
		return coremg.BlackKnight
	case 'b':
		return coremg.BlackBishop
	case 'r':
		return coremg.BlackRook
	case 'q':
		return coremg.BlackQueen
	case 'k':
		return coremg.BlackKing
	default:
		return coremg.NoPiece
	}
}

const pieceChars = " PNBRQK"

// charFromPiece converts a Piece constant to its FEN character representation.
func charFromPiece(p coremg.Piece) byte {
	ch := pieceChars[p.Type()]
	if p.Color() == coremg.Black {
		ch += 'a' - 'A'
	}
	return ch
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFEN, fmt.Sprintf(format, args...))
}

// Parse parses a FEN string and returns a new Board set up to that position.
// The halfmove clock and fullmove number are optional; when present they must
// be non-negative integers, but the board does not keep them.
func Parse(fen string) (*coremg.Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, invalid("expected 4 to 6 fields, got %d", len(fields))
	}

	board := coremg.NewBoard()

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, invalid("expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		if len(rankStr) == 0 {
			return nil, invalid("empty rank %d", 8-i)
		}
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece := pieceFromChar(ch)
			if piece == coremg.NoPiece {
				return nil, invalid("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return nil, invalid("too many squares in rank %d", rank+1)
			}
			board.SetPiece(coremg.Square(rank*8+file), piece)
			file++
		}
		if file != 8 {
			return nil, invalid("rank %d does not have 8 columns", rank+1)
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		board.SetSideToMove(coremg.White)
	case "b":
		board.SetSideToMove(coremg.Black)
	default:
		return nil, invalid("side to move must be 'w' or 'b', got %q", fields[1])
	}

	// 3. Castling rights
	var cr coremg.CastlingRights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			var bit coremg.CastlingRights
			switch ch {
			case 'K':
				bit = coremg.CastlingWhiteK
			case 'Q':
				bit = coremg.CastlingWhiteQ
			case 'k':
				bit = coremg.CastlingBlackK
			case 'q':
				bit = coremg.CastlingBlackQ
			default:
				return nil, invalid("castling rights character %q", ch)
			}
			if cr&bit != 0 {
				return nil, invalid("repeated castling right %q", ch)
			}
			cr |= bit
		}
	}
	board.SetCastlingRights(cr)

	// 4. En passant target square
	if fields[3] != "-" {
		sq, err := coremg.ParseSquare(fields[3])
		if err != nil {
			return nil, invalid("en passant square: %v", err)
		}
		board.SetEnPassant(sq)
	}

	// 5, 6. Clocks
	for i, name := range []string{"halfmove clock", "fullmove number"} {
		if len(fields) <= 4+i {
			break
		}
		n, err := strconv.Atoi(fields[4+i])
		if err != nil || n < 0 {
			return nil, invalid("%s %q is not a non-negative number", name, fields[4+i])
		}
	}

	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFEN, err)
	}
	return board, nil
}

// MustParse is Parse for positions known to be valid. It panics on error.
func MustParse(fen string) *coremg.Board {
	b, err := Parse(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// Format produces the FEN string of the board. The board carries no move
// clocks, so the last two fields are always "0 1".
func Format(b *coremg.Board) string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < 8; file++ {
			p := b.PieceAt(coremg.Square(rank*8 + file))
			if p == coremg.NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte('0' + byte(emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(charFromPiece(p))
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	// 2. Side to move
	if b.SideToMove() == coremg.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	// 3. Castling rights
	cr := b.CastlingRights()
	if cr == 0 {
		sb.WriteByte('-')
	} else {
		if cr&coremg.CastlingWhiteK != 0 {
			sb.WriteByte('K')
		}
		if cr&coremg.CastlingWhiteQ != 0 {
			sb.WriteByte('Q')
		}
		if cr&coremg.CastlingBlackK != 0 {
			sb.WriteByte('k')
		}
		if cr&coremg.CastlingBlackQ != 0 {
			sb.WriteByte('q')
		}
	}
	sb.WriteByte(' ')

	// 4. En passant square
	sb.WriteString(b.EnPassantSquare().String())
	sb.WriteString(" 0 1")
	return sb.String()
}
