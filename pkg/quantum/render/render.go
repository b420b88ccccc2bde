// Package render formats a quantum chessboard for terminal display, per
// spec.md §6.5: ranks 8 down to 1, files a through h, one unicode glyph per
// piece, empty squares as ".".
package render

import (
	"strings"

	"github.com/herohde/quantumchess/pkg/quantum/board"
)

var whiteGlyph = map[board.Piece]rune{
	board.King:   '♔',
	board.Queen:  '♕',
	board.Rook:   '♖',
	board.Bishop: '♗',
	board.Knight: '♘',
	board.Pawn:   '♙',
}

var blackGlyph = map[board.Piece]rune{
	board.King:   '♚',
	board.Queen:  '♛',
	board.Rook:   '♜',
	board.Bishop: '♝',
	board.Knight: '♞',
	board.Pawn:   '♟',
}

func glyph(sq board.Square) rune {
	if !sq.IsOccupied() {
		return '.'
	}
	if sq.Player == board.White {
		return whiteGlyph[sq.Piece]
	}
	return blackGlyph[sq.Piece]
}

// Board renders b as an 8-line diagram of unicode glyphs, rank 8 at the top.
func Board(b board.Board) string {
	var sb strings.Builder
	for y := 7; y >= 0; y-- {
		for x := 0; x < 8; x++ {
			sb.WriteRune(glyph(b.At(board.Pos{X: x, Y: y})))
			sb.WriteRune(' ')
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
