// Package board implements a single classical 8x8 chessboard: placement,
// indexing and the pure ordinary-chess move-legality predicate. It knows
// nothing about superpositions; that lives in package harmonic.
package board

import (
	"fmt"
	"strings"
)

// Board is a classical 8x8 chessboard. The zero value is an empty board,
// the same as NewEmpty, since EmptySquare is the zero Square; use
// NewStarting for the standard position. Board is a plain value type: assigning or
// passing it by value copies the whole array, which is the "Clone" the
// spec asks for.
type Board struct {
	squares [64]Square
}

// NewEmpty returns a board with no pieces placed.
func NewEmpty() Board {
	var b Board
	for i := range b.squares {
		b.squares[i] = EmptySquare
	}
	return b
}

// NewStarting returns the standard chess starting position.
func NewStarting() Board {
	b := NewEmpty()

	for x := 0; x < 8; x++ {
		b.Set(Pos{X: x, Y: 1}, Square{Player: White, Piece: Pawn})
		b.Set(Pos{X: x, Y: 6}, Square{Player: Black, Piece: Pawn})
	}

	backRank := [8]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x, p := range backRank {
		b.Set(Pos{X: x, Y: 0}, Square{Player: White, Piece: p})
		b.Set(Pos{X: x, Y: 7}, Square{Player: Black, Piece: p})
	}

	return b
}

// At returns the square at the given position. Panics on an out-of-range
// coordinate (a programmer error per spec.md §7).
func (b Board) At(p Pos) Square {
	return b.squares[p.Index()]
}

// Set places a square at the given position.
func (b *Board) Set(p Pos, sq Square) {
	b.squares[p.Index()] = sq
}

// Clear empties the given position.
func (b *Board) Clear(p Pos) {
	b.squares[p.Index()] = EmptySquare
}

// Apply moves the piece from m.Source to m.Target unconditionally. Callers
// should only do so after confirming IsMoveLegal(m), but Apply itself does
// not check.
func (b *Board) Apply(m ChessMove) {
	b.Set(m.Target, Square{Player: m.Player, Piece: m.Piece})
	b.Clear(m.Source)
}

// Less imposes an arbitrary but total and stable order over boards, used to
// group identical boards together during regrouping. Identical boards always
// compare equal.
func (b Board) Less(o Board) bool {
	for i := 0; i < 64; i++ {
		if b.squares[i] != o.squares[i] {
			if b.squares[i].Piece != o.squares[i].Piece {
				return b.squares[i].Piece < o.squares[i].Piece
			}
			return b.squares[i].Player < o.squares[i].Player
		}
	}
	return false
}

// String renders the board ranks 8->1 with ASCII piece letters; see package
// render for the unicode console renderer used by the boundary driver.
func (b Board) String() string {
	var sb strings.Builder
	for y := 7; y >= 0; y-- {
		for x := 0; x < 8; x++ {
			sq := b.At(Pos{X: x, Y: y})
			sb.WriteString(letter(sq))
			sb.WriteByte(' ')
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func letter(sq Square) string {
	if !sq.IsOccupied() {
		return "."
	}
	var l string
	switch sq.Piece {
	case Pawn:
		l = "p"
	case Knight:
		l = "n"
	case Bishop:
		l = "b"
	case Rook:
		l = "r"
	case Queen:
		l = "q"
	case King:
		l = "k"
	default:
		l = "?"
	}
	if sq.Player == White {
		return strings.ToUpper(l)
	}
	return l
}

// IsMoveLegal reports whether m.Source -> m.Target is allowed by ordinary
// chess geometry on this board. It does not inspect the contents of the
// source or target squares; callers filter by harmonic-local occupancy
// separately. Castling, en-passant, and promotion are not recognized, per
// the Non-goals. Calling with Piece == Empty is a programmer error.
func (b Board) IsMoveLegal(m ChessMove) bool {
	if m.Piece == Empty {
		panic(fmt.Sprintf("board: IsMoveLegal called with an empty piece: %v", m))
	}
	if m.IsTrivial() {
		return false
	}

	dx := m.Target.X - m.Source.X
	dy := m.Target.Y - m.Source.Y
	adx, ady := abs(dx), abs(dy)

	switch m.Piece {
	case Pawn:
		return b.isPawnMoveLegal(m, dx, dy)
	case Knight:
		return (adx == 1 && ady == 2) || (adx == 2 && ady == 1)
	case Bishop:
		return adx == ady && b.isDiagonalClear(m.Source, dx, dy, adx)
	case Rook:
		return (dx == 0 || dy == 0) && b.isStraightClear(m.Source, dx, dy, adx, ady)
	case Queen:
		if adx == ady {
			return b.isDiagonalClear(m.Source, dx, dy, adx)
		}
		return (dx == 0 || dy == 0) && b.isStraightClear(m.Source, dx, dy, adx, ady)
	case King:
		return adx <= 1 && ady <= 1
	default:
		panic(fmt.Sprintf("board: unknown piece: %v", m.Piece))
	}
}

func (b Board) isPawnMoveLegal(m ChessMove, dx, dy int) bool {
	capturing := m.TargetPiece != Empty

	if m.Player == White {
		if !capturing {
			if dx == 0 && dy == 1 {
				return true
			}
			if m.Source.Y == 1 && dy == 2 && dx == 0 {
				return !b.At(Pos{X: m.Source.X, Y: 2}).IsOccupied()
			}
			return false
		}
		return abs(dx) == 1 && dy == 1
	}

	// Black is the mirror image.
	if !capturing {
		if dx == 0 && dy == -1 {
			return true
		}
		if m.Source.Y == 6 && dy == -2 && dx == 0 {
			return !b.At(Pos{X: m.Source.X, Y: 5}).IsOccupied()
		}
		return false
	}
	return abs(dx) == 1 && dy == -1
}

func (b Board) isDiagonalClear(src Pos, dx, dy, steps int) bool {
	sigx, sigy := sign(dx), sign(dy)
	for i := 1; i < steps; i++ {
		p := Pos{X: src.X + i*sigx, Y: src.Y + i*sigy}
		if b.At(p).IsOccupied() {
			return false
		}
	}
	return true
}

func (b Board) isStraightClear(src Pos, dx, dy, adx, ady int) bool {
	sigx, sigy := sign(dx), sign(dy)
	steps := adx
	if ady > steps {
		steps = ady
	}
	for i := 1; i < steps; i++ {
		p := Pos{X: src.X + i*sigx, Y: src.Y + i*sigy}
		if b.At(p).IsOccupied() {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
