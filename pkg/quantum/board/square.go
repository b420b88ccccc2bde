package board

import "fmt"

// Square represents the occupant of a board position: a (player, piece) pair.
// By convention an unoccupied square carries Player: White, so that
// EmptySquare compares equal as a whole tuple across harmonics.
type Square struct {
	Player Player
	Piece  Piece
}

// EmptySquare is the sentinel value used to clear a position.
var EmptySquare = Square{Player: White, Piece: Empty}

// IsOccupied reports whether the square holds a piece.
func (s Square) IsOccupied() bool {
	return s.Piece != Empty
}

func (s Square) String() string {
	if !s.IsOccupied() {
		return "empty"
	}
	return fmt.Sprintf("%v %v", s.Player, s.Piece)
}

// Pos is a board position, file/rank indexed 0..7. X is the file (a..h),
// Y is the rank (1..8).
type Pos struct {
	X, Y int
}

// IsValid reports whether the position lies on the board.
func (p Pos) IsValid() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

// Index returns the y*8+x index into a flattened 64-square board. Panics
// (a programmer error per spec.md §7) if the position is out of range.
func (p Pos) Index() int {
	if !p.IsValid() {
		panic(fmt.Sprintf("board: coordinate out of range: (%v, %v)", p.X, p.Y))
	}
	return p.Y*8 + p.X
}

// Unindex returns the position for a flattened index in 0..63.
func Unindex(i int) Pos {
	if i < 0 || i >= 64 {
		panic(fmt.Sprintf("board: index out of range: %v", i))
	}
	return Pos{X: i % 8, Y: i / 8}
}

func (p Pos) String() string {
	return fmt.Sprintf("%c%c", 'a'+rune(p.X), '1'+rune(p.Y))
}

// ParsePos parses an algebraic coordinate such as "e4" per the text command grammar.
func ParsePos(s string) (Pos, bool) {
	if len(s) != 2 {
		return Pos{}, false
	}
	x := int(s[0] - 'a')
	y := int(s[1] - '1')
	p := Pos{X: x, Y: y}
	if !p.IsValid() {
		return Pos{}, false
	}
	return p, true
}
