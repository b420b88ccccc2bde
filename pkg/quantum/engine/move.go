package engine

import (
	"fmt"

	"github.com/herohde/quantumchess/pkg/quantum/board"
)

// Move is either an OrdinaryMove or a QuantumMove. The interface's marker
// method is unexported, so no other package may introduce new variants.
type Move interface {
	isMove()
}

// OrdinaryMove is a single classical move, possibly a capture.
// TargetPiece is board.Empty for a non-capturing move.
type OrdinaryMove struct {
	Player      board.Player
	Source      board.Pos
	Target      board.Pos
	Piece       board.Piece
	TargetPiece board.Piece
}

func (OrdinaryMove) isMove() {}

func (m OrdinaryMove) chessMove() board.ChessMove {
	return board.ChessMove{
		Player:      m.Player,
		Source:      m.Source,
		Target:      m.Target,
		Piece:       m.Piece,
		TargetPiece: m.TargetPiece,
	}
}

func (m OrdinaryMove) String() string {
	return m.chessMove().String()
}

// QuantumMove splits every admissible harmonic into a "travelled" and
// "didn't travel" branch via an intermediate square. Never a capture.
type QuantumMove struct {
	Player board.Player
	Source board.Pos
	Mid    board.Pos
	Target board.Pos
	Piece  board.Piece
}

func (QuantumMove) isMove() {}

func (m QuantumMove) String() string {
	return fmt.Sprintf("%v %v %v -> %v -> %v", m.Player, m.Piece, m.Source, m.Mid, m.Target)
}

// firstLeg returns the source->mid classical move.
func (m QuantumMove) firstLeg() board.ChessMove {
	return board.ChessMove{Player: m.Player, Source: m.Source, Target: m.Mid, Piece: m.Piece}
}

// secondLeg returns the mid->target classical move.
func (m QuantumMove) secondLeg() board.ChessMove {
	return board.ChessMove{Player: m.Player, Source: m.Mid, Target: m.Target, Piece: m.Piece}
}
