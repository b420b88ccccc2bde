package engine

import (
	"context"

	"github.com/herohde/quantumchess/pkg/quantum/harmonic"
)

// submitQuantum implements spec.md §4.3's Quantum move classification and
// splitting: each admissible harmonic splits into a "travelled" and
// "didn't travel" pair; inadmissible harmonics are kept with doubled
// degeneracy so total weight stays consistent.
func (e *Engine) submitQuantum(ctx context.Context, qmv QuantumMove) MoveResult {
	if e.player != qmv.Player {
		return failuref("invalid player: expected %v, got %v", e.player, qmv.Player)
	}

	source := e.state.QuantumSquareInfo(qmv.Source)
	target := e.state.QuantumSquareInfo(qmv.Target)

	if !source.Square.IsOccupied() {
		return failuref("source position %v isn't occupied", qmv.Source)
	}
	if source.Square.Piece != qmv.Piece {
		return failuref("invalid piece at %v: expected %v, got %v", qmv.Source, source.Square.Piece, qmv.Piece)
	}
	if source.Square.Player != qmv.Player {
		return failuref("source position %v is occupied by an enemy (%v) piece", qmv.Source, source.Square.Player)
	}
	if qmv.Source == qmv.Target {
		return failuref("trivial quantum moves are forbidden by the rules of the game")
	}
	if target.Square.IsOccupied() {
		return failuref("target position %v is occupied; quantum moves cannot land on any occupied square", qmv.Target)
	}

	first := qmv.firstLeg()
	second := qmv.secondLeg()
	firstTrivial := first.IsTrivial()
	secondTrivial := second.IsTrivial()

	next := make(harmonic.Superposition, 0, len(e.state)*2)
	available := false

	for _, h := range e.state {
		if h.Board.At(qmv.Source) != source.Square {
			// This harmonic's source square doesn't actually hold the
			// aggregate piece; it cannot participate in the split.
			doubled := h
			doubled.Degeneracy *= 2
			next = append(next, doubled)
			continue
		}

		admissible := (firstTrivial || h.Board.IsMoveLegal(first)) &&
			(secondTrivial || h.Board.IsMoveLegal(second)) &&
			(firstTrivial || secondTrivial || !h.Board.At(qmv.Mid).IsOccupied())

		if !admissible {
			doubled := h
			doubled.Degeneracy *= 2
			next = append(next, doubled)
			continue
		}

		available = true

		travelled := h.Clone()
		if !firstTrivial {
			travelled.Board.Apply(first)
		}
		if !secondTrivial {
			travelled.Board.Apply(second)
		}

		next = append(next, h.Clone(), travelled)
	}

	if !available {
		return failuref("quantum move is unavailable on all harmonics of the quantum chessboard")
	}

	e.state = next
	return success
}
