package engine

import (
	"context"
	"math"

	"github.com/herohde/quantumchess/pkg/quantum/board"
	"github.com/herohde/quantumchess/pkg/quantum/harmonic"
	"github.com/herohde/quantumchess/pkg/quantum/invariant"
)

// submitOrdinary implements spec.md §4.3's Ordinary move classification and
// rewriting: plain move, capture-with-possible-collapse, or rejection.
func (e *Engine) submitOrdinary(ctx context.Context, mv OrdinaryMove) MoveResult {
	if e.player != mv.Player {
		return failuref("invalid player: expected %v, got %v", e.player, mv.Player)
	}

	source := e.state.QuantumSquareInfo(mv.Source)
	target := e.state.QuantumSquareInfo(mv.Target)

	if !source.Square.IsOccupied() {
		return failuref("source position %v isn't occupied", mv.Source)
	}
	if source.Square.Piece != mv.Piece {
		return failuref("invalid piece at %v: expected %v, got %v", mv.Source, source.Square.Piece, mv.Piece)
	}
	if source.Square.Player != mv.Player {
		return failuref("source position %v is occupied by an enemy (%v) piece", mv.Source, source.Square.Player)
	}
	if target.Square.Piece != mv.TargetPiece {
		return failuref("invalid target piece at %v: expected %v, got %v", mv.Target, target.Square.Piece, mv.TargetPiece)
	}

	cm := mv.chessMove()

	switch {
	case !target.Square.IsOccupied():
		return e.applyPlainMove(cm, source.Square)

	case target.Square.Player != mv.Player:
		return e.applyCapture(ctx, cm, source.Probability)

	default:
		return failuref("target position %v is occupied by a friendly piece (%v)", mv.Target, target.Square.Player)
	}
}

// applyPlainMove handles the target-empty-everywhere case: every harmonic
// whose source square matches the aggregate source square and that permits
// the move is rewritten in place; the rest are left unchanged.
func (e *Engine) applyPlainMove(cm board.ChessMove, source board.Square) MoveResult {
	available := false
	for i := range e.state {
		h := &e.state[i]
		if h.Board.At(cm.Source) == source && h.Board.IsMoveLegal(cm) {
			available = true
			h.Board.Apply(cm)
		}
	}
	if !available {
		return failuref("move is unavailable on all harmonics of the quantum chessboard")
	}
	return success
}

// applyCapture handles a capture against an enemy-occupied target. When the
// player's piece is present with certainty, the capture happens
// unconditionally; otherwise a coin flip weighted by the source occupation
// probability decides whether the capture occurs, collapsing the
// superposition accordingly.
func (e *Engine) applyCapture(ctx context.Context, cm board.ChessMove, p float64) MoveResult {
	switch {
	case math.Abs(p-1.0) <= harmonic.EPS:
		available := false
		for i := range e.state {
			h := &e.state[i]
			if h.Board.IsMoveLegal(cm) {
				available = true
				h.Board.Apply(cm)
			}
		}
		if !available {
			return failuref("capture is unavailable on all harmonics of the quantum chessboard")
		}
		return success

	case math.Abs(p) > harmonic.EPS:
		available := false
		for _, h := range e.state {
			if h.Board.IsMoveLegal(cm) {
				available = true
				break
			}
		}
		if !available {
			return failuref("capture is unavailable on all harmonics of the quantum chessboard")
		}

		if e.decide.Decide(p) {
			// The player's piece is found present: collapse to harmonics
			// where the source is occupied, then play the move/capture on
			// each of those whose source is occupied and where it is legal.
			e.state.Retain(func(h harmonic.Harmonic) bool {
				return h.Board.At(cm.Source).IsOccupied()
			})
			for i := range e.state {
				h := &e.state[i]
				if h.Board.At(cm.Source).IsOccupied() && h.Board.IsMoveLegal(cm) {
					h.Board.Apply(cm)
				}
			}
		} else {
			// The player's piece is found absent: the capture attempt
			// fails, but the turn still advances.
			e.state.Retain(func(h harmonic.Harmonic) bool {
				return !h.Board.At(cm.Source).IsOccupied()
			})
		}
		return success

	default:
		invariant.Violatef(ctx, "aggregate claims a piece at %v but computed probability is zero", cm.Source)
		return MoveResult{} // unreachable: invariant.Violatef panics.
	}
}
