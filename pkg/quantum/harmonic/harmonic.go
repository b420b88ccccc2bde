// Package harmonic implements the quantum chessboard: an ordered bag of
// classical boards ("harmonics") each carrying an integer degeneracy, and the
// operations that aggregate, measure, and normalize that bag. This is the
// set-of-harmonics representation described in spec.md §3-4.2: degeneracies
// stand in for complex amplitudes because the only randomness ever drawn is
// a Bernoulli coin over a ratio of degeneracy sums (spec.md §9).
package harmonic

import (
	"fmt"
	"sort"

	"github.com/herohde/quantumchess/pkg/quantum/board"
	"github.com/herohde/quantumchess/pkg/quantum/rng"
)

// EPS is the tolerance used when comparing probabilities against 0 or 1.
const EPS = 1e-10

// Harmonic is a single classical board present in the superposition with a
// positive integer weight.
type Harmonic struct {
	Board      board.Board
	Degeneracy int64
}

// Clone returns an independent copy (Board is a value type, so this is a
// plain copy; the method exists for readability at call sites).
func (h Harmonic) Clone() Harmonic {
	return h
}

// Superposition is the ordered multiset of harmonics representing the
// current quantum chessboard. The zero value is not meaningful; use New.
type Superposition []Harmonic

// New returns a superposition holding a single board at degeneracy 1.
func New(b board.Board) Superposition {
	return Superposition{{Board: b, Degeneracy: 1}}
}

// Clone returns a deep, independent copy of the superposition.
func (s Superposition) Clone() Superposition {
	out := make(Superposition, len(s))
	copy(out, s)
	return out
}

// TotalDegeneracy sums the degeneracy across all harmonics.
func (s Superposition) TotalDegeneracy() int64 {
	var total int64
	for _, h := range s {
		total += h.Degeneracy
	}
	return total
}

// SquareInfo is the aggregate view of a single board position across every
// harmonic: the unique occupant (if any) and its marginal probability.
type SquareInfo struct {
	Square      board.Square
	Probability float64
}

// QuantumSquareInfo aggregates position p across every harmonic. If the
// position disagrees between two distinct occupants, the superposition is
// inconsistent -- a programmer error, since PerformMeasurements should have
// prevented it -- and this panics.
func (s Superposition) QuantumSquareInfo(p board.Pos) SquareInfo {
	var found *board.Square
	var numerator, denominator float64

	for _, h := range s {
		denominator += float64(h.Degeneracy)

		sq := h.Board.At(p)
		if sq.IsOccupied() {
			numerator += float64(h.Degeneracy)
			if found != nil && *found != sq {
				panic(fmt.Sprintf("harmonic: inconsistent quantum chessboard: square %v is in a superposition of more than one piece (%v and %v)", p, *found, sq))
			}
			found = &sq
		}
	}

	if found == nil {
		return SquareInfo{Square: board.EmptySquare, Probability: 1.0}
	}
	return SquareInfo{Square: *found, Probability: numerator / denominator}
}

// Retain drops every harmonic for which keep returns false, preserving the
// relative order of the rest. Degeneracies are not rescaled.
func (s *Superposition) Retain(keep func(h Harmonic) bool) {
	out := (*s)[:0:0]
	for _, h := range *s {
		if keep(h) {
			out = append(out, h)
		}
	}
	*s = out
}

// PerformMeasurements sweeps every one of the 64 squares in y*8+x order and
// collapses any square that currently shows two distinct occupant classes,
// via a biased coin flip weighted by the classes' relative degeneracy. Each
// square's collapse can change the occupant classes seen by later squares in
// the same pass, which is a deliberate, observable part of the contract
// (spec.md §9).
func (s *Superposition) PerformMeasurements(decide rng.Decider) {
	for i := 0; i < 64; i++ {
		p := board.Unindex(i)
		s.measureSquare(p, decide)
	}
}

func (s *Superposition) measureSquare(p board.Pos, decide rng.Decider) {
	var classA, classB *board.Square
	var degA, degB int64

	for _, h := range *s {
		sq := h.Board.At(p)
		if !sq.IsOccupied() {
			continue
		}
		switch {
		case classA == nil:
			classA = &sq
			degA = h.Degeneracy
		case *classA == sq:
			degA += h.Degeneracy
		case classB == nil:
			classB = &sq
			degB = h.Degeneracy
		case *classB == sq:
			degB += h.Degeneracy
		default:
			panic(fmt.Sprintf("harmonic: square %v is in a superposition of more than two pieces", p))
		}
	}

	if classA == nil || classB == nil {
		return // at most one occupant class: nothing to collapse.
	}

	pA := float64(degA) / float64(degA+degB)
	keepA := decide.Decide(pA)
	if keepA {
		s.Retain(func(h Harmonic) bool {
			sq := h.Board.At(p)
			return !sq.IsOccupied() || sq == *classA
		})
	} else {
		s.Retain(func(h Harmonic) bool {
			sq := h.Board.At(p)
			return !sq.IsOccupied() || sq == *classB
		})
	}
}

// Regroup sorts harmonics by board (an arbitrary but stable total order) and
// merges consecutive identical boards, summing their degeneracies. The
// result has no duplicate boards.
func (s *Superposition) Regroup() {
	if len(*s) == 0 {
		return
	}

	sort.SliceStable(*s, func(i, j int) bool {
		return (*s)[i].Board.Less((*s)[j].Board)
	})

	out := make(Superposition, 0, len(*s))
	cur := (*s)[0]
	for _, h := range (*s)[1:] {
		if h.Board == cur.Board {
			cur.Degeneracy += h.Degeneracy
			continue
		}
		out = append(out, cur)
		cur = h
	}
	out = append(out, cur)

	*s = out
}

// NormalizeDegeneracy divides every degeneracy by the GCD of all degeneracies
// and sorts harmonics by descending degeneracy.
func (s *Superposition) NormalizeDegeneracy() {
	var g int64
	for _, h := range *s {
		g = gcd(g, h.Degeneracy)
	}
	if g > 1 {
		for i := range *s {
			(*s)[i].Degeneracy /= g
		}
	}

	sort.SliceStable(*s, func(i, j int) bool {
		return (*s)[i].Degeneracy > (*s)[j].Degeneracy
	})
}

// gcd computes the greatest common divisor, treating gcd(0, x) = x so that
// the fold over all harmonics can seed the accumulator at 0.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// RunPostMovePipeline applies the standard post-move sequence: measurement,
// regrouping, then degeneracy normalization, in that order.
func (s *Superposition) RunPostMovePipeline(decide rng.Decider) {
	s.PerformMeasurements(decide)
	s.Regroup()
	s.NormalizeDegeneracy()
}
