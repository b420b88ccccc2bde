package harmonic_test

import (
	"testing"

	"github.com/herohde/quantumchess/pkg/quantum/board"
	"github.com/herohde/quantumchess/pkg/quantum/harmonic"
	"github.com/herohde/quantumchess/pkg/quantum/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantumSquareInfoEmpty(t *testing.T) {
	s := harmonic.New(board.NewStarting())
	info := s.QuantumSquareInfo(board.Pos{X: 4, Y: 4})

	assert.Equal(t, board.EmptySquare, info.Square)
	assert.Equal(t, 1.0, info.Probability)
}

func TestQuantumSquareInfoOccupiedAndAggregated(t *testing.T) {
	a := board.NewEmpty()
	a.Set(board.Pos{X: 0, Y: 0}, board.Square{Player: board.White, Piece: board.Rook})
	b := board.NewEmpty()
	b.Set(board.Pos{X: 0, Y: 0}, board.Square{Player: board.White, Piece: board.Rook})
	c := board.NewEmpty() // rook absent here

	s := harmonic.Superposition{
		{Board: a, Degeneracy: 3},
		{Board: b, Degeneracy: 1},
		{Board: c, Degeneracy: 4},
	}

	info := s.QuantumSquareInfo(board.Pos{X: 0, Y: 0})
	assert.Equal(t, board.Square{Player: board.White, Piece: board.Rook}, info.Square)
	assert.InDelta(t, 4.0/8.0, info.Probability, harmonic.EPS)
}

func TestQuantumSquareInfoInconsistentPanics(t *testing.T) {
	a := board.NewEmpty()
	a.Set(board.Pos{X: 0, Y: 0}, board.Square{Player: board.White, Piece: board.Rook})
	b := board.NewEmpty()
	b.Set(board.Pos{X: 0, Y: 0}, board.Square{Player: board.Black, Piece: board.Bishop})

	s := harmonic.Superposition{
		{Board: a, Degeneracy: 1},
		{Board: b, Degeneracy: 1},
	}

	assert.Panics(t, func() {
		s.QuantumSquareInfo(board.Pos{X: 0, Y: 0})
	})
}

func TestRetainPreservesOrder(t *testing.T) {
	a := board.NewEmpty()
	b := board.NewEmpty()
	b.Set(board.Pos{X: 1, Y: 1}, board.Square{Player: board.White, Piece: board.Knight})
	c := board.NewEmpty()
	c.Set(board.Pos{X: 2, Y: 2}, board.Square{Player: board.White, Piece: board.Knight})

	s := harmonic.Superposition{
		{Board: a, Degeneracy: 1},
		{Board: b, Degeneracy: 1},
		{Board: c, Degeneracy: 1},
	}
	s.Retain(func(h harmonic.Harmonic) bool {
		return h.Board != a
	})

	require.Len(t, s, 2)
	assert.Equal(t, b, s[0].Board)
	assert.Equal(t, c, s[1].Board)
}

func TestRegroupMergesIdenticalBoards(t *testing.T) {
	same := board.NewStarting()
	other := board.NewEmpty()

	s := harmonic.Superposition{
		{Board: same, Degeneracy: 2},
		{Board: other, Degeneracy: 5},
		{Board: same, Degeneracy: 3},
	}
	s.Regroup()

	require.Len(t, s, 2)
	var total int64
	for _, h := range s {
		total += h.Degeneracy
	}
	assert.EqualValues(t, 10, total)
	assert.ElementsMatch(t, []int64{5, 5}, []int64{s[0].Degeneracy, s[1].Degeneracy})
}

func TestNormalizeDegeneracyDividesByGCDAndSortsDescending(t *testing.T) {
	a := board.NewStarting()
	b := board.NewEmpty()

	s := harmonic.Superposition{
		{Board: b, Degeneracy: 4},
		{Board: a, Degeneracy: 6},
	}
	s.NormalizeDegeneracy()

	require.Len(t, s, 2)
	assert.EqualValues(t, 3, s[0].Degeneracy)
	assert.EqualValues(t, 2, s[1].Degeneracy)
	assert.Equal(t, a, s[0].Board)
}

func TestPerformMeasurementsCollapsesTwoClasses(t *testing.T) {
	a := board.NewEmpty()
	a.Set(board.Pos{X: 3, Y: 3}, board.Square{Player: board.White, Piece: board.Queen})
	b := board.NewEmpty()
	b.Set(board.Pos{X: 3, Y: 3}, board.Square{Player: board.Black, Piece: board.Knight})

	s := harmonic.Superposition{
		{Board: a, Degeneracy: 1},
		{Board: b, Degeneracy: 1},
	}

	s.PerformMeasurements(rng.Always(true))

	require.Len(t, s, 1)
	assert.Equal(t, board.Square{Player: board.White, Piece: board.Queen}, s[0].Board.At(board.Pos{X: 3, Y: 3}))
}

func TestPostMovePipelineIdempotentOnSettledState(t *testing.T) {
	s := harmonic.New(board.NewStarting())
	s.RunPostMovePipeline(rng.Always(true))

	before := s.Clone()
	s.RunPostMovePipeline(rng.Always(true))

	assert.Equal(t, before, s)
}
