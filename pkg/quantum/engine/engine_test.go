package engine_test

import (
	"context"
	"testing"

	"github.com/herohde/quantumchess/pkg/quantum/board"
	"github.com/herohde/quantumchess/pkg/quantum/engine"
	"github.com/herohde/quantumchess/pkg/quantum/harmonic"
	"github.com/herohde/quantumchess/pkg/quantum/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1 - Plain pawn push.
func TestPlainPawnPush(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, engine.WithDecider(rng.Always(true)))

	res := e.Submit(ctx, engine.OrdinaryMove{
		Player: board.White, Piece: board.Pawn,
		Source: board.Pos{X: 4, Y: 1}, Target: board.Pos{X: 4, Y: 3},
	})
	require.True(t, res.Success())

	snap := e.Snapshot()
	require.Len(t, snap, 1)
	assert.EqualValues(t, 1, snap[0].Degeneracy)
	assert.Equal(t, board.Square{Player: board.White, Piece: board.Pawn}, snap[0].Board.At(board.Pos{X: 4, Y: 3}))
	assert.False(t, snap[0].Board.At(board.Pos{X: 4, Y: 1}).IsOccupied())
}

// S2 - Quantum knight split.
func TestQuantumKnightSplit(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, engine.WithDecider(rng.Always(true)))

	res := e.Submit(ctx, engine.QuantumMove{
		Player: board.White, Piece: board.Knight,
		Source: board.Pos{X: 1, Y: 0}, Mid: board.Pos{X: 2, Y: 2}, Target: board.Pos{X: 4, Y: 3},
	})
	require.True(t, res.Success())

	snap := e.Snapshot()
	require.Len(t, snap, 2)
	for _, h := range snap {
		assert.EqualValues(t, 1, h.Degeneracy)
	}

	var sawUnmoved, sawMoved bool
	for _, h := range snap {
		b1 := h.Board.At(board.Pos{X: 1, Y: 0})
		e4sq := h.Board.At(board.Pos{X: 4, Y: 3})
		if b1.IsOccupied() {
			sawUnmoved = true
		}
		if e4sq.IsOccupied() {
			sawMoved = true
			assert.Equal(t, board.Square{Player: board.White, Piece: board.Knight}, e4sq)
			assert.False(t, h.Board.At(board.Pos{X: 1, Y: 0}).IsOccupied())
			assert.False(t, h.Board.At(board.Pos{X: 2, Y: 2}).IsOccupied())
		}
	}
	assert.True(t, sawUnmoved)
	assert.True(t, sawMoved)
}

// S3 - Illegal move rejected.
func TestIllegalMoveRejected(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, engine.WithDecider(rng.Always(true)))

	before := e.Snapshot()

	res := e.Submit(ctx, engine.OrdinaryMove{
		Player: board.White, Piece: board.Pawn,
		Source: board.Pos{X: 4, Y: 1}, Target: board.Pos{X: 4, Y: 4},
	})
	require.False(t, res.Success())

	after := e.Snapshot()
	assert.Equal(t, before, after)
}

// S4 - Follow-up move on one branch of a quantum split: no capture, no
// collapse; only the branch holding the knight on e4 is rewritten.
func TestFollowUpMoveAfterSplitKeepsBothBranches(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, engine.WithDecider(rng.Always(true)))

	require.True(t, e.Submit(ctx, engine.QuantumMove{
		Player: board.White, Piece: board.Knight,
		Source: board.Pos{X: 1, Y: 0}, Mid: board.Pos{X: 2, Y: 2}, Target: board.Pos{X: 4, Y: 3},
	}).Success())
	e.SwitchTurn()

	require.True(t, e.Submit(ctx, engine.OrdinaryMove{
		Player: board.Black, Piece: board.Pawn,
		Source: board.Pos{X: 3, Y: 6}, Target: board.Pos{X: 3, Y: 4},
	}).Success())
	e.SwitchTurn()

	// The knight-at-e4 harmonic can reach d6; the knight-at-b1 harmonic
	// cannot (no knight sits on e4 there), so this only rewrites the moved
	// branch in place, leaving both branches present.
	res := e.Submit(ctx, engine.OrdinaryMove{
		Player: board.White, Piece: board.Knight,
		Source: board.Pos{X: 4, Y: 3}, Target: board.Pos{X: 3, Y: 5},
	})
	require.True(t, res.Success())

	snap := e.Snapshot()
	require.Len(t, snap, 2)

	var movedBranch, unmovedBranch bool
	for _, h := range snap {
		if h.Board.At(board.Pos{X: 3, Y: 5}).IsOccupied() {
			movedBranch = true
			assert.Equal(t, board.Square{Player: board.White, Piece: board.Knight}, h.Board.At(board.Pos{X: 3, Y: 5}))
		}
		if h.Board.At(board.Pos{X: 1, Y: 0}).IsOccupied() {
			unmovedBranch = true
		}
	}
	assert.True(t, movedBranch)
	assert.True(t, unmovedBranch)
}

// S5 - Trivial quantum move rejected.
func TestTrivialQuantumMoveRejected(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, engine.WithDecider(rng.Always(true)))

	res := e.Submit(ctx, engine.QuantumMove{
		Player: board.White, Piece: board.Knight,
		Source: board.Pos{X: 1, Y: 0}, Mid: board.Pos{X: 2, Y: 2}, Target: board.Pos{X: 1, Y: 0},
	})
	require.False(t, res.Success())
	assert.Contains(t, res.Reason(), "trivial")
}

// S6 - Capture with probabilistic collapse.
func TestCaptureWithProbabilisticCollapse(t *testing.T) {
	rookPresent := board.NewEmpty()
	rookPresent.Set(board.Pos{X: 0, Y: 0}, board.Square{Player: board.White, Piece: board.Rook})
	rookPresent.Set(board.Pos{X: 0, Y: 7}, board.Square{Player: board.Black, Piece: board.Bishop})

	rookAbsent := board.NewEmpty()
	rookAbsent.Set(board.Pos{X: 0, Y: 7}, board.Square{Player: board.Black, Piece: board.Bishop})

	mv := engine.OrdinaryMove{
		Player: board.White, Piece: board.Rook, TargetPiece: board.Bishop,
		Source: board.Pos{X: 0, Y: 0}, Target: board.Pos{X: 0, Y: 7},
	}

	t.Run("coin true: collapses to the rook-present branch and captures", func(t *testing.T) {
		ctx := context.Background()
		e := newEngineWithState(t, ctx, harmonic.Superposition{
			{Board: rookPresent, Degeneracy: 1},
			{Board: rookAbsent, Degeneracy: 1},
		}, rng.Always(true))

		res := e.Submit(ctx, mv)
		require.True(t, res.Success())

		snap := e.Snapshot()
		require.Len(t, snap, 1)
		assert.Equal(t, board.Square{Player: board.White, Piece: board.Rook}, snap[0].Board.At(board.Pos{X: 0, Y: 7}))
		assert.False(t, snap[0].Board.At(board.Pos{X: 0, Y: 0}).IsOccupied())
	})

	t.Run("coin false: collapses to the rook-absent branch and no capture", func(t *testing.T) {
		ctx := context.Background()
		e := newEngineWithState(t, ctx, harmonic.Superposition{
			{Board: rookPresent, Degeneracy: 1},
			{Board: rookAbsent, Degeneracy: 1},
		}, rng.Always(false))

		res := e.Submit(ctx, mv)
		require.True(t, res.Success())

		snap := e.Snapshot()
		require.Len(t, snap, 1)
		assert.Equal(t, board.Square{Player: board.Black, Piece: board.Bishop}, snap[0].Board.At(board.Pos{X: 0, Y: 7}))
		assert.False(t, snap[0].Board.At(board.Pos{X: 0, Y: 0}).IsOccupied())
	})
}

func TestWrongPlayerRejected(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, engine.WithDecider(rng.Always(true)))

	res := e.Submit(ctx, engine.OrdinaryMove{
		Player: board.Black, Piece: board.Pawn,
		Source: board.Pos{X: 4, Y: 6}, Target: board.Pos{X: 4, Y: 4},
	})
	require.False(t, res.Success())
}

func TestCaptureOfFriendlyPieceRejected(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, engine.WithDecider(rng.Always(true)))

	res := e.Submit(ctx, engine.OrdinaryMove{
		Player: board.White, Piece: board.Rook, TargetPiece: board.Knight,
		Source: board.Pos{X: 0, Y: 0}, Target: board.Pos{X: 1, Y: 0},
	})
	require.False(t, res.Success())
	assert.Contains(t, res.Reason(), "friendly")
}

// newEngineWithState is a test helper that builds an engine around an
// arbitrary superposition, bypassing the public constructor's starting
// position. It exercises the same Submit path the public API does.
func newEngineWithState(t *testing.T, ctx context.Context, state harmonic.Superposition, decide interface {
	Decide(p float64) bool
}) *engine.Engine {
	t.Helper()
	e := engine.New(ctx, engine.WithDecider(decide))
	engine.TestSetState(e, state)
	return e
}
