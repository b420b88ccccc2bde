// Package engine implements the quantum chess move-submission protocol: it
// classifies a proposed move against the current superposition and either
// rewrites every harmonic in place, splits harmonics, or collapses the state
// via a biased coin flip, then runs the post-move normalization pipeline.
// This is the correctness-critical core described in spec.md §4.3.
package engine

import (
	"context"
	"sync"

	"github.com/herohde/quantumchess/pkg/quantum/board"
	"github.com/herohde/quantumchess/pkg/quantum/harmonic"
	"github.com/herohde/quantumchess/pkg/quantum/invariant"
	"github.com/herohde/quantumchess/pkg/quantum/rng"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine creation options.
type Options struct {
	// Seed optionally fixes the default random source's seed, for
	// reproducible play without a fully deterministic test decider.
	Seed lang.Optional[int64]
}

// Option is an engine creation option.
type Option func(*Engine)

// WithDecider overrides the coin-flip source. Tests inject rng.Fixed/rng.Always.
func WithDecider(decide rng.Decider) Option {
	return func(e *Engine) {
		e.decide = decide
	}
}

// WithOptions sets the default random seed via Options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		if seed, ok := opts.Seed.V(); ok {
			e.decide = rng.NewDefault(seed)
		}
	}
}

// Engine owns a single quantum chessboard and whose turn it is. Submit is
// not re-entrant in spirit -- the rules assume one request in flight -- but
// the engine serializes concurrent callers internally via mu, so a *Engine
// is safe to share across goroutines (spec.md §5).
type Engine struct {
	mu sync.Mutex

	player board.Player
	state  harmonic.Superposition
	decide rng.Decider
}

// New returns a fresh engine: white to move, one harmonic of the standard
// starting position at degeneracy 1.
func New(ctx context.Context, opts ...Option) *Engine {
	e := &Engine{
		player: board.White,
		state:  harmonic.New(board.NewStarting()),
		decide: rng.NewDefault(0),
	}
	for _, opt := range opts {
		opt(e)
	}

	logw.Infof(ctx, "Initialized quantum chess engine %v", version)
	return e
}

// CurrentPlayer returns whose turn it is.
func (e *Engine) CurrentPlayer() board.Player {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.player
}

// SwitchTurn advances the turn. The core never does this itself on Success;
// it is the caller's (boundary driver's) responsibility per spec.md §4.4.
func (e *Engine) SwitchTurn() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.player.Switch()
}

// Snapshot returns a deep clone of the current superposition; callers
// cannot mutate engine state through it.
func (e *Engine) Snapshot() harmonic.Superposition {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.Clone()
}

// Submit classifies mv against the current superposition and applies it.
// Both Ordinary and Quantum branches run the post-move pipeline
// (measurement, regroup, normalize) before returning, even on some failure
// paths, since the pipeline is idempotent on a clean state.
func (e *Engine) Submit(ctx context.Context, mv Move) MoveResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Submit %v", mv)

	var result MoveResult
	switch m := mv.(type) {
	case OrdinaryMove:
		result = e.submitOrdinary(ctx, m)
	case QuantumMove:
		result = e.submitQuantum(ctx, m)
	default:
		invariant.Violatef(ctx, "unknown move type: %T", mv)
	}

	e.state.RunPostMovePipeline(e.decide)

	logw.Infof(ctx, "Submit %v: %v", mv, result)
	return result
}
