// Package console implements an interactive stdin/stdout driver around a
// quantum chess engine, in the style of the UCI console protocol but scoped
// down to move submission and board printing.
package console

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/herohde/quantumchess/pkg/quantum/engine"
	"github.com/herohde/quantumchess/pkg/quantum/notation"
	"github.com/herohde/quantumchess/pkg/quantum/render"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

const ProtocolName = "console"

// ReadStdinLines reads stdin lines into a chan. Async.
func ReadStdinLines(ctx context.Context) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			logw.Debugf(ctx, "<< %v", scanner.Text())
			ret <- scanner.Text()
		}
	}()
	return ret
}

// WriteStdoutLines writes lines from the given chan to stdout.
func WriteStdoutLines(ctx context.Context, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, ">> %v", line)
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
}

// Driver implements a console driver for interactive play and debugging.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out chan<- string
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- "quantum chess console"
	d.printBoard(ctx)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			cmd := strings.TrimSpace(line)
			switch strings.ToLower(cmd) {
			case "print", "p":
				d.printBoard(ctx)

			case "quit", "exit", "q":
				logw.Infof(ctx, "Driver closed")
				return

			case "":
				// ignore empty command

			default:
				d.submit(ctx, cmd)
			}

		case <-d.Closed():
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) submit(ctx context.Context, cmd string) {
	mv, err := notation.Parse(cmd)
	if err != nil {
		d.out <- fmt.Sprintf("unrecognized move: %q", cmd)
		return
	}

	result := d.e.Submit(ctx, mv)
	if !result.Success() {
		d.out <- fmt.Sprintf("move rejected: %v", result.Reason())
		return
	}

	d.e.SwitchTurn()
	d.printBoard(ctx)
}

func (d *Driver) printBoard(ctx context.Context) {
	snap := d.e.Snapshot()

	d.out <- ""
	d.out <- fmt.Sprintf("to move: %v", d.e.CurrentPlayer())
	d.out <- fmt.Sprintf("harmonics: %v", len(snap))
	for i, h := range snap {
		d.out <- fmt.Sprintf("-- harmonic %v, degeneracy %v --", i, h.Degeneracy)
		d.out <- render.Board(h.Board)
	}
}
