package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/herohde/quantumchess/pkg/quantum/api"
	"github.com/herohde/quantumchess/pkg/quantum/console"
	"github.com/herohde/quantumchess/pkg/quantum/engine"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var (
	httpAddr = flag.String("http", "", "HTTP address to serve the JSON API on (disabled if empty)")
	seed     = flag.Int64("seed", 0, "Seed for the default random source (0 for a fixed, reproducible default)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: quantumd [options]

QUANTUMD is a quantum chess rules engine with a console protocol and an
optional JSON/WebSocket API.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, engine.WithOptions(engine.Options{Seed: lang.Some(*seed)}))

	if *httpAddr != "" {
		s := api.NewServer(e)
		go func() {
			logw.Infof(ctx, "Serving JSON API on %v", *httpAddr)
			if err := http.ListenAndServe(*httpAddr, s.Handler()); err != nil {
				logw.Exitf(ctx, "HTTP server failed: %v", err)
			}
		}()
	}

	in := console.ReadStdinLines(ctx)
	driver, out := console.NewDriver(ctx, e, in)
	go console.WriteStdoutLines(ctx, out)

	<-driver.Closed()
}
