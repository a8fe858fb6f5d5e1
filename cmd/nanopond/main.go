// Command nanopond wires the simulation engine to the reference observer
// and drives it with an akita SerialEngine, following
// samples/passthrough/main.go and test/testbench/fir/main.go's
// build-then-Schedule-then-Run wiring.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/nanopond/engine"
	"github.com/sarchlab/nanopond/observer"
	"github.com/sarchlab/nanopond/vm"
)

func main() {
	var (
		seed     = flag.Uint64("seed", 0, "PRNG seed (0 derives one from wall-clock time)")
		stopAt   = flag.Uint64("stop-at", 0, "stop after this many ticks (0 = unbounded)")
		width    = flag.Int("width", 640, "pond width")
		height   = flag.Int("height", 480, "pond height")
		dumpDir  = flag.String("dump-dir", ".", "directory for genome dump files")
		summary  = flag.Bool("summary", false, "print a human-readable summary table every report tick")
		traceLog = flag.String("trace-log", "", "write per-tick birth/kill/share events as JSON to this file")
	)
	flag.Parse()

	if *traceLog != "" {
		f, err := os.Create(*traceLog)
		if err != nil {
			fmt.Fprintln(os.Stderr, "nanopond: could not open trace log:", err)
			atexit.Exit(1)
		}
		defer f.Close()
		slog.SetDefault(slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: vm.LevelTick})))
	}

	cfg := engine.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = uint32(*seed)
	cfg.StopAt = *stopAt

	akitaEngine := sim.NewSerialEngine()
	obs := observer.New(observer.Config{DumpDir: *dumpDir, PrintSummary: *summary})

	pond, err := engine.NewBuilder().
		WithEngine(akitaEngine).
		WithFreq(1 * sim.GHz).
		WithConfig(cfg).
		WithObserver(obs).
		Build("NanopondEngine")
	if err != nil {
		fmt.Fprintln(os.Stderr, "nanopond: invalid configuration:", err)
		atexit.Exit(1)
	}

	atexit.Register(func() {
		fmt.Printf("nanopond: stopped at tick %d\n", pond.CurrentTick())
	})

	akitaEngine.Schedule(sim.MakeTickEvent(pond.TickingComponent, 0))
	akitaEngine.Run()

	atexit.Exit(0)
}
