// Package observer implements the reference Observer named in spec §6: a
// CSV statistics writer, a periodic genome dump to disk, and the per-cell
// color function a visualiser drives off of. None of it is part of the
// simulation core — the engine only ever calls back through the
// engine.Observer interface (spec §1).
package observer

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/nanopond/engine"
)

// Config configures the Default observer.
type Config struct {
	// ReportWriter receives one CSV line per report tick; defaults to
	// os.Stdout.
	ReportWriter io.Writer
	// DumpDir is the directory genome dumps are written into; defaults to
	// the working directory.
	DumpDir string
	// PrintSummary additionally renders a human-readable go-pretty table
	// to stdout on every report tick, following core/util.go's PrintState
	// debug-dump pattern.
	PrintSummary bool
}

// Default is the reference Observer: CSV report writer, dump-to-disk,
// optional human-readable summary table. It never asks the engine to stop
// (OnRefresh always returns false) — a visualiser embedding Default for its
// report/dump behavior overrides OnRefresh for input polling.
type Default struct {
	cfg Config

	lastTotalViableReplicators uint64
}

// New builds a Default observer, filling in ReportWriter/DumpDir defaults.
func New(cfg Config) *Default {
	if cfg.ReportWriter == nil {
		cfg.ReportWriter = os.Stdout
	}
	if cfg.DumpDir == "" {
		cfg.DumpDir = "."
	}
	return &Default{cfg: cfg}
}

var _ engine.Observer = (*Default)(nil)

// OnReport writes one CSV row, emits an extinction/appearance event on a
// viable-population zero-crossing, and optionally prints a summary table
// (SPEC_FULL.md §C.1).
func (o *Default) OnReport(snap engine.Snapshot) {
	sum := Summarize(snap.Pond, snap.Tick)
	writeReportLine(o.cfg.ReportWriter, sum, snap.Stats)

	switch {
	case o.lastTotalViableReplicators > 0 && sum.TotalViableReplicators == 0:
		slog.Warn("viable replicators have gone extinct", "tick", snap.Tick)
	case o.lastTotalViableReplicators == 0 && sum.TotalViableReplicators > 0:
		slog.Info("viable replicators have appeared", "tick", snap.Tick)
	}
	o.lastTotalViableReplicators = sum.TotalViableReplicators

	if o.cfg.PrintSummary {
		o.printSummary(sum)
	}
}

// OnRefresh never signals a stop by default; a visualiser wrapping Default
// is expected to override this for its own input polling (spec §6).
func (o *Default) OnRefresh(engine.Snapshot) bool { return false }

// OnDump writes every viable cell of the pond to <tick>.dump.csv.
func (o *Default) OnDump(snap engine.Snapshot) {
	dumpPond(snap.Pond, snap.Tick, o.cfg.DumpDir)
}

func (o *Default) printSummary(sum Summary) {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Pond summary @ tick %d", sum.Tick))
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Total energy", sum.TotalEnergy})
	t.AppendRow(table.Row{"Max cell energy", sum.MaxCellEnergy})
	t.AppendRow(table.Row{"Max living cell energy", sum.MaxLivingCellEnergy})
	t.AppendRow(table.Row{"Active cells", sum.TotalActiveCells})
	t.AppendRow(table.Row{"Living cells", sum.TotalLivingCells})
	t.AppendRow(table.Row{"Viable replicators", sum.TotalViableReplicators})
	t.AppendRow(table.Row{"Max generation", sum.MaxGeneration})
	fmt.Println(t.Render())
}
