package engine

import (
	"github.com/sarchlab/nanopond/pond"
	"github.com/sarchlab/nanopond/vm"
)

// Snapshot is the read-only handle an Observer receives at a tick boundary
// (spec §1: "read-only access to the pond snapshot at chosen tick
// boundaries"). Observers may read any cell through Pond but must not
// mutate Pond, the engine's PRNG, or Stats — the engine only ever hands out
// a Snapshot between ticks, never during one, so there is no concurrent
// access to guard against; the restriction is a contract, not a lock.
type Snapshot struct {
	Pond  *pond.Pond
	Stats *vm.Stats
	Tick  uint64
}

// Observer is the contract the engine calls out to at report, refresh, and
// dump tick boundaries (spec §1, §6). Implementations live outside the
// core: CSV statistics, genome dump-to-disk, and real-time visualisation
// are all just one Observer apiece.
type Observer interface {
	// OnReport fires every ReportFrequency ticks. Implementations that
	// track running counters (e.g. CSV column stats) should treat this as
	// the point the engine's Stats are about to be reset.
	OnReport(snap Snapshot)

	// OnRefresh fires every RefreshFrequency ticks; it is the only point
	// at which external cancellation is polled (spec §5). Returning true
	// stops the engine at once: the rest of the current tick (dump, inflow,
	// execution) is skipped and every later Tick call returns false.
	OnRefresh(snap Snapshot) (stop bool)

	// OnDump fires every DumpFrequency ticks and should iterate Pond for
	// viable cells and persist them; any failure (e.g. unable to open a
	// file) is the observer's concern to log, not the engine's to handle
	// (spec §7).
	OnDump(snap Snapshot)
}

// NopObserver implements Observer with no-ops, for callers (tests, a
// headless batch run) that need a valid Observer but no side effects.
type NopObserver struct{}

// OnReport does nothing.
func (NopObserver) OnReport(Snapshot) {}

// OnRefresh does nothing and never asks the engine to stop.
func (NopObserver) OnRefresh(Snapshot) bool { return false }

// OnDump does nothing.
func (NopObserver) OnDump(Snapshot) {}
