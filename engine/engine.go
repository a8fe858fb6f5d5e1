// Package engine drives the per-tick scheduler: it owns the pond, the PRNG,
// the VM, and the per-report statistics, and it is the only thing that ever
// mutates them (spec §4.6, §5). Everything else — CSV reporting, genome
// dumps, visualisation, interactive input — is an external Observer wired
// in at construction time.
package engine

import (
	"fmt"
	"time"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/nanopond/geometry"
	"github.com/sarchlab/nanopond/pond"
	"github.com/sarchlab/nanopond/prng"
	"github.com/sarchlab/nanopond/vm"
)

// Engine is a single akita TickingComponent: each Tick call executes
// exactly one simulation tick (spec §4.6 steps 1-7). It carries no
// suspension points mid-tick, matching spec §5's strictly sequential
// cooperative-scheduling model.
type Engine struct {
	*sim.TickingComponent

	cfg      Config
	pnd      *pond.Pond
	rng      *prng.MT19937
	machine  *vm.VM
	stats    *vm.Stats
	observer Observer

	tick    uint64
	stopped bool
}

// Builder fluently constructs an Engine, following the teacher's
// Builder/Build(name) convention (core/builder.go, config/config.go).
type Builder struct {
	akitaEngine sim.Engine
	freq        sim.Freq
	cfg         Config
	observer    Observer
	monitor     *monitoring.Monitor
}

// NewBuilder returns a Builder pre-loaded with DefaultConfig and a
// no-op Observer; callers normally override both.
func NewBuilder() Builder {
	return Builder{
		freq:     1 * sim.GHz,
		cfg:      DefaultConfig(),
		observer: NopObserver{},
	}
}

// WithEngine sets the akita engine driving this component's ticks.
func (b Builder) WithEngine(akitaEngine sim.Engine) Builder {
	b.akitaEngine = akitaEngine
	return b
}

// WithFreq sets the component's nominal tick frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithConfig replaces the whole configuration in one call.
func (b Builder) WithConfig(cfg Config) Builder {
	b.cfg = cfg
	return b
}

// WithWidth overrides the pond's x extent.
func (b Builder) WithWidth(width int) Builder {
	b.cfg.Width = width
	return b
}

// WithHeight overrides the pond's y extent.
func (b Builder) WithHeight(height int) Builder {
	b.cfg.Height = height
	return b
}

// WithDepth overrides the genome depth (must remain a power of two >= 16).
func (b Builder) WithDepth(depth int) Builder {
	b.cfg.Depth = depth
	return b
}

// WithTopology selects the neighbor topology.
func (b Builder) WithTopology(t geometry.Topology) Builder {
	b.cfg.Topology = t
	return b
}

// WithSeed sets the PRNG seed; 0 means "derive one from wall-clock time"
// (spec §4.1).
func (b Builder) WithSeed(seed uint32) Builder {
	b.cfg.Seed = seed
	return b
}

// WithStopAt sets an optional tick limit; 0 means unbounded (spec §1, §6).
func (b Builder) WithStopAt(tick uint64) Builder {
	b.cfg.StopAt = tick
	return b
}

// WithObserver wires in the report/refresh/dump callback collaborator.
func (b Builder) WithObserver(o Observer) Builder {
	b.observer = o
	return b
}

// WithMonitor optionally registers the engine with an akita monitor for
// runtime introspection, matching config.DeviceBuilder.WithMonitor.
func (b Builder) WithMonitor(m *monitoring.Monitor) Builder {
	b.monitor = m
	return b
}

// Build validates the configuration and constructs the Engine. Configuration
// errors (non-power-of-two depth, a zero frequency) are returned, not
// panicked, so callers can surface them however they like (spec §7:
// "Configuration errors ... must fail fast at startup").
func (b Builder) Build(name string) (*Engine, error) {
	if err := b.cfg.validate(); err != nil {
		return nil, err
	}

	seed := b.cfg.Seed
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}

	e := &Engine{
		cfg:      b.cfg,
		pnd:      pond.New(b.cfg.Width, b.cfg.Height, b.cfg.Depth, b.cfg.Topology),
		rng:      prng.New(seed),
		stats:    &vm.Stats{},
		observer: b.observer,
	}
	e.machine = vm.New(e.pnd, e.rng, b.cfg.VM, e.stats)
	e.TickingComponent = sim.NewTickingComponent(name, b.akitaEngine, b.freq, e)

	if b.monitor != nil {
		b.monitor.RegisterComponent(e.TickingComponent)
	}

	return e, nil
}

// Pond exposes the pond for read-only inspection outside a Tick call (e.g.
// a caller printing a final summary after the akita engine stops).
func (e *Engine) Pond() *pond.Pond { return e.pnd }

// CurrentTick reports the next tick number Tick will execute.
func (e *Engine) CurrentTick() uint64 { return e.tick }

func (e *Engine) snapshot() Snapshot {
	return Snapshot{Pond: e.pnd, Stats: e.stats, Tick: e.tick}
}

// Tick executes one simulation tick: the stop-at check, the report/refresh/
// dump observer callbacks, inflow seeding, and one random cell's execution
// (spec §4.6). It returns false once the configured StopAt tick is reached
// or an Observer asks to stop via OnRefresh; akita's serial engine treats a
// false return as "this component has no more work".
func (e *Engine) Tick(now sim.VTimeInSec) (madeProgress bool) {
	if e.stopped {
		return false
	}
	if e.cfg.StopAt > 0 && e.tick >= e.cfg.StopAt {
		e.stopped = true
		return false
	}

	if e.tick%e.cfg.ReportFrequency == 0 {
		e.observer.OnReport(e.snapshot())
		e.stats.Reset()
	}
	if e.tick%e.cfg.RefreshFrequency == 0 {
		if e.observer.OnRefresh(e.snapshot()) {
			e.stopped = true
			return false
		}
	}
	if e.tick%e.cfg.DumpFrequency == 0 {
		e.observer.OnDump(e.snapshot())
	}
	if e.tick%e.cfg.InflowFrequency == 0 {
		e.seed()
	}

	x := int(e.rng.Uint32()) % e.pnd.Width()
	y := int(e.rng.Uint32()) % e.pnd.Height()
	e.machine.Execute(x, y)

	e.tick++
	return true
}

// seed injects energy and a fresh random genome at a random position (spec
// §4.6 step 5). Both caps are optional (0 means uncapped); a cell whose
// energy has already reached its cap still gets a fresh id/lineage/genome/RAM,
// only the energy addition is skipped (spec §7).
func (e *Engine) seed() {
	x := int(e.rng.Uint32()) % e.pnd.Width()
	y := int(e.rng.Uint32()) % e.pnd.Height()
	c := e.pnd.At(x, y)

	id := e.pnd.NextID()
	c.ID = id
	c.ParentID = 0
	c.Lineage = id
	c.Generation = 0
	c.Logo = 0
	c.Facing = 0

	if e.inflowAllowed(c) {
		add := e.cfg.InflowRateBase
		if e.cfg.InflowRateVariation > 0 {
			add += e.rng.Uint32() % e.cfg.InflowRateVariation
		}
		c.Energy += add
	}

	for i := range c.Genome {
		c.Genome[i] = uint8(e.rng.Uint32()) & pond.FiveBitMask
	}
	for i := range c.RAM {
		if e.cfg.VM.ClearRAMOnBirth {
			c.RAM[i] = 0
		} else {
			c.RAM[i] = uint8(e.rng.Uint32())
		}
	}
}

func (e *Engine) inflowAllowed(c *pond.Cell) bool {
	if e.cfg.TotalEnergyCap > 0 && e.totalEnergy() >= e.cfg.TotalEnergyCap {
		return false
	}
	if e.cfg.CellEnergyCap > 0 && uint64(c.Energy) >= e.cfg.CellEnergyCap {
		return false
	}
	return true
}

// totalEnergy scans the pond. Only called when a total-energy cap is
// configured (off by default), so the scan cost is opt-in.
func (e *Engine) totalEnergy() uint64 {
	var total uint64
	e.pnd.Each(func(_, _ int, c *pond.Cell) {
		total += uint64(c.Energy)
	})
	return total
}

// String satisfies fmt.Stringer for debug printing.
func (e *Engine) String() string {
	return fmt.Sprintf("Engine(tick=%d, %dx%d)", e.tick, e.cfg.Width, e.cfg.Height)
}
