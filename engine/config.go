package engine

import (
	"fmt"

	"github.com/sarchlab/nanopond/geometry"
	"github.com/sarchlab/nanopond/vm"
)

// Config holds every startup-time tunable named in spec §6, with the
// documented defaults. Zero-value CellEnergyCap/TotalEnergyCap mean
// uncapped, since 0 is never a useful cap in practice.
type Config struct {
	// Grid.
	Width, Height, Depth int
	Topology              geometry.Topology

	// Frequencies, in ticks.
	ReportFrequency  uint64
	RefreshFrequency uint64
	DumpFrequency    uint64
	InflowFrequency  uint64

	// Inflow.
	InflowRateBase      uint32
	InflowRateVariation uint32
	CellEnergyCap       uint64
	TotalEnergyCap      uint64

	// Evolution + VM.
	VM vm.Config

	// Seed is the PRNG seed. Defaults to a wall-clock-derived value if the
	// caller passes 0 through WithSeed — see Builder.Build.
	Seed uint32

	// StopAt, if nonzero, ends the run once this tick is reached.
	StopAt uint64
}

// DefaultConfig returns the documented defaults from spec §6.
func DefaultConfig() Config {
	return Config{
		Width:    640,
		Height:   480,
		Depth:    512,
		Topology: geometry.Topology6,

		ReportFrequency:  1000000,
		RefreshFrequency: 20000,
		DumpFrequency:    10000000,
		InflowFrequency:  100,

		InflowRateBase:      2000,
		InflowRateVariation: 4000,

		VM: vm.DefaultConfig(),
	}
}

// validate checks the configuration contract spec §7 requires to fail fast
// at startup: depth must be a power of two of at least 16, frequencies must
// be positive (a zero frequency would divide by zero in the tick loop), and
// the grid must have positive area.
func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("engine: width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Depth < 16 || c.Depth&(c.Depth-1) != 0 {
		return fmt.Errorf("engine: depth %d must be a power of two >= 16", c.Depth)
	}
	if c.ReportFrequency == 0 || c.RefreshFrequency == 0 || c.DumpFrequency == 0 || c.InflowFrequency == 0 {
		return fmt.Errorf("engine: report/refresh/dump/inflow frequencies must be nonzero")
	}
	return nil
}
