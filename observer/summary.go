package observer

import "github.com/sarchlab/nanopond/pond"

// Summary is a single-pass scan of the pond, computed once per report tick
// and reused by the report writer, the optional summary table, and
// ColorFunc's energy-relative schemes (spec §6, §4.6).
type Summary struct {
	Tick uint64

	TotalEnergy         uint64
	MaxCellEnergy       uint32
	MaxLivingCellEnergy uint32

	TotalActiveCells       uint64
	TotalLivingCells       uint64
	TotalViableReplicators uint64
	MaxGeneration          uint32

	MeanLivingEnergy float64
	MeanViableEnergy float64
}

// Summarize scans p once, classifying every cell by the same
// dormant/living/viable rules the pond itself defines (spec §3).
func Summarize(p *pond.Pond, tick uint64) Summary {
	s := Summary{Tick: tick}

	var totalLivingEnergy, totalViableEnergy uint64

	p.Each(func(_, _ int, c *pond.Cell) {
		if c.Dormant() {
			return
		}

		s.TotalActiveCells++
		s.TotalEnergy += uint64(c.Energy)
		if c.Energy > s.MaxCellEnergy {
			s.MaxCellEnergy = c.Energy
		}

		if c.Living() {
			s.TotalLivingCells++
			totalLivingEnergy += uint64(c.Energy)
			if c.Energy > s.MaxLivingCellEnergy {
				s.MaxLivingCellEnergy = c.Energy
			}

			if c.Viable() {
				s.TotalViableReplicators++
				totalViableEnergy += uint64(c.Energy)
			}
		}

		if c.Generation > s.MaxGeneration {
			s.MaxGeneration = c.Generation
		}
	})

	if s.TotalLivingCells > 0 {
		s.MeanLivingEnergy = float64(totalLivingEnergy) / float64(s.TotalLivingCells)
	}
	if s.TotalViableReplicators > 0 {
		s.MeanViableEnergy = float64(totalViableEnergy) / float64(s.TotalViableReplicators)
	}

	return s
}
