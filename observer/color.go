package observer

import "github.com/sarchlab/nanopond/pond"

// ColorScheme selects the per-cell color formula a visualiser applies
// (spec §6).
type ColorScheme int

const (
	SchemeKinship ColorScheme = iota
	SchemeLineage
	SchemeLogo
	SchemeFacing
	SchemeEnergy1
	SchemeEnergy2
	SchemeRAM0
	SchemeRAM1
)

func (s ColorScheme) String() string {
	switch s {
	case SchemeKinship:
		return "KINSHIP"
	case SchemeLineage:
		return "LINEAGE"
	case SchemeLogo:
		return "LOGO"
	case SchemeFacing:
		return "FACING"
	case SchemeEnergy1:
		return "ENERGY1"
	case SchemeEnergy2:
		return "ENERGY2"
	case SchemeRAM0:
		return "RAM0"
	case SchemeRAM1:
		return "RAM1"
	default:
		return "UNKNOWN"
	}
}

// ColorFunc returns the 8-bit palette index a visualiser should use for c
// under scheme, given the most recent Summary (spec §6). Dormant cells and
// cells below the "living" generation threshold always return 0, per the
// spec's stated contract — the original program's ENERGY2 formula omits
// that generation gate, but spec.md states the blanket rule as binding
// across all eight schemes, so that is what's implemented here.
func ColorFunc(c *pond.Cell, scheme ColorScheme, sum Summary) uint8 {
	if c.Dormant() || !c.Living() {
		return 0
	}

	switch scheme {
	case SchemeKinship:
		// Christoph Groth's kinship scheme: a wrapped sum-of-genome hash,
		// so related genomes land on similar hues.
		var total uint32
		for _, codon := range c.Genome {
			total += uint32(codon)
		}
		return uint8((total % 192) + 64)

	case SchemeLineage:
		return uint8(c.Lineage) | 1

	case SchemeLogo:
		return uint8(73 + c.Logo)

	case SchemeFacing:
		return uint8(157 + c.Facing)

	case SchemeEnergy1:
		if sum.MaxLivingCellEnergy == 0 {
			return 0
		}
		return uint8(255.0 * float64(c.Energy) / float64(sum.MaxLivingCellEnergy))

	case SchemeEnergy2:
		if sum.MaxCellEnergy == 0 {
			return 0
		}
		return uint8(255.0 * float64(c.Energy) / float64(sum.MaxCellEnergy))

	case SchemeRAM0:
		var total uint32
		for i := 0; i < pond.PrivateRAMSize; i++ {
			total += uint32(c.RAM[i])
		}
		return uint8((total & 0x7f) + 128)

	case SchemeRAM1:
		var total uint32
		for i := pond.PrivateRAMSize; i < pond.RAMSize; i++ {
			total += uint32(c.RAM[i])
		}
		return uint8((total & 0x7f) + 128)

	default:
		return 0
	}
}
