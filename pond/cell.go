// Package pond owns the dense W x H array of Cell records that is the
// substrate of the simulation. It has no notion of instructions or
// scheduling; it only stores state and hands out fresh ids (spec §3).
package pond

const (
	// FiveBitMask masks a value to the 5-bit genome/logo/facing domain.
	FiveBitMask = 0x1f
	// EightBitMask masks a value to one RAM byte.
	EightBitMask = 0xff
	// RAMSize is the number of RAM bytes per cell: 8 private + 8 output.
	RAMSize = 16
	// PrivateRAMSize is the low half of RAM, readable only by self.
	PrivateRAMSize = 8
)

// Cell is one position's state. Identity is by grid position, not by value;
// callers always address a Cell through a Pond.
type Cell struct {
	ID         uint64
	ParentID   uint64
	Lineage    uint64
	Generation uint32
	Energy     uint32
	Logo       uint8
	Facing     uint8
	Genome     []uint8
	RAM        [RAMSize]uint8
}

// Viable reports whether c counts toward evolutionary statistics and is
// eligible for dumping (generation >= 3, spec §3 and GLOSSARY).
func (c *Cell) Viable() bool {
	return c.Generation >= 3
}

// Living reports whether c counts as a living cell in reports
// (generation >= 2, spec §3).
func (c *Cell) Living() bool {
	return c.Generation >= 2
}

// Dormant reports whether c has no energy and is therefore never chosen to
// execute, though its genome and RAM remain readable and overwritable.
func (c *Cell) Dormant() bool {
	return c.Energy == 0
}

func maskLogo(v uint8) uint8 { return v & FiveBitMask }

func maskRAM(v uint8) uint8 { return v & EightBitMask }

// SetLogo stores v masked to 5 bits.
func (c *Cell) SetLogo(v uint8) { c.Logo = maskLogo(v) }

// SetFacing stores v masked to 5 bits.
func (c *Cell) SetFacing(v uint8) { c.Facing = maskLogo(v) }

// SetPrivateRAM stores v masked to 8 bits at private slot i (0..7).
func (c *Cell) SetPrivateRAM(i int, v uint8) { c.RAM[i&0x7] = maskRAM(v) }

// SetOutputRAM stores v masked to 8 bits at output slot i (0..7).
func (c *Cell) SetOutputRAM(i int, v uint8) { c.RAM[PrivateRAMSize+(i&0x7)] = maskRAM(v) }

// ClearRAM zeroes all 16 RAM bytes (the VM's CLEARM instruction).
func (c *Cell) ClearRAM() {
	for i := range c.RAM {
		c.RAM[i] = 0
	}
}

// Reset wipes the cell back to its "never lived" state: id/lineage
// reassigned fresh, genome filled with STOP, logo/facing/generation/RAM
// zeroed. Energy is deliberately left untouched so that a freshly-cleared
// slot stays runnable (spec §4.5 KILL semantics). Seeding and birth do not
// call Reset; they overwrite the cell's fields directly.
func (c *Cell) Reset(id uint64, stopOpcode uint8, depth int) {
	c.ID = id
	c.ParentID = 0
	c.Lineage = id
	c.Generation = 0
	c.Logo = 0
	c.Facing = 0
	c.ClearRAM()
	if cap(c.Genome) < depth {
		c.Genome = make([]uint8, depth)
	} else {
		c.Genome = c.Genome[:depth]
	}
	for i := range c.Genome {
		c.Genome[i] = stopOpcode & FiveBitMask
	}
}
