package vm

import (
	"github.com/sarchlab/nanopond/access"
	"github.com/sarchlab/nanopond/pond"
	"github.com/sarchlab/nanopond/prng"
)

// Memory address bands (spec §4.4).
const (
	AddrLogo       = 0x00
	AddrFacing     = 0x01
	AddrEnergy     = 0x02
	AddrLineage    = 0x03
	AddrID         = 0x04
	AddrParentID   = 0x05
	AddrGenHi      = 0x06
	AddrGenLo      = 0x07
	AddrPrivateLo  = 0x08
	AddrPrivateHi  = 0x0f
	AddrOutputLo   = 0x10
	AddrOutputHi   = 0x17
	AddrNeighborLo = 0x18
	AddrNeighborHi = 0x1f

	memPointerMask = 0x1f
)

// Stats accumulates the per-report counters named in spec §6: eight
// memory-access counters, per-instruction execution frequencies, cell
// executions, and the three interaction-outcome counters. It is reset by
// the engine right after every OnReport call, mirroring doReport()'s
// zero-the-struct trailer in the original source.
type Stats struct {
	MemSpecialReads    uint64
	MemPrivateReads    uint64
	MemOutputReads     uint64
	MemInputReads      uint64
	MemSpecialWrites   uint64
	MemPrivateWrites   uint64
	MemOutputWrites    uint64
	MemInputWrites     uint64
	InstructionExec    [32]uint64
	CellExecutions     uint64
	ViableCellsReplaced uint64
	ViableCellsKilled   uint64
	ViableCellShares    uint64
}

// Reset zeroes every counter, as the original does at the end of each
// report.
func (s *Stats) Reset() { *s = Stats{} }

// readMem implements the READM/ADD/SUB/MUL/DIV/TURN-adjacent memory read
// at the VM's current memory pointer, against self at grid position (x, y)
// in p. Every address increments exactly one counter (spec §4.4), even the
// read-only special registers 0x03-0x07 — spec.md states the invariant as
// a blanket rule, and the original source's omission there (it only counts
// reads of 0x00-0x02) looks incidental rather than load-bearing, so this
// follows the stated invariant rather than the omission.
func readMem(p *pond.Pond, x, y int, self *pond.Cell, ptr uint8) uint8 {
	addr := ptr & memPointerMask

	switch {
	case addr == AddrLogo:
		return self.Logo
	case addr == AddrFacing:
		return self.Facing
	case addr == AddrEnergy:
		if self.Energy == 0 {
			return 0
		}
		if self.Energy > 126975 {
			return 31
		}
		return uint8(1 + (self.Energy >> 12))
	case addr == AddrLineage:
		return uint8(self.Lineage)
	case addr == AddrID:
		return uint8(self.ID)
	case addr == AddrParentID:
		return uint8(self.ParentID)
	case addr == AddrGenHi:
		return uint8(self.Generation >> 8)
	case addr == AddrGenLo:
		return uint8(self.Generation)
	case addr >= AddrPrivateLo && addr <= AddrPrivateHi:
		return self.RAM[addr&0x7]
	case addr >= AddrOutputLo && addr <= AddrOutputHi:
		return self.RAM[pond.PrivateRAMSize+(addr&0x7)]
	default: // AddrNeighborLo..AddrNeighborHi
		_, _, n := p.Neighbor(x, y, self.Facing)
		return n.RAM[pond.PrivateRAMSize+(addr&0x7)]
	}
}

// countRead increments the counter matching addr's band.
func countRead(stats *Stats, addr uint8) {
	switch {
	case addr <= AddrGenLo:
		stats.MemSpecialReads++
	case addr >= AddrPrivateLo && addr <= AddrPrivateHi:
		stats.MemPrivateReads++
	case addr >= AddrOutputLo && addr <= AddrOutputHi:
		stats.MemOutputReads++
	default:
		stats.MemInputReads++
	}
}

// writeMem implements WRITEM against self at (x, y) in p. Writes to
// read-only special slots and to a disallowed neighbor are silently
// dropped but still counted.
func writeMem(p *pond.Pond, x, y int, self *pond.Cell, ptr, value uint8, rng *prng.MT19937) {
	addr := ptr & memPointerMask

	switch {
	case addr == AddrLogo:
		self.SetLogo(value)
	case addr == AddrFacing:
		self.SetFacing(value)
	case addr >= AddrGenHi && addr <= AddrGenLo:
		// read only
	case addr == AddrEnergy || addr == AddrLineage || addr == AddrID || addr == AddrParentID:
		// read only
	case addr >= AddrPrivateLo && addr <= AddrPrivateHi:
		self.SetPrivateRAM(int(addr), value)
	case addr >= AddrOutputLo && addr <= AddrOutputHi:
		self.SetOutputRAM(int(addr), value)
	default: // neighbor band: only with sense-1 permission, using self's logo as guess
		_, _, n := p.Neighbor(x, y, self.Facing)
		if access.Allowed(n, self.Logo, access.Positive, rng) {
			n.SetOutputRAM(int(addr), value)
		}
	}
}

// countWrite increments the counter matching addr's band. As with reads,
// every special address (including the read-only ones) counts as a
// special write, matching the original's write_mem exactly.
func countWrite(stats *Stats, addr uint8) {
	switch {
	case addr <= AddrGenLo:
		stats.MemSpecialWrites++
	case addr >= AddrPrivateLo && addr <= AddrPrivateHi:
		stats.MemPrivateWrites++
	case addr >= AddrOutputLo && addr <= AddrOutputHi:
		stats.MemOutputWrites++
	default:
		stats.MemInputWrites++
	}
}
