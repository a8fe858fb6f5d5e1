// Package vm implements the per-cell register machine: the 32-instruction
// fetch-execute loop, the 32-slot memory window, mutation injection, and
// the KILL/SHARE/TURN/reproduction side effects (spec §4.4-4.5).
package vm

import (
	"context"
	"log/slog"

	"github.com/sarchlab/nanopond/access"
	"github.com/sarchlab/nanopond/pond"
	"github.com/sarchlab/nanopond/prng"
)

// LevelTick is a custom slog level one step above LevelInfo for
// high-frequency per-tick diagnostic events (birth, kill, share), following
// core/util.go's LevelTrace. Because it sits above LevelInfo, any handler at
// LevelInfo or lower, slog's default handler included, emits these events.
// cmd/nanopond's -trace-log handler is set to LevelTick, so it keeps them
// (and warnings and errors) and drops plain Info records, the same way the
// teacher's demo mains do for LevelTrace.
const LevelTick slog.Level = slog.LevelInfo + 1

// Tick logs one high-frequency VM event at LevelTick.
func Tick(msg string, args ...any) {
	slog.Log(context.Background(), LevelTick, msg, args...)
}

// Config holds the evolution-tunable constants of the VM (spec §6).
type Config struct {
	// MutationRate is compared against a fresh 32-bit draw out of 2^32;
	// default 100000.
	MutationRate uint32
	// FailedKillPenalty divides the attacker's energy on a denied KILL
	// against a viable target; default 3.
	FailedKillPenalty uint32
	// ReproductionCost is debited from a successful reproducer; default 20.
	ReproductionCost uint32
	// CombineSense is the access sense used by TURN; default Negative.
	CombineSense access.Sense
	// ClearRAMOnBirth zeroes offspring RAM instead of randomizing it.
	ClearRAMOnBirth bool
	// DecayRAMWhenIdle scribbles one random byte into a dormant executor's
	// RAM at the end of each execution instead of leaving it untouched;
	// default false (spec §6 flag `decay_ram_when_idle`).
	DecayRAMWhenIdle bool
}

// DefaultConfig returns the documented defaults from spec §6.
func DefaultConfig() Config {
	return Config{
		MutationRate:      100000,
		FailedKillPenalty: 3,
		ReproductionCost:  20,
		CombineSense:      access.Negative,
		ClearRAMOnBirth:   false,
	}
}

// VM executes one cell's genome per call to Execute. It holds no state
// across calls beyond its configuration, the pond it mutates, and the
// shared PRNG and statistics counters the engine owns.
type VM struct {
	pond  *pond.Pond
	rng   *prng.MT19937
	cfg   Config
	stats *Stats
}

// New builds a VM bound to p, drawing entropy from rng and accumulating
// into stats. The caller owns rng and stats and may inspect stats between
// ticks.
func New(p *pond.Pond, rng *prng.MT19937, cfg Config, stats *Stats) *VM {
	return &VM{pond: p, rng: rng, cfg: cfg, stats: stats}
}

// execState is the per-execution VM state, reinitialized at the top of
// every Execute call (spec §4.5).
type execState struct {
	ip             int
	reg            uint8
	io             int
	mp             uint8
	loopStack      []int
	falseLoopDepth int
	stop           bool
	out            []uint8
}

// Execute runs the fetch-execute loop for the cell at (x, y) to
// completion: STOP, loop-stack overflow, or energy exhaustion. If the cell
// has no energy the loop body never runs, but the cell-execution counter
// still increments (spec §8 E1).
func (vm *VM) Execute(x, y int) {
	self := vm.pond.At(x, y)
	vm.stats.CellExecutions++

	depth := vm.pond.Depth()
	st := &execState{
		loopStack: make([]int, 0, depth),
		out:       make([]uint8, depth),
	}
	for i := range st.out {
		st.out[i] = pond.StopOpcode
	}

	for self.Energy > 0 && !st.stop {
		vm.step(x, y, self, st, depth)
	}

	vm.endOfExecution(x, y, self, st)
}

// step runs exactly one fetch-execute cycle: fetch, mutation injection,
// energy debit, dispatch, and instruction-pointer advance.
func (vm *VM) step(x, y int, self *pond.Cell, st *execState, depth int) {
	inst := self.Genome[st.ip] & 0x1f

	// Mutation injection happens inside the fetch step, before dispatch,
	// so it can corrupt the very instruction (or operand state) about to
	// run — including genome still being copied into an offspring's
	// output buffer by a WRITEO a few steps later.
	if vm.rng.Uint32() < vm.cfg.MutationRate {
		m := vm.rng.Uint32()
		switch {
		case m&0x20000 != 0 && m&0x10000 != 0:
			inst = uint8(m & 0x1f)
			self.Genome[st.ip] = inst
		case m&0x20000 != 0:
			st.reg = uint8(m & 0xff)
		case m&0x10000 != 0:
			st.mp = uint8(m & 0x1f)
		default:
			self.RAM[(m>>8)&0xf] = uint8(m & 0xff)
		}
	}

	self.Energy--

	advance := true
	if st.falseLoopDepth > 0 {
		switch Opcode(inst) {
		case OpLoop:
			st.falseLoopDepth++
		case OpRep:
			st.falseLoopDepth--
		}
	} else {
		vm.stats.InstructionExec[inst]++
		advance = vm.dispatch(x, y, self, st, depth, Opcode(inst))
	}

	if advance {
		st.ip++
		if st.ip >= depth {
			st.ip = 0
		}
	}
}

// dispatch executes one decoded instruction and reports whether the
// generic instruction-pointer advance at the end of step should still
// run. Only REP's taken-loop branch suppresses it — jumping to the LOOP
// slot for re-evaluation is the one case that must not also fall through
// to ip+1.
func (vm *VM) dispatch(x, y int, self *pond.Cell, st *execState, depth int, op Opcode) bool {
	switch op {
	case OpStop:
		st.stop = true
	case OpFwd:
		st.io++
		if st.io >= depth {
			st.io = 0
		}
	case OpBack:
		if st.io > 0 {
			st.io--
		} else {
			st.io = depth - 1
		}
	case OpInc:
		st.reg++
	case OpDec:
		st.reg--
	case OpReadG:
		st.reg = self.Genome[st.io]
	case OpWriteG:
		self.Genome[st.io] = st.reg & 0x1f
	case OpReadO:
		st.reg = st.out[st.io]
	case OpWriteO:
		st.out[st.io] = st.reg & 0x1f
	case OpLoop:
		if st.reg != 0 {
			if len(st.loopStack) >= depth {
				st.stop = true
			} else {
				st.loopStack = append(st.loopStack, st.ip)
			}
		} else {
			st.falseLoopDepth = 1
		}
	case OpRep:
		if len(st.loopStack) > 0 {
			top := st.loopStack[len(st.loopStack)-1]
			st.loopStack = st.loopStack[:len(st.loopStack)-1]
			if st.reg != 0 {
				st.ip = top
				return false
			}
		}
	case OpTurn:
		vm.turn(x, y, self, st)
	case OpXchg:
		st.ip++
		if st.ip >= depth {
			st.ip = 0
		}
		tmp := st.reg
		st.reg = self.Genome[st.ip]
		self.Genome[st.ip] = tmp & 0x1f
	case OpKill:
		vm.kill(x, y, self, st)
	case OpShare:
		vm.share(x, y, self, st)
	case OpZero:
		st.reg = 0
	case OpSetP:
		st.reg32ToIO(depth, st.reg)
	case OpNextB:
		st.mp = (st.mp + 8) & 0x1f
	case OpPrevB:
		st.mp = (st.mp - 8) & 0x1f
	case OpNextM:
		st.mp = (st.mp + 1) & 0x1f
	case OpPrevM:
		st.mp = (st.mp - 1) & 0x1f
	case OpReadM:
		countRead(vm.stats, st.mp&0x1f)
		st.reg = readMem(vm.pond, x, y, self, st.mp)
	case OpWriteM:
		countWrite(vm.stats, st.mp&0x1f)
		writeMem(vm.pond, x, y, self, st.mp, st.reg, vm.rng)
	case OpClearM:
		self.ClearRAM()
	case OpAdd:
		countRead(vm.stats, st.mp&0x1f)
		st.reg += readMem(vm.pond, x, y, self, st.mp)
	case OpSub:
		countRead(vm.stats, st.mp&0x1f)
		st.reg -= readMem(vm.pond, x, y, self, st.mp)
	case OpMul:
		countRead(vm.stats, st.mp&0x1f)
		st.reg *= readMem(vm.pond, x, y, self, st.mp)
	case OpDiv:
		countRead(vm.stats, st.mp&0x1f)
		t := readMem(vm.pond, x, y, self, st.mp)
		if t != 0 {
			st.reg /= t
		} else {
			st.reg = 0
		}
	case OpShl:
		st.reg <<= 1
	case OpShr:
		st.reg >>= 1
	case OpSetMP:
		st.mp = st.reg & 0x1f
	case OpRand:
		st.reg = uint8(vm.rng.Uint32())
	}
	return true
}

// reg32ToIO implements SETP: io <- reg, bounded by the genome's depth mask.
func (st *execState) reg32ToIO(depth int, reg uint8) {
	st.io = int(reg) % depth
}

// turn reads a codon from self or the faced neighbor into reg (spec §4.5:
// despite the name, TURN never changes facing — this is intentional,
// preserved behavior, not a bug to fix).
func (vm *VM) turn(x, y int, self *pond.Cell, st *execState) {
	if !self.Viable() {
		st.reg = self.Genome[st.io]
		return
	}

	_, _, n := vm.pond.Neighbor(x, y, self.Facing)
	if n.Viable() && access.Allowed(n, st.reg, vm.cfg.CombineSense, vm.rng) {
		if vm.rng.Uint32()&0x8 != 0 {
			st.reg = self.Genome[st.io]
		} else {
			st.reg = n.Genome[st.io]
		}
		return
	}
	st.reg = self.Genome[st.io]
}

// kill clears the faced neighbor if access allows, or charges the
// attacker a penalty on a denied attempt against a viable target (spec
// §4.5).
func (vm *VM) kill(x, y int, self *pond.Cell, st *execState) {
	_, _, n := vm.pond.Neighbor(x, y, self.Facing)

	if access.Allowed(n, st.reg, access.Negative, vm.rng) {
		if n.Viable() {
			vm.stats.ViableCellsKilled++
			Tick("kill", "victim", n.ID, "generation", n.Generation)
		}
		n.Reset(vm.pond.NextID(), pond.StopOpcode, vm.pond.Depth())
		return
	}

	if n.Viable() {
		penalty := self.Energy / vm.cfg.FailedKillPenalty
		if self.Energy > penalty {
			self.Energy -= penalty
		} else {
			self.Energy = 0
		}
	}
}

// share equalizes energy between self and the faced neighbor if access
// allows (spec §4.5). Total energy is conserved exactly.
func (vm *VM) share(x, y int, self *pond.Cell, st *execState) {
	_, _, n := vm.pond.Neighbor(x, y, self.Facing)

	if !access.Allowed(n, st.reg, access.Positive, vm.rng) {
		return
	}
	if n.Viable() {
		vm.stats.ViableCellShares++
		Tick("share", "peer", n.ID, "generation", n.Generation)
	}

	pot := self.Energy + n.Energy
	n.Energy = pot / 2
	self.Energy = pot - n.Energy
}

// endOfExecution attempts reproduction into the faced neighbor once the
// fetch-execute loop ends, provided the executor has enough energy and
// produced a non-STOP output (spec §4.5). Requiring the target to already
// hold energy means offspring only land in cells capable of running
// themselves.
func (vm *VM) endOfExecution(x, y int, self *pond.Cell, st *execState) {
	if self.Energy == 0 {
		if vm.cfg.DecayRAMWhenIdle {
			tmp := vm.rng.Uint32()
			self.RAM[(tmp>>8)&0xf] = uint8(tmp)
		}
		return
	}
	if self.Energy < vm.cfg.ReproductionCost {
		return
	}
	if st.out[0] == pond.StopOpcode {
		return
	}

	_, _, n := vm.pond.Neighbor(x, y, self.Facing)
	if n.Energy == 0 || !access.Allowed(n, st.reg, access.Negative, vm.rng) {
		return
	}

	if n.Viable() {
		vm.stats.ViableCellsReplaced++
	}

	n.ID = vm.pond.NextID()
	n.ParentID = self.ID
	n.Lineage = self.Lineage
	n.Generation = self.Generation + 1
	Tick("birth", "child", n.ID, "parent", self.ID, "generation", n.Generation)
	n.Logo = 0
	n.Facing = 0
	copy(n.Genome, st.out)

	if vm.cfg.ClearRAMOnBirth {
		n.ClearRAM()
	} else {
		for i := range n.RAM {
			n.RAM[i] = uint8(vm.rng.Uint32())
		}
	}

	self.Energy -= vm.cfg.ReproductionCost
}
