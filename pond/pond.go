package pond

import (
	"fmt"

	"github.com/sarchlab/nanopond/geometry"
)

// StopOpcode is the VM opcode used to fill a freshly-reset genome. It is
// defined here, not in vm, because pond must be able to zero a cell without
// importing the VM's instruction table (spec §3: "genome filled with the
// STOP opcode").
const StopOpcode = 0

// Pond is the dense, toroidal W x H array of cells. It is preallocated once
// and never reallocated; positions are reclaimed by overwrite, never freed
// (spec §3, §5).
type Pond struct {
	width, height int
	depth         int
	geometry      *geometry.Geometry
	cells         []Cell
	nextID        uint64
}

// New builds a Pond of width x height cells, each with a genome of depth
// codons, using the given neighbor topology. depth must be a power of two
// and at least 16 (spec §6); callers validate configuration before this
// call, so New panics on a malformed depth rather than returning an error —
// this is a programmer error, not a runtime condition.
func New(width, height, depth int, topology geometry.Topology) *Pond {
	if depth < 16 || depth&(depth-1) != 0 {
		panic(fmt.Sprintf("pond: depth %d must be a power of two >= 16", depth))
	}

	p := &Pond{
		width:    width,
		height:   height,
		depth:    depth,
		geometry: geometry.New(width, height, topology),
		cells:    make([]Cell, width*height),
	}
	for i := range p.cells {
		p.cells[i].Genome = make([]uint8, depth)
	}
	return p
}

// Width reports the pond's x extent.
func (p *Pond) Width() int { return p.width }

// Height reports the pond's y extent.
func (p *Pond) Height() int { return p.height }

// Depth reports the genome length shared by every cell.
func (p *Pond) Depth() int { return p.depth }

func (p *Pond) index(x, y int) int { return x*p.height + y }

// At returns a pointer to the cell at (x, y). The returned pointer aliases
// the pond's backing array; callers never hold it across a tick boundary.
func (p *Pond) At(x, y int) *Cell {
	return &p.cells[p.index(x, y)]
}

// Neighbor resolves the toroidal neighbor of (x, y) in direction dir and
// returns both its coordinates and a pointer to it.
func (p *Pond) Neighbor(x, y int, dir uint8) (int, int, *Cell) {
	nx, ny := p.geometry.Neighbor(x, y, dir)
	return nx, ny, p.At(nx, ny)
}

// NextID returns a freshly, monotonically increasing cell id (spec §3:
// "id values are monotonically increasing across the run").
func (p *Pond) NextID() uint64 {
	p.nextID++
	return p.nextID
}

// Each calls fn once per cell position, in row-major (x, then y) order.
// fn must not resize the pond; it may freely mutate the cell it is given.
func (p *Pond) Each(fn func(x, y int, c *Cell)) {
	for x := 0; x < p.width; x++ {
		for y := 0; y < p.height; y++ {
			fn(x, y, p.At(x, y))
		}
	}
}
