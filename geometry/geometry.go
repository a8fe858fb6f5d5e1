// Package geometry maps a grid position and a direction code to a toroidal
// neighbor position. It carries no cell knowledge; the pond and the VM are
// the only callers. Three topologies are supported, selected at
// construction time (spec §4.2).
package geometry

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Topology selects the neighbor structure of the grid.
type Topology int

const (
	// Topology4 gives each cell 4 neighbors: N, E, S, W.
	Topology4 Topology = iota
	// Topology6 gives each cell 6 neighbors in a row-offset hex layout.
	// This is the default topology (spec §4.2).
	Topology6
	// Topology8 gives each cell 8 neighbors, including diagonals.
	Topology8
)

var titleCaser = cases.Title(language.English)

func (t Topology) String() string {
	switch t {
	case Topology4:
		return "4-neighbor"
	case Topology6:
		return "6-neighbor"
	case Topology8:
		return "8-neighbor"
	default:
		return titleCaser.String(strings.ToLower("unknown"))
	}
}

// dirmap collapses the 5-bit instruction-set direction code (32 values)
// onto one of the 6 hex directions with a mild non-uniform distribution.
// Ported verbatim from the original engine's dirmap[NUM_INST] table; this
// bias is load-bearing for evolved turning behavior, not incidental.
var dirmap = [32]uint8{
	0, 1, 2, 3, 4, 5,
	0, 1, 2, 3, 3, 4, 5,
	0, 1, 2, 3, 4, 5,
	0, 1, 2, 2, 3, 4, 5,
	0, 1, 2, 3, 4, 5,
}

// Geometry resolves neighbor positions on a W x H toroidal grid.
type Geometry struct {
	width, height int
	topology      Topology
}

// New builds a Geometry for a grid of the given size and topology.
func New(width, height int, topology Topology) *Geometry {
	return &Geometry{width: width, height: height, topology: topology}
}

// Topology reports the configured topology.
func (g *Geometry) Topology() Topology { return g.topology }

// Neighbor returns the toroidal neighbor of (x, y) in direction dir. dir is
// the raw 5-bit direction code carried by a cell's facing/guess; it is
// reduced modulo the topology's neighbor count (or through dirmap, for hex).
func (g *Geometry) Neighbor(x, y int, dir uint8) (int, int) {
	switch g.topology {
	case Topology4:
		return g.neighbor4(x, y, dir&0x3)
	case Topology8:
		return g.neighbor8(x, y, dir&0x7)
	default:
		return g.neighbor6(x, y, dirmap[dir&0x1f])
	}
}

func (g *Geometry) east(x int) int {
	if x < g.width-1 {
		return x + 1
	}
	return 0
}

func (g *Geometry) west(x int) int {
	if x > 0 {
		return x - 1
	}
	return g.width - 1
}

func (g *Geometry) south(y int) int {
	if y < g.height-1 {
		return y + 1
	}
	return 0
}

func (g *Geometry) north(y int) int {
	if y > 0 {
		return y - 1
	}
	return g.height - 1
}

func (g *Geometry) neighbor4(x, y int, dir uint8) (int, int) {
	switch dir {
	case 0: // North
		return x, g.north(y)
	case 1: // East
		return g.east(x), y
	case 2: // South
		return x, g.south(y)
	default: // West
		return g.west(x), y
	}
}

func (g *Geometry) neighbor8(x, y int, dir uint8) (int, int) {
	switch dir {
	case 0: // North
		return x, g.north(y)
	case 1: // NorthEast
		return g.east(x), g.north(y)
	case 2: // East
		return g.east(x), y
	case 3: // SouthEast
		return g.east(x), g.south(y)
	case 4: // South
		return x, g.south(y)
	case 5: // SouthWest
		return g.west(x), g.south(y)
	case 6: // West
		return g.west(x), y
	default: // NorthWest
		return g.west(x), g.north(y)
	}
}

// neighbor6 implements the row-offset hex layout. Odd and even rows use
// different (dx, dy) tables so the hex tiling stays consistent, matching
// the original engine's getNeighbor() DIRECTIONS==6 branch exactly.
func (g *Geometry) neighbor6(x, y int, dir uint8) (int, int) {
	if y&1 == 1 {
		switch dir {
		case 0:
			return g.east(x), g.north(y)
		case 1:
			return g.east(x), y
		case 2:
			return g.east(x), g.south(y)
		case 3:
			return x, g.south(y)
		case 4:
			return g.west(x), y
		default: // 5
			return x, g.north(y)
		}
	}
	switch dir {
	case 0:
		return x, g.north(y)
	case 1:
		return g.east(x), y
	case 2:
		return x, g.south(y)
	case 3:
		return g.west(x), g.south(y)
	case 4:
		return g.west(x), y
	default: // 5
		return g.west(x), g.north(y)
	}
}
