package geometry_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/nanopond/geometry"
)

func TestGeometry(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Geometry Suite")
}

var _ = Describe("Geometry", func() {
	Describe("4-neighbor topology", func() {
		g := geometry.New(4, 4, geometry.Topology4)

		It("wraps at the east edge", func() {
			x, y := g.Neighbor(3, 1, 1)
			Expect([2]int{x, y}).To(Equal([2]int{0, 1}))
		})

		It("wraps at the north edge", func() {
			x, y := g.Neighbor(1, 0, 0)
			Expect([2]int{x, y}).To(Equal([2]int{1, 3}))
		})
	})

	Describe("8-neighbor topology", func() {
		g := geometry.New(4, 4, geometry.Topology8)

		It("resolves a diagonal neighbor with wraparound", func() {
			x, y := g.Neighbor(3, 3, 3) // SouthEast from the corner
			Expect([2]int{x, y}).To(Equal([2]int{0, 0}))
		})
	})

	Describe("6-neighbor (hex) topology", func() {
		g := geometry.New(4, 4, geometry.Topology6)

		// Ported directly from the original engine's getNeighbor()
		// DIRECTIONS==6 branch: even rows (y even) route direction 5 to
		// (west, north); odd rows route it to (same-x, north).
		It("on an even row, direction 5 goes to (west, north)", func() {
			x, y := g.Neighbor(0, 0, 5)
			Expect([2]int{x, y}).To(Equal([2]int{3, 3}))
		})

		It("on an odd row, direction 5 goes to (same-x, north)", func() {
			x, y := g.Neighbor(0, 1, 5)
			Expect([2]int{x, y}).To(Equal([2]int{0, 0}))
		})

		It("applies the dirmap bias so nearby raw codes can collapse to the same direction", func() {
			x1, y1 := g.Neighbor(2, 2, 3)
			x2, y2 := g.Neighbor(2, 2, 9) // dirmap[9] == 3, same as dirmap[3]
			Expect([2]int{x1, y1}).To(Equal([2]int{x2, y2}))
		})
	})
})
