package access_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/nanopond/access"
	"github.com/sarchlab/nanopond/pond"
	"github.com/sarchlab/nanopond/prng"
)

func TestAccess(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Access Suite")
}

var _ = Describe("Allowed", func() {
	It("always allows access to a parentless (seeded) cell", func() {
		target := &pond.Cell{ParentID: 0, Logo: 0x1f}
		rng := prng.New(1)
		for i := 0; i < 64; i++ {
			Expect(access.Allowed(target, 0, access.Negative, rng)).To(BeTrue())
			Expect(access.Allowed(target, 0, access.Positive, rng)).To(BeTrue())
		}
	})

	It("is non-decreasing in Hamming distance for sense Negative", func() {
		rng := prng.New(7)
		target := &pond.Cell{ParentID: 1, Logo: 0}

		countAllowed := func(guess uint8, trials int) int {
			n := 0
			for i := 0; i < trials; i++ {
				if access.Allowed(target, guess, access.Negative, rng) {
					n++
				}
			}
			return n
		}

		lowDistance := countAllowed(0, 4000)   // h=0
		highDistance := countAllowed(0x1f, 4000) // h=5
		Expect(highDistance).To(BeNumerically(">", lowDistance))
	})

	It("is non-increasing in Hamming distance for sense Positive", func() {
		rng := prng.New(7)
		target := &pond.Cell{ParentID: 1, Logo: 0}

		countAllowed := func(guess uint8, trials int) int {
			n := 0
			for i := 0; i < trials; i++ {
				if access.Allowed(target, guess, access.Positive, rng) {
					n++
				}
			}
			return n
		}

		lowDistance := countAllowed(0, 4000)
		highDistance := countAllowed(0x1f, 4000)
		Expect(lowDistance).To(BeNumerically(">", highDistance))
	})
})
