// Package access implements the stochastic permission test that gates every
// inter-cell interaction: KILL, SHARE, TURN, neighbor-RAM writes, and
// overwrite-on-birth (spec §4.3).
package access

import (
	"math/bits"

	"github.com/sarchlab/nanopond/pond"
	"github.com/sarchlab/nanopond/prng"
)

// Sense selects the direction of the access test's Hamming-weight bias.
type Sense int

const (
	// Negative is used for adversarial interactions: KILL, overwrite on
	// birth. High Hamming distance between logo and guess favors access.
	Negative Sense = 0
	// Positive is used for cooperative interactions: SHARE, neighbor-RAM
	// write. High Hamming distance disfavors access.
	Positive Sense = 1
)

// Allowed tests whether an actor carrying guess may act on target under
// sense. A target with no parent (a freshly seeded cell) is always
// accessible, regardless of sense — this is what lets inflow seed into any
// position without first "earning" access.
//
// h is the number of differing bits between target.Logo and guess, in
// 0..5. Sense 0 allows access when a freshly-drawn nibble is <= h (high
// distance favors access); sense 1 allows access when it is >= h (low
// distance favors access). The two directions are deliberately asymmetric:
// similar logos cooperate and resist predation, dissimilar logos invite
// attack and resist being written to.
func Allowed(target *pond.Cell, guess uint8, sense Sense, rng *prng.MT19937) bool {
	if target.ParentID == 0 {
		return true
	}

	h := bits.OnesCount8((target.Logo ^ guess) & pond.FiveBitMask)
	roll := int(rng.Uint32() & 0xf)

	if sense == Positive {
		return roll >= h
	}
	return roll <= h
}
