package geom

import (
	"fmt"

	"github.com/maemo32/polycubes/internal/bitset"
)

// VerifyRotationsArePermutations confirms, for every rotation r, that
// m -> RotTable[m][r] visits each of the 64 possible local masks
// exactly once. A bitset is a natural accumulator for this: each
// visited output mask sets one bit, and a bijection over 0..63 is
// exactly a bitset that ends up entirely full with no bit touched
// twice. Returns an error naming the first rotation and mask where the
// property fails; nil if every rotation checks out.
func VerifyRotationsArePermutations() error {
	for r := 0; r < 24; r++ {
		var seen bitset.BitSet
		for m := 0; m < 64; m++ {
			out := uint(RotTable[m][r])
			if seen.Test(out) {
				return &rotationNotPermutationError{rotation: r, mask: m, output: uint8(out)}
			}
			seen.Set(out)
		}
		if seen.Count() != 64 {
			return &rotationNotPermutationError{rotation: r, mask: -1, output: 0}
		}
	}
	return nil
}

type rotationNotPermutationError struct {
	rotation int
	mask     int
	output   uint8
}

func (e *rotationNotPermutationError) Error() string {
	if e.mask < 0 {
		return fmt.Sprintf("geom: rotation %d did not cover all 64 masks", e.rotation)
	}
	return fmt.Sprintf("geom: rotation %d maps mask %d onto already-produced mask %d", e.rotation, e.mask, e.output)
}
