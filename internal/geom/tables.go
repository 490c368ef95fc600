// Package geom holds the static tables the canonicalizer and enumerator
// read from: the 24 rotations of the cube, and per-local-mask derived
// values precomputed over all 64 possible 6-bit neighbor masks.
package geom

// Rotations enumerates, for each of the 24 rotations of a cube, the
// direction each of the 6 directions maps to. Rotations[r][i] is the
// source direction that ends up in slot i after applying rotation r.
var Rotations = [24][6]int{
	{0, 1, 2, 3, 4, 5}, {0, 1, 3, 2, 5, 4}, {0, 1, 4, 5, 3, 2}, {0, 1, 5, 4, 2, 3},
	{1, 0, 2, 3, 5, 4}, {1, 0, 3, 2, 4, 5}, {1, 0, 4, 5, 2, 3}, {1, 0, 5, 4, 3, 2},
	{2, 3, 0, 1, 5, 4}, {2, 3, 1, 0, 4, 5}, {2, 3, 4, 5, 0, 1}, {2, 3, 5, 4, 1, 0},
	{3, 2, 0, 1, 4, 5}, {3, 2, 1, 0, 5, 4}, {3, 2, 4, 5, 1, 0}, {3, 2, 5, 4, 0, 1},
	{4, 5, 0, 1, 2, 3}, {4, 5, 1, 0, 3, 2}, {4, 5, 2, 3, 1, 0}, {4, 5, 3, 2, 0, 1},
	{5, 4, 0, 1, 3, 2}, {5, 4, 1, 0, 2, 3}, {5, 4, 2, 3, 0, 1}, {5, 4, 3, 2, 1, 0},
}

// DirCosts are the packed-position deltas for directions 0..5, in the
// order (-x, +x, -y, +y, -z, +z). Opposite directions are paired by
// XOR-1: 0<->1, 2<->3, 4<->5.
var DirCosts = [6]int{-1, 1, -100, 100, -10000, 10000}

// ImpossiblePos is the sentinel packed position that can never be
// occupied by a real cube (x==50 is outside any feasible bounding box).
const ImpossiblePos = 50

// RotTable[m][r] is the 6-bit mask obtained by permuting the bits of m
// according to rotation r: the new bit at position 5-i equals the bit
// of m at position 5-Rotations[r][i].
var RotTable [64][24]uint8

// MaxRotated[m] is the maximum value of RotTable[m][r] over all r.
var MaxRotated [64]uint8

// MaxRotIndices[m] is the sorted list of rotation indices achieving
// MaxRotated[m].
var MaxRotIndices [64][]uint8

func init() {
	for m := 0; m < 64; m++ {
		var best uint8
		for r := 0; r < 24; r++ {
			v := rotateMask(uint8(m), r)
			RotTable[m][r] = v
			if v > best {
				best = v
			}
		}
		MaxRotated[m] = best
		for r := 0; r < 24; r++ {
			if RotTable[m][r] == best {
				MaxRotIndices[m] = append(MaxRotIndices[m], uint8(r))
			}
		}
	}
}

// rotateMask applies rotation r to the 6-bit mask m from first
// principles: new bit at position 5-i equals the bit of m
// at position 5-Rotations[r][i].
func rotateMask(m uint8, r int) uint8 {
	rot := Rotations[r]
	var out uint8
	for i := 0; i < 6; i++ {
		srcBit := (m >> uint(5-rot[i])) & 1
		out |= srcBit << uint(5-i)
	}
	return out
}
