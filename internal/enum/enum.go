// Package enum implements the recursive depth-first search that grows
// a canonical polycube one cube at a time, recognizing at each step
// whether the larger shape is itself canonical before recursing into
// it or one of its siblings.
package enum

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/maemo32/polycubes/internal/geom"
	"github.com/maemo32/polycubes/internal/polycube"
)

// Counts holds per-size totals, indexed by cube count. Sizes larger
// than the supported maximum are never written.
type Counts [22]uint64

// posOffset shifts any packed position this package can ever consider
// into a non-negative range, since polycubes up to size 21 can never
// span more than +-20 along any axis.
const posOffset = 21*10000 + 21*100 + 21 + 1

func normalize(p polycube.Pos) uint {
	return uint(int(p) + posOffset)
}

// Extend grows p depth-first up to maxN cubes, adding the count of
// every canonical shape discovered along the way into counts (p's own
// size is assumed already accounted for by the caller). halt, if
// non-nil, is polled roughly once every thousand recursive calls; the
// moment it reports true, Extend unwinds without exploring further
// and returns true. p is restored to its original contents before
// Extend returns either way — the search mutates it in place and
// backtracks rather than copying at every step.
func Extend(p *polycube.Polycube, maxN int, counts *Counts, halt func() bool) bool {
	calls := 0
	tryMore := func() bool { return p.N() < maxN }
	onAccept := func() (recurse, abort bool) {
		counts[p.N()]++
		return true, false
	}
	return search(p, halt, &calls, tryMore, onAccept)
}

// Delegate grows p depth-first exactly like Extend, except that
// reaching spawnN cubes is treated as a leaf: instead of recursing
// further, it hands a copy of the shape to publish and backtracks,
// leaving the rest of that subtree for someone else (a worker) to
// explore. publish returning false aborts the whole search
// immediately, as if halt had fired — used when a bounded job queue
// cannot accept more work and the caller is shutting down.
func Delegate(p *polycube.Polycube, spawnN int, counts *Counts, halt func() bool, publish func(*polycube.Polycube) bool) bool {
	calls := 0
	tryMore := func() bool { return p.N() < spawnN }
	onAccept := func() (recurse, abort bool) {
		counts[p.N()]++
		if p.N() == spawnN {
			if !publish(p.Copy()) {
				return false, true
			}
			return false, false
		}
		return true, false
	}
	return search(p, halt, &calls, tryMore, onAccept)
}

// search is the depth-first traversal shared by Extend and Delegate.
// tryMore gates whether p should be expanded further at all; onAccept
// is invoked immediately after a new canonical child is accepted and
// decides whether to recurse into it (recurse) or stop the whole
// search (abort).
func search(p *polycube.Polycube, halt func() bool, calls *int, tryMore func() bool, onAccept func() (recurse, abort bool)) bool {
	*calls++
	if halt != nil && *calls%1000 == 0 && halt() {
		return true
	}
	if !tryMore() {
		return false
	}

	parentEnc := p.FindCanonicalInfo(polycube.NoPreference).Enc

	triedPos := bitset.New(uint(2*posOffset + 1))
	triedCanon := make(map[polycube.Uint128]struct{})

	for _, base := range p.Positions() {
		for d := 0; d < 6; d++ {
			cand := base + polycube.Pos(geom.DirCosts[d])
			if p.Has(cand) {
				continue
			}
			idx := normalize(cand)
			if triedPos.Test(idx) {
				continue
			}
			triedPos.Set(idx)

			p.Add(cand)
			childInfo := p.FindCanonicalInfo(cand)

			if _, seen := triedCanon[childInfo.Enc]; seen {
				p.Remove(cand)
				continue
			}
			triedCanon[childInfo.Enc] = struct{}{}

			accept := childInfo.LeastSignificantCubePos == cand
			if !accept {
				b := childInfo.LeastSignificantCubePos
				p.Remove(b)
				probe := p.CanonicalEncAtLeast(parentEnc)
				p.Add(b)
				accept = probe == parentEnc
			}

			if accept {
				recurse, abort := onAccept()
				if abort {
					p.Remove(cand)
					return true
				}
				if recurse && search(p, halt, calls, tryMore, onAccept) {
					p.Remove(cand)
					return true
				}
			}
			p.Remove(cand)
		}
	}
	return false
}
