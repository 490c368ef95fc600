package polycube

import "github.com/maemo32/polycubes/internal/geom"

// FindCanonicalInfo returns the cached canonical info, computing it
// first if the polycube has been mutated since the last call. prefer
// breaks ties among traversals that produce the maximal encoding: of
// the tied last-visited positions, the one equal to prefer is kept
// over whichever was found first (pass NoPreference when there is no
// preference).
func (p *Polycube) FindCanonicalInfo(prefer Pos) *CanonicalInfo {
	if p.canon == nil {
		r := p.search(Uint128{}, prefer)
		p.canon = &CanonicalInfo{
			Enc:                     r.enc,
			LeastSignificantCubePos: r.lastPos,
			MaxCubeValue:            p.maxCubeValue(),
		}
	}
	return p.canon
}

// CanonicalEncAtLeast searches for a traversal whose encoding meets or
// exceeds target, seeding the running best to target so inferior
// candidates are abandoned as soon as their prefix falls short. It
// never touches the cached canonical info. It returns the zero value
// unless some traversal actually reached target.
func (p *Polycube) CanonicalEncAtLeast(target Uint128) Uint128 {
	r := p.search(target, impossible)
	if !r.found {
		return Uint128{}
	}
	return r.enc
}

type canonSearchResult struct {
	enc     Uint128
	lastPos Pos
	found   bool
}

// search is the shared maximization used by both FindCanonicalInfo and
// CanonicalEncAtLeast: scan every cube whose local mask can achieve the
// overall maximum rotated value, try every rotation that achieves it
// from that cube, and keep the traversal producing the largest 128-bit
// encoding. seed both primes the running best used for pruning inside
// makeEncoding and is the result reported when no traversal improves
// on it (for the commit path seed is zero; for the probe path seed is
// the caller's target).
func (p *Polycube) search(seed Uint128, prefer Pos) canonSearchResult {
	best := seed
	res := canonSearchResult{enc: seed}
	maxVal := p.maxCubeValue()

	for pos, rec := range p.cubes {
		if geom.MaxRotated[rec.mask] < maxVal {
			continue
		}
		for _, r := range geom.MaxRotIndices[rec.mask] {
			enc, lastPos, ok := p.makeEncoding(pos, int(r), best)
			if !ok {
				continue
			}
			switch {
			case enc.Greater(best):
				best = enc
				res.enc = enc
				res.lastPos = lastPos
				res.found = true
			case enc.Equal(best):
				if !res.found || lastPos == prefer {
					res.lastPos = lastPos
				}
				res.found = true
			}
		}
	}
	return res
}

// Equal reports whether u == v. Kept alongside Less/Greater for
// readability at call sites even though Uint128's fields are
// comparable directly.
func (u Uint128) Equal(v Uint128) bool { return u == v }

// makeEncoding walks the shape depth-first starting at start under
// rotation rotIdx, visiting each cube's unvisited neighbors in the
// order that rotation assigns to directions 0..5, appending each
// visited cube's rotated local mask into a 128-bit accumulator six
// bits at a time. best seeds an early-abort check: once enough cubes
// have been visited that the accumulator covers k of the n total
// 6-bit slots, it is compared against the top k*6 bits of best (via a
// right shift) and the traversal aborts the moment it falls strictly
// behind. It returns the final accumulator and the last cube visited
// along the traversal, or ok=false if the traversal was abandoned.
func (p *Polycube) makeEncoding(start Pos, rotIdx int, best Uint128) (enc Uint128, lastPos Pos, ok bool) {
	rot := geom.Rotations[rotIdx]
	included := make(map[Pos]bool, p.n)

	var rec func(cur Pos, offset int, acc Uint128) (Pos, Uint128, int, bool)
	rec = func(cur Pos, offset int, acc Uint128) (Pos, Uint128, int, bool) {
		acc = acc.Shl6Or(geom.RotTable[p.cubes[cur].mask][rotIdx])
		if acc.Less(best.Shr(offset * 6)) {
			return 0, Uint128{}, 0, false
		}
		included[cur] = true
		last := cur

		for _, d := range rot {
			npos := p.cubes[cur].neighbor[d]
			if npos == impossible || included[npos] {
				continue
			}
			childLast, newAcc, newOffset, ok := rec(npos, offset-1, acc)
			if !ok {
				return 0, Uint128{}, 0, false
			}
			acc, offset, last = newAcc, newOffset, childLast
		}
		return last, acc, offset, true
	}

	last, acc, _, ok := rec(start, p.n-1, Uint128{})
	if !ok {
		return Uint128{}, 0, false
	}
	return acc, last, true
}
