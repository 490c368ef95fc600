// Package polycube implements the per-shape data structure (a set of
// face-connected unit cubes keyed by packed lattice position) and its
// canonical form, used by the enumerator to recognize two polycubes as
// the same shape up to rotation.
package polycube

import "github.com/maemo32/polycubes/internal/geom"

// Pos is a packed lattice position: x + 100*y + 10000*z.
type Pos int

const impossible = Pos(geom.ImpossiblePos)

// NoPreference is passed to FindCanonicalInfo when the caller has no
// tie-break preference among traversals producing the maximal
// encoding. It reuses the same sentinel as an absent neighbor, since
// a packed position of 50 can never be a real lattice coordinate for
// any polycube this package supports.
const NoPreference = impossible

var allImpossible = [6]Pos{impossible, impossible, impossible, impossible, impossible, impossible}

type record struct {
	neighbor [6]Pos
	mask     uint8
}

// CanonicalInfo is the cached result of canonicalizing a Polycube: the
// maximal 128-bit encoding found over all (starting cube, rotation)
// traversals, the position of the last cube visited along the
// traversal that produced it, and the maximum local-mask rotation
// value achieved by any cube (used to prune the outer search).
type CanonicalInfo struct {
	Enc                     Uint128
	LeastSignificantCubePos Pos
	MaxCubeValue            uint8
}

// Polycube is a connected set of unit cubes. The zero value is not
// usable; construct with New or NewSeeded.
type Polycube struct {
	n     int
	canon *CanonicalInfo
	cubes map[Pos]*record
}

// New returns an empty Polycube with no cubes.
func New() *Polycube {
	return &Polycube{cubes: make(map[Pos]*record)}
}

// NewSeeded returns a Polycube containing a single cube at the origin.
func NewSeeded() *Polycube {
	p := New()
	p.cubes[0] = &record{neighbor: allImpossible}
	p.n = 1
	return p
}

// FromPositions rebuilds a Polycube from an unordered list of packed
// positions describing a connected shape (as stored in a checkpoint
// file). It panics if positions is empty or does not describe a
// single connected shape, since both are malformed-input conditions
// the caller is expected to have already validated.
func FromPositions(positions []Pos) *Polycube {
	if len(positions) == 0 {
		panic("polycube: FromPositions requires at least one position")
	}
	p := New()
	remaining := make(map[Pos]bool, len(positions))
	for _, pos := range positions {
		remaining[pos] = true
	}

	first := positions[0]
	p.Add(first)
	delete(remaining, first)

	for len(remaining) > 0 {
		progressed := false
		for pos := range remaining {
			if p.hasOccupiedNeighbor(pos) {
				p.Add(pos)
				delete(remaining, pos)
				progressed = true
			}
		}
		if !progressed {
			panic("polycube: FromPositions given a disconnected set of positions")
		}
	}
	return p
}

func (p *Polycube) hasOccupiedNeighbor(pos Pos) bool {
	for d := 0; d < 6; d++ {
		if p.Has(pos + Pos(geom.DirCosts[d])) {
			return true
		}
	}
	return false
}

// N returns the number of cubes.
func (p *Polycube) N() int { return p.n }

// Has reports whether pos is occupied.
func (p *Polycube) Has(pos Pos) bool {
	_, ok := p.cubes[pos]
	return ok
}

// Positions returns the occupied positions in no particular order.
func (p *Polycube) Positions() []Pos {
	out := make([]Pos, 0, p.n)
	for pos := range p.cubes {
		out = append(out, pos)
	}
	return out
}

// Add places a cube at pos, which must not already be occupied. Add
// panics if pos is already occupied, if the polycube is already at
// the maximum supported size, or if pos has no occupied neighbor in a
// non-empty polycube (every add must keep the shape connected — this
// is a precondition the caller is responsible for, not a runtime
// possibility, so a violation is a programmer error).
func (p *Polycube) Add(pos Pos) {
	if _, exists := p.cubes[pos]; exists {
		panic("polycube: add of already-occupied position")
	}
	if p.n >= 21 {
		panic("polycube: add exceeds maximum supported size")
	}

	rec := &record{neighbor: allImpossible}
	for d := 0; d < 6; d++ {
		npos := pos + Pos(geom.DirCosts[d])
		nrec, ok := p.cubes[npos]
		if !ok {
			continue
		}
		rec.neighbor[d] = npos
		rec.mask |= 1 << uint(5-d)
		nrec.neighbor[d^1] = pos
		nrec.mask |= 1 << uint(5-(d^1))
	}
	if p.n > 0 && rec.mask == 0 {
		panic("polycube: add would disconnect the shape")
	}

	p.cubes[pos] = rec
	p.n++
	p.canon = nil
}

// Remove deletes the cube at pos, which must be occupied. Remove does
// not itself verify the result stays connected; the enumerator only
// ever removes the single cube it just added along a tried direction,
// or a canonical-info's least-significant-cube, both of which are
// known safe by construction.
func (p *Polycube) Remove(pos Pos) {
	rec, ok := p.cubes[pos]
	if !ok {
		panic("polycube: remove of unoccupied position")
	}
	for d := 0; d < 6; d++ {
		npos := rec.neighbor[d]
		if npos == impossible {
			continue
		}
		nrec := p.cubes[npos]
		nrec.mask &^= 1 << uint(5-(d^1))
		nrec.neighbor[d^1] = impossible
	}
	delete(p.cubes, pos)
	p.n--
	p.canon = nil
}

// Copy returns a deep copy, including any cached canonical info.
func (p *Polycube) Copy() *Polycube {
	cp := &Polycube{n: p.n, cubes: make(map[Pos]*record, len(p.cubes))}
	for pos, rec := range p.cubes {
		r := *rec
		cp.cubes[pos] = &r
	}
	if p.canon != nil {
		c := *p.canon
		cp.canon = &c
	}
	return cp
}

// Reset clears p back to the empty shape, reusing its backing map
// storage rather than discarding it. Intended for pooled scratch
// values that are checked out, grown and shrunk repeatedly, and
// checked back in between uses.
func (p *Polycube) Reset() {
	clear(p.cubes)
	p.n = 0
	p.canon = nil
}

func (p *Polycube) maxCubeValue() uint8 {
	var best uint8
	for _, rec := range p.cubes {
		if v := geom.MaxRotated[rec.mask]; v > best {
			best = v
		}
	}
	return best
}
