package work

import (
	"sync"
	"sync/atomic"

	"github.com/maemo32/polycubes/internal/polycube"
)

// polyPool is a type-safe wrapper around sync.Pool, specialized for
// *polycube.Polycube values. Workers Put each job's polycube here once
// its subtree has been fully explored (Put resets it first). Nothing in
// this package calls Get, so pooled values are not reused by the
// search: every job still arrives with its own freshly allocated cube
// map.
//
// It tracks allocation and live-use statistics for debugging and
// tuning rather than correctness.
type polyPool struct {
	sync.Pool

	totalAllocated atomic.Int64
	currentLive    atomic.Int64
}

func newPolyPool() *polyPool {
	p := &polyPool{}
	p.New = func() any {
		p.totalAllocated.Add(1)
		return polycube.New()
	}
	return p
}

// Get retrieves a *polycube.Polycube from the pool, or allocates a new
// one if none is available. If p is nil, a fresh value is returned
// without any tracking.
func (p *polyPool) Get() *polycube.Polycube {
	if p == nil {
		return polycube.New()
	}
	p.currentLive.Add(1)
	return p.Pool.Get().(*polycube.Polycube)
}

// Put resets pc and returns it to the pool for reuse. If p is nil, pc
// is simply discarded.
func (p *polyPool) Put(pc *polycube.Polycube) {
	if p == nil {
		return
	}
	p.currentLive.Add(-1)
	pc.Reset()
	p.Pool.Put(pc)
}

// Stats returns the number of currently checked-out values and the
// total ever allocated.
func (p *polyPool) Stats() (live, total int64) {
	if p == nil {
		return 0, 0
	}
	return p.currentLive.Load(), p.totalAllocated.Load()
}
