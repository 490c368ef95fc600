package polycube

import "testing"

func expectPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic, got none")
		}
	}()
	f()
}

func TestNewSeededIsSingleCube(t *testing.T) {
	p := NewSeeded()
	if got := p.N(); got != 1 {
		t.Fatalf("N() = %d, want 1", got)
	}
	if !p.Has(0) {
		t.Fatalf("Has(0) = false, want true")
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	p := NewSeeded()
	p.Add(1) // +x neighbor of the origin cube

	if got := p.N(); got != 2 {
		t.Fatalf("N() = %d, want 2", got)
	}
	if !p.Has(1) {
		t.Fatalf("Has(1) = false, want true")
	}

	p.Remove(1)
	if got := p.N(); got != 1 {
		t.Fatalf("N() = %d, want 1", got)
	}
	if p.Has(1) {
		t.Fatalf("Has(1) = true, want false")
	}

	// canon must be invalidated by both mutations: forcing a fresh
	// FindCanonicalInfo call must not panic or read stale cube data.
	info := p.FindCanonicalInfo(impossible)
	if info.MaxCubeValue != 0 {
		t.Fatalf("MaxCubeValue = %d, want 0", info.MaxCubeValue)
	}
}

func TestAddSetsReciprocalMasks(t *testing.T) {
	p := NewSeeded()
	p.Add(1)

	origin := p.cubes[0]
	neighbor := p.cubes[1]
	if origin.mask == 0 {
		t.Fatalf("origin.mask = 0, want nonzero")
	}
	if neighbor.mask == 0 {
		t.Fatalf("neighbor.mask = 0, want nonzero")
	}
	if origin.neighbor[1] != Pos(1) {
		t.Fatalf("origin.neighbor[1] = %d, want 1", origin.neighbor[1])
	}
	if neighbor.neighbor[0] != Pos(0) {
		t.Fatalf("neighbor.neighbor[0] = %d, want 0", neighbor.neighbor[0])
	}
}

func TestAddDisconnectedPanics(t *testing.T) {
	p := NewSeeded()
	expectPanic(t, func() { p.Add(500) })
}

func TestAddOccupiedPanics(t *testing.T) {
	p := NewSeeded()
	expectPanic(t, func() { p.Add(0) })
}

func TestRemoveUnoccupiedPanics(t *testing.T) {
	p := NewSeeded()
	expectPanic(t, func() { p.Remove(1) })
}

func TestCopyIsIndependent(t *testing.T) {
	p := NewSeeded()
	p.Add(1)

	cp := p.Copy()
	p.Add(2)

	if got := p.N(); got != 3 {
		t.Fatalf("p.N() = %d, want 3", got)
	}
	if got := cp.N(); got != 2 {
		t.Fatalf("cp.N() = %d, want 2", got)
	}
	if cp.Has(2) {
		t.Fatalf("cp.Has(2) = true, want false")
	}
}
