package polycube

import "testing"

func domino(axisCost int) *Polycube {
	p := NewSeeded()
	p.Add(Pos(axisCost))
	return p
}

func TestCanonicalSingleCubeIsZero(t *testing.T) {
	p := NewSeeded()
	info := p.FindCanonicalInfo(impossible)
	if info.Enc != (Uint128{}) {
		t.Fatalf("Enc = %+v, want zero value", info.Enc)
	}
}

func TestCanonicalIsRotationInvariant(t *testing.T) {
	// A domino built along +x and one built along +y are the same
	// shape up to rotation and must canonicalize identically.
	px := domino(1)
	py := domino(100)

	infoX := px.FindCanonicalInfo(impossible)
	infoY := py.FindCanonicalInfo(impossible)
	if infoX.Enc != infoY.Enc {
		t.Fatalf("Enc mismatch: x-domino %+v, y-domino %+v", infoX.Enc, infoY.Enc)
	}
}

func TestCanonicalDistinguishesShapes(t *testing.T) {
	straight := NewSeeded()
	straight.Add(1)
	straight.Add(2)

	bent := NewSeeded()
	bent.Add(1)
	bent.Add(101) // turn: +x then +y from the second cube

	infoStraight := straight.FindCanonicalInfo(impossible)
	infoBent := bent.FindCanonicalInfo(impossible)
	if infoStraight.Enc == infoBent.Enc {
		t.Fatalf("straight and bent trominoes canonicalized to the same encoding %+v", infoStraight.Enc)
	}
}

func TestCanonicalIsCachedUntilMutation(t *testing.T) {
	p := domino(1)
	first := p.FindCanonicalInfo(impossible)
	second := p.FindCanonicalInfo(impossible)
	if first != second {
		t.Fatalf("FindCanonicalInfo returned a fresh pointer without a mutation")
	}

	p.Add(2)
	third := p.FindCanonicalInfo(impossible)
	if first == third {
		t.Fatalf("FindCanonicalInfo returned the stale cached pointer after a mutation")
	}
}

func TestCanonicalEncAtLeastFindsExactMatch(t *testing.T) {
	p := domino(1)
	target := p.FindCanonicalInfo(impossible).Enc

	got := p.CanonicalEncAtLeast(target)
	if got != target {
		t.Fatalf("CanonicalEncAtLeast(target) = %+v, want %+v", got, target)
	}
}

func TestCanonicalEncAtLeastFailsWhenUnreachable(t *testing.T) {
	straight := NewSeeded()
	straight.Add(1)
	straight.Add(2)
	unreachable := straight.FindCanonicalInfo(impossible).Enc

	p := domino(1)
	got := p.CanonicalEncAtLeast(unreachable)
	if got != (Uint128{}) {
		t.Fatalf("CanonicalEncAtLeast(unreachable) = %+v, want zero value", got)
	}
}
