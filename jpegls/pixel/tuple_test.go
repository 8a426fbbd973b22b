package pixel

import "testing"

func TestTripletEquality(t *testing.T) {
	a := NewTriplet[uint8](10, 20, 30)
	b := NewTriplet[uint8](10, 20, 30)

	if !a.Equal(b) {
		t.Errorf("%v should equal %v", a, b)
	}
	if a != b {
		t.Errorf("%v should compare == to %v", a, b)
	}

	diffs := []Triplet[uint8]{
		NewTriplet[uint8](11, 20, 30),
		NewTriplet[uint8](10, 21, 30),
		NewTriplet[uint8](10, 20, 31),
	}
	for i, d := range diffs {
		if a.Equal(d) {
			t.Errorf("component %d differs but %v equals %v", i, a, d)
		}
	}
}

func TestTripletNamedAccessors(t *testing.T) {
	tr := NewTriplet[uint16](1000, 2000, 3000)

	if tr.R() != tr.Component(0) || tr.R() != 1000 {
		t.Errorf("R() = %d, Component(0) = %d, want 1000", tr.R(), tr.Component(0))
	}
	if tr.G() != tr.Component(1) || tr.G() != 2000 {
		t.Errorf("G() = %d, Component(1) = %d, want 2000", tr.G(), tr.Component(1))
	}
	if tr.B() != tr.Component(2) || tr.B() != 3000 {
		t.Errorf("B() = %d, Component(2) = %d, want 3000", tr.B(), tr.Component(2))
	}

	// Named accessors alias positional storage
	tr.V[V2] = 42
	if tr.G() != 42 {
		t.Errorf("G() after writing V[1] = %d, want 42", tr.G())
	}
}

func TestTripletTruncates(t *testing.T) {
	tr := NewTriplet[uint8](256+5, -1, 128)
	if tr.R() != 5 || tr.G() != 255 || tr.B() != 128 {
		t.Errorf("NewTriplet[uint8](261, -1, 128) = %v, want {5 255 128}", tr.V)
	}
}

func TestQuad(t *testing.T) {
	base := NewTriplet[uint8](1, 2, 3)
	q := NewQuad(base, 4)

	for i, want := range []uint8{1, 2, 3, 4} {
		if got := q.Component(i); got != want {
			t.Errorf("Component(%d) = %d, want %d", i, got, want)
		}
	}
	if q.A() != 4 || q.R() != 1 || q.B() != 3 {
		t.Errorf("named accessors wrong: R=%d B=%d A=%d", q.R(), q.B(), q.A())
	}
	if !q.Triplet.Equal(base) {
		t.Error("embedded triplet should equal its source")
	}

	other := NewQuad(base, 5)
	if q.Equal(other) {
		t.Error("quads differing in alpha should not be equal")
	}
	if !q.Equal(NewQuad(NewTriplet[uint8](1, 2, 3), 4)) {
		t.Error("identical quads should be equal")
	}
}

func TestSize(t *testing.T) {
	if Size[uint8]() != 1 || Bits[uint8]() != 8 {
		t.Errorf("uint8: Size=%d Bits=%d", Size[uint8](), Bits[uint8]())
	}
	if Size[uint16]() != 2 || Bits[uint16]() != 16 {
		t.Errorf("uint16: Size=%d Bits=%d", Size[uint16](), Bits[uint16]())
	}
}
