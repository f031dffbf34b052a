package geo

import "testing"

// --- Point tests ---

func TestPointManhattan(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(3, 4)
	if got := a.Manhattan(b); got != 7 {
		t.Errorf("expected distance 7, got %d", got)
	}
	if got := b.Manhattan(a); got != 7 {
		t.Errorf("expected symmetric distance 7, got %d", got)
	}
}

func TestPointStep(t *testing.T) {
	p := Pt(5, 5)
	cases := []struct {
		dir  Direction
		want Point
	}{
		{North, Pt(5, 4)},
		{South, Pt(5, 6)},
		{East, Pt(6, 5)},
		{West, Pt(4, 5)},
	}
	for _, c := range cases {
		if got := p.Step(c.dir); got != c.want {
			t.Errorf("Step(%s): expected %s, got %s", c.dir, c.want, got)
		}
	}
}

func TestPointToward(t *testing.T) {
	p := Pt(2, 2)
	for _, d := range Directions {
		got, ok := p.Toward(p.Step(d))
		if !ok || got != d {
			t.Errorf("Toward neighbor %s: got %s ok=%v", d, got, ok)
		}
	}
	if _, ok := p.Toward(Pt(4, 2)); ok {
		t.Error("Toward should reject a non-adjacent cell")
	}
	if _, ok := p.Toward(Pt(3, 3)); ok {
		t.Error("Toward should reject a diagonal cell")
	}
}

// --- Direction tests ---

func TestDirectionOpposite(t *testing.T) {
	pairs := map[Direction]Direction{
		North: South,
		South: North,
		East:  West,
		West:  East,
	}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Errorf("%s.Opposite(): expected %s, got %s", d, want, got)
		}
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" North ")
	if err != nil || d != North {
		t.Errorf("expected north, got %v (err=%v)", d, err)
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

// --- DirSet tests ---

func TestDirSetMembership(t *testing.T) {
	s := NewDirSet(East, West)
	if !s.Has(East) || !s.Has(West) {
		t.Error("set should contain east and west")
	}
	if s.Has(North) || s.Has(South) {
		t.Error("set should not contain north or south")
	}
	if s.Count() != 2 {
		t.Errorf("expected count 2, got %d", s.Count())
	}
}

func TestDirSetUnionEquality(t *testing.T) {
	ew := NewDirSet(East, West)
	if ew.Union(NewDirSet(East)) != ew {
		t.Error("union with a subset should be identity")
	}
	tee := ew.Union(NewDirSet(North))
	if tee != NewDirSet(North, East, West) {
		t.Errorf("expected {north,east,west}, got %s", tee)
	}
}

func TestDirSetCanonicalOrder(t *testing.T) {
	s := NewDirSet(West, North)
	names := s.Names()
	if len(names) != 2 || names[0] != "north" || names[1] != "west" {
		t.Errorf("expected [north west], got %v", names)
	}
}

func TestParseDirSet(t *testing.T) {
	s, err := ParseDirSet([]string{"north", "east"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != NewDirSet(North, East) {
		t.Errorf("expected {north,east}, got %s", s)
	}
	if _, err := ParseDirSet([]string{"north", "sideways"}); err == nil {
		t.Error("expected error for bad member")
	}
}

// --- Rect tests ---

func TestRectExtend(t *testing.T) {
	r := RectAt(Pt(3, 3))
	r = r.Extend(Pt(5, 1))
	r = r.Extend(Pt(2, 4))
	want := Rect{MinX: 2, MinY: 1, MaxX: 5, MaxY: 4}
	if r != want {
		t.Errorf("expected %+v, got %+v", want, r)
	}
	if r.Width() != 4 || r.Height() != 4 {
		t.Errorf("expected 4x4, got %dx%d", r.Width(), r.Height())
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}
	if !r.Contains(Pt(2, 2)) {
		t.Error("box should include its max corner")
	}
	if r.Contains(Pt(3, 2)) {
		t.Error("box should exclude cells past the max corner")
	}
}
