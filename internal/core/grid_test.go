package core

import "testing"

func TestLayerRaiseKeepsHighestCode(t *testing.T) {
	l := NewLayer(3, 2)
	l.Raise(1, 2, CellDanger)
	l.Raise(1, 2, CellLion)
	l.Raise(1, 2, CellToken)
	if got := l.Cells()[l.Index(1, 2)]; got != CellLion {
		t.Fatalf("cell = %d, want %d", got, CellLion)
	}

	l.Raise(-1, 0, CellLion)
	l.Raise(0, 3, CellLion)
	l.Raise(2, 0, CellLion)
	for i, v := range l.Cells() {
		if i != l.Index(1, 2) && v != CellEmpty {
			t.Fatalf("out-of-bounds raise leaked into cell %d", i)
		}
	}

	l.Clear()
	for _, v := range l.Cells() {
		if v != CellEmpty {
			t.Fatal("Clear left a non-empty cell")
		}
	}
}

func TestNewLayerMinimumSize(t *testing.T) {
	l := NewLayer(0, -3)
	if l.W != 1 || l.H != 1 || len(l.Cells()) != 1 {
		t.Fatalf("unexpected layer %dx%d with %d cells", l.W, l.H, len(l.Cells()))
	}
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(7), NewRNG(7)
	for i := 0; i < 32; i++ {
		if x, y := a.IntN(100), b.IntN(100); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
	if NewRNG(1).IntN(0) != 0 {
		t.Fatal("IntN(0) must return 0")
	}
}
