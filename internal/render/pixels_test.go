package render

import (
	"image/color"
	"testing"

	"lionhunt/internal/core"
	"lionhunt/internal/world"
)

func TestFillRGBAUsesPalette(t *testing.T) {
	cells := []uint8{core.CellEmpty, core.CellDanger, core.CellLion, 200}
	buf := make([]byte, 4*len(cells))
	FillRGBA(buf, cells, DefaultPalette)

	want := []color.RGBA{
		DefaultPalette[core.CellEmpty],
		DefaultPalette[core.CellDanger],
		DefaultPalette[core.CellLion],
		DefaultPalette[len(DefaultPalette)-1],
	}
	for i, w := range want {
		got := color.RGBA{R: buf[i*4], G: buf[i*4+1], B: buf[i*4+2], A: buf[i*4+3]}
		if got != w {
			t.Fatalf("pixel %d = %v, want %v", i, got, w)
		}
	}
}

func TestFillRGBAEmptyPaletteClears(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	FillRGBA(buf, []uint8{1, 2}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}
}

func TestWorldCellsRenderDangerZone(t *testing.T) {
	cfg := world.DefaultConfig()
	w, err := world.NewWithLayout(cfg, world.Layout{
		Lion:    world.Position{Row: 0, Col: 0},
		Hunters: []world.Position{{Row: 5, Col: 5}},
		Tokens:  []world.Position{{Row: 0, Col: 9}},
	})
	if err != nil {
		t.Fatal(err)
	}
	cells := w.Cells()
	buf := make([]byte, 4*len(cells))
	FillRGBA(buf, cells, DefaultPalette)

	pixel := func(row, col int) color.RGBA {
		i := (row*cfg.GridSize + col) * 4
		return color.RGBA{R: buf[i], G: buf[i+1], B: buf[i+2], A: buf[i+3]}
	}
	if pixel(4, 6) != DefaultPalette[core.CellDanger] {
		t.Fatalf("cell next to hunter is %v", pixel(4, 6))
	}
	if pixel(5, 5) != DefaultPalette[core.CellHunter] {
		t.Fatalf("hunter cell is %v", pixel(5, 5))
	}
	if pixel(3, 3) != DefaultPalette[core.CellEmpty] {
		t.Fatalf("cell outside the zone is %v", pixel(3, 3))
	}
}

func TestGlyph(t *testing.T) {
	cases := []struct {
		cell  uint8
		sheep bool
		want  string
	}{
		{core.CellLion, false, "L"},
		{core.CellHunter, true, "H"},
		{core.CellToken, false, "F"},
		{core.CellToken, true, "S"},
		{core.CellDanger, false, ""},
		{core.CellEmpty, true, ""},
	}
	for _, c := range cases {
		if got := Glyph(c.cell, c.sheep); got != c.want {
			t.Fatalf("Glyph(%d, %v) = %q, want %q", c.cell, c.sheep, got, c.want)
		}
	}
}
