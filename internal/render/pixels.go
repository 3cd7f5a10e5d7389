// Package render turns world cell layers into pixels and glyphs.
package render

import (
	"image/color"

	"lionhunt/internal/core"
)

// DefaultPalette colours each core cell code: white board, red capture
// zone, then tokens, hunters and the lion.
var DefaultPalette = []color.RGBA{
	core.CellEmpty:  {R: 255, G: 255, B: 255, A: 255},
	core.CellDanger: {R: 255, G: 0, B: 0, A: 255},
	core.CellToken:  {R: 170, G: 220, B: 140, A: 255},
	core.CellHunter: {R: 70, G: 90, B: 120, A: 255},
	core.CellLion:   {R: 240, G: 170, B: 40, A: 255},
}

// Glyph returns the letter drawn on top of a cell code, or "" for none.
func Glyph(cell uint8, sheep bool) string {
	switch cell {
	case core.CellLion:
		return "L"
	case core.CellHunter:
		return "H"
	case core.CellToken:
		if sheep {
			return "S"
		}
		return "F"
	}
	return ""
}

// FillRGBA converts cell codes into RGBA pixels in buf using palette. Codes
// past the end of the palette use its last colour. When the palette is
// empty the buffer is cleared to transparent black.
func FillRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
