//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// GridPainter uploads a cell layer to a one-pixel-per-cell texture and
// draws it scaled onto the screen.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a w x h grid.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{
		w:   w,
		h:   h,
		img: ebiten.NewImage(w, h),
		buf: make([]byte, 4*w*h),
	}
}

// Blit draws cells at the given scale with nearest-neighbour filtering.
func (p *GridPainter) Blit(screen *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != p.w*p.h {
		return
	}
	FillRGBA(p.buf, cells, palette)
	p.img.WritePixels(p.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(p.img, op)
}

// DrawGlyphs labels every occupied cell with its letter, centred.
func (p *GridPainter) DrawGlyphs(screen *ebiten.Image, cells []uint8, sheep bool, scale int) {
	face := basicfont.Face7x13
	ink := color.RGBA{A: 255}
	for i, c := range cells {
		g := Glyph(c, sheep)
		if g == "" {
			continue
		}
		row, col := i/p.w, i%p.w
		b := text.BoundString(face, g)
		x := col*scale + (scale-b.Dx())/2
		y := row*scale + (scale+b.Dy())/2
		text.Draw(screen, g, face, x, y, ink)
	}
}
