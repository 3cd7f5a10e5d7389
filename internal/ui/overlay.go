//go:build ebiten

package ui

import (
	"image/color"

	"lionhunt/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay is the game-over screen. While visible it blocks the board and
// waits for a click.
type Overlay struct {
	visible bool
	message string
	score   string
	pixel   *ebiten.Image
}

// NewOverlay constructs a hidden overlay.
func NewOverlay() *Overlay {
	o := &Overlay{}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Show displays the result of a finished game.
func (o *Overlay) Show(reason world.Reason, score int) {
	o.message, o.score = GameOverLines(reason, score)
	o.visible = true
}

// Visible reports whether the overlay is up.
func (o *Overlay) Visible() bool { return o.visible }

// Update hides the overlay on a mouse click and reports whether that
// happened.
func (o *Overlay) Update() bool {
	if !o.visible {
		return false
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		o.visible = false
		return true
	}
	return false
}

// Draw dims the area w x h and prints the result centred on it.
func (o *Overlay) Draw(screen *ebiten.Image, w, h int) {
	if !o.visible {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.ColorScale.ScaleAlpha(200.0 / 255.0)
	screen.DrawImage(o.pixel, op)

	face := basicfont.Face7x13
	centre := func(s string, y int, c color.Color) {
		b := text.BoundString(face, s)
		text.Draw(screen, s, face, (w-b.Dx())/2, y, c)
	}
	centre(o.message, h/3, color.RGBA{R: 255, A: 255})
	centre(o.score, h/2, color.RGBA{A: 255})
	centre("Click to play again, Q to quit", h/2+2*lineHeight, color.RGBA{R: 90, G: 90, B: 90, A: 255})
}
