//go:build ebiten

package app

import (
	"context"

	"lionhunt/internal/core"
	"lionhunt/internal/render"
	"lionhunt/internal/ui"
	"lionhunt/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width of the side panel in pixels.
const HUDWidth = 200

// Game adapts a Session to the ebiten.Game interface. Ebiten drives Update
// at its own frame rate; FixedStep decides which frames advance the game.
type Game struct {
	ctx     context.Context
	session *Session
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	timer   *core.FixedStep

	scale    int
	paused   bool
	tickOnce bool
}

// New constructs a Game for the provided session. Cancelling ctx ends the
// current game with Quit on the next frame.
func New(ctx context.Context, s *Session, tps, scale int) *Game {
	size := s.World().Size()
	return &Game{
		ctx:     ctx,
		session: s,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD("Lion Hunt", HUDWidth),
		overlay: ui.NewOverlay(),
		timer:   core.NewFixedStep(tps),
		scale:   scale,
	}
}

// Update handles per-frame logic and advances the game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.session.Quit()
		return ebiten.Termination
	}
	if g.overlay.Visible() {
		if g.overlay.Update() {
			if err := g.session.Restart(); err != nil {
				return err
			}
			g.timer.Reset()
		}
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}

	if (!g.paused && g.timer.ShouldStep()) || g.tickOnce {
		g.tickOnce = false
		done, err := g.session.Advance(g.ctx)
		if err != nil {
			return err
		}
		if done {
			last := g.session.Last()
			g.overlay.Show(last.Reason, last.Score)
			if last.Reason == world.Quit {
				return ebiten.Termination
			}
		}
	}
	g.hud.Update(g.session.Parameters())
	return nil
}

// Draw renders the board, the side panel and, after a game, the overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	w := g.session.World()
	cells := w.Cells()
	g.painter.Blit(screen, cells, render.DefaultPalette, g.scale)
	g.painter.DrawGlyphs(screen, cells, w.TokenKind() == world.Sheep, g.scale)

	board := w.GridSize() * g.scale
	g.hud.Draw(screen, board, board)
	g.overlay.Draw(screen, board, board)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	board := g.session.World().GridSize() * g.scale
	return board + g.hud.Width(), board
}
