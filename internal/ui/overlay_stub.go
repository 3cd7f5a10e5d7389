//go:build !ebiten

package ui

import "lionhunt/internal/world"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{ visible bool }

// NewOverlay constructs a stub overlay.
func NewOverlay() *Overlay { return &Overlay{} }

// Show marks the overlay visible.
func (o *Overlay) Show(world.Reason, int) { o.visible = true }

// Visible reports whether Show was called.
func (o *Overlay) Visible() bool { return o.visible }

// Update never sees a click in headless builds.
func (o *Overlay) Update() bool { return false }

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, int, int) {}
