package world

import (
	"fmt"
	"strconv"

	"lionhunt/internal/action"
	"lionhunt/internal/core"
)

// MaxGridSize bounds the side of the grid so the render layer stays small.
const MaxGridSize = 4096

// Config controls the shape of a new world.
type Config struct {
	GridSize       int
	HunterCount    int
	TokenCount     int
	ProximityRange int
	Tokens         TokenKind
}

// DefaultConfig returns the classic single-hunter setup.
func DefaultConfig() Config {
	return Config{
		GridSize:       10,
		HunterCount:    1,
		TokenCount:     5,
		ProximityRange: 1,
		Tokens:         Food,
	}
}

// Validate reports the first invalid field wrapped in ErrInvalidConfiguration.
func (c Config) Validate() error {
	switch {
	case c.GridSize <= 0:
		return fmt.Errorf("%w: grid size %d must be positive", ErrInvalidConfiguration, c.GridSize)
	case c.GridSize > MaxGridSize:
		return fmt.Errorf("%w: grid size %d exceeds %d", ErrInvalidConfiguration, c.GridSize, MaxGridSize)
	case c.HunterCount < 1:
		return fmt.Errorf("%w: hunter count %d must be at least 1", ErrInvalidConfiguration, c.HunterCount)
	case c.TokenCount < 0:
		return fmt.Errorf("%w: token count %d must not be negative", ErrInvalidConfiguration, c.TokenCount)
	case c.ProximityRange < 0:
		return fmt.Errorf("%w: proximity range %d must not be negative", ErrInvalidConfiguration, c.ProximityRange)
	case c.Tokens != Food && c.Tokens != Sheep:
		return fmt.Errorf("%w: %s", ErrInvalidConfiguration, c.Tokens)
	}
	return nil
}

// Layout pins every entity to an explicit starting cell.
type Layout struct {
	Lion    Position
	Hunters []Position
	Tokens  []Position
}

// Moves carries one action per agent for a single tick.
type Moves struct {
	Lion    action.Action
	Hunters []action.Action
	// Tokens moves each live token in order. Only sheep worlds accept it; a
	// nil slice leaves every sheep in place.
	Tokens []action.Action
}

// World holds the grid state of one game. It is not safe for concurrent use;
// a single owner drives Step and renderers read between ticks.
type World struct {
	size      int
	proximity int
	kind      TokenKind

	lion    Position
	hunters []Position
	tokens  []Position
	score   int

	cells *core.Layer
}

// New creates a world with the lion at the top-left corner, hunters on the
// opposite corners and TokenCount tokens on independently random cells.
// Tokens may share a cell.
func New(cfg Config, rng *core.RNG) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = core.NewRNG(0)
	}
	layout := Layout{
		Lion:    Position{0, 0},
		Hunters: HunterStarts(cfg.GridSize, cfg.HunterCount),
		Tokens:  make([]Position, cfg.TokenCount),
	}
	for i := range layout.Tokens {
		layout.Tokens[i] = Position{Row: rng.IntN(cfg.GridSize), Col: rng.IntN(cfg.GridSize)}
	}
	return build(cfg, layout), nil
}

// NewWithLayout creates a world from explicit positions. HunterCount must
// match the layout; TokenCount is taken from the layout.
func NewWithLayout(cfg Config, layout Layout) (*World, error) {
	cfg.TokenCount = len(layout.Tokens)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(layout.Hunters) != cfg.HunterCount {
		return nil, fmt.Errorf("%w: layout has %d hunters, config wants %d",
			ErrInvalidConfiguration, len(layout.Hunters), cfg.HunterCount)
	}
	check := func(what string, p Position) error {
		if !inBounds(p, cfg.GridSize) {
			return fmt.Errorf("%w: %s at %s is off a %dx%d grid",
				ErrInvalidConfiguration, what, p, cfg.GridSize, cfg.GridSize)
		}
		return nil
	}
	if err := check("lion", layout.Lion); err != nil {
		return nil, err
	}
	for _, h := range layout.Hunters {
		if err := check("hunter", h); err != nil {
			return nil, err
		}
	}
	for _, t := range layout.Tokens {
		if err := check("token", t); err != nil {
			return nil, err
		}
	}
	return build(cfg, layout), nil
}

func build(cfg Config, layout Layout) *World {
	return &World{
		size:      cfg.GridSize,
		proximity: cfg.ProximityRange,
		kind:      cfg.Tokens,
		lion:      layout.Lion,
		hunters:   append([]Position(nil), layout.Hunters...),
		tokens:    append([]Position(nil), layout.Tokens...),
	}
}

// HunterStarts returns the starting cells for n hunters: the corner opposite
// the lion first, then the two remaining corners, repeating as needed.
func HunterStarts(size, n int) []Position {
	last := size - 1
	corners := []Position{{last, last}, {last, 0}, {0, last}}
	out := make([]Position, n)
	for i := range out {
		out[i] = corners[i%len(corners)]
	}
	return out
}

func inBounds(p Position, size int) bool {
	return p.Row >= 0 && p.Row < size && p.Col >= 0 && p.Col < size
}

// MoveAgent applies a to p. Moves that would leave the grid are cancelled,
// not clamped to the edge, so p comes back unchanged.
func (w *World) MoveAgent(p Position, a action.Action) Position {
	dRow, dCol := action.Delta(a)
	next := Position{Row: p.Row + dRow, Col: p.Col + dCol}
	if !inBounds(next, w.size) {
		return p
	}
	return next
}

// Step advances the world by one tick: lion, hunters, tokens, then
// consumption. Input is validated before anything moves, and a terminal
// world rejects further steps with ErrInvalidState.
func (w *World) Step(m Moves) error {
	if r := w.TerminalReason(); r.Terminal() {
		return fmt.Errorf("%w: game already ended (%s)", ErrInvalidState, r)
	}
	if err := w.validate(m); err != nil {
		return err
	}

	w.lion = w.MoveAgent(w.lion, m.Lion)
	for i, a := range m.Hunters {
		w.hunters[i] = w.MoveAgent(w.hunters[i], a)
	}
	for i, a := range m.Tokens {
		w.tokens[i] = w.MoveAgent(w.tokens[i], a)
	}
	w.consume()
	return nil
}

func (w *World) validate(m Moves) error {
	if !m.Lion.Valid() {
		return fmt.Errorf("%w: lion action %s", ErrInvalidInput, m.Lion)
	}
	if len(m.Hunters) != len(w.hunters) {
		return fmt.Errorf("%w: got %d hunter actions for %d hunters",
			ErrInvalidInput, len(m.Hunters), len(w.hunters))
	}
	for i, a := range m.Hunters {
		if !a.Valid() {
			return fmt.Errorf("%w: hunter %d action %s", ErrInvalidInput, i, a)
		}
	}
	if len(m.Tokens) == 0 {
		return nil
	}
	if !w.kind.Moving() {
		return fmt.Errorf("%w: %s tokens do not move", ErrInvalidInput, w.kind)
	}
	if len(m.Tokens) != len(w.tokens) {
		return fmt.Errorf("%w: got %d token actions for %d tokens",
			ErrInvalidInput, len(m.Tokens), len(w.tokens))
	}
	for i, a := range m.Tokens {
		if !a.Valid() {
			return fmt.Errorf("%w: token %d action %s", ErrInvalidInput, i, a)
		}
	}
	return nil
}

// consume removes the first token sharing the lion's cell. Duplicates on the
// same cell are eaten one per tick.
func (w *World) consume() {
	for i, t := range w.tokens {
		if t == w.lion {
			w.tokens = append(w.tokens[:i], w.tokens[i+1:]...)
			w.score += TokenReward
			return
		}
	}
}

// IsCaptured reports whether any hunter has the lion inside its capture box.
func (w *World) IsCaptured() bool {
	for _, h := range w.hunters {
		if h.WithinBox(w.lion, w.proximity) {
			return true
		}
	}
	return false
}

// IsCleared reports whether every token has been consumed.
func (w *World) IsCleared() bool { return len(w.tokens) == 0 }

// TerminalReason derives the end state from the current positions. Capture
// wins over clearing when both hold.
func (w *World) TerminalReason() Reason {
	if w.IsCaptured() {
		return Captured
	}
	if w.IsCleared() {
		return Cleared
	}
	return None
}

// GridSize returns the side length of the square grid.
func (w *World) GridSize() int { return w.size }

// Size returns the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.size, H: w.size} }

// Lion returns the lion's position.
func (w *World) Lion() Position { return w.lion }

// Hunters returns a copy of the hunter positions.
func (w *World) Hunters() []Position { return append([]Position(nil), w.hunters...) }

// Tokens returns a copy of the remaining token positions.
func (w *World) Tokens() []Position { return append([]Position(nil), w.tokens...) }

// Score returns the points collected so far.
func (w *World) Score() int { return w.score }

// ProximityRange returns the capture radius.
func (w *World) ProximityRange() int { return w.proximity }

// TokenKind returns what the tokens represent.
func (w *World) TokenKind() TokenKind { return w.kind }

// Snapshot returns a detached copy of the current state.
func (w *World) Snapshot() Snapshot {
	return Snapshot{
		GridSize:       w.size,
		Lion:           w.lion,
		Hunters:        w.Hunters(),
		Tokens:         w.Tokens(),
		TokenKind:      w.kind.String(),
		Score:          w.score,
		ProximityRange: w.proximity,
		Reason:         w.TerminalReason(),
	}
}

// Cells rebuilds the render layer and returns its row-major cell codes. The
// layer is allocated on first use and reused afterwards.
func (w *World) Cells() []uint8 {
	if w.cells == nil {
		w.cells = core.NewLayer(w.size, w.size)
	}
	l := w.cells
	l.Clear()
	r := w.proximity
	for _, h := range w.hunters {
		for row := max(0, h.Row-r); row <= min(w.size-1, h.Row+r); row++ {
			for col := max(0, h.Col-r); col <= min(w.size-1, h.Col+r); col++ {
				l.Raise(row, col, core.CellDanger)
			}
		}
	}
	for _, t := range w.tokens {
		l.Raise(t.Row, t.Col, core.CellToken)
	}
	for _, h := range w.hunters {
		l.Raise(h.Row, h.Col, core.CellHunter)
	}
	l.Raise(w.lion.Row, w.lion.Col, core.CellLion)
	return l.Cells()
}

// Parameters describes the world for HUDs and CLI output.
func (w *World) Parameters() core.ParameterSnapshot {
	itoa := strconv.Itoa
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				{Key: "grid_size", Label: "Grid", Value: itoa(w.size)},
				{Key: "hunter_count", Label: "Hunters", Value: itoa(len(w.hunters))},
				{Key: "token_kind", Label: "Tokens", Value: w.kind.String()},
				{Key: "proximity_range", Label: "Capture radius", Value: itoa(w.proximity),
					Description: "Hunters catch the lion when both axis distances are within this radius."},
			},
		},
		{
			Name: "State",
			Params: []core.Parameter{
				{Key: "score", Label: "Score", Value: itoa(w.score)},
				{Key: "tokens_left", Label: "Left", Value: itoa(len(w.tokens))},
				{Key: "lion", Label: "Lion", Value: w.lion.String()},
			},
		},
	}}
}
