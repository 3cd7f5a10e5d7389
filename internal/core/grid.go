package core

// Layer stores a 2D grid of byte-sized cell codes in row-major order.
type Layer struct {
	W, H int
	data []uint8
}

// NewLayer allocates a layer with the given dimensions.
func NewLayer(w, h int) *Layer {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Layer{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (l *Layer) Cells() []uint8 { return l.data }

// Index returns the linear slice index for (row, col).
func (l *Layer) Index(row, col int) int { return row*l.W + col }

// In reports whether (row, col) lies on the layer. Coordinates never wrap.
func (l *Layer) In(row, col int) bool {
	return row >= 0 && row < l.H && col >= 0 && col < l.W
}

// Raise stores v at (row, col) unless the cell already holds a higher code
// or the coordinates are off the layer.
func (l *Layer) Raise(row, col int, v uint8) {
	if !l.In(row, col) {
		return
	}
	idx := l.Index(row, col)
	if l.data[idx] < v {
		l.data[idx] = v
	}
}

// Clear fills the layer with zeros.
func (l *Layer) Clear() {
	for i := range l.data {
		l.data[i] = 0
	}
}
