package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cell codes written into a Layer for renderers. Higher codes win when
// several entities share a cell.
const (
	CellEmpty uint8 = iota
	CellDanger
	CellToken
	CellHunter
	CellLion

	// CellKinds is the number of distinct cell codes.
	CellKinds
)
