package world

import "errors"

var (
	// ErrInvalidConfiguration reports bad construction parameters.
	ErrInvalidConfiguration = errors.New("invalid world configuration")
	// ErrInvalidInput reports malformed per-tick input such as an action
	// count that does not match the number of agents.
	ErrInvalidInput = errors.New("invalid step input")
	// ErrInvalidState reports a mutation attempted after the game ended.
	ErrInvalidState = errors.New("world is terminal")
)
