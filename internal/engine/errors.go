package engine

import "errors"

// Domain errors for engine construction and lookup.
var (
	// ErrUnknownEngine indicates no factory is registered under a name.
	ErrUnknownEngine = errors.New("engine: unknown engine")

	// ErrInvalidSize indicates a zero or negative grid dimension.
	ErrInvalidSize = errors.New("engine: grid dimensions must be positive")

	// ErrInvalidRule indicates a rule string that cannot be parsed.
	ErrInvalidRule = errors.New("engine: invalid rule")
)
