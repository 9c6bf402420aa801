package engine

import "errors"

var (
	// ErrUnknownKind indicates an engine kind outside the supported set.
	ErrUnknownKind = errors.New("engine: unknown engine kind")

	// ErrUnknownStrategy indicates an unsupported decomposition strategy.
	ErrUnknownStrategy = errors.New("engine: unknown decomposition strategy")

	// ErrInvalidConfig indicates an out-of-range configuration value.
	ErrInvalidConfig = errors.New("engine: invalid configuration")
)
