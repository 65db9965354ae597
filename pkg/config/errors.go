package config

import "errors"

var (
	// ErrInvalidConfig wraps validation failures from Validate.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidDuration reports a JSON duration that is neither a number
	// of nanoseconds nor a duration string.
	ErrInvalidDuration = errors.New("invalid duration")
)
