package power

import "errors"

var (
	// ErrInvalidState means the requested target is not a power state the
	// controller accepts.
	ErrInvalidState = errors.New("invalid target power state")

	// ErrUnknownState means the controller reported an EnabledState code
	// outside the power profile.
	ErrUnknownState = errors.New("unrecognized power state")
)
