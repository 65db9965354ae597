package lc

import "errors"

var (
	// ErrInRecovery reports a Lifecycle Controller stuck in recovery
	// mode; it will not become ready without manual intervention.
	ErrInRecovery = errors.New("lifecycle controller is in recovery mode")

	// ErrBadVersion reports a missing or unparsable firmware version.
	ErrBadVersion = errors.New("bad lifecycle controller version")
)
