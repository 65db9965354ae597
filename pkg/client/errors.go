package client

import "errors"

// ErrNotReady reports that the Lifecycle Controller did not become ready
// within the configured retry budget.
var ErrNotReady = errors.New("lifecycle controller is not ready")
