package idrac

import "errors"

// ErrResetRejected reports that the card refused a reset request.
var ErrResetRejected = errors.New("idrac reset rejected")
