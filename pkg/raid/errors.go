package raid

import "errors"

// ErrInvalidDiskSpec rejects a virtual disk spec before anything is sent
// to the controller.
var ErrInvalidDiskSpec = errors.New("invalid virtual disk spec")
