package nic

import "errors"

// ErrMissingNIC reports a NIC operation called without an interface FQDD.
var ErrMissingNIC = errors.New("nic fqdd is required")
