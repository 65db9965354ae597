package attributes

import "errors"

var (
	// ErrUnknownAttribute means a proposed setting names no attribute the
	// view exposes.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrReadOnly means a proposed setting targets an attribute the
	// controller will not change.
	ErrReadOnly = errors.New("cannot set read-only attribute")

	// ErrInvalidValue means a proposed value fails the attribute's
	// kind-specific rules.
	ErrInvalidValue = errors.New("invalid attribute value")

	// ErrNameCollision means two attributes share a display name and
	// name-keyed settings would be ambiguous.
	ErrNameCollision = errors.New("colliding attribute names")
)
