package world

import (
	"errors"
	"fmt"

	"mirgo/internal/physics"
)

var (
	ErrNotInitialized    = errors.New("physics world not initialized")
	ErrAlreadyRegistered = errors.New("object already registered")
	ErrInvalidMass       = errors.New("dynamic body mass must be positive")
	ErrNilObject         = errors.New("nil game object")
	ErrNotDynamic        = errors.New("object has no dynamic body")
)

// UnsupportedShapeError is returned when an object's collider cannot back a
// physics body. Nothing is registered when it is returned.
type UnsupportedShapeError struct {
	Object string
	Type   string
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("unsupported shape %s on %q", e.Type, e.Object)
}

func (e *UnsupportedShapeError) Unwrap() error {
	return physics.ErrUnsupportedShape
}
