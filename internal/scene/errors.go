package scene

import (
	"errors"
	"fmt"
)

// Validation errors returned by scene edits.
var (
	// ErrInvalidCharge indicates a zero, NaN or infinite charge, or a
	// non-finite position.
	ErrInvalidCharge = errors.New("scene: invalid charge")

	// ErrInvalidRegion indicates a rectangle with non-finite corners.
	ErrInvalidRegion = errors.New("scene: invalid region")

	// ErrInvalidPermittivity indicates a relative permittivity that is not a
	// finite positive number.
	ErrInvalidPermittivity = errors.New("scene: relative permittivity must be finite and > 0")
)

// EditError wraps a validation error with the rejected operation.
type EditError struct {
	Op      string
	Detail  string
	Wrapped error
}

func (e *EditError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Wrapped)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Op, e.Wrapped, e.Detail)
}

func (e *EditError) Unwrap() error {
	return e.Wrapped
}
