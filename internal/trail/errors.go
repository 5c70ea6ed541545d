package trail

import "errors"

var (
	// ErrUnknownBody indicates an id that was never registered.
	ErrUnknownBody = errors.New("trail: unknown body")

	// ErrDuplicateBody indicates an id that is already registered.
	ErrDuplicateBody = errors.New("trail: body already registered")

	// ErrInvalidCapacity indicates a maximum length below one.
	ErrInvalidCapacity = errors.New("trail: capacity must be at least 1")
)

// BodyError wraps a registry error with the offending body id.
type BodyError struct {
	ID      string
	Wrapped error
}

func (e *BodyError) Error() string {
	return e.Wrapped.Error() + ": " + e.ID
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}
