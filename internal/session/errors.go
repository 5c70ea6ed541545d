package session

import (
	"errors"
	"fmt"
)

var ErrHalted = errors.New("session: halted, reset required")

// StepError records the tick on which the physics step was refused. The
// session keeps returning it until Reset.
type StepError struct {
	Tick    int
	SimTime float64
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("session halted at tick %d (t=%.4f): %v", e.Tick, e.SimTime, e.Err)
}

func (e *StepError) Unwrap() []error {
	return []error{ErrHalted, e.Err}
}
