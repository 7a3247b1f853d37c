package booking

import (
	"errors"
	"fmt"
)

var ErrClassFull = errors.New("class is full")

var ErrInvalidBookingState = errors.New("invalid booking state")

var ErrDuplicateBooking = errors.New("you already have this booking")

var ErrNoUser = errors.New("no user identifier")

// SagaError reports a book or cancel workflow that failed after at least one
// write reached the remote service.
type SagaError struct {
	Step        string
	Err         error
	Compensated bool
	CompErr     error
}

func (e *SagaError) Error() string {
	if e.Compensated {
		return fmt.Sprintf("%v failed, user document restored: %v", e.Step, e.Err)
	}
	if e.CompErr != nil {
		return fmt.Sprintf("%v failed, restore also failed (%v): %v", e.Step, e.CompErr, e.Err)
	}
	return fmt.Sprintf("%v failed: %v", e.Step, e.Err)
}

func (e *SagaError) Unwrap() error {
	return e.Err
}
