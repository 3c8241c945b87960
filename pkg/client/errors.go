package client

import (
	"errors"
	"fmt"
)

var (
	ErrAuthRequired = errors.New("authentication required")
	ErrValidation   = errors.New("validation failed")
	ErrInFlight     = errors.New("request already in flight")
	ErrNoSelection  = errors.New("no reports selected")
)

// ServerError is a failed call. Status is 0 when the server was never reached.
type ServerError struct {
	Status  int
	Message string
	Err     error
}

func (e *ServerError) Error() string {
	if e.Status == 0 {
		return "network error: " + e.Message
	}
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

type InsufficientEnergyError struct {
	Needed    int
	Available int
}

func (e *InsufficientEnergyError) Error() string {
	return fmt.Sprintf("insufficient energy: need %d, have %d", e.Needed, e.Available)
}

// UserMessage is the text shown to the user for err.
func UserMessage(err error) string {
	var se *ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	var ie *InsufficientEnergyError
	if errors.As(err, &ie) {
		return fmt.Sprintf("You need %d energy but only have %d.", ie.Needed, ie.Available)
	}
	return err.Error()
}
