package grpc

import (
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error wraps a grpc status for fluent construction.
type Error struct {
	status *status.Status
}

// Errorf instantiates a new Error with the given code and message.
func Errorf(code codes.Code, message string, params ...any) *Error {
	return &Error{status: status.New(code, fmt.Sprintf(message, params...))}
}

// Err returns the error representation of this Error.
func (e *Error) Err() error { return e.status.Err() }

// WithLocalizedMessage attaches a user-facing message to the error.
func (e *Error) WithLocalizedMessage(message string, params ...any) (*Error, error) {
	localizedMessage := &errdetails.LocalizedMessage{
		Locale:  "en-US",
		Message: fmt.Sprintf(message, params...),
	}
	status, err := e.status.WithDetails(localizedMessage)
	if err != nil {
		return nil, fmt.Errorf("constructing status with details: %w", err)
	}
	e.status = status
	return e, nil
}
