package model

import (
	"errors"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrAuthentication      = errors.New("authentication failed")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTransactionTimeout  = errors.New("transaction timed out")
	ErrEmailsUnsupported   = errors.New("account store does not support email records")
	ErrTransactionFinished = errors.New("transaction already finished")
)

// AuthenticationError is returned when an external authentication result is unusable.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Reason
}

func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// IdentityError is one failure reported by an identity operation.
type IdentityError struct {
	Code        string
	Description string
	Err         error
}

func (e IdentityError) Error() string {
	return e.Code + ": " + e.Description
}

func (e IdentityError) Unwrap() error {
	return e.Err
}

// AggregateError carries every failure recorded during an operation, in order.
type AggregateError struct {
	Errors []IdentityError
}

func (e *AggregateError) Error() string {
	lines := make([]string, 0, len(e.Errors))
	for _, ie := range e.Errors {
		lines = append(lines, ie.Error())
	}
	return strings.Join(lines, "\n")
}

func (e *AggregateError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, ie := range e.Errors {
		if ie.Err != nil {
			errs = append(errs, ie.Err)
		}
	}
	return errs
}
