package errors

import (
	"errors"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

var (
	ErrMissingFields     = NewValidationError("Missing required fields")
	ErrInvalidType       = NewValidationError("Invalid operation type")
	ErrInvalidCategory   = NewValidationError("Invalid category")
	ErrInvalidDate       = NewValidationError("Invalid date, expected YYYY-MM-DD")
	ErrInvalidAmount     = NewValidationError("Amount must be greater than zero")
	ErrInsufficientFunds = NewValidationError("Insufficient funds")
	ErrAmountOutOfRange  = NewValidationError("Amount must have at most 2 decimal places and not exceed 1000000000000")
)
