package payment

import "errors"

var (
	// ErrDuplicateCode is returned when a payment code was already submitted,
	// by any user, in any status.
	ErrDuplicateCode = errors.New("payment code already submitted")

	// ErrEmptyCode is returned when the submitted code is blank after trimming
	ErrEmptyCode = errors.New("payment code required")

	// ErrNotFound is returned when no payment exists for the given id
	ErrNotFound = errors.New("payment not found")

	// ErrAlreadyProcessed is returned when the payment left the pending state
	ErrAlreadyProcessed = errors.New("payment already processed")

	// ErrInvalidAmount is returned when credited tokens are <= 0
	ErrInvalidAmount = errors.New("invalid amount: must be greater than 0")

	ErrInternal = errors.New("internal error")
)
