package ledger

import "errors"

var (
	// ErrInsufficientTokens is returned when an adjustment would drive a
	// balance negative.
	ErrInsufficientTokens = errors.New("insufficient tokens")

	// ErrInvalidAmount is returned when a grant or charge amount is <= 0
	ErrInvalidAmount = errors.New("invalid amount: must be greater than 0")

	// ErrInvalidCause is returned for causes outside the known set
	ErrInvalidCause = errors.New("invalid ledger cause")

	// ErrUserNotFound is returned when the account doesn't exist
	ErrUserNotFound = errors.New("user not found")

	ErrInternal = errors.New("internal error")
)
