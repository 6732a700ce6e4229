package chat

import "errors"

var (
	// ErrNotConfigured means no Gemini API key is stored in admin settings.
	ErrNotConfigured = errors.New("tutor is not configured")

	// ErrAdapterFailure means the upstream model call failed after the key
	// check passed. The student is not charged.
	ErrAdapterFailure = errors.New("tutor request failed")

	ErrUserNotFound = errors.New("user not found")
	ErrInternal     = errors.New("internal error")
)
