package settings

import "errors"

var (
	ErrValidation = errors.New("invalid settings value")
	ErrInternal   = errors.New("internal error")
)
