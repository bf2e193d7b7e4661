package contract

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrProviderFailure = errors.New("signal provider failed")
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrSchemaViolation = errors.New("model response violates output contract")
	ErrValidation      = errors.New("validation failed")
)
