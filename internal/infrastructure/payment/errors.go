package payment

import (
	"errors"
	"fmt"
)

// ProcessorError is a non-2xx answer from the payment processor.
type ProcessorError struct {
	Type       string
	Code       string
	Message    string
	StatusCode int
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("processor error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

func (e *ProcessorError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

func IsProcessorError(err error) (*ProcessorError, bool) {
	var procErr *ProcessorError
	ok := errors.As(err, &procErr)
	return procErr, ok
}
