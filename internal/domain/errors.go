package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError carrying the same code, so the
// sentinels below match any error built by the constructors.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Domain error codes
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodeAlreadyPaid        = "ORDER_ALREADY_PAID"
	ErrCodeUserExists         = "USER_EXISTS"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthenticated    = "UNAUTHENTICATED"
	ErrCodeAuthentication     = "AUTHENTICATION_FAILED"
)

var (
	ErrValidation         = &DomainError{Code: ErrCodeValidation, Message: "validation failed"}
	ErrOrderNotFound      = &DomainError{Code: ErrCodeOrderNotFound, Message: "order not found"}
	ErrProductNotFound    = &DomainError{Code: ErrCodeProductNotFound, Message: "product not found"}
	ErrInvalidTransition  = &DomainError{Code: ErrCodeInvalidTransition, Message: "invalid status transition"}
	ErrAlreadyPaid        = &DomainError{Code: ErrCodeAlreadyPaid, Message: "order already paid"}
	ErrUserExists         = &DomainError{Code: ErrCodeUserExists, Message: "user already exists"}
	ErrInvalidCredentials = &DomainError{Code: ErrCodeInvalidCredentials, Message: "invalid email or password"}
	ErrUnauthenticated    = &DomainError{Code: ErrCodeUnauthenticated, Message: "authentication required"}
	ErrAuthentication     = &DomainError{Code: ErrCodeAuthentication, Message: "payment event authentication failed"}
)

func NewValidationError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

func NewOrderNotFoundError(id string) *DomainError {
	return &DomainError{
		Code:    ErrCodeOrderNotFound,
		Message: fmt.Sprintf("order with ID %s not found", id),
	}
}

func NewProductNotFoundError(id string) *DomainError {
	return &DomainError{
		Code:    ErrCodeProductNotFound,
		Message: fmt.Sprintf("product with ID %s not found", id),
	}
}

func NewInvalidTransitionError(from, to OrderStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

func NewAlreadyPaidError(id string) *DomainError {
	return &DomainError{
		Code:    ErrCodeAlreadyPaid,
		Message: fmt.Sprintf("order %s is already paid", id),
	}
}

func NewUserExistsError(email string) *DomainError {
	return &DomainError{
		Code:    ErrCodeUserExists,
		Message: fmt.Sprintf("user %s already exists", email),
	}
}

// NewAuthenticationError wraps the reason a payment event was rejected.
func NewAuthenticationError(reason string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeAuthentication,
		Message: reason,
		Err:     err,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
