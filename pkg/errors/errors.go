// Package errors maps errors crossing the application boundary to
// stable error codes and HTTP status codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"ordermanagement/domain/customer"
	"ordermanagement/domain/order"
	"ordermanagement/domain/product"
	"ordermanagement/domain/shared"
)

// ErrorCode identifies an error class across the API.
type ErrorCode string

const (
	// Generic codes
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// Business codes
	CodeCustomerNotFound  ErrorCode = "CUSTOMER_NOT_FOUND"
	CodeProductNotFound   ErrorCode = "PRODUCT_NOT_FOUND"
	CodeOrderNotFound     ErrorCode = "ORDER_NOT_FOUND"
	CodeEmailExists       ErrorCode = "EMAIL_EXISTS"
	CodeInvalidOrderState ErrorCode = "INVALID_ORDER_STATE"
	CodeInsufficientStock ErrorCode = "INSUFFICIENT_STOCK"
)

// AppError is the error shape returned by the API layer.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode maps the error code to an HTTP status.
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound, CodeCustomerNotFound, CodeProductNotFound, CodeOrderNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeEmailExists:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeInvalidOrderState, CodeInsufficientStock:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError keeping the cause for errors.Is/As.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError { return New(CodeBadRequest, message) }

func NotFound(message string) *AppError { return New(CodeNotFound, message) }

func Internal(message string) *AppError { return New(CodeInternal, message) }

func Conflict(message string) *AppError { return New(CodeConflict, message) }

func TooManyRequests(message string) *AppError { return New(CodeTooManyRequest, message) }

func Validation(message string) *AppError { return New(CodeValidation, message) }

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError maps a domain error to an AppError by its sentinel,
// keeping the domain message intact. Unknown errors become internal.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	msg := err.Error()
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		msg = domainErr.Message
	}

	switch {
	case errors.Is(err, customer.ErrCustomerNotFound):
		return Wrap(err, CodeCustomerNotFound, msg)
	case errors.Is(err, product.ErrProductNotFound):
		return Wrap(err, CodeProductNotFound, msg)
	case errors.Is(err, order.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, msg)
	case errors.Is(err, customer.ErrEmailExists):
		return Wrap(err, CodeEmailExists, msg)
	case errors.Is(err, order.ErrInsufficientStock):
		return Wrap(err, CodeInsufficientStock, msg)
	case errors.Is(err, order.ErrInvalidStateTransition),
		errors.Is(err, order.ErrNotModifiable),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrShippingAddressRequired):
		return Wrap(err, CodeInvalidOrderState, msg)
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, msg)
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, msg)
	case errors.Is(err, shared.ErrInvalidInput), errors.Is(err, shared.ErrInvariant):
		return Wrap(err, CodeValidation, msg)
	default:
		return Wrap(err, CodeInternal, msg)
	}
}
