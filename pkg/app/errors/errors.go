// Package errors defines the categorized errors returned by services and
// how each category is reported over HTTP.
package errors

import (
	"errors"
	"net/http"
)

// Category classifies a ServiceError
type Category int

const (
	// CategoryGeneralError is an unexpected failure; its message is not exposed.
	CategoryGeneralError Category = iota
	// CategoryDataError is malformed or invalid client input.
	CategoryDataError
	// CategoryUnauthorized means the caller presented no valid credentials.
	CategoryUnauthorized
	// CategoryForbidden means the caller is authenticated but lacks the required role.
	CategoryForbidden
	// CategoryResourceNotFound means the addressed resource does not exist.
	CategoryResourceNotFound
	// CategoryDataConflict means the request clashes with stored state,
	// e.g. a transaction hash already claimed by another transfer.
	CategoryDataConflict
	// CategoryUnprocessable means the request is well formed but its subject
	// could not be accepted, e.g. a payment not found on chain.
	CategoryUnprocessable
	// CategoryDependencyFailure means an upstream node or store failed.
	CategoryDependencyFailure
)

var categories = map[Category]struct {
	name   string
	status int
}{
	CategoryGeneralError:      {"CategoryGeneralError", http.StatusInternalServerError},
	CategoryDataError:         {"CategoryDataError", http.StatusBadRequest},
	CategoryUnauthorized:      {"CategoryUnauthorized", http.StatusUnauthorized},
	CategoryForbidden:         {"CategoryForbidden", http.StatusForbidden},
	CategoryResourceNotFound:  {"CategoryResourceNotFound", http.StatusNotFound},
	CategoryDataConflict:      {"CategoryDataConflict", http.StatusConflict},
	CategoryUnprocessable:     {"CategoryUnprocessable", http.StatusUnprocessableEntity},
	CategoryDependencyFailure: {"CategoryDependencyFailure", http.StatusBadGateway},
}

func (c Category) String() string {
	if info, ok := categories[c]; ok {
		return info.name
	}
	return categories[CategoryGeneralError].name
}

// ServiceError carries a client-facing Message and the underlying Err, which is only logged.
type ServiceError struct {
	Category Category
	Message  string
	Err      error
}

// Error method to comply with error interface
func (err ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

// Unwrap returns the underlying error
func (err ServiceError) Unwrap() error {
	return err.Err
}

// Is reports whether target carries the same client-facing message.
func (err ServiceError) Is(target error) bool {
	return err.Message == target.Error()
}

// StatusCode returns the HTTP status code for the error category
func (err ServiceError) StatusCode() int {
	if info, ok := categories[err.Category]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Is checks that provided error is a ServiceError with desired Category
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Category == cat
}

func newError(cat Category, err error, message, fallback string) error {
	if err == nil {
		err = errors.New(fallback)
	}
	return &ServiceError{Category: cat, Message: message, Err: err}
}

// GeneralError hides err behind a generic "Internal Server Error" message.
func GeneralError(err error) error {
	return newError(CategoryGeneralError, err, "Internal Server Error", "internal server error")
}

// BadRequestError returns an error with category DataError
func BadRequestError(err error, message string) error {
	return newError(CategoryDataError, err, message, "bad request: "+message)
}

// UnAuthorizedError returns an error with category Unauthorized
func UnAuthorizedError(err error, message string) error {
	return newError(CategoryUnauthorized, err, message, "unauthorized")
}

// ForbiddenError returns an error with category Forbidden
func ForbiddenError(err error, message string) error {
	return newError(CategoryForbidden, err, message, "request forbidden")
}

// ResourceNotFoundError returns an error with category ResourceNotFound
func ResourceNotFoundError(err error, message string) error {
	return newError(CategoryResourceNotFound, err, message, "resource not found: "+message)
}

// ConflictError returns an error with category DataConflict
func ConflictError(err error, message string) error {
	return newError(CategoryDataConflict, err, message, "conflict")
}

// UnprocessableError returns an error with category Unprocessable
func UnprocessableError(err error, message string) error {
	return newError(CategoryUnprocessable, err, message, "unprocessable")
}

// DependencyError returns an error with category DependencyFailure
func DependencyError(err error, message string) error {
	return newError(CategoryDependencyFailure, err, message, "dependency failure")
}
