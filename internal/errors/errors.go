package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NotFound(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

func Forbidden() *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: "Forbidden", StatusCode: http.StatusForbidden}
}

func Unauthorized() *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized}
}

func RateLimited(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusTooManyRequests}
}

// Check if err is instance of T for custom error types
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

type ValidationCode string

const (
	CodeEmpty          ValidationCode = "empty"
	CodeTooLong        ValidationCode = "too_long"
	CodeContainsUrl    ValidationCode = "contains_url"
	CodeInvalidMention ValidationCode = "invalid_mention"
)

// ValidationError carries the offending field so handlers can render
// field-level detail next to the generic banner.
type ValidationError struct {
	Field   string
	Code    ValidationCode
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation error: %s", e.Message)
}
