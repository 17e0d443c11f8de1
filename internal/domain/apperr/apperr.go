// Package apperr carries the domain error taxonomy surfaced to API callers:
// a machine-readable code, a human-readable message and structured details
// identifying the offending ids.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeUnauthenticated  Code = "UNAUTHENTICATED"
	CodeForbidden        Code = "FORBIDDEN"
	CodeNotFound         Code = "NOT_FOUND"
	CodeConflict         Code = "CONFLICT"
	CodeValidationFailed Code = "VALIDATION_FAILED"
)

type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s %v", e.Code, e.Message, e.Details)
}

func Unauthenticated(msg string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

func NotFound(msg string, details map[string]any) *Error {
	return &Error{Code: CodeNotFound, Message: msg, Details: details}
}

// NotFoundEntity names the missing entity and its id, e.g.
// NotFoundEntity("patient", 999).
func NotFoundEntity(entity string, id int64) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("no %s with id %d exists", entity, id),
		Details: map[string]any{"entity": entity, "id": id},
	}
}

func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

func ValidationFailed(msg string, details map[string]any) *Error {
	return &Error{Code: CodeValidationFailed, Message: msg, Details: details}
}

// WithDetails attaches structured diagnostic fields and returns the error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// As unwraps err into *Error when it belongs to the taxonomy.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func HasCode(err error, code Code) bool {
	if e, ok := As(err); ok {
		return e.Code == code
	}
	return false
}

func IsNotFound(err error) bool  { return HasCode(err, CodeNotFound) }
func IsForbidden(err error) bool { return HasCode(err, CodeForbidden) }
func IsConflict(err error) bool  { return HasCode(err, CodeConflict) }
