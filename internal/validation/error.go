package validation

import "net/http"

// Error is the outcome of a failed check: the HTTP status the violation
// maps to plus a human-readable reason. A nil *Error means the input
// passed. Different rule classes carry different statuses, so handlers
// can surface the result without re-interpreting it.
type Error struct {
	Status  int
	Message string
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	return e.Message
}

// BadRequest reports a missing or malformed field.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Forbidden reports a business-policy violation.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// NotFound reports a failed lookup.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}
