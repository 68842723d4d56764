package transport

import (
	"errors"
	"net/http"
)

// Error is the HTTP-like envelope every operation reports failures with.
type Error struct {
	Status  int               `json:"-"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func notFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

func validation(message string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message}
}

func validationFields(message string, fields map[string]string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message, Fields: fields}
}

// transient is the randomly injected write failure. It is always retry-safe:
// the store is untouched when it fires.
func transient() *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Temporary failure"}
}

func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func IsValidation(err error) bool {
	return hasStatus(err, http.StatusUnprocessableEntity)
}

// IsTransient reports whether the failure was injected and left no side
// effect.
func IsTransient(err error) bool {
	return hasStatus(err, http.StatusInternalServerError)
}

func hasStatus(err error, status int) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == status
}
