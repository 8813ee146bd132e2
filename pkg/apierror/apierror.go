package apierror

import (
	"errors"
	"net/http"
)

// Kind discriminates the variants of Error.
type Kind int

const (
	KindBadRequest Kind = iota
	KindCustom
	KindRequestValidation
	KindNotFound
	KindDatabase
)

var statusCodes = map[Kind]int{
	KindBadRequest:        http.StatusBadRequest,
	KindCustom:            http.StatusLengthRequired,
	KindRequestValidation: http.StatusBadRequest,
	KindNotFound:          http.StatusNotFound,
	KindDatabase:          http.StatusInternalServerError,
}

var defaultMessages = map[Kind]string{
	KindBadRequest:        "Bad Request",
	KindCustom:            "Custom Error",
	KindRequestValidation: "Invalid request parameters",
	KindNotFound:          "Not Found",
	KindDatabase:          "Error connecting to database",
}

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindCustom:
		return "custom"
	case KindRequestValidation:
		return "request_validation"
	case KindNotFound:
		return "not_found"
	case KindDatabase:
		return "database"
	default:
		return "unknown"
	}
}

// FieldError is a single entry of a serialized error body.
type FieldError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error is an error that knows the HTTP status it maps to and how it is rendered.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	cause   error
}

func newError(kind Kind, message string) *Error {
	if message == "" {
		message = defaultMessages[kind]
	}
	return &Error{Kind: kind, Message: message}
}

func BadRequest(message string) *Error {
	return newError(KindBadRequest, message)
}

// Custom is the ad hoc 411 error.
func Custom(message string) *Error {
	return newError(KindCustom, message)
}

func NotFound(message string) *Error {
	return newError(KindNotFound, message)
}

func Database(message string) *Error {
	return newError(KindDatabase, message)
}

// RequestValidation wraps a list of field-level failures.
func RequestValidation(fields []FieldError) *Error {
	e := newError(KindRequestValidation, "")
	e.Fields = fields
	return e
}

// Wrap records the underlying error, it is reachable through errors.Unwrap.
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

func (e *Error) Error() string {
	if e.Kind == KindRequestValidation && len(e.Fields) > 0 {
		msg := e.Message + ":"
		for i, f := range e.Fields {
			if i > 0 {
				msg += ";"
			}
			msg += " " + f.Message
		}
		return msg
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) StatusCode() int {
	if code, ok := statusCodes[e.Kind]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// SerializeErrors returns the ordered entries written in the "errors" array of the response body.
func (e *Error) SerializeErrors() []FieldError {
	if e.Kind == KindRequestValidation && len(e.Fields) > 0 {
		out := make([]FieldError, len(e.Fields))
		copy(out, e.Fields)
		return out
	}
	return []FieldError{{Message: e.Message}}
}

// Is matches another *Error of the same kind, so errors.Is(err, &Error{Kind: KindNotFound}) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
