package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eventboard/eventboard/pkg/apierror"
	log "github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

type contextKey string

const (
	resultKey contextKey = "validation.result"
	bodyKey   contextKey = "validation.body"
)

// Rule is an extra check on a decoded body, on top of its struct tags.
type Rule[T any] func(body T) []apierror.FieldError

// WithResult attaches field-level failures to ctx. They accumulate across calls.
func WithResult(ctx context.Context, fieldErrs []apierror.FieldError) context.Context {
	existing := ResultFrom(ctx)
	combined := make([]apierror.FieldError, 0, len(existing)+len(fieldErrs))
	combined = append(combined, existing...)
	combined = append(combined, fieldErrs...)
	return context.WithValue(ctx, resultKey, combined)
}

func ResultFrom(ctx context.Context) []apierror.FieldError {
	result, _ := ctx.Value(resultKey).([]apierror.FieldError)
	return result
}

// BodyFrom returns the body decoded by Body[T]. ok is false when no body of type T was attached.
func BodyFrom[T any](ctx context.Context) (T, bool) {
	body, ok := ctx.Value(bodyKey).(T)
	return body, ok
}

// Body decodes the JSON request body into T, runs its struct tags and the given rules,
// and attaches both the body and the failures to the request. It never rejects the request
// itself, that is left to ValidateRequest.
func Body[T any](rules ...Rule[T]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body T
			var result []apierror.FieldError

			if err := decodeJSON(w, r, &body); err != nil {
				result = append(result, decodeFailure(err))
			} else {
				result = append(result, Struct(body)...)
				for _, rule := range rules {
					result = append(result, rule(body)...)
				}
			}

			ctx := WithResult(r.Context(), result)
			ctx = context.WithValue(ctx, bodyKey, body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateRequest stops the request with a RequestValidation error when any field-level
// failure is attached, otherwise it calls next unchanged.
func ValidateRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if result := ResultFrom(r.Context()); len(result) > 0 {
			log.Debugf("request validation failed for %s %s: %d error(s)", r.Method, r.URL.Path, len(result))
			apierror.Write(w, apierror.RequestValidation(result))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Handler is shorthand for Body[T](rules...) followed by ValidateRequest.
func Handler[T any](h http.HandlerFunc, rules ...Rule[T]) http.Handler {
	return Body[T](rules...)(ValidateRequest(h))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func decodeFailure(err error) apierror.FieldError {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var timeErr *time.ParseError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return apierror.FieldError{Message: "request body is required", Field: "body"}
	case errors.As(err, &typeErr):
		return apierror.FieldError{Message: fmt.Sprintf("%s has an invalid type", typeErr.Field), Field: typeErr.Field}
	case errors.As(err, &timeErr):
		return apierror.FieldError{Message: "dates must be RFC3339 timestamps", Field: "body"}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apierror.FieldError{Message: "request body must be valid JSON", Field: "body"}
	case errors.As(err, &tooLarge):
		return apierror.FieldError{Message: "request body is too large", Field: "body"}
	default:
		return apierror.FieldError{Message: err.Error(), Field: "body"}
	}
}
