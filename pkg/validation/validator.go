package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/eventboard/eventboard/pkg/apierror"
	"github.com/go-playground/validator/v10"
)

// the validator caches struct metadata, a single instance is shared by the whole process
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Struct runs the struct-tag rules of v and returns one FieldError per failed field.
// Values that are not structs have no rules and always pass.
func Struct(v any) []apierror.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []apierror.FieldError{{Message: err.Error()}}
	}

	result := make([]apierror.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		result = append(result, apierror.FieldError{
			Message: messageFor(fe),
			Field:   fe.Field(),
		})
	}
	return result
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
