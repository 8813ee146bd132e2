package calculator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/eventboard/eventboard/pkg/apierror"
)

// Operators lists the operators the calculator is meant to accept.
var Operators = []string{"+", "-", "*", "/"}

// Calculate applies operator to val1 and val2. Anything that is not "+", "-" or "*" is
// treated as division, and division by a falsy val2 (0, "", null, false) is rejected.
func Calculate(val1, val2 any, operator string) (float64, error) {
	var result float64

	switch operator {
	case "+", "-", "*":
		a, b, err := operands(val1, val2)
		if err != nil {
			return 0, err
		}
		switch operator {
		case "+":
			result = a + b
		case "-":
			result = a - b
		default:
			result = a * b
		}
	default:
		if isFalsy(val2) {
			return 0, apierror.BadRequest("Division by 0")
		}
		a, b, err := operands(val1, val2)
		if err != nil {
			return 0, err
		}
		result = a / b
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, apierror.BadRequest("Result is not a finite number")
	}
	return result, nil
}

func operands(val1, val2 any) (float64, float64, error) {
	var fieldErrs []apierror.FieldError
	a, ok := toNumber(val1)
	if !ok {
		fieldErrs = append(fieldErrs, apierror.FieldError{Message: "val1 must be a number", Field: "val1"})
	}
	b, ok := toNumber(val2)
	if !ok {
		fieldErrs = append(fieldErrs, apierror.FieldError{Message: "val2 must be a number", Field: "val2"})
	}
	if len(fieldErrs) > 0 {
		return 0, 0, apierror.RequestValidation(fieldErrs)
	}
	return a, b, nil
}

// toNumber accepts JSON numbers and numeric strings.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0 || math.IsNaN(x)
	case int:
		return x == 0
	case string:
		return x == ""
	default:
		return false
	}
}

// OperatorRule rejects operators outside Operators. It is only installed in strict mode.
func OperatorRule(req Request) []apierror.FieldError {
	for _, op := range Operators {
		if req.Operator == op {
			return nil
		}
	}
	return []apierror.FieldError{{
		Message: fmt.Sprintf("Must be %s!", strings.Join(Operators, ", ")),
		Field:   "operator",
	}}
}
