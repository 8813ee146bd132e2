package calculator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eventboard/eventboard/pkg/validation"
	"github.com/stretchr/testify/assert"
)

func postCalculate(h *Handler, body string) *httptest.ResponseRecorder {
	route := validation.Handler[Request](h.Calculate, h.Rules()...)
	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	route.ServeHTTP(w, req)
	return w
}

func TestCalculate_Multiplication(t *testing.T) {
	w := postCalculate(NewHandler(false), `{"val1": 6, "val2": 3, "operator": "*"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "payload": {"result": 18}}`, w.Body.String())
}

func TestCalculate_DivisionByZero(t *testing.T) {
	w := postCalculate(NewHandler(false), `{"val1": 10, "val2": 0, "operator": "/"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors": [{"message": "Division by 0"}]}`, w.Body.String())
}

func TestCalculate_UnknownOperatorIsDivision(t *testing.T) {
	w := postCalculate(NewHandler(false), `{"val1": 5, "val2": 2, "operator": "banana"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "payload": {"result": 2.5}}`, w.Body.String())
}

func TestCalculate_MissingDivisor(t *testing.T) {
	w := postCalculate(NewHandler(false), `{"val1": 5, "operator": "/"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors": [{"message": "Division by 0"}]}`, w.Body.String())
}

func TestCalculate_StrictOperatorsRejectsUnknownOperator(t *testing.T) {
	w := postCalculate(NewHandler(true), `{"val1": 5, "val2": 2, "operator": "banana"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors": [{"message": "Must be +, -, *, /!", "field": "operator"}]}`, w.Body.String())
}

func TestCalculate_StrictOperatorsAllowsDivision(t *testing.T) {
	w := postCalculate(NewHandler(true), `{"val1": 5, "val2": 2, "operator": "/"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "payload": {"result": 2.5}}`, w.Body.String())
}

func TestCalculate_MalformedBody(t *testing.T) {
	w := postCalculate(NewHandler(false), `not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
