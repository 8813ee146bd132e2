package apierror

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Body is the success envelope.
type Body struct {
	Success bool `json:"success"`
	Payload any  `json:"payload"`
}

// ErrorBody is what Write sends for any failure.
type ErrorBody struct {
	Errors []FieldError `json:"errors"`
}

const genericMessage = "Something went wrong"

// WriteJSON writes payload wrapped in the success envelope.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Body{Success: true, Payload: payload}); err != nil {
		log.Errorf("could not encode response: %v", err)
	}
}

// Write is the single place errors are turned into HTTP responses.
// Errors outside the taxonomy are logged and answered with 500.
func Write(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := ErrorBody{Errors: []FieldError{{Message: genericMessage}}}

	if apiErr, ok := As(err); ok {
		status = apiErr.StatusCode()
		body.Errors = apiErr.SerializeErrors()
		if status >= http.StatusInternalServerError {
			log.Errorf("request failed: %v (cause: %v)", apiErr, apiErr.Unwrap())
		} else {
			log.Debugf("request rejected with %d: %v", status, apiErr)
		}
	} else {
		log.Errorf("unhandled error: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("could not encode error response: %v", err)
	}
}
