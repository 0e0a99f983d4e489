package huggingface

import (
	"encoding/json"
	"fmt"
)

// APIError is a non-2xx response from the inference service. Message holds
// the service's own error field when the body carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("huggingface: request failed with status %d: %s", e.StatusCode, e.Message)
}

// newAPIError inspects an error response body and pulls out the most
// specific message available.
func newAPIError(op string, statusCode int, body []byte) *APIError {
	msg := fmt.Sprintf("%s failed", op)

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		msg = eb.Error
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    msg,
	}
}
