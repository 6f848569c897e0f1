package portal

import (
	"encoding/json"
	"errors"
	"fmt"
)

// FallbackMessage is shown when the upstream API gives no usable message.
const FallbackMessage = "Something went wrong. Please try again."

// APIError is a non-2xx response from the upstream API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("portal api error (HTTP %d): %s", e.StatusCode, e.Message)
}

// Message returns the user-facing message carried by err, or FallbackMessage.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return FallbackMessage
}

func newAPIError(status int, body []byte) *APIError {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := FallbackMessage
	if err := json.Unmarshal(body, &env); err == nil {
		switch {
		case env.Message != "":
			msg = env.Message
		case env.Error != "":
			msg = env.Error
		}
	}
	return &APIError{StatusCode: status, Message: msg}
}
