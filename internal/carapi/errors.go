package carapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the /car API
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string // Field-level errors, keyed by wire field name
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
}

// errorBody is the JSON error shape the API returns
type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// decodeError builds an APIError from a response body, JSON or plain text
func decodeError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && (parsed.Message != "" || len(parsed.Errors) > 0) {
		apiErr.Message = parsed.Message
		apiErr.Fields = parsed.Errors
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}

// IsNotFound reports whether err is or wraps a 404 APIError
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsValidation reports whether err is or wraps a 400 or 422 APIError
func IsValidation(err error) bool {
	return hasStatus(err, http.StatusBadRequest) || hasStatus(err, http.StatusUnprocessableEntity)
}

// FieldErrors returns the field-level errors carried by err, if any
func FieldErrors(err error) map[string]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
