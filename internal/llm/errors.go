package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType defines the category of API errors.
type ErrorType string

const (
	NetworkError         ErrorType = "network_error"
	TimeoutError         ErrorType = "timeout_error"
	AuthError            ErrorType = "auth_error"
	QuotaExceededError   ErrorType = "quota_exceeded_error"
	InvalidRequestError  ErrorType = "invalid_request_error"
	ModelNotFoundError   ErrorType = "model_not_found_error"
	InvalidResponseError ErrorType = "invalid_response_error"
	EmptyResponseError   ErrorType = "empty_response_error"
	ConfigError          ErrorType = "config_error"
	UnknownError         ErrorType = "unknown_error"
)

// APIError represents a classified failure of the text-generation API.
type APIError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %s)", e.Type, e.Message, e.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// NewAPIError creates a new classified API error.
func NewAPIError(errorType ErrorType, message string, cause error) *APIError {
	return &APIError{Type: errorType, Message: message, Cause: cause}
}

// ClassifyHTTPError classifies an HTTP response or transport error.
func ClassifyHTTPError(resp *http.Response, err error) *APIError {
	if err != nil {
		if strings.Contains(err.Error(), "timeout") || strings.Contains(err.Error(), "deadline") {
			return NewAPIError(TimeoutError, "Request timed out", err)
		}
		return NewAPIError(NetworkError, "Network request failed", err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return NewAPIError(AuthError, "Authentication failed - check API key", nil)
	case http.StatusForbidden:
		return NewAPIError(AuthError, "Access forbidden - insufficient permissions", nil)
	case http.StatusNotFound:
		return NewAPIError(ModelNotFoundError, "Model or endpoint not found", nil)
	case http.StatusTooManyRequests:
		return NewAPIError(QuotaExceededError, "Rate limit or quota exceeded", nil)
	case http.StatusBadRequest:
		return NewAPIError(InvalidRequestError, "Bad request - check request parameters", nil)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return NewAPIError(NetworkError, fmt.Sprintf("Server error (status: %d)", resp.StatusCode), nil)
	default:
		if resp.StatusCode >= 400 {
			return NewAPIError(UnknownError, fmt.Sprintf("HTTP error (status: %d)", resp.StatusCode), nil)
		}
	}
	return nil
}

// Classify maps an arbitrary provider error to a category by substring
// matching, so the CLI can print a targeted hint for key, permission,
// and authentication failures and the error verbatim otherwise.
func Classify(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "api_key"):
		return NewAPIError(AuthError, "Invalid or missing API key", err)
	case strings.Contains(msg, "permission") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "authentication"):
		return NewAPIError(AuthError, "Authentication or permission failure", err)
	case strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit"):
		return NewAPIError(QuotaExceededError, "API quota or rate limit exceeded", err)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return NewAPIError(TimeoutError, "Request timeout", err)
	case strings.Contains(msg, "network") || strings.Contains(msg, "connection"):
		return NewAPIError(NetworkError, "Network connectivity issue", err)
	}
	return NewAPIError(UnknownError, err.Error(), err)
}
