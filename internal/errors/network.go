//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import "fmt"

// NetworkError represents a network-related error, distinguishing transient
// failures (eligible for retry) from terminal ones.
type NetworkError struct {
	Base Error `json:"error"`

	// URL is the URL that failed.
	URL string `json:"url,omitempty"`

	// StatusCode is the HTTP status code (if applicable).
	StatusCode int `json:"statusCode,omitempty"`

	// Transient reports whether the caller should retry this request.
	Transient bool `json:"transient"`
}

// NewTransientNetworkError creates a NetworkError eligible for retry.
func NewTransientNetworkError(url string, cause error) *NetworkError {
	return &NetworkError{
		Base: Error{
			Category: CategoryNetwork,
			Code:     CodeNetworkTransient,
			Message:  "network request failed",
			Cause:    cause,
		},
		URL:       url,
		Transient: true,
	}
}

// NewTerminalNetworkError creates a NetworkError for a non-retryable HTTP failure.
func NewTerminalNetworkError(url string, statusCode int) *NetworkError {
	return &NetworkError{
		Base: Error{
			Category: CategoryNetwork,
			Code:     CodeNetworkTerminal,
			Message:  fmt.Sprintf("HTTP %d", statusCode),
		},
		URL:        url,
		StatusCode: statusCode,
	}
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return e.Base.Error()
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Base.Cause
}

// Is reports whether the target error matches this error by code.
func (e *NetworkError) Is(target error) bool {
	t, ok := target.(*NetworkError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
