package mytimetable

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/eveoh/mytimetable-api-client/mapper"
	"github.com/eveoh/mytimetable-api-client/request"
)

// Common errors
var (
	// ErrInvalidArgument indicates a missing or unusable request input
	ErrInvalidArgument = request.ErrInvalidArgument
	// ErrNoEndpoints indicates the configuration holds no usable endpoint URI
	ErrNoEndpoints = errors.New("no usable API endpoint configured")
	// ErrClosed is returned by calls made after Close
	ErrClosed = errors.New("client is closed")
	// ErrUnsupportedVersion indicates the configured server version lacks the operation
	ErrUnsupportedVersion = errors.New("operation not supported by server version")
)

// StreamMappingError indicates a response body could not be mapped
type StreamMappingError = mapper.StreamMappingError

// StatusError represents a non-2xx API response
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("mytimetable API error: status %d: %s", e.StatusCode, e.URL)
}

// IsNotFound checks if the error indicates a not found response
func (e *StatusError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *StatusError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// TransportError indicates no endpoint could be reached
type TransportError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
