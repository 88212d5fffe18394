package mapper

import (
	"errors"
	"fmt"
)

// ErrMissingRoot indicates the response body lacks the expected root property
var ErrMissingRoot = errors.New("missing root property")

// StreamMappingError indicates a response body could not be mapped onto the target type
type StreamMappingError struct {
	Root string
	Err  error
}

// Error implements the error interface
func (e *StreamMappingError) Error() string {
	return fmt.Sprintf("failed to map %q response: %v", e.Root, e.Err)
}

func (e *StreamMappingError) Unwrap() error {
	return e.Err
}
