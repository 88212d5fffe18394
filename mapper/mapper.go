// Package mapper decodes root-wrapped JSON response bodies.
//
// The API nests every payload one level under a resource specific root property:
//
//	{"timetable": [{"value": "...", "description": "..."}]}
//
// One, List and Map strip that wrapper and decode the payload into a single value,
// a slice, or a map keyed by identifier.
package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Root property names used by the API
const (
	RootTimetable       = "timetable"
	RootEvent           = "event"
	RootFilterAttribute = "filterattribute"
)

// unwrap reads the envelope and returns the raw payload under root
func unwrap(r io.Reader, root string) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, &StreamMappingError{Root: root, Err: err}
	}

	payload, ok := envelope[root]
	if !ok {
		return nil, &StreamMappingError{Root: root, Err: fmt.Errorf("%w: %q", ErrMissingRoot, root)}
	}

	return payload, nil
}

// One decodes a single value wrapped under root
func One[T any](r io.Reader, root string) (T, error) {
	var out T

	payload, err := unwrap(r, root)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(payload, &out); err != nil {
		return out, &StreamMappingError{Root: root, Err: err}
	}

	return out, nil
}

// List decodes an array wrapped under root. A null or empty array yields an empty, non-nil slice.
func List[T any](r io.Reader, root string) ([]T, error) {
	payload, err := unwrap(r, root)
	if err != nil {
		return nil, err
	}

	out := []T{}
	if bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return out, nil
	}

	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, &StreamMappingError{Root: root, Err: err}
	}
	if out == nil {
		out = []T{}
	}

	return out, nil
}

// Map decodes an array wrapped under root into a map keyed by key(item).
// Later items replace earlier ones with the same key.
func Map[T any](r io.Reader, root string, key func(T) string) (map[string]T, error) {
	items, err := List[T](r, root)
	if err != nil {
		return nil, err
	}

	out := make(map[string]T, len(items))
	for _, item := range items {
		out[key(item)] = item
	}

	return out, nil
}
