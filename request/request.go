// Package request builds GET request descriptions for the timetable API.
package request

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidArgument indicates a required request input is missing or unusable
var ErrInvalidArgument = errors.New("invalid argument")

// Param is a single query parameter
type Param struct {
	Name  string
	Value string
}

// Request describes an API call relative to an endpoint base URI.
// Params keep insertion order and may repeat a name.
type Request struct {
	Method string
	Path   string
	Params []Param
}

// newGet creates a GET request for path
func newGet(path string) *Request {
	return &Request{Method: http.MethodGet, Path: path}
}

// Add appends a parameter
func (r *Request) Add(name, value string) {
	r.Params = append(r.Params, Param{Name: name, Value: value})
}

// AddIfNotEmpty appends a parameter when value is not blank
func (r *Request) AddIfNotEmpty(name, value string) {
	if strings.TrimSpace(value) != "" {
		r.Add(name, value)
	}
}

// AddIfPositive appends a parameter when value is greater than zero
func (r *Request) AddIfPositive(name string, value int) {
	if value > 0 {
		r.Add(name, strconv.Itoa(value))
	}
}

// Len returns the number of query parameters
func (r *Request) Len() int {
	return len(r.Params)
}

// Get returns the first value for name
func (r *Request) Get(name string) (string, bool) {
	for _, p := range r.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Values returns all values for name in order
func (r *Request) Values(name string) []string {
	var out []string
	for _, p := range r.Params {
		if p.Name == name {
			out = append(out, p.Value)
		}
	}
	return out
}

// Encode returns the query string in parameter order
func (r *Request) Encode() string {
	var sb strings.Builder
	for i, p := range r.Params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

// URL resolves the request against an endpoint base URI
func (r *Request) URL(base *url.URL) *url.URL {
	u := base.JoinPath(r.Path)
	u.RawQuery = r.Encode()
	u.Fragment = ""
	return u
}

// String returns the method and relative target
func (r *Request) String() string {
	if len(r.Params) == 0 {
		return fmt.Sprintf("%s %s", r.Method, r.Path)
	}
	return fmt.Sprintf("%s %s?%s", r.Method, r.Path, r.Encode())
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidArgument, name)
	}
	return nil
}
