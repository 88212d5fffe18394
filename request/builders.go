package request

import (
	"fmt"
	"net/url"
	"sort"

	"golang.org/x/text/language"

	"github.com/eveoh/mytimetable-api-client/model"
)

// API paths relative to an endpoint base URI
const (
	PathTimetables       = "v0/timetables"
	PathUpcomingEvents   = "v0/events/upcoming"
	PathFilterAttributes = "v0/filterattributes"
)

// Query parameter names
const (
	ParamType          = "type"
	ParamDataSource    = "ds"
	ParamQuery         = "query"
	ParamLimit         = "limit"
	ParamOffset        = "offset"
	ParamUser          = "user"
	ParamLocale        = "locale"
	ParamTimetableType = "timetableType"

	filterSuffix = "Filter"
)

// Filter selects one option of a filter attribute
type Filter struct {
	Attribute string
	Option    model.TimetableFilterOption
}

// ParamName returns the query parameter name for the filter
func (f Filter) ParamName() string {
	return f.Attribute + filterSuffix
}

// SortedFilters turns an attribute to option map into filters ordered by attribute
func SortedFilters(options map[string]model.TimetableFilterOption) []Filter {
	filters := make([]Filter, 0, len(options))
	for attr, opt := range options {
		filters = append(filters, Filter{Attribute: attr, Option: opt})
	}
	sort.Slice(filters, func(i, j int) bool {
		return filters[i].Attribute < filters[j].Attribute
	})
	return filters
}

// TimetablesQuery holds the inputs of a timetable search
type TimetablesQuery struct {
	// Type is the timetable type, e.g. "module". Required.
	Type string
	// DataSource selects the academic year or term
	DataSource string
	// Query is a free-text search
	Query   string
	Filters []Filter
	// Limit and Offset are ignored unless greater than zero
	Limit  int
	Offset int
}

// Timetables builds a timetable search request
func Timetables(q TimetablesQuery) (*Request, error) {
	if err := required("timetable type", q.Type); err != nil {
		return nil, err
	}

	req := newGet(PathTimetables)
	req.Add(ParamType, q.Type)
	req.AddIfNotEmpty(ParamDataSource, q.DataSource)
	req.AddIfNotEmpty(ParamQuery, q.Query)
	req.AddIfPositive(ParamLimit, q.Limit)
	req.AddIfPositive(ParamOffset, q.Offset)

	for _, f := range q.Filters {
		if f.Attribute == "" {
			continue
		}
		req.AddIfNotEmpty(f.ParamName(), f.Option.ID)
	}

	return req, nil
}

// Timetable builds a request for a single timetable
func Timetable(id string) (*Request, error) {
	if err := required("timetable id", id); err != nil {
		return nil, err
	}
	// Dot segments survive escaping and would be cleaned out of the path
	if id == "." || id == ".." {
		return nil, fmt.Errorf("%w: invalid timetable id %q", ErrInvalidArgument, id)
	}
	return newGet(PathTimetables + "/" + url.PathEscape(id)), nil
}

// UpcomingEventsQuery holds the inputs of an upcoming events request
type UpcomingEventsQuery struct {
	// User is the decorated username. Required.
	User string
	// Locale is omitted when undetermined
	Locale language.Tag
	Limit  int
	// TimetableTypes restricts events to these timetable types
	TimetableTypes []string
}

// UpcomingEvents builds a request for the upcoming events of a user
func UpcomingEvents(q UpcomingEventsQuery) (*Request, error) {
	if err := required("username", q.User); err != nil {
		return nil, err
	}

	req := newGet(PathUpcomingEvents)
	req.Add(ParamUser, q.User)
	if q.Locale != language.Und {
		req.Add(ParamLocale, q.Locale.String())
	}
	req.AddIfPositive(ParamLimit, q.Limit)
	for _, t := range q.TimetableTypes {
		req.AddIfNotEmpty(ParamTimetableType, t)
	}

	return req, nil
}

// FilterTypes builds a request for the filter attributes of a timetable type
func FilterTypes(timetableType string) (*Request, error) {
	if err := required("timetable type", timetableType); err != nil {
		return nil, err
	}

	req := newGet(PathFilterAttributes)
	req.Add(ParamType, timetableType)
	return req, nil
}
