package mytimetable

import (
	"context"
	"net/http"

	"golang.org/x/text/language"

	"github.com/eveoh/mytimetable-api-client/model"
	"github.com/eveoh/mytimetable-api-client/request"
)

// API defines the operations of the timetable API
type API interface {
	// GetUpcomingEvents returns the upcoming events of a user in the default locale
	GetUpcomingEvents(ctx context.Context, username string) ([]model.Event, error)

	// GetUpcomingEventsWithLocale returns the upcoming events of a user in the given locale.
	// The server falls back to its default locale when the requested one is unavailable.
	GetUpcomingEventsWithLocale(ctx context.Context, username string, locale language.Tag) ([]model.Event, error)

	// GetTimetables searches timetables of a type
	GetTimetables(ctx context.Context, query request.TimetablesQuery) ([]model.Timetable, error)

	// GetTimetable retrieves a single timetable by id
	GetTimetable(ctx context.Context, id string) (model.Timetable, error)

	// GetTimetableFilterTypes lists the filter attributes of a timetable type
	GetTimetableFilterTypes(ctx context.Context, timetableType string) ([]model.TimetableFilterType, error)

	// Close releases pooled connections
	Close() error
}

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ API = (*Client)(nil)
