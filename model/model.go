package model

import (
	"fmt"
	"strings"
)

// Timetable is a named collection of scheduled activities
type Timetable struct {
	// ID uniquely identifies the timetable
	ID string `json:"value"`
	// Key is the identifier in the external scheduling system
	Key         string `json:"hostKey,omitempty"`
	Description string `json:"description"`
}

// String returns a debug representation of the timetable
func (t Timetable) String() string {
	return fmt.Sprintf("Timetable{id=%s, key=%s, description=%s}", t.ID, t.Key, t.Description)
}

// Location is a room or site where an event takes place
type Location struct {
	ID          string `json:"value,omitempty"`
	Key         string `json:"hostKey,omitempty"`
	Description string `json:"description"`
}

// Event is a scheduled activity belonging to a timetable
type Event struct {
	ID                  string     `json:"id"`
	StartDate           Time       `json:"startDate"`
	EndDate             Time       `json:"endDate"`
	ActivityDescription string     `json:"activityDescription"`
	ActivityType        string     `json:"activityTypeDescription,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	Locations           []Location `json:"locations,omitempty"`
	StaffMembers        []string   `json:"staffMembers,omitempty"`
	// TimetableKey is the hostKey of the timetable the event belongs to
	TimetableKey string `json:"hostKey,omitempty"`
}

// LocationDescriptions returns the non-empty location descriptions of the event
func (e *Event) LocationDescriptions() []string {
	var out []string
	for _, l := range e.Locations {
		if d := strings.TrimSpace(l.Description); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// String returns a debug representation of the event
func (e Event) String() string {
	return fmt.Sprintf("Event{id=%s, start=%s, end=%s, activity=%s}",
		e.ID, e.StartDate, e.EndDate, e.ActivityDescription)
}

// TimetableFilterType is a filter attribute such as a department
type TimetableFilterType struct {
	// ID is the attribute key; a query parameter <ID>Filter selects an option
	ID          string                  `json:"id"`
	Description string                  `json:"description"`
	Options     []TimetableFilterOption `json:"options,omitempty"`
}

// Option returns the option with the given id
func (t *TimetableFilterType) Option(id string) (TimetableFilterOption, bool) {
	for _, o := range t.Options {
		if o.ID == id {
			return o, true
		}
	}
	return TimetableFilterOption{}, false
}

// TimetableFilterOption is a single value of a filter attribute
type TimetableFilterOption struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}
