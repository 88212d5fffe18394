// Package filter selects events and timetables with expr-lang expressions.
//
// Event expressions see Activity, ActivityType, Notes, Start, End, Duration (minutes),
// Locations, Staff and Key, plus at(location) and taughtBy(name).
// Timetable expressions see ID, Key and Description.
// Both have the date helpers now, daysAgo, daysAhead, hoursUntil and parseDate,
// and the case-insensitive string helpers contains, startsWith and endsWith.
//
//	Activity contains "Lecture" and hoursUntil(Start) < 24
//	startsWith(Key, "MATH") and not contains(Description, "resit")
package filter

import (
	"github.com/eveoh/mytimetable-api-client/model"
)

var defaultCompiler = NewExprCompiler(WithCache(64))

// Compile compiles an expression with the shared caching compiler
func Compile(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Events returns the events matching f, in order. A nil filter matches everything.
func Events(f CompiledFilter, events []model.Event) []model.Event {
	if f == nil {
		return events
	}
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if f.MatchEvent(e) {
			out = append(out, e)
		}
	}
	return out
}

// Timetables returns the timetables matching f, in order. A nil filter matches everything.
func Timetables(f CompiledFilter, timetables []model.Timetable) []model.Timetable {
	if f == nil {
		return timetables
	}
	out := make([]model.Timetable, 0, len(timetables))
	for _, t := range timetables {
		if f.MatchTimetable(t) {
			out = append(out, t)
		}
	}
	return out
}
