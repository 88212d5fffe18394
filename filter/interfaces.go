package filter

import (
	"github.com/eveoh/mytimetable-api-client/model"
)

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	// MatchEvent checks if an event matches. Evaluation failures do not match.
	MatchEvent(event model.Event) bool

	// MatchTimetable checks if a timetable matches. Evaluation failures do not match.
	MatchTimetable(timetable model.Timetable) bool

	// EvaluateEvent is MatchEvent with the evaluation error exposed
	EvaluateEvent(event model.Event) (bool, error)

	// EvaluateTimetable is MatchTimetable with the evaluation error exposed
	EvaluateTimetable(timetable model.Timetable) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}
