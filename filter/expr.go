package filter

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"

	"github.com/eveoh/mytimetable-api-client/model"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.custom, funcs)
	}
}

// WithClock replaces the time source of the date helpers
func WithClock(now func() time.Time) ExprCompilerOption {
	return func(c *exprCompiler) {
		if now != nil {
			c.now = now
		}
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		custom: make(map[string]any),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.helpers = helperFunctions(c.now)
	maps.Copy(c.helpers, c.custom)

	return c
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	custom  map[string]any
	helpers map[string]any
	now     func() time.Time
	cache   *lruCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Column:     -1,
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.get(expression); ok {
			return cached, nil
		}
	}

	// Item fields are only known at run time
	program, err := expr.Compile(expression,
		expr.Env(c.helpers),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, compilationError(expression, err)
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helpers,
	}

	if c.cache != nil {
		c.cache.put(expression, filter)
	}

	return filter, nil
}

func compilationError(expression string, err error) *CompilationError {
	ce := &CompilationError{
		Expression: expression,
		Reason:     "failed to compile expression",
		Column:     -1,
		Err:        err,
	}

	var fileErr *file.Error
	if errors.As(err, &fileErr) {
		ce.Reason = fileErr.Message
		ce.Column = fileErr.Column
	}

	return ce
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.len()
	}
	return 0
}

// EvaluateEvent runs the filter against an event
func (f *exprFilter) EvaluateEvent(event model.Event) (bool, error) {
	return f.run(eventEnvironment(f.helpers, event), "event "+event.ID)
}

// MatchEvent reports whether the event matches
func (f *exprFilter) MatchEvent(event model.Event) bool {
	ok, err := f.EvaluateEvent(event)
	return err == nil && ok
}

// EvaluateTimetable runs the filter against a timetable
func (f *exprFilter) EvaluateTimetable(timetable model.Timetable) (bool, error) {
	return f.run(timetableEnvironment(f.helpers, timetable), "timetable "+timetable.ID)
}

// MatchTimetable reports whether the timetable matches
func (f *exprFilter) MatchTimetable(timetable model.Timetable) bool {
	ok, err := f.EvaluateTimetable(timetable)
	return err == nil && ok
}

func (f *exprFilter) run(env map[string]any, item string) (bool, error) {
	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, Item: item, Err: err}
	}

	// Guaranteed by AsBool at compile time
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// helperFunctions creates the helpers available to every expression
func helperFunctions(now func() time.Time) map[string]any {
	funcs := make(map[string]any, 16)

	// Date helpers
	funcs["now"] = now
	funcs["daysAgo"] = func(days int) time.Time {
		return now().AddDate(0, 0, -days)
	}
	funcs["daysAhead"] = func(days int) time.Time {
		return now().AddDate(0, 0, days)
	}
	funcs["hoursUntil"] = func(t time.Time) float64 {
		return t.Sub(now()).Hours()
	}
	funcs["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		return t
	}
	// String helpers
	funcs["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	funcs["lower"] = strings.ToLower
	funcs["upper"] = strings.ToUpper

	return funcs
}

// eventEnvironment exposes an event and its helpers to an expression
func eventEnvironment(helpers map[string]any, event model.Event) map[string]any {
	env := make(map[string]any, len(helpers)+12)
	maps.Copy(env, helpers)

	locations := event.LocationDescriptions()

	env["Event"] = event
	env["ID"] = event.ID
	env["Activity"] = event.ActivityDescription
	env["ActivityType"] = event.ActivityType
	env["Notes"] = event.Notes
	env["Start"] = event.StartDate.Time
	env["End"] = event.EndDate.Time
	env["Duration"] = event.EndDate.Sub(event.StartDate.Time).Minutes()
	env["Locations"] = locations
	env["Staff"] = event.StaffMembers
	env["Key"] = event.TimetableKey

	env["at"] = newFoldMatcher(locations)
	env["taughtBy"] = newFoldMatcher(event.StaffMembers)

	return env
}

// timetableEnvironment exposes a timetable and its helpers to an expression
func timetableEnvironment(helpers map[string]any, timetable model.Timetable) map[string]any {
	env := make(map[string]any, len(helpers)+4)
	maps.Copy(env, helpers)

	env["Timetable"] = timetable
	env["ID"] = timetable.ID
	env["Key"] = timetable.Key
	env["Description"] = timetable.Description

	return env
}

// newFoldMatcher returns a case-insensitive substring test over values
func newFoldMatcher(values []string) func(string) bool {
	lower := make([]string, len(values))
	for i, v := range values {
		lower[i] = strings.ToLower(v)
	}
	return func(want string) bool {
		want = strings.ToLower(want)
		return slices.ContainsFunc(lower, func(v string) bool {
			return strings.Contains(v, want)
		})
	}
}
