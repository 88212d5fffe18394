package filter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/eveoh/mytimetable-api-client/model"
)

var fixedNow = time.Date(2017, 9, 4, 8, 0, 0, 0, time.UTC)

func testEvent() model.Event {
	return model.Event{
		ID:                  "e1",
		StartDate:           model.NewTime(fixedNow.Add(2 * time.Hour)),
		EndDate:             model.NewTime(fixedNow.Add(4 * time.Hour)),
		ActivityDescription: "Linear Algebra",
		ActivityType:        "Lecture",
		Locations: []model.Location{
			{Description: "Main Building A1.01"},
			{Description: " "},
		},
		StaffMembers: []string{"Dr. J. Smith"},
		TimetableKey: "MATH-101",
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `ActivityType == "Lecture"`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `contains(Activity, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "not boolean",
			expression: `1 + 2`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `at("main") and hoursUntil(Start) < 24 and len(Staff) > 0`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewExprCompiler().Compile(tt.expression)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				var ce *CompilationError
				if !errors.As(err, &ce) {
					t.Errorf("expected CompilationError, got %T", err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Expression() != tt.expression {
				t.Errorf("Expression() = %q, want %q", f.Expression(), tt.expression)
			}
		})
	}
}

func TestCompilationErrorColumn(t *testing.T) {
	_, err := NewExprCompiler().Compile(`Activity == `)
	var ce *CompilationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CompilationError, got %v", err)
	}
	if ce.Column < 0 {
		t.Errorf("expected a known column, got %d", ce.Column)
	}
	if ce.Unwrap() == nil {
		t.Errorf("expected the expr error to be kept")
	}
}

func TestMatchEvent(t *testing.T) {
	compiler := NewExprCompiler(WithClock(func() time.Time { return fixedNow }))
	event := testEvent()

	tests := []struct {
		name       string
		expression string
		expected   bool
	}{
		{"activity type", `ActivityType == "Lecture"`, true},
		{"contains is case-insensitive", `contains(Activity, "ALGEBRA")`, true},
		{"location", `at("a1.01")`, true},
		{"unknown location", `at("Library")`, false},
		{"blank locations are dropped", `len(Locations) == 1`, true},
		{"staff", `taughtBy("smith")`, true},
		{"starts within hours", `hoursUntil(Start) <= 2`, true},
		{"starts later", `hoursUntil(Start) > 3`, false},
		{"duration in minutes", `Duration == 120`, true},
		{"key prefix", `startsWith(Key, "math")`, true},
		{"after a date", `Start > parseDate("2017-09-01")`, true},
		{"before a window", `Start < daysAhead(1)`, true},
		{"undefined variable", `Description == "x"`, false},
		{"notes empty", `Notes == ""`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			if err != nil {
				t.Fatalf("compile %q: %v", tt.expression, err)
			}
			if got := f.MatchEvent(event); got != tt.expected {
				t.Errorf("MatchEvent(%q) = %v, want %v", tt.expression, got, tt.expected)
			}
		})
	}
}

func TestMatchTimetable(t *testing.T) {
	timetable := model.Timetable{ID: "t1", Key: "MATH-101", Description: "Linear Algebra resit"}

	tests := []struct {
		expression string
		expected   bool
	}{
		{`Key == "MATH-101"`, true},
		{`contains(Description, "resit")`, true},
		{`endsWith(Description, "exam")`, false},
		{`ID in ["t1", "t2"]`, true},
		{`Activity == "Linear Algebra"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if got := f.MatchTimetable(timetable); got != tt.expected {
				t.Errorf("MatchTimetable = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEvaluationError(t *testing.T) {
	f, err := NewExprCompiler().Compile(`Staff[3] == "nobody"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	event := testEvent()
	ok, err := f.EvaluateEvent(event)
	if err == nil {
		t.Fatalf("expected evaluation error")
	}
	if ok {
		t.Errorf("failed evaluation must not match")
	}

	var ee *EvaluationError
	if !errors.As(err, &ee) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if ee.Item != "event e1" {
		t.Errorf("Item = %q", ee.Item)
	}
	if f.MatchEvent(event) {
		t.Errorf("MatchEvent should be false when evaluation fails")
	}
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isMorning": func(t time.Time) bool { return t.Hour() < 12 },
	}))

	f, err := compiler.Compile(`isMorning(Start)`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !f.MatchEvent(testEvent()) {
		t.Errorf("expected the 10:00 event to match")
	}
}

func TestCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`ID == "a"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	again, _ := compiler.Compile(`  ID == "a"  `)
	if first != again {
		t.Errorf("expected cached filter to be returned")
	}

	_, _ = compiler.Compile(`ID == "b"`)
	_, _ = compiler.Compile(`ID == "c"`)
	if compiler.Size() != 2 {
		t.Errorf("Size() = %d, want 2", compiler.Size())
	}

	// "a" was least recently used and is gone
	evicted, _ := compiler.Compile(`ID == "a"`)
	if evicted == first {
		t.Errorf("expected a fresh compilation after eviction")
	}

	compiler.Clear()
	if compiler.Size() != 0 {
		t.Errorf("Size() after Clear = %d", compiler.Size())
	}

	if NewExprCompiler().Size() != 0 {
		t.Errorf("uncached compiler should report zero size")
	}
}

func TestEventsAndTimetables(t *testing.T) {
	events := []model.Event{
		{ID: "1", ActivityType: "Lecture"},
		{ID: "2", ActivityType: "Workshop"},
		{ID: "3", ActivityType: "Lecture"},
	}

	f, err := Compile(`ActivityType == "Lecture"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	got := Events(f, events)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("Events = %v", got)
	}
	if len(Events(nil, events)) != 3 {
		t.Errorf("nil filter should keep every event")
	}

	timetables := []model.Timetable{{ID: "a", Key: "X"}, {ID: "b", Key: "Y"}}
	tf, err := Compile(`Key == "Y"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got := Timetables(tf, timetables); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("Timetables = %v", got)
	}
	if got := Timetables(tf, nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %v", got)
	}
}
