package request

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/eveoh/mytimetable-api-client/model"
)

const testOptionID = "646ADCA666D4A88402CA46C26A73803C"

func TestTimetablesRequiresType(t *testing.T) {
	for _, typ := range []string{"", "   "} {
		req, err := Timetables(TimetablesQuery{Type: typ, DataSource: "2017"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Nil(t, req)
	}
}

func TestTimetables(t *testing.T) {
	option := model.TimetableFilterOption{ID: testOptionID}

	tests := []struct {
		name     string
		query    TimetablesQuery
		expected []Param
	}{
		{
			name:     "type only",
			query:    TimetablesQuery{Type: "module"},
			expected: []Param{{"type", "module"}},
		},
		{
			name:     "type and data source",
			query:    TimetablesQuery{Type: "module", DataSource: "2017"},
			expected: []Param{{"type", "module"}, {"ds", "2017"}},
		},
		{
			name:     "type and query",
			query:    TimetablesQuery{Type: "module", Query: "test"},
			expected: []Param{{"type", "module"}, {"query", "test"}},
		},
		{
			name: "type, limit and filter",
			query: TimetablesQuery{
				Type:    "module",
				Filters: SortedFilters(map[string]model.TimetableFilterOption{"department": option}),
				Limit:   10,
			},
			expected: []Param{{"type", "module"}, {"limit", "10"}, {"departmentFilter", testOptionID}},
		},
		{
			name: "multiple filters",
			query: TimetablesQuery{
				Type: "module",
				Filters: SortedFilters(map[string]model.TimetableFilterOption{
					"module":     option,
					"department": option,
				}),
				Limit: 10,
			},
			expected: []Param{
				{"type", "module"},
				{"limit", "10"},
				{"departmentFilter", testOptionID},
				{"moduleFilter", testOptionID},
			},
		},
		{
			name:     "type and limit",
			query:    TimetablesQuery{Type: "module", Limit: 10},
			expected: []Param{{"type", "module"}, {"limit", "10"}},
		},
		{
			name:     "type and offset",
			query:    TimetablesQuery{Type: "module", Offset: 10},
			expected: []Param{{"type", "module"}, {"offset", "10"}},
		},
		{
			name:     "non-positive paging is unset",
			query:    TimetablesQuery{Type: "module", Limit: -1, Offset: 0},
			expected: []Param{{"type", "module"}},
		},
		{
			name: "empty filter entries are skipped",
			query: TimetablesQuery{
				Type: "module",
				Filters: []Filter{
					{Attribute: "", Option: option},
					{Attribute: "faculty"},
				},
			},
			expected: []Param{{"type", "module"}},
		},
		{
			name: "everything",
			query: TimetablesQuery{
				Type:       "staff",
				DataSource: "2017",
				Query:      "smith",
				Filters:    []Filter{{Attribute: "department", Option: option}},
				Limit:      25,
				Offset:     50,
			},
			expected: []Param{
				{"type", "staff"},
				{"ds", "2017"},
				{"query", "smith"},
				{"limit", "25"},
				{"offset", "50"},
				{"departmentFilter", testOptionID},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Timetables(tt.query)
			require.NoError(t, err)

			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, PathTimetables, req.Path)
			assert.Equal(t, len(tt.expected), req.Len())
			assert.Equal(t, tt.expected, req.Params)
		})
	}
}

func TestSortedFilters(t *testing.T) {
	filters := SortedFilters(map[string]model.TimetableFilterOption{
		"zone":       {ID: "3"},
		"department": {ID: "1"},
		"faculty":    {ID: "2"},
	})

	require.Len(t, filters, 3)
	assert.Equal(t, "department", filters[0].Attribute)
	assert.Equal(t, "faculty", filters[1].Attribute)
	assert.Equal(t, "zoneFilter", filters[2].ParamName())

	assert.Empty(t, SortedFilters(nil))
}

func TestRequestURL(t *testing.T) {
	base, err := url.Parse("https://timetable.example.ac.uk/api/")
	require.NoError(t, err)

	req, err := Timetables(TimetablesQuery{Type: "module", Query: "linear algebra", Offset: 10})
	require.NoError(t, err)

	u := req.URL(base)
	assert.Equal(t, "/api/v0/timetables", u.Path)
	assert.Equal(t, "type=module&query=linear+algebra&offset=10", u.RawQuery)
	assert.Equal(t, "GET v0/timetables?type=module&query=linear+algebra&offset=10", req.String())

	// base without trailing slash resolves the same way
	base, err = url.Parse("https://timetable.example.ac.uk/api")
	require.NoError(t, err)
	assert.Equal(t, "/api/v0/timetables", req.URL(base).Path)
}

func TestTimetable(t *testing.T) {
	for _, id := range []string{"", "  ", ".", ".."} {
		_, err := Timetable(id)
		assert.ErrorIs(t, err, ErrInvalidArgument, "id %q", id)
	}

	base, _ := url.Parse("https://timetable.example.ac.uk/api/")
	dots, err := Timetable("...")
	require.NoError(t, err)
	assert.Equal(t, "/api/v0/timetables/...", dots.URL(base).Path)

	req, err := Timetable("a/b c")
	require.NoError(t, err)
	assert.Equal(t, 0, req.Len())

	u := req.URL(base)
	assert.Equal(t, "/api/v0/timetables/a/b c", u.Path)
	assert.Equal(t, "/api/v0/timetables/a%2Fb%20c", u.EscapedPath())
}

func TestUpcomingEvents(t *testing.T) {
	_, err := UpcomingEvents(UpcomingEventsQuery{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	req, err := UpcomingEvents(UpcomingEventsQuery{
		User:           `CAMPUS\jdoe`,
		Locale:         language.Dutch,
		Limit:          5,
		TimetableTypes: []string{"module", "", "staff"},
	})
	require.NoError(t, err)

	assert.Equal(t, PathUpcomingEvents, req.Path)
	assert.Equal(t, 5, req.Len())
	user, ok := req.Get(ParamUser)
	assert.True(t, ok)
	assert.Equal(t, `CAMPUS\jdoe`, user)
	locale, _ := req.Get(ParamLocale)
	assert.Equal(t, "nl", locale)
	assert.Equal(t, []string{"module", "staff"}, req.Values(ParamTimetableType))

	req, err = UpcomingEvents(UpcomingEventsQuery{User: "jdoe"})
	require.NoError(t, err)
	assert.Equal(t, []Param{{"user", "jdoe"}}, req.Params)
}

func TestFilterTypes(t *testing.T) {
	_, err := FilterTypes("")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	req, err := FilterTypes("module")
	require.NoError(t, err)
	assert.Equal(t, PathFilterAttributes, req.Path)
	assert.Equal(t, []Param{{"type", "module"}}, req.Params)
}
