package mapper

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eveoh/mytimetable-api-client/model"
)

func TestListTimetables(t *testing.T) {
	body := `{"timetable":[
		{"value":"t1","hostKey":"MOD-1","description":"Algebra"},
		{"value":"t2","description":"Calculus"}
	]}`

	timetables, err := List[model.Timetable](strings.NewReader(body), RootTimetable)
	require.NoError(t, err)
	require.Len(t, timetables, 2)

	assert.Equal(t, model.Timetable{ID: "t1", Key: "MOD-1", Description: "Algebra"}, timetables[0])
	assert.Equal(t, "t2", timetables[1].ID)
	assert.Empty(t, timetables[1].Key)
}

func TestListEmpty(t *testing.T) {
	for _, body := range []string{`{"timetable":[]}`, `{"timetable":null}`} {
		t.Run(body, func(t *testing.T) {
			timetables, err := List[model.Timetable](strings.NewReader(body), RootTimetable)
			require.NoError(t, err)
			assert.NotNil(t, timetables)
			assert.Empty(t, timetables)
		})
	}
}

func TestListFilterTypes(t *testing.T) {
	body := `{"filterattribute":[{"id":"department","description":"Department","options":[{"id":"X","description":"Maths"}]}]}`

	types, err := List[model.TimetableFilterType](strings.NewReader(body), RootFilterAttribute)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "department", types[0].ID)
	assert.Equal(t, []model.TimetableFilterOption{{ID: "X", Description: "Maths"}}, types[0].Options)
}

func TestOne(t *testing.T) {
	tt, err := One[model.Timetable](strings.NewReader(`{"timetable":{"value":"t1","description":"Algebra"}}`), RootTimetable)
	require.NoError(t, err)
	assert.Equal(t, "t1", tt.ID)
}

func TestMap(t *testing.T) {
	body := `{"filterattribute":[{"id":"department"},{"id":"faculty"},{"id":"department","description":"later"}]}`

	index, err := Map(strings.NewReader(body), RootFilterAttribute, func(ft model.TimetableFilterType) string { return ft.ID })
	require.NoError(t, err)
	assert.Len(t, index, 2)
	assert.Equal(t, "later", index["department"].Description)
	assert.Contains(t, index, "faculty")
}

func TestMappingErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		root string
	}{
		{name: "malformed json", body: `{"timetable":[`, root: RootTimetable},
		{name: "not an object", body: `[]`, root: RootTimetable},
		{name: "wrong root", body: `{"event":[]}`, root: RootTimetable},
		{name: "wrong shape", body: `{"timetable":{"value":"x"}}`, root: RootTimetable},
		{name: "empty body", body: ``, root: RootTimetable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := List[model.Timetable](strings.NewReader(tt.body), tt.root)
			require.Error(t, err)

			var mappingErr *StreamMappingError
			require.True(t, errors.As(err, &mappingErr))
			assert.Equal(t, tt.root, mappingErr.Root)
			assert.NotNil(t, mappingErr.Unwrap())
		})
	}
}

func TestMissingRootIsClassified(t *testing.T) {
	_, err := One[model.Timetable](strings.NewReader(`{}`), RootTimetable)
	assert.ErrorIs(t, err, ErrMissingRoot)
}

func TestMappingErrorKeepsCause(t *testing.T) {
	_, err := List[model.Event](strings.NewReader(`{"event":[{"startDate":"someday"}]}`), RootEvent)
	require.Error(t, err)

	var mappingErr *StreamMappingError
	require.ErrorAs(t, err, &mappingErr)
	assert.Contains(t, err.Error(), `"event"`)
	assert.Contains(t, err.Error(), "invalid timestamp")
}
