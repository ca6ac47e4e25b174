package shared_test

import (
	"testing"
	"time"
	"vista/shared"
	"vista/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestConvertStringToBool(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: &yes},
		{input: "1", expected: &yes},
		{input: "T", expected: &yes},
		{input: "false", expected: &no},
		{input: "0", expected: &no},
		{input: "yes", expected: nil},
		{input: "unread", expected: nil},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no rows", total: 0, limit: 10, expected: 1},
		{name: "exact fit", total: 20, limit: 10, expected: 2},
		{name: "partial last page", total: 21, limit: 10, expected: 3},
		{name: "fewer rows than limit", total: 3, limit: 10, expected: 1},
		{name: "zero limit", total: 15, limit: 0, expected: 1},
		{name: "negative limit", total: 15, limit: -5, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type roomPatch struct {
		Status   string `db:"status"`
		Notes    string `db:"notes"`
		Floor    *int   `db:"floor"`
		Untagged string
		Skipped  string `db:"-"`
	}

	ground := 0

	tests := []struct {
		name     string
		data     roomPatch
		expected map[string]any
	}{
		{
			name:     "only non-zero tagged fields",
			data:     roomPatch{Status: "Dirty", Untagged: "x", Skipped: "y"},
			expected: map[string]any{"status": "Dirty"},
		},
		{
			name:     "pointer to zero value is kept and dereferenced",
			data:     roomPatch{Notes: "lobby", Floor: &ground},
			expected: map[string]any{"notes": "lobby", "floor": 0},
		},
		{
			name:     "empty patch only stamps metadata",
			data:     roomPatch{},
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data, "manager-1")

			assert.Equal(t, "manager-1", result[constant.FieldModifiedBy])
			assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])

			delete(result, constant.FieldModifiedAt)
			delete(result, constant.FieldModifiedBy)

			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("room-1", "id", "rooms")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "room-1"}, args)
}

func TestSearchFilter(t *testing.T) {
	group := shared.SearchFilter("ada", "guests", "name", "email")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(LOWER(guests.name) LIKE LOWER(:search_name) OR LOWER(guests.email) LIKE LOWER(:search_email))", where)
	assert.Equal(t, map[string]any{"search_name": "%ada%", "search_email": "%ada%"}, args)
}

func TestFilterIn(t *testing.T) {
	filter := shared.FilterIn("id", "profiles", []string{"p1", "p2"})

	where, args := filter.GetWhereClause()

	assert.Equal(t, "profiles.id IN (:id_0, :id_1)", where)
	assert.Equal(t, map[string]any{"id_0": "p1", "id_1": "p2"}, args)
}
