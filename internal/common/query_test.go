package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalize(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

func TestBuildUpdate(t *testing.T) {
	allowed := []string{"title", "description"}

	testCases := []struct {
		name      string
		fields    []Field
		wantQuery string
		wantArgs  []any
		wantErr   bool
	}{
		{
			name:      "single field",
			fields:    []Field{{Name: "title", Value: "New"}},
			wantQuery: "UPDATE blogs SET title = $1, updated_at = NOW() WHERE id = $2 AND (title::text IS DISTINCT FROM $3)",
			wantArgs:  []any{"New", 7, "New"},
		},
		{
			name:      "two fields",
			fields:    []Field{{Name: "title", Value: "New"}, {Name: "description", Value: "Body"}},
			wantQuery: "UPDATE blogs SET title = $1, description = $2, updated_at = NOW() WHERE id = $3 AND (title::text IS DISTINCT FROM $4 OR description::text IS DISTINCT FROM $5)",
			wantArgs:  []any{"New", "Body", 7, "New", "Body"},
		},
		{
			name:    "field outside allow-list",
			fields:  []Field{{Name: "user_id", Value: 8}},
			wantErr: true,
		},
		{
			name:    "injected field name",
			fields:  []Field{{Name: "title = 'x' --", Value: "y"}},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, args, err := BuildUpdate("blogs", allowed, tc.fields, 7)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantQuery, normalize(query))
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestBuildUpdate_ValuesNeverInQueryText(t *testing.T) {
	value := "'; DROP TABLE blogs; --"

	query, args, err := BuildUpdate("blogs", []string{"title"}, []Field{{Name: "title", Value: value}}, 1)
	require.NoError(t, err)

	assert.NotContains(t, query, value)
	assert.Contains(t, args, value)
}

func TestBuildUpdate_NoFields(t *testing.T) {
	_, _, err := BuildUpdate("blogs", []string{"title"}, nil, 1)
	assert.ErrorIs(t, err, ErrNoFields)
}
