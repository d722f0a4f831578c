package common

import (
	"fmt"
	"slices"
	"strings"
)

// Field is a single column assignment of a partial update.
type Field struct {
	Name  string
	Value any
}

// BuildUpdate returns a partial UPDATE statement for the row with the given id. Only field names
// listed in allowed are accepted and every value is bound as a parameter. The row only matches when
// at least one value differs from what is stored, so an update with identical values affects zero rows.
// Values are compared as text, so a case-only change to a citext column still counts.
func BuildUpdate(table string, allowed []string, fields []Field, id int) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, ErrNoFields
	}

	set := make([]string, 0, len(fields))
	changed := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields))

	for i, f := range fields {
		if !slices.Contains(allowed, f.Name) {
			return "", nil, fmt.Errorf("field %q is not updatable on %s", f.Name, table)
		}

		values = append(values, f.Value)
		set = append(set, fmt.Sprintf("%s = $%d", f.Name, i+1))
		// the comparison gets its own parameter so it can be typed as text
		changed = append(changed, fmt.Sprintf("%s::text IS DISTINCT FROM $%d", f.Name, len(fields)+2+i))
	}

	args := make([]any, 0, 2*len(values)+1)
	args = append(args, values...)
	args = append(args, id)
	args = append(args, values...)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s, updated_at = NOW()
		WHERE id = $%d AND (%s)`,
		table, strings.Join(set, ", "), len(fields)+1, strings.Join(changed, " OR "))

	return query, args, nil
}
