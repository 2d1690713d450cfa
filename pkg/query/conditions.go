package query

import (
	"reflect"
	"strings"
)

// Where adds a raw condition. clause uses one ? per arg.
func (b *Builder) Where(clause string, args ...any) *Builder {
	b.where = append(b.where, predicate{clause: clause, args: args})
	return b
}

// WhereEquals matches field against value. A nil value, including a typed
// nil pointer, adds nothing.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	return b.Where(b.projection.Column(field)+" = ?", value)
}

// WhereNullable matches field against value, or IS NULL when value is nil.
func (b *Builder) WhereNullable(field string, value any) *Builder {
	col := b.projection.Column(field)
	if isNil(value) {
		return b.Where(col + " IS NULL")
	}
	return b.Where(col+" = ?", value)
}

// WhereNotNull requires field to be set.
func (b *Builder) WhereNotNull(field string) *Builder {
	return b.Where(b.projection.Column(field) + " IS NOT NULL")
}

// WhereContains matches field case-insensitively as a substring of value.
// Nil or empty values add nothing.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	return b.Where(likeLower(b.projection.Column(field)), "%"+*value+"%")
}

// WhereSearch matches search as a substring of any of fields.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	pattern := "%" + *search + "%"
	clauses := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, field := range fields {
		clauses[i] = likeLower(b.projection.Column(field))
		args[i] = pattern
	}

	return b.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// WhereExists requires the correlated subquery to return a row.
func (b *Builder) WhereExists(subquery string, args ...any) *Builder {
	return b.Where("EXISTS ("+subquery+")", args...)
}

// WhereNotExists requires the correlated subquery to return no rows.
func (b *Builder) WhereNotExists(subquery string, args ...any) *Builder {
	return b.Where("NOT EXISTS ("+subquery+")", args...)
}

// LOWER on both sides keeps LIKE case-insensitive on PostgreSQL, where it
// otherwise is not.
func likeLower(col string) string {
	return "LOWER(" + col + ") LIKE LOWER(?)"
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
