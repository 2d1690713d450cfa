package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Builder assembles a SELECT over a ProjectionMap. Conditions are ANDed in
// the order they were added and written with ? placeholders, which Build
// rewrites to $1, $2, ... across the whole statement.
type Builder struct {
	projection *ProjectionMap
	where      []predicate
	order      []SortField
	fallback   []SortField
}

type predicate struct {
	clause string
	args   []any
}

// NewBuilder starts a query over projection. defaultSort applies when
// OrderByFields is never called or names no mapped field.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection: projection,
		fallback:   defaultSort,
	}
}

// OrderByFields replaces the default ordering. Unmapped fields are dropped.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.order = fields
	return b
}

// Build returns the full ordered SELECT.
func (b *Builder) Build() (string, []any) {
	return b.render(b.projection.Columns(), true, "")
}

// BuildCount returns a COUNT(*) over the same conditions, without ordering.
func (b *Builder) BuildCount() (string, []any) {
	return b.render("COUNT(*)", false, "")
}

// BuildPage returns the ordered SELECT limited to the 1-based page.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	offset := (max(page, 1) - 1) * pageSize
	return b.render(b.projection.Columns(), true, fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, offset))
}

func (b *Builder) render(selectList string, ordered bool, tail string) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)

	fmt.Fprintf(&sb, "SELECT %s FROM %s", selectList, b.projection.From())

	for i, p := range b.where {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(number(p.clause, len(args)))
		args = append(args, p.args...)
	}

	if ordered {
		sb.WriteString(b.orderBy())
	}
	sb.WriteString(tail)

	return sb.String(), args
}

// number rewrites each ? in clause to $n, counting on from offset.
func number(clause string, offset int) string {
	if !strings.Contains(clause, "?") {
		return clause
	}

	var sb strings.Builder
	for i := 0; i < len(clause); i++ {
		if clause[i] != '?' {
			sb.WriteByte(clause[i])
			continue
		}
		offset++
		sb.WriteByte('$')
		sb.WriteString(strconv.Itoa(offset))
	}
	return sb.String()
}
