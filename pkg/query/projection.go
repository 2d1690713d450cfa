// Package query builds the SELECT statements behind list and lookup
// endpoints from a projection of view names onto table columns.
package query

import "strings"

// ProjectionMap binds view field names to alias-qualified columns of a
// single table. Field names are what callers filter and sort by; only
// mapped names are ever written into ORDER BY.
type ProjectionMap struct {
	table   string
	alias   string
	columns map[string]string
	order   []string
}

// NewProjectionMap starts a projection over table, referenced as alias.
// Tables are left unqualified so the same statement runs on PostgreSQL and SQLite.
func NewProjectionMap(table, alias string) *ProjectionMap {
	return &ProjectionMap{
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project maps field to column and appends it to the select list.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns[field] = qualified
	p.order = append(p.order, qualified)
	return p
}

// From returns the FROM target, e.g. "image_texts it".
func (p *ProjectionMap) From() string {
	return p.table + " " + p.alias
}

// Column resolves field to its qualified column. Unmapped names pass through
// unchanged so callers can reference raw expressions in conditions.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.Lookup(field); ok {
		return col
	}
	return field
}

// Lookup resolves field and reports whether it is mapped.
func (p *ProjectionMap) Lookup(field string) (string, bool) {
	col, ok := p.columns[field]
	return col, ok
}

// Columns renders the select list in projection order.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.order, ", ")
}
