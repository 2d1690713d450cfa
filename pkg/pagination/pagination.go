package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/groundtruth/pkg/query"
)

// PageRequest is a normalized page window plus the optional search term and
// sort order carried by a list query string.
type PageRequest struct {
	Page     int
	PageSize int
	Search   *string
	Sort     []query.SortField
}

// Normalize clamps Page to at least 1 and PageSize into [1, cfg.MaxPageSize],
// substituting cfg.DefaultPageSize when no size was requested.
func (r *PageRequest) Normalize(cfg Config) {
	r.Page = max(r.Page, 1)
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	r.PageSize = min(r.PageSize, cfg.MaxPageSize)
}

// Apply narrows qb by the search term across searchFields and overrides its
// default ordering when the request names sort fields.
func (r PageRequest) Apply(qb *query.Builder, searchFields ...string) *query.Builder {
	qb.WhereSearch(r.Search, searchFields...)
	if len(r.Sort) > 0 {
		qb.OrderByFields(r.Sort)
	}
	return qb
}

// PageRequestFromQuery reads page, page_size, search and sort from values.
// Unparseable numbers fall back to the configured defaults and a blank search
// is treated as absent.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	var req PageRequest

	if n, err := strconv.Atoi(values.Get("page")); err == nil {
		req.Page = n
	}
	if n, err := strconv.Atoi(values.Get("page_size")); err == nil {
		req.PageSize = n
	}
	if s := strings.TrimSpace(values.Get("search")); s != "" {
		req.Search = &s
	}
	req.Sort = query.ParseSortFields(values.Get("sort"))

	req.Normalize(cfg)
	return req
}

// PageResult is the JSON envelope for a page of T.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult wraps data with its paging metadata. TotalPages is never
// below 1 and a nil data slice is rendered as an empty array.
func NewPageResult[T any](data []T, total, page, pageSize int) PageResult[T] {
	pages := 1
	if pageSize > 0 && total > 0 {
		pages = (total + pageSize - 1) / pageSize
	}

	if data == nil {
		data = make([]T, 0)
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: pages,
	}
}
