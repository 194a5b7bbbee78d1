package v1

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/helixml/delve/domain/repository"
	"github.com/helixml/delve/infrastructure/api/jsonapi"
)

// Page size bounds for list endpoints.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination holds the page requested by a list call.
type Pagination struct {
	page int
	size int
}

// ParsePagination reads page and page_size from the query string. Invalid
// values fall back to the first page of DefaultPageSize items; sizes above
// MaxPageSize are capped.
func ParsePagination(r *http.Request) Pagination {
	p := Pagination{page: 1, size: DefaultPageSize}
	q := r.URL.Query()

	if n, err := strconv.Atoi(q.Get("page")); err == nil && n >= 1 {
		p.page = n
	}
	if n, err := strconv.Atoi(q.Get("page_size")); err == nil && n >= 1 {
		p.size = min(n, MaxPageSize)
	}
	return p
}

// Page returns the 1-based page number.
func (p Pagination) Page() int { return p.page }

// PageSize returns the number of items per page.
func (p Pagination) PageSize() int { return p.size }

// Offset returns the number of items before this page.
func (p Pagination) Offset() int { return (p.page - 1) * p.size }

// Options returns the store options selecting this page.
func (p Pagination) Options() []repository.Option {
	return []repository.Option{repository.WithLimit(p.size), repository.WithOffset(p.Offset())}
}

func (p Pagination) pages(total int64) int {
	if p.size <= 0 {
		return 0
	}
	return int((total + int64(p.size) - 1) / int64(p.size))
}

// Meta returns the JSON:API meta object for a list of total items.
func (p Pagination) Meta(total int64) *jsonapi.Meta {
	return &jsonapi.Meta{
		"page":        p.page,
		"page_size":   p.size,
		"total_count": total,
		"total_pages": p.pages(total),
	}
}

// Links returns self, first, last, prev and next links for r.
func (p Pagination) Links(r *http.Request, total int64) *jsonapi.Links {
	pages := p.pages(total)
	link := func(page int) string {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(page))
		q.Set("page_size", strconv.Itoa(p.size))
		u := url.URL{Path: r.URL.Path, RawQuery: q.Encode()}
		return u.String()
	}

	links := &jsonapi.Links{Self: link(p.page), First: link(1)}
	if pages > 0 {
		links.Last = link(pages)
	}
	if p.page > 1 {
		links.Prev = link(p.page - 1)
	}
	if p.page < pages {
		links.Next = link(p.page + 1)
	}
	return links
}
