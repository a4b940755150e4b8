// Package pagination parses page/limit query parameters and computes the
// page metadata returned by list endpoints.
package pagination

import (
	"math"
	"strconv"

	"mentora/backend/internal/store"
)

// Default page sizes per listing.
const (
	DefaultLimit   = 10
	CatalogueLimit = 9
)

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// Params is a validated page request.
type Params struct {
	Page  int64
	Limit int64
}

// Parse reads page and limit, falling back to page 1 and defaultLimit when a
// value is missing, non-numeric or below 1. Limits above MaxLimit are clamped.
func Parse(page, limit string, defaultLimit int64) Params {
	l := positive(limit, defaultLimit)
	if l > MaxLimit {
		l = MaxLimit
	}
	return Params{
		Page:  positive(page, 1),
		Limit: l,
	}
}

func positive(raw string, fallback int64) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Skip is the number of items before the page. A page too far out to be
// addressed saturates at math.MaxInt64, which every store treats as past the end.
func (p Params) Skip() int64 {
	if p.Page-1 > math.MaxInt64/p.Limit {
		return math.MaxInt64
	}
	return (p.Page - 1) * p.Limit
}

func (p Params) Window() store.Page {
	return store.Page{Skip: p.Skip(), Limit: p.Limit}
}

// Meta describes where a page sits in the full result set.
type Meta struct {
	CurrentPage int64
	TotalPages  int64
	HasNextPage bool
}

func (p Params) Meta(total int64) Meta {
	pages := total / p.Limit
	if total%p.Limit != 0 {
		pages++
	}
	return Meta{
		CurrentPage: p.Page,
		TotalPages:  pages,
		HasNextPage: p.Page < pages,
	}
}
