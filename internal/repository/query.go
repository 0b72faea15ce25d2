package repository

import (
	"strconv"

	"taskhub/internal/model"
)

const (
	// DefaultPage is used when the page parameter is absent or malformed.
	DefaultPage = 1
	// DefaultLimit is used when the limit parameter is absent or malformed.
	DefaultLimit = 10
	// MaxLimit caps the page size server-side.
	MaxLimit = 100
)

// ListQuery carries normalized pagination and filter inputs for list queries.
// Status applies to task listings only; empty means no status filter.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	Status string
}

// NewListQuery coerces raw query-string inputs into a valid ListQuery.
// Non-numeric or sub-1 page/limit fall back to the defaults, limit is capped
// at MaxLimit, and a status outside the task enum is silently dropped.
func NewListQuery(page, limit, search, status string) ListQuery {
	q := ListQuery{
		Page:   DefaultPage,
		Limit:  DefaultLimit,
		Search: search,
	}
	if n, err := strconv.Atoi(page); err == nil && n >= 1 {
		q.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n >= 1 {
		q.Limit = n
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if model.ValidTaskStatus(status) {
		q.Status = status
	}
	return q
}

// Offset returns the number of records to skip for the requested page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
