package repository

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ListQuery carries the common list-endpoint parameters: free-text search,
// activation filter and pagination.
type ListQuery struct {
	Page     int
	Limit    int
	Search   string
	IsActive *bool
}

// Normalize clamps pagination values to sane bounds: page >= 1, 1 <= limit
// <= 100, defaulting to page 1 with 10 items.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	return q
}

// Offset returns the row offset for the normalized query.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pagination describes a page of results in list responses.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes the response pagination for a normalized query,
// with pages = ceil(total/limit).
func NewPagination(q ListQuery, total int64) Pagination {
	pages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return Pagination{
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
		Pages: pages,
	}
}
