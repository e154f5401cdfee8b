package index

import (
	"fmt"

	"github.com/arxlib/searchd/internal/domain"
	"github.com/arxlib/searchd/internal/domain/query"
)

// MaxResults is the deepest result offset the backend will serve. Requests
// paging past it are rejected before any backend call is made; this is a
// hard ceiling against deep-pagination cost, not a soft warning.
const MaxResults = 10000

// paginate translates a 1-indexed page selection into an offset/limit pair,
// enforcing the MaxResults ceiling.
func paginate(p query.Pagination) (from, size int, err error) {
	if p.Page < 1 || p.PageSize < 1 {
		return 0, 0, fmt.Errorf("%w: page and page_size must be positive", domain.ErrInvalidQuery)
	}
	maxPages := MaxResults / p.PageSize
	if p.Page > maxPages {
		return 0, 0, fmt.Errorf("%w: requested page %d, but max is %d",
			domain.ErrOutsideAllowedRange, p.Page, maxPages)
	}
	return p.Start(), p.PageSize, nil
}
