package search

import (
	"context"

	"github.com/arxlib/searchd/internal/domain/document"
	"github.com/arxlib/searchd/internal/index"
)

// Repository executes compiled queries against the search index.
type Repository interface {
	Search(ctx context.Context, compiled *index.Compiled) (document.Set, error)
}
