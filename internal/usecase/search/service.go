// Package search orchestrates a search request: compile, execute,
// post-process.
package search

import (
	"context"
	"fmt"

	"github.com/arxlib/searchd/internal/domain/document"
	"github.com/arxlib/searchd/internal/domain/query"
	"github.com/arxlib/searchd/internal/index"
)

// Service handles query compilation and execution.
type Service struct {
	repo Repository
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search compiles and executes a query. Compilation failures (malformed
// clauses, out-of-range pagination) surface before the repository is
// touched, so a partial query is never sent to the backend.
func (s *Service) Search(ctx context.Context, q query.Query) (document.Set, error) {
	compiled, err := index.Compile(q)
	if err != nil {
		return document.Set{}, err
	}

	set, err := s.repo.Search(ctx, compiled)
	if err != nil {
		return document.Set{}, fmt.Errorf("execute search: %w", err)
	}
	return set, nil
}
