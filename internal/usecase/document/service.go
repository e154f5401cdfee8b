// Package document provides document lookup and index maintenance on top
// of the repository layer.
package document

import (
	"context"
	"fmt"

	"github.com/arxlib/searchd/internal/domain"
	domdoc "github.com/arxlib/searchd/internal/domain/document"
)

// Service handles document retrieval and indexing.
type Service struct {
	repo Repository
}

// New creates a document service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get fetches a document by identifier.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, error) {
	if id == "" {
		return domdoc.Document{}, fmt.Errorf("%w: empty document id", domain.ErrDocumentNotFound)
	}
	return s.repo.Get(ctx, id)
}

// Add indexes one document.
func (s *Service) Add(ctx context.Context, doc *domdoc.Document) error {
	if doc == nil || doc.Key() == "" {
		return fmt.Errorf("%w: document has no identifier", domain.ErrIndexing)
	}
	return s.repo.Add(ctx, doc)
}

// BulkAdd indexes a batch of documents.
func (s *Service) BulkAdd(ctx context.Context, docs []domdoc.Document) error {
	if len(docs) == 0 {
		return nil
	}
	for i := range docs {
		if docs[i].Key() == "" {
			return fmt.Errorf("%w: document %d has no identifier", domain.ErrIndexing, i)
		}
	}
	return s.repo.BulkAdd(ctx, docs)
}
