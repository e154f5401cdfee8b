// Package document reads and writes individual documents in the search
// index.
package document

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/olivere/elastic/v7"

	"github.com/arxlib/searchd/internal/db/es"
	"github.com/arxlib/searchd/internal/domain"
	domdoc "github.com/arxlib/searchd/internal/domain/document"
)

// store is the consumer interface for document operations.
type store interface {
	GetDocument(ctx context.Context, id string) (*elastic.GetResult, error)
	IndexDocument(ctx context.Context, id string, body any) error
	BulkIndex(ctx context.Context, docs []es.BulkDoc) error
}

// Repo implements usecase/document.Repository.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Get fetches a document by identifier.
func (r *Repo) Get(ctx context.Context, id string) (domdoc.Document, error) {
	res, err := r.store.GetDocument(ctx, id)
	if err != nil {
		return domdoc.Document{}, err
	}
	if !res.Found {
		return domdoc.Document{}, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
	}

	var doc domdoc.Document
	if err := json.Unmarshal(res.Source, &doc); err != nil {
		return domdoc.Document{}, fmt.Errorf("%w: decode document %s: %v", domain.ErrIndexing, id, err)
	}
	if doc.ID == "" {
		doc.ID = res.Id
	}
	doc.Type = res.Type
	return doc, nil
}

// Add indexes one document under its key. An existing document with the
// same key is quietly overwritten.
func (r *Repo) Add(ctx context.Context, doc *domdoc.Document) error {
	if err := r.store.IndexDocument(ctx, doc.Key(), doc); err != nil {
		return fmt.Errorf("index document %s: %w", doc.Key(), err)
	}
	return nil
}

// BulkAdd indexes documents through the bulk API.
func (r *Repo) BulkAdd(ctx context.Context, docs []domdoc.Document) error {
	reqs := make([]es.BulkDoc, len(docs))
	for i := range docs {
		reqs[i] = es.BulkDoc{ID: docs[i].Key(), Body: &docs[i]}
	}
	if err := r.store.BulkIndex(ctx, reqs); err != nil {
		return fmt.Errorf("bulk index %d documents: %w", len(docs), err)
	}
	return nil
}
