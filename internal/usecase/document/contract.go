package document

import (
	"context"

	domdoc "github.com/arxlib/searchd/internal/domain/document"
)

// Repository defines the storage contract for document operations.
type Repository interface {
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Add(ctx context.Context, doc *domdoc.Document) error
	BulkAdd(ctx context.Context, docs []domdoc.Document) error
}
