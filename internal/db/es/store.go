// Package es wraps the Elasticsearch client behind the handful of
// primitives the service needs. The Store holds one long-lived client that
// is safe for concurrent use; requests carry their own contexts and are
// independently cancellable. No retries happen here: a transport fault is
// translated and surfaced to the caller.
package es

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olivere/elastic/v7"
	"go.uber.org/zap"

	"github.com/arxlib/searchd/internal/domain"
)

// Config holds the connection and index settings for a Store.
type Config struct {
	URL           string
	Username      string
	Password      string
	Index         string
	MappingPath   string
	Sniff         bool
	HealthTimeout time.Duration
}

// Store is a session with the search index.
type Store struct {
	client        *elastic.Client
	index         string
	mappingPath   string
	healthTimeout time.Duration
	logger        *zap.Logger
}

// NewStore connects to the cluster. The health check at dial time is
// disabled so the service can start while the cluster is still coming up;
// availability is probed separately via ClusterAvailable.
func NewStore(cfg Config, logger *zap.Logger) (*Store, error) {
	opts := []elastic.ClientOptionFunc{
		elastic.SetURL(cfg.URL),
		elastic.SetSniff(cfg.Sniff),
		elastic.SetHealthcheck(false),
	}
	if cfg.Username != "" {
		opts = append(opts, elastic.SetBasicAuth(cfg.Username, cfg.Password))
	}
	client, err := elastic.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: create client for %s: %v", domain.ErrIndexConnection, cfg.URL, err)
	}

	healthTimeout := cfg.HealthTimeout
	if healthTimeout <= 0 {
		healthTimeout = time.Second
	}

	return &Store{
		client:        client,
		index:         cfg.Index,
		mappingPath:   cfg.MappingPath,
		healthTimeout: healthTimeout,
		logger:        logger,
	}, nil
}

// SearchRequest is an opaque compiled query plus its presentation
// parameters.
type SearchRequest struct {
	Query           elastic.Query
	Sort            []elastic.Sorter
	From            int
	Size            int
	HighlightFields []string
}

// Search executes a compiled query and returns the raw backend result.
func (s *Store) Search(ctx context.Context, req *SearchRequest) (*elastic.SearchResult, error) {
	svc := s.client.Search(s.index).
		Query(req.Query).
		From(req.From).
		Size(req.Size)
	if len(req.Sort) > 0 {
		svc = svc.SortBy(req.Sort...)
	}
	if len(req.HighlightFields) > 0 {
		hl := elastic.NewHighlight()
		for _, f := range req.HighlightFields {
			hl = hl.Field(f)
		}
		svc = svc.Highlight(hl)
	}

	res, err := svc.Do(ctx)
	if err != nil {
		return nil, s.translate(err)
	}
	return res, nil
}

// GetDocument fetches one document by its index identifier.
func (s *Store) GetDocument(ctx context.Context, id string) (*elastic.GetResult, error) {
	res, err := s.client.Get().Index(s.index).Id(id).Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
		}
		return nil, s.translate(err)
	}
	return res, nil
}

// IndexDocument adds or quietly overwrites one document, creating the
// index from the mapping file if it does not exist yet.
func (s *Store) IndexDocument(ctx context.Context, id string, body any) error {
	if err := s.ensureIndex(ctx); err != nil {
		return err
	}
	if _, err := s.client.Index().Index(s.index).Id(id).BodyJson(body).Do(ctx); err != nil {
		return s.translate(err)
	}
	return nil
}

// BulkDoc is one document in a bulk indexing request.
type BulkDoc struct {
	ID   string
	Body any
}

// BulkIndex adds documents through the bulk API. Per-item failures are
// collapsed into a single indexing error naming the failed count.
func (s *Store) BulkIndex(ctx context.Context, docs []BulkDoc) error {
	if err := s.ensureIndex(ctx); err != nil {
		return err
	}
	bulk := s.client.Bulk()
	for _, d := range docs {
		bulk = bulk.Add(elastic.NewBulkIndexRequest().Index(s.index).Id(d.ID).Doc(d.Body))
	}
	res, err := bulk.Do(ctx)
	if err != nil {
		return s.translate(err)
	}
	if res.Errors {
		failed := res.Failed()
		s.logger.Error("bulk indexing failures",
			zap.Int("failed", len(failed)),
			zap.Int("total", len(docs)),
		)
		return fmt.Errorf("%w: %d of %d documents failed", domain.ErrIndexing, len(failed), len(docs))
	}
	return nil
}

// CreateIndex creates the search index from the configured mapping file.
// An index that already exists is not an error.
func (s *Store) CreateIndex(ctx context.Context) error {
	body, err := os.ReadFile(s.mappingPath)
	if err != nil {
		return fmt.Errorf("%w: read mapping %s: %v", domain.ErrIndexing, s.mappingPath, err)
	}
	if _, err := s.client.CreateIndex(s.index).BodyString(string(body)).Do(ctx); err != nil {
		if faultType(err) == "resource_already_exists_exception" {
			s.logger.Debug("index already exists", zap.String("index", s.index))
			return nil
		}
		return s.translate(err)
	}
	s.logger.Info("created index", zap.String("index", s.index))
	return nil
}

// ClusterAvailable reports whether the cluster answers a health probe
// within the configured timeout.
func (s *Store) ClusterAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, s.healthTimeout)
	defer cancel()
	if _, err := s.client.ClusterHealth().WaitForYellowStatus().Do(ctx); err != nil {
		s.logger.Debug("health check failed", zap.Error(err))
		return false
	}
	return true
}

func (s *Store) ensureIndex(ctx context.Context) error {
	exists, err := s.client.IndexExists(s.index).Do(ctx)
	if err != nil {
		return s.translate(err)
	}
	if exists {
		return nil
	}
	return s.CreateIndex(ctx)
}
