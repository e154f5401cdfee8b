// Package search executes compiled queries and turns raw backend hits back
// into the typed result model.
package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/olivere/elastic/v7"

	"github.com/arxlib/searchd/internal/db/es"
	"github.com/arxlib/searchd/internal/domain"
	"github.com/arxlib/searchd/internal/domain/document"
	"github.com/arxlib/searchd/internal/index"
)

// store is the consumer interface for search execution.
type store interface {
	Search(ctx context.Context, req *es.SearchRequest) (*elastic.SearchResult, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search runs a compiled query and transforms the hits.
func (r *Repo) Search(ctx context.Context, c *index.Compiled) (document.Set, error) {
	res, err := r.store.Search(ctx, &es.SearchRequest{
		Query:           c.Query,
		Sort:            c.Sort,
		From:            c.From,
		Size:            c.Size,
		HighlightFields: c.HighlightFields,
	})
	if err != nil {
		return document.Set{}, err
	}
	return toDocumentSet(res)
}

// toDocumentSet maps raw hits into a Set, preserving the backend's rank
// order and attaching each hit's relevance score and type tag. Zero hits
// yield an empty set, not an error.
func toDocumentSet(res *elastic.SearchResult) (document.Set, error) {
	set := document.Set{Results: []document.Document{}}
	if res == nil || res.Hits == nil {
		return set, nil
	}
	set.Count = res.TotalHits()
	for _, hit := range res.Hits.Hits {
		var doc document.Document
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			return document.Set{}, fmt.Errorf("%w: decode hit %s: %v", domain.ErrIndexing, hit.Id, err)
		}
		if doc.ID == "" {
			doc.ID = hit.Id
		}
		if hit.Score != nil {
			doc.Score = *hit.Score
		}
		doc.Type = hit.Type
		set.Results = append(set.Results, doc)
	}
	return set, nil
}
