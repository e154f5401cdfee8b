package chi

import (
	"fmt"
	"time"

	"github.com/arxlib/searchd/internal/domain"
	domdoc "github.com/arxlib/searchd/internal/domain/document"
	"github.com/arxlib/searchd/internal/domain/query"
)

const defaultPageSize = 25

// searchRequest is the wire form of a search. Exactly one of simple or
// advanced must be set.
type searchRequest struct {
	Simple   *simpleQueryDTO   `json:"simple,omitempty"`
	Advanced *advancedQueryDTO `json:"advanced,omitempty"`
	Order    string            `json:"order,omitempty"`
	Page     int               `json:"page,omitempty"`
	PageSize int               `json:"page_size,omitempty"`
}

type simpleQueryDTO struct {
	Value string `json:"value"`
}

type advancedQueryDTO struct {
	Terms                 []termDTO           `json:"terms"`
	DateRange             *dateRangeDTO       `json:"date_range,omitempty"`
	PrimaryClassification []classificationDTO `json:"primary_classification,omitempty"`
}

type termDTO struct {
	Operator string `json:"operator"`
	Field    string `json:"field"`
	Term     string `json:"term"`
}

type dateRangeDTO struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type classificationDTO struct {
	Group    string `json:"group"`
	Archive  string `json:"archive,omitempty"`
	Category string `json:"category,omitempty"`
}

// kind labels the request for metrics.
func (r *searchRequest) kind() string {
	switch {
	case r.Simple != nil && r.Advanced == nil:
		return "simple"
	case r.Advanced != nil && r.Simple == nil:
		return "advanced"
	default:
		return "unknown"
	}
}

// toQuery converts the wire form to a domain query.
func (r *searchRequest) toQuery() (query.Query, error) {
	page := r.Page
	if page == 0 {
		page = 1
	}
	pageSize := r.PageSize
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	p := query.Pagination{Page: page, PageSize: pageSize}

	switch r.kind() {
	case "simple":
		return query.SimpleQuery{Pagination: p, Value: r.Simple.Value, Order: r.Order}, nil
	case "advanced":
		return r.Advanced.toQuery(p, r.Order)
	default:
		return nil, fmt.Errorf("%w: exactly one of simple or advanced must be set", domain.ErrInvalidQuery)
	}
}

func (a *advancedQueryDTO) toQuery(p query.Pagination, order string) (query.Query, error) {
	terms := make(query.FieldedSearchList, 0, len(a.Terms))
	for i, t := range a.Terms {
		op, err := query.ParseOperator(t.Operator)
		if err != nil {
			return nil, err
		}
		if i > 0 && op == query.OpNone {
			return nil, fmt.Errorf("%w: term %d requires an operator", domain.ErrInvalidQuery, i)
		}
		field, err := query.ParseField(t.Field)
		if err != nil {
			return nil, err
		}
		terms = append(terms, query.FieldedSearchTerm{Operator: op, Field: field, Term: t.Term})
	}

	var dr query.DateRange
	if a.DateRange != nil {
		if a.DateRange.StartDate != nil {
			dr.Start = *a.DateRange.StartDate
		}
		if a.DateRange.EndDate != nil {
			dr.End = *a.DateRange.EndDate
		}
	}

	cls := make(query.ClassificationList, 0, len(a.PrimaryClassification))
	for _, c := range a.PrimaryClassification {
		cls = append(cls, query.Classification{
			Group:    c.Group,
			Archive:  c.Archive,
			Category: c.Category,
		})
	}

	return query.AdvancedQuery{
		Pagination:            p,
		Terms:                 terms,
		DateRange:             dr,
		PrimaryClassification: cls,
		Order:                 order,
	}, nil
}

// documentDTO is the wire form of an indexed document.
type documentDTO domdoc.Document

func (d documentDTO) toDomain() domdoc.Document { return domdoc.Document(d) }

type bulkRequest struct {
	Documents []documentDTO `json:"documents"`
}

func (b *bulkRequest) toDomain() []domdoc.Document {
	docs := make([]domdoc.Document, len(b.Documents))
	for i, d := range b.Documents {
		docs[i] = d.toDomain()
	}
	return docs
}

// hitDTO is a document with its per-hit search annotations.
type hitDTO struct {
	domdoc.Document
	Score float64 `json:"score"`
	Type  string  `json:"type,omitempty"`
}

func hitFrom(d domdoc.Document) hitDTO {
	return hitDTO{Document: d, Score: d.Score, Type: d.Type}
}

type searchResponse struct {
	Count   int64    `json:"count"`
	Results []hitDTO `json:"results"`
}

func searchResponseFrom(set domdoc.Set) searchResponse {
	results := make([]hitDTO, len(set.Results))
	for i, d := range set.Results {
		results[i] = hitFrom(d)
	}
	return searchResponse{Count: set.Count, Results: results}
}
