// Package index compiles validated queries into backend-ready Elasticsearch
// requests. Compilation is pure: it performs no I/O, holds no shared state,
// and every compilation error is raised before anything reaches the backend.
package index

import (
	"fmt"
	"strings"

	"github.com/olivere/elastic/v7"

	"github.com/arxlib/searchd/internal/domain"
	"github.com/arxlib/searchd/internal/domain/query"
)

const (
	// SubmittedDateField carries the date-range filter.
	SubmittedDateField = "submitted_date"
	// classificationPath is the nested scope classification filters match in.
	classificationPath = "primary_classification"
	// TimestampLayout is the canonical fixed-offset form for date bounds.
	TimestampLayout = "2006-01-02T15:04:05-0700"
)

// Compiled is a backend-ready search request.
type Compiled struct {
	Query           elastic.Query
	Sort            []elastic.Sorter
	From            int
	Size            int
	HighlightFields []string
}

// Compile lowers a query into its compiled form. The dispatch over query
// kinds is exhaustive; an unknown kind is a programming error surfaced as
// an invalid query.
func Compile(q query.Query) (*Compiled, error) {
	switch q := q.(type) {
	case query.SimpleQuery:
		return compileSimple(q)
	case query.AdvancedQuery:
		return compileAdvanced(q)
	default:
		return nil, fmt.Errorf("%w: unsupported query kind %T", domain.ErrInvalidQuery, q)
	}
}

func compileSimple(q query.SimpleQuery) (*Compiled, error) {
	from, size, err := paginate(q.Pagination)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(q.Value) == "" {
		return nil, fmt.Errorf("%w: empty search value", domain.ErrInvalidQuery)
	}
	paths := allPaths()
	return &Compiled{
		Query:           matchAny(paths, q.Value),
		Sort:            sorters(q.Order),
		From:            from,
		Size:            size,
		HighlightFields: paths,
	}, nil
}

func compileAdvanced(q query.AdvancedQuery) (*Compiled, error) {
	from, size, err := paginate(q.Pagination)
	if err != nil {
		return nil, err
	}

	grouped, err := GroupTerms(q.Terms)
	if err != nil {
		return nil, err
	}

	var parts []elastic.Query
	if _, empty := grouped.(MatchAll); !empty {
		tq, err := exprQuery(grouped)
		if err != nil {
			return nil, err
		}
		parts = append(parts, tq)
	}
	if rq := dateRangeQuery(q.DateRange); rq != nil {
		parts = append(parts, rq)
	}
	if cq := classificationsQuery(q.PrimaryClassification); cq != nil {
		parts = append(parts, cq)
	}

	return &Compiled{
		Query:           combine(parts),
		Sort:            sorters(q.Order),
		From:            from,
		Size:            size,
		HighlightFields: highlightPaths(q.Terms),
	}, nil
}

// combine joins the term tree and the facet filters under a logical AND.
// Absent parts are omitted, never stubbed with an always-true clause; a
// lone part stands unwrapped.
func combine(parts []elastic.Query) elastic.Query {
	switch len(parts) {
	case 0:
		return elastic.NewMatchAllQuery()
	case 1:
		return parts[0]
	default:
		return elastic.NewBoolQuery().Must(parts...)
	}
}

// exprQuery recursively lowers a grouped tree to the backend boolean
// combinators: AND to must, OR to should with minimum_should_match=1, and
// NOT to must over the left operand plus must_not over the right. The
// grouping decided by GroupTerms is never re-associated here.
func exprQuery(e Expr) (elastic.Query, error) {
	switch n := e.(type) {
	case Leaf:
		return termQuery(n.Term)
	case MatchAll:
		return elastic.NewMatchAllQuery(), nil
	case Node:
		if n.Left == nil || n.Right == nil {
			return nil, fmt.Errorf("%w: %s group is missing an operand", domain.ErrInvalidQuery, n.Op)
		}
		left, err := exprQuery(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := exprQuery(n.Right)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case query.OpAnd:
			return elastic.NewBoolQuery().Must(left, right), nil
		case query.OpOr:
			return elastic.NewBoolQuery().Should(left, right).MinimumNumberShouldMatch(1), nil
		case query.OpNot:
			return elastic.NewBoolQuery().Must(left).MustNot(right), nil
		default:
			return nil, fmt.Errorf("%w: operator %q cannot join groups", domain.ErrInvalidQuery, n.Op)
		}
	default:
		return nil, fmt.Errorf("%w: unknown expression node %T", domain.ErrInvalidQuery, e)
	}
}

// termQuery compiles one fielded clause to a primitive match. A clause with
// blank term text would match everything, so it is rejected rather than
// silently dropped.
func termQuery(t query.FieldedSearchTerm) (elastic.Query, error) {
	if strings.TrimSpace(t.Term) == "" {
		return nil, fmt.Errorf("%w: empty term for field %q", domain.ErrInvalidQuery, t.Field)
	}
	paths, err := pathsFor(t.Field)
	if err != nil {
		return nil, err
	}
	return matchAny(paths, t.Term), nil
}

// matchAny matches text against any of the given index paths. A single
// path compiles to a bare match, not a one-clause bool.
func matchAny(paths []string, text string) elastic.Query {
	if len(paths) == 1 {
		return elastic.NewMatchQuery(paths[0], text)
	}
	b := elastic.NewBoolQuery().MinimumNumberShouldMatch(1)
	for _, p := range paths {
		b = b.Should(elastic.NewMatchQuery(p, text))
	}
	return b
}

// dateRangeQuery compiles the submission-date filter. Bounds are emitted
// only when present; with neither bound the filter compiles to nothing.
func dateRangeQuery(r query.DateRange) elastic.Query {
	if r.IsZero() {
		return nil
	}
	rq := elastic.NewRangeQuery(SubmittedDateField)
	if !r.Start.IsZero() {
		rq = rq.Gte(r.Start.Format(TimestampLayout))
	}
	if !r.End.IsZero() {
		rq = rq.Lt(r.End.Format(TimestampLayout))
	}
	return rq
}

// classificationsQuery compiles the classification facet filter. Each
// classification requires all its present levels inside the nested scope;
// multiple classifications are disjunctive. A single classification with a
// single present level compiles to a plain nested match with no bool
// wrapper at either tier.
func classificationsQuery(list query.ClassificationList) elastic.Query {
	nested := make([]elastic.Query, 0, len(list))
	for _, c := range list {
		var levels []elastic.Query
		if c.Group != "" {
			levels = append(levels, elastic.NewMatchQuery(classificationPath+".group.id", c.Group))
		}
		if c.Archive != "" {
			levels = append(levels, elastic.NewMatchQuery(classificationPath+".archive.id", c.Archive))
		}
		if c.Category != "" {
			levels = append(levels, elastic.NewMatchQuery(classificationPath+".category.id", c.Category))
		}
		if len(levels) == 0 {
			continue
		}
		inner := levels[0]
		if len(levels) > 1 {
			inner = elastic.NewBoolQuery().Must(levels...)
		}
		nested = append(nested, elastic.NewNestedQuery(classificationPath, inner))
	}

	switch len(nested) {
	case 0:
		return nil
	case 1:
		return nested[0]
	default:
		return elastic.NewBoolQuery().MinimumNumberShouldMatch(1).Should(nested...)
	}
}

// sorters translates an order string into a sort list. Empty means relevance
// order; a leading "-" means descending.
func sorters(order string) []elastic.Sorter {
	if order == "" {
		return nil
	}
	field, desc := order, false
	if strings.HasPrefix(order, "-") {
		field, desc = order[1:], true
	}
	s := elastic.NewFieldSort(field)
	if desc {
		s = s.Desc()
	}
	return []elastic.Sorter{s}
}

// highlightPaths returns the index paths to highlight: the same paths the
// clause compiler matched on, in clause order without duplicates.
func highlightPaths(terms query.FieldedSearchList) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, t := range terms {
		tp, err := pathsFor(t.Field)
		if err != nil {
			continue
		}
		for _, p := range tp {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	return paths
}
