// Package query holds the term model for search requests: fielded clauses,
// the filters that accompany them, and the two query kinds the compiler
// accepts. Values are built once per request and never mutated afterwards.
package query

import (
	"fmt"
	"time"

	"github.com/arxlib/searchd/internal/domain"
)

// Operator joins a fielded term to the terms on its left.
type Operator string

const (
	// OpNone marks the leading term of a query; it has no left operand.
	OpNone Operator = ""
	OpAnd  Operator = "AND"
	OpOr   Operator = "OR"
	OpNot  Operator = "NOT"
)

// ParseOperator converts user input into an Operator.
func ParseOperator(s string) (Operator, error) {
	switch Operator(s) {
	case OpNone, OpAnd, OpOr, OpNot:
		return Operator(s), nil
	}
	return OpNone, fmt.Errorf("%w: unknown operator %q", domain.ErrInvalidQuery, s)
}

// Field names a searchable document field.
type Field string

const (
	FieldAll        Field = "all"
	FieldTitle      Field = "title"
	FieldAuthor     Field = "author"
	FieldAbstract   Field = "abstract"
	FieldComments   Field = "comments"
	FieldJournalRef Field = "journal_ref"
	FieldACMClass   Field = "acm_class"
	FieldMSCClass   Field = "msc_class"
	FieldReportNum  Field = "report_num"
	FieldPaperID    Field = "paper_id"
	FieldDOI        Field = "doi"
	FieldORCID      Field = "orcid"
	FieldAuthorID   Field = "author_id"
)

// ParseField converts user input into a Field.
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldAll, FieldTitle, FieldAuthor, FieldAbstract, FieldComments,
		FieldJournalRef, FieldACMClass, FieldMSCClass, FieldReportNum,
		FieldPaperID, FieldDOI, FieldORCID, FieldAuthorID:
		return Field(s), nil
	}
	return "", fmt.Errorf("%w: unknown field %q", domain.ErrInvalidQuery, s)
}

// FieldedSearchTerm is a single (operator, field, term) search clause.
// Operator is OpNone only for the first term of a query.
type FieldedSearchTerm struct {
	Operator Operator
	Field    Field
	Term     string
}

// FieldedSearchList is an ordered clause list. Order is significant: it
// defines the left-to-right application of operators during grouping.
type FieldedSearchList []FieldedSearchTerm

// DateRange restricts results by submission date. A zero bound is open-ended.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Classification is a hierarchical facet key. Absent levels broaden the
// match: only the present levels are required to agree.
type Classification struct {
	Group    string
	Archive  string
	Category string
}

// IsZero reports whether no level is set.
func (c Classification) IsZero() bool {
	return c.Group == "" && c.Archive == "" && c.Category == ""
}

// ClassificationList is a disjunctive set of classifications: a document
// matches if it matches any entry.
type ClassificationList []Classification

// Pagination selects a 1-indexed page of results.
type Pagination struct {
	Page     int
	PageSize int
}

// Start returns the zero-based offset of the first result on the page.
func (p Pagination) Start() int { return (p.Page - 1) * p.PageSize }

// End returns the offset one past the last result on the page.
func (p Pagination) End() int { return p.Start() + p.PageSize }

// Query is the sealed set of query kinds the compiler accepts.
// Adding a kind forces every type switch over Query to be revisited.
type Query interface {
	isQuery()
}

// SimpleQuery is a single free-text query matched against the default
// field set.
type SimpleQuery struct {
	Pagination
	Value string
	Order string
}

// AdvancedQuery is an ordered fielded clause list with optional date-range
// and classification filters.
type AdvancedQuery struct {
	Pagination
	Terms                 FieldedSearchList
	DateRange             DateRange
	PrimaryClassification ClassificationList
	Order                 string
}

func (SimpleQuery) isQuery()   {}
func (AdvancedQuery) isQuery() {}
