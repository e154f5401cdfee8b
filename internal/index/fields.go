package index

import (
	"fmt"

	"github.com/arxlib/searchd/internal/domain"
	"github.com/arxlib/searchd/internal/domain/query"
)

// AllSearchFields is the field vocabulary a free-text query is matched
// against. It must stay in step with mappings/document.json.
var AllSearchFields = []query.Field{
	query.FieldAuthor,
	query.FieldTitle,
	query.FieldAbstract,
	query.FieldComments,
	query.FieldJournalRef,
	query.FieldACMClass,
	query.FieldMSCClass,
	query.FieldReportNum,
	query.FieldPaperID,
	query.FieldDOI,
	query.FieldORCID,
	query.FieldAuthorID,
}

// fieldPaths maps a searchable field to its indexed representations.
// Title and abstract are analyzed twice (TeX-aware and English-stemmed);
// a clause against them matches either representation.
var fieldPaths = map[query.Field][]string{
	query.FieldTitle:      {"title.tex", "title.english"},
	query.FieldAbstract:   {"abstract.tex", "abstract.english"},
	query.FieldAuthor:     {"authors.full_name"},
	query.FieldComments:   {"comments"},
	query.FieldJournalRef: {"journal_ref"},
	query.FieldACMClass:   {"acm_class"},
	query.FieldMSCClass:   {"msc_class"},
	query.FieldReportNum:  {"report_num"},
	query.FieldPaperID:    {"paper_id"},
	query.FieldDOI:        {"doi"},
	query.FieldORCID:      {"orcid"},
	query.FieldAuthorID:   {"author_id"},
}

// pathsFor returns the index paths a clause against f is matched on.
// FieldAll expands to every representation of every search field.
func pathsFor(f query.Field) ([]string, error) {
	if f == query.FieldAll {
		return allPaths(), nil
	}
	paths, ok := fieldPaths[f]
	if !ok {
		return nil, fmt.Errorf("%w: unknown search field %q", domain.ErrInvalidQuery, f)
	}
	return paths, nil
}

func allPaths() []string {
	var paths []string
	for _, f := range AllSearchFields {
		paths = append(paths, fieldPaths[f]...)
	}
	return paths
}
