// Package document holds the typed result model returned by searches.
package document

import "time"

// ClassificationTerm is one level of a classification record.
type ClassificationTerm struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Classification is a document's hierarchical subject classification.
type Classification struct {
	Group    *ClassificationTerm `json:"group,omitempty"`
	Archive  *ClassificationTerm `json:"archive,omitempty"`
	Category *ClassificationTerm `json:"category,omitempty"`
}

// Author is a single document author.
type Author struct {
	FullName  string `json:"full_name"`
	LastName  string `json:"last_name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	ORCID     string `json:"orcid,omitempty"`
	AuthorID  string `json:"author_id,omitempty"`
}

// Document is a single indexed record. JSON tags match the index mapping
// in mappings/document.json.
type Document struct {
	ID                    string          `json:"id,omitempty"`
	PaperID               string          `json:"paper_id"`
	Title                 string          `json:"title"`
	Abstract              string          `json:"abstract,omitempty"`
	Authors               []Author        `json:"authors,omitempty"`
	Comments              string          `json:"comments,omitempty"`
	JournalRef            string          `json:"journal_ref,omitempty"`
	DOI                   string          `json:"doi,omitempty"`
	ReportNum             string          `json:"report_num,omitempty"`
	ACMClass              string          `json:"acm_class,omitempty"`
	MSCClass              string          `json:"msc_class,omitempty"`
	SubmittedDate         time.Time       `json:"submitted_date"`
	PrimaryClassification *Classification `json:"primary_classification,omitempty"`

	// Attached per search hit, not part of the indexed source.
	Score float64 `json:"-"`
	Type  string  `json:"-"`
}

// Key returns the identifier a document is indexed under.
func (d *Document) Key() string {
	if d.ID != "" {
		return d.ID
	}
	return d.PaperID
}

// Set is a paginated search result. Count is the total number of matches
// in the index, not the number of results returned.
type Set struct {
	Count   int64
	Results []Document
}
