package domain

import "errors"

var (
	// ErrInvalidQuery signals a malformed or empty query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrOutsideAllowedRange signals a pagination request deeper than the index allows.
	ErrOutsideAllowedRange = errors.New("page outside allowed range")
	// ErrIndexConnection signals a transport fault talking to the search index.
	ErrIndexConnection = errors.New("index connection failure")
	// ErrIndexing signals a document that failed to serialize or index.
	ErrIndexing = errors.New("indexing failure")
	// ErrMapping signals an index schema mismatch; the index must be recreated.
	ErrMapping = errors.New("invalid index mapping")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
)
