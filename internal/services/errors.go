package services

import "errors"

// The only user-visible failures that block record creation. Every other
// failure mode in the pipeline degrades to a record with missing optional
// fields.
var (
	// ErrNoDocument: submission arrived without a document.
	ErrNoDocument = errors.New("no document supplied")

	// ErrDocumentUnreadable: the document carries no extractable text layer
	// (e.g. a scanned image). No record is created.
	ErrDocumentUnreadable = errors.New("document text could not be extracted")
)
