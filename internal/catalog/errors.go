package catalog

import "errors"

var (
	// ErrNotFound indicates the document type does not exist.
	ErrNotFound = errors.New("document type not found")
	// ErrInvalidInput indicates missing or malformed input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateCode indicates the code already exists for the company.
	ErrDuplicateCode = errors.New("document type code already exists")
)
