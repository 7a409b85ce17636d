package jsonpath

import "errors"

var (
	// ErrSyntax indicates a JSONPath expression syntax error during compilation.
	ErrSyntax = errors.New("jsonpath: syntax error")

	// ErrInvalidDocument indicates the document root is absent or failed to parse.
	ErrInvalidDocument = errors.New("jsonpath: invalid document")
)
