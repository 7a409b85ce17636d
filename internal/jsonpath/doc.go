// Package jsonpath runs RFC 9535 JSONPath queries against a parsed document.
//
// Expressions are compiled with github.com/theory/jsonpath and evaluated
// over the plain Go form of the document (see document.Value.Interface):
// objects become map[string]any, arrays []any, integers int64 or uint64
// and floats float64.
package jsonpath
