package jsonpath

import (
	"fmt"
	"iter"

	"github.com/theory/jsonpath"

	"github.com/jacoelho/jdoc/internal/document"
)

// Result is a single match: its normalized path and its value.
type Result struct {
	Path  string
	Value any
}

// Query is a compiled JSONPath expression.
type Query struct {
	expr string
	path *jsonpath.Path
}

// Compile parses expr.
func Compile(expr string) (*Query, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: expression is empty", ErrSyntax)
	}
	p, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSyntax, expr, err)
	}
	return &Query{expr: expr, path: p}, nil
}

// String returns the source expression.
func (q *Query) String() string {
	return q.expr
}

// Select returns the values matched in v.
func (q *Query) Select(v *document.Value) ([]any, error) {
	data, err := plain(v)
	if err != nil {
		return nil, err
	}
	return q.path.Select(data), nil
}

// Results yields each match with its normalized path, in document order.
func (q *Query) Results(v *document.Value) (iter.Seq[Result], error) {
	data, err := plain(v)
	if err != nil {
		return nil, err
	}
	nodes := q.path.SelectLocated(data)
	return func(yield func(Result) bool) {
		for _, node := range nodes {
			if !yield(Result{Path: node.Path.String(), Value: node.Node}) {
				return
			}
		}
	}, nil
}

// Select compiles expr and runs it against v.
func Select(v *document.Value, expr string) ([]any, error) {
	q, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return q.Select(v)
}

func plain(v *document.Value) (any, error) {
	switch v.Kind() {
	case document.KindUnset:
		return nil, fmt.Errorf("%w: no value", ErrInvalidDocument)
	case document.KindError:
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, v.Err())
	}
	return v.Interface(), nil
}
