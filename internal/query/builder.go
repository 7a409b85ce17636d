package query

import "github.com/jacoelho/jdoc/internal/document"

// Builder walks a document one step at a time. Once a step fails the
// builder stays absent and further steps are no-ops.
type Builder struct {
	v *document.Value
}

// From starts a Builder at v.
func From(v *document.Value) Builder {
	return Builder{v: v}
}

// Key descends into the object member k.
func (b Builder) Key(k string) Builder {
	obj, ok := b.v.Object()
	if !ok {
		return Builder{}
	}
	return Builder{v: obj.Get(k)}
}

// Index descends into the array element i.
func (b Builder) Index(i int) Builder {
	arr, ok := b.v.Array()
	if !ok {
		return Builder{}
	}
	return Builder{v: arr.Get(i)}
}

// Path applies a Get expression from the current position.
func (b Builder) Path(q string) Builder {
	return Builder{v: Get(b.v, q)}
}

// Value returns the selected value, or nil when absent.
func (b Builder) Value() *document.Value {
	return b.v
}

// Ok reports whether every step matched.
func (b Builder) Ok() bool {
	return b.v != nil
}
