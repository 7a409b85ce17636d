package document

import "github.com/jacoelho/jdoc/internal/stack"

// Stats summarizes a value tree.
type Stats struct {
	Objects  int
	Arrays   int
	Strings  int
	Numbers  int
	Bools    int
	Nulls    int
	MaxDepth int
}

// Count walks the tree rooted at v. Containers count at their own depth,
// with the root at depth 1; unset slots are not counted.
func Count(v *Value) Stats {
	type frame struct {
		v     *Value
		depth int
	}

	var s Stats
	if v.Kind() == KindUnset {
		return s
	}

	pending := stack.NewWithCapacity[frame](32)
	pending.Push(frame{v: v, depth: 1})

	for !pending.IsEmpty() {
		f, _ := pending.Pop()
		s.MaxDepth = max(s.MaxDepth, f.depth)

		switch f.v.kind {
		case KindObject:
			s.Objects++
			for _, item := range f.v.obj.All() {
				pending.Push(frame{v: item, depth: f.depth + 1})
			}
		case KindArray:
			s.Arrays++
			for _, item := range f.v.arr.All() {
				pending.Push(frame{v: item, depth: f.depth + 1})
			}
		case KindString:
			s.Strings++
		case KindInt64, KindUint64, KindFloat64:
			s.Numbers++
		case KindBool:
			s.Bools++
		case KindNull:
			s.Nulls++
		}
	}
	return s
}
