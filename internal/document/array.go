package document

import (
	"fmt"
	"iter"
	"math"
)

const (
	// MinArrayCapacity is the smallest slot count an array allocates.
	MinArrayCapacity = 8

	// MaxArrayLen is the largest number of items an array can index.
	MaxArrayLen = math.MaxUint32
)

// Array is a growable sequence of values stored in the document arena.
// Slots between the last written index and a later index-set stay unset.
type Array struct {
	items []Value
	count int
	doc   *Document
}

// Len returns the number of slots in use, including unset holes.
func (a *Array) Len() int {
	return a.count
}

// Cap returns the number of allocated slots.
func (a *Array) Cap() int {
	return len(a.items)
}

// Get returns the value at index i, or nil when i is out of range or the
// slot was never set.
func (a *Array) Get(i int) *Value {
	if i < 0 || i >= a.count || a.items[i].kind == KindUnset {
		return nil
	}
	return &a.items[i]
}

// Reserve grows the array so that it holds at least n slots.
func (a *Array) Reserve(n int) error {
	if a.doc == nil {
		return ErrNotCreated
	}
	n = max(n, MinArrayCapacity)
	if n <= len(a.items) {
		return nil
	}

	items, err := a.doc.values.Make(n)
	if err != nil {
		return memoryError(err)
	}
	copy(items, a.items[:a.count])
	a.items = items
	return nil
}

// Next appends an unset slot and returns it for the caller to fill.
func (a *Array) Next() (*Value, error) {
	if a.count >= MaxArrayLen {
		return nil, fmt.Errorf("%w: array holds %d items", ErrIndexRange, a.count)
	}
	if a.count == len(a.items) {
		if err := a.Reserve(2 * len(a.items)); err != nil {
			return nil, err
		}
	}
	a.count++
	return &a.items[a.count-1], nil
}

// Push appends v.
func (a *Array) Push(v Value) error {
	slot, err := a.Next()
	if err != nil {
		return err
	}
	*slot = v
	return nil
}

// Set stores v at index i, growing the array to cover i. Slots skipped over
// are left unset.
func (a *Array) Set(i int, v Value) error {
	slot, err := a.slot(i)
	if err != nil {
		return err
	}
	*slot = v
	return nil
}

// SetString stores a copy of s at index i.
func (a *Array) SetString(i int, s string) error {
	v, err := a.doc.String(s)
	if err != nil {
		return err
	}
	return a.Set(i, v)
}

// PushString appends a copy of s.
func (a *Array) PushString(s string) error {
	v, err := a.doc.String(s)
	if err != nil {
		return err
	}
	return a.Push(v)
}

func (a *Array) slot(i int) (*Value, error) {
	if i < 0 || i >= MaxArrayLen {
		return nil, fmt.Errorf("%w: %d", ErrIndexRange, i)
	}
	if i >= len(a.items) {
		if err := a.Reserve(max(2*len(a.items), i+1)); err != nil {
			return nil, err
		}
	}
	if i >= a.count {
		a.count = i + 1
	}
	return &a.items[i], nil
}

// All iterates over the set slots in index order.
func (a *Array) All() iter.Seq2[int, *Value] {
	return func(yield func(int, *Value) bool) {
		for i := range a.count {
			if a.items[i].kind == KindUnset {
				continue
			}
			if !yield(i, &a.items[i]) {
				return
			}
		}
	}
}

// Index reads the value at index i of a as T.
func Index[T Payload](a *Array, i int) (T, bool) {
	return As[T](a.Get(i))
}
