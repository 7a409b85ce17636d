package document

import (
	"iter"

	"github.com/jacoelho/jdoc/internal/arena"
)

// MinObjectCapacity is the smallest bucket count an object allocates.
const MinObjectCapacity = 8

type entryState uint8

const (
	entryEmpty entryState = iota
	entryLive
	entryTombstone
)

type entry struct {
	key   []byte
	state entryState
	value Value
}

// Object maps string keys to values with open addressing and linear
// probing. Deleted entries become tombstones: lookups probe past them and
// inserts reuse them. The table doubles only when a probe wraps around
// without finding an empty or reusable slot.
//
// Iteration and serialization follow bucket order, which depends on the
// hash, the capacity history and deletions, not on insertion order.
type Object struct {
	entries []entry
	count   int
	doc     *Document
}

// key is the set of key representations accepted by the probing code.
type key interface {
	~string | ~[]byte
}

// hash is Bob Jenkins' one-at-a-time hash.
func hash[K key](k K) uint32 {
	var h uint32
	for i := 0; i < len(k); i++ {
		h += uint32(k[i])
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}

// Len returns the number of live entries.
func (o *Object) Len() int {
	return o.count
}

// Cap returns the number of buckets.
func (o *Object) Cap() int {
	return len(o.entries)
}

// Reserve grows the table to at least n buckets.
func (o *Object) Reserve(n int) error {
	n = max(n, MinObjectCapacity)
	if n <= len(o.entries) {
		return nil
	}
	return o.resize(n)
}

// Get returns the value stored under k, or nil.
func (o *Object) Get(k string) *Value {
	e := find(o, k)
	if e == nil || e.value.kind == KindUnset {
		return nil
	}
	return &e.value
}

// Has reports whether k is present.
func (o *Object) Has(k string) bool {
	return o.Get(k) != nil
}

// Set stores v under k. The key is copied into the arena on first insert;
// later sets overwrite the value in place. Setting an Unset value deletes k.
func (o *Object) Set(k string, v Value) error {
	if v.kind == KindUnset {
		o.Delete(k)
		return nil
	}
	slot, err := slotFor(o, k)
	if err != nil {
		return err
	}
	*slot = v
	return nil
}

// SetString stores a copy of s under k.
func (o *Object) SetString(k, s string) error {
	v, err := o.doc.String(s)
	if err != nil {
		return err
	}
	return o.Set(k, v)
}

// Delete removes k and reports whether it was present.
func (o *Object) Delete(k string) bool {
	e := find(o, k)
	if e == nil {
		return false
	}
	*e = entry{state: entryTombstone}
	o.count--
	return true
}

// All iterates over live entries in bucket order. The key string is a copy.
func (o *Object) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		for i := range o.entries {
			e := &o.entries[i]
			if e.state != entryLive {
				continue
			}
			if !yield(string(e.key), &e.value) {
				return
			}
		}
	}
}

// Keys iterates over live keys in bucket order.
func (o *Object) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range o.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Field reads the value stored under k in o as T.
func Field[T Payload](o *Object, k string) (T, bool) {
	return As[T](o.Get(k))
}

// slotFor returns the value slot for k, creating a live entry with an
// arena copy of the key when k is new.
func slotFor[K key](o *Object, k K) (*Value, error) {
	if o.doc == nil {
		return nil, ErrNotCreated
	}
	if len(o.entries) == 0 {
		if err := o.Reserve(MinObjectCapacity); err != nil {
			return nil, err
		}
	}

	e, err := entryFor(o, k)
	if err != nil {
		return nil, err
	}
	if e.state != entryLive {
		owned, err := dupKey(o.doc.strings, k)
		if err != nil {
			return nil, memoryError(err)
		}
		*e = entry{key: owned, state: entryLive}
		o.count++
	}
	return &e.value, nil
}

func dupKey[K key](a *arena.Arena[byte], k K) ([]byte, error) {
	dst, err := a.Alloc(len(k), 1)
	if err != nil {
		return nil, err
	}
	for i := range dst {
		dst[i] = k[i]
	}
	return dst, nil
}

// entryFor probes for k. It returns the live entry holding k, otherwise the
// first tombstone seen, otherwise the empty slot that ended the probe. A
// probe that wraps around with neither doubles the table and starts over.
func entryFor[K key](o *Object, k K) (*entry, error) {
	for {
		n := uint32(len(o.entries))
		start := hash(k) % n
		tomb := -1

		i := start
		for {
			e := &o.entries[i]
			switch e.state {
			case entryEmpty:
				if tomb >= 0 {
					return &o.entries[tomb], nil
				}
				return e, nil
			case entryTombstone:
				if tomb < 0 {
					tomb = int(i)
				}
			case entryLive:
				if string(e.key) == string(k) {
					return e, nil
				}
			}

			i = (i + 1) % n
			if i == start {
				break
			}
		}

		if tomb >= 0 {
			return &o.entries[tomb], nil
		}
		if err := o.resize(2 * len(o.entries)); err != nil {
			return nil, err
		}
	}
}

// find probes for a live entry holding k without modifying the table.
func find[K key](o *Object, k K) *entry {
	n := uint32(len(o.entries))
	if n == 0 {
		return nil
	}

	start := hash(k) % n
	i := start
	for {
		e := &o.entries[i]
		switch e.state {
		case entryEmpty:
			return nil
		case entryLive:
			if string(e.key) == string(k) {
				return e
			}
		}

		i = (i + 1) % n
		if i == start {
			return nil
		}
	}
}

// resize moves every live entry into a new table of n buckets. Tombstones
// are dropped.
func (o *Object) resize(n int) error {
	if o.doc == nil {
		return ErrNotCreated
	}
	entries, err := o.doc.entries.Make(n)
	if err != nil {
		return memoryError(err)
	}

	size := uint32(n)
	for _, e := range o.entries {
		if e.state != entryLive {
			continue
		}
		i := hash(e.key) % size
		for entries[i].state != entryEmpty {
			i = (i + 1) % size
		}
		entries[i] = e
	}
	o.entries = entries
	return nil
}
