package document

import (
	"fmt"
	"slices"
	"testing"
)

func newTestObject(t *testing.T, d *Document) *Object {
	t.Helper()
	v, err := d.NewObject(0)
	if err != nil {
		t.Fatalf("NewObject() error = %v", err)
	}
	o, _ := v.Object()
	return o
}

// collidingKeys returns n distinct keys whose home bucket is the same for a
// table of the given capacity.
func collidingKeys(t *testing.T, capacity, n int) []string {
	t.Helper()
	buckets := make(map[uint32][]string)
	for i := range 10000 {
		k := fmt.Sprintf("key%d", i)
		b := hash(k) % uint32(capacity)
		buckets[b] = append(buckets[b], k)
		if len(buckets[b]) == n {
			return buckets[b]
		}
	}
	t.Fatalf("no %d colliding keys found", n)
	return nil
}

func TestHashOneAtATime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want uint32
	}{
		{key: "", want: 0},
		{key: "a", want: 0xca2e9442},
		{key: "The quick brown fox jumps over the lazy dog", want: 0x519e91f5},
	}

	for _, tt := range tests {
		if got := hash(tt.key); got != tt.want {
			t.Errorf("hash(%q) = %#x, want %#x", tt.key, got, tt.want)
		}
		if got := hash([]byte(tt.key)); got != tt.want {
			t.Errorf("hash([]byte(%q)) = %#x, want %#x", tt.key, got, tt.want)
		}
	}
}

func TestObjectSetGet(t *testing.T) {
	t.Parallel()

	o := newTestObject(t, New())
	if err := o.Set("a", NewInt64(1)); err != nil {
		t.Fatal(err)
	}
	if err := o.SetString("b", "two"); err != nil {
		t.Fatal(err)
	}
	if err := o.Set("a", NewInt64(3)); err != nil {
		t.Fatal(err)
	}

	if o.Len() != 2 {
		t.Errorf("Len() = %d, want 2", o.Len())
	}
	if got, _ := Field[int64](o, "a"); got != 3 {
		t.Errorf("a = %d, want 3", got)
	}
	if got, _ := Field[string](o, "b"); got != "two" {
		t.Errorf("b = %q, want two", got)
	}
	if o.Get("c") != nil || o.Has("c") {
		t.Error("missing key reported present")
	}
}

func TestObjectSetCopiesKey(t *testing.T) {
	t.Parallel()

	o := newTestObject(t, New())
	key := []byte("name")
	if _, err := slotFor(o, key); err != nil {
		t.Fatal(err)
	}
	key[0] = 'g'

	if find(o, "name") == nil {
		t.Fatal("key was not copied on insert")
	}
	if find(o, "game") != nil {
		t.Error("entry aliases caller key")
	}
}

func TestObjectDuplicateKeyReusesEntry(t *testing.T) {
	t.Parallel()

	o := newTestObject(t, New())
	_ = o.Set("k", NewUint64(1))
	first := find(o, "k")
	_ = o.Set("k", NewUint64(2))

	if find(o, "k") != first {
		t.Error("overwrite moved the entry")
	}
	if o.Len() != 1 {
		t.Errorf("Len() = %d, want 1", o.Len())
	}
}

func TestObjectDeleteKeepsProbeChain(t *testing.T) {
	t.Parallel()

	o := newTestObject(t, New())
	keys := collidingKeys(t, o.Cap(), 3)
	a, b, c := keys[0], keys[1], keys[2]

	_ = o.Set(a, NewUint64(1))
	_ = o.Set(b, NewUint64(2))

	if !o.Delete(a) {
		t.Fatalf("Delete(%q) = false", a)
	}
	if o.Delete(a) {
		t.Fatalf("second Delete(%q) = true", a)
	}
	if o.Get(a) != nil {
		t.Fatalf("Get(%q) after delete returned a value", a)
	}

	// b sits after the tombstone in the probe sequence.
	if got, ok := Field[uint64](o, b); !ok || got != 2 {
		t.Fatalf("Get(%q) = %d, %v, want 2, true", b, got, ok)
	}

	// A new key with the same home bucket reclaims the tombstone.
	home := hash(a) % uint32(o.Cap())
	_ = o.Set(c, NewUint64(3))
	if e := &o.entries[home]; e.state != entryLive || string(e.key) != c {
		t.Errorf("bucket %d holds %q (state %d), want %q", home, e.key, e.state, c)
	}
	if o.Len() != 2 {
		t.Errorf("Len() = %d, want 2", o.Len())
	}
}

func TestObjectDeleteThenReinsert(t *testing.T) {
	t.Parallel()

	o := newTestObject(t, New())
	_ = o.Set("k", NewUint64(1))
	o.Delete("k")
	if err := o.Set("k", NewUint64(9)); err != nil {
		t.Fatal(err)
	}

	if got, ok := Field[uint64](o, "k"); !ok || got != 9 {
		t.Errorf("k = %d, %v, want 9, true", got, ok)
	}
	if o.Len() != 1 {
		t.Errorf("Len() = %d, want 1", o.Len())
	}
}

func TestObjectSetUnsetDeletes(t *testing.T) {
	t.Parallel()

	d := New()
	root, _ := d.NewObject(0)
	o, _ := root.Object()
	_ = o.Set("keep", NewBool(true))
	_ = o.Set("drop", NewUint64(1))

	if err := o.Set("drop", Value{}); err != nil {
		t.Fatalf("Set(Unset) error = %v", err)
	}
	if err := o.Set("never", Value{}); err != nil {
		t.Fatalf("Set(Unset) on absent key error = %v", err)
	}
	if o.Has("drop") || o.Has("never") {
		t.Error("unset keys still present")
	}
	if o.Len() != 1 {
		t.Errorf("Len() = %d, want 1", o.Len())
	}
	if got := ToString(&root, 0); got != `{"keep":true}` {
		t.Errorf("ToString() = %s", got)
	}
}

func TestObjectInsertLocatesExistingKeyPastTombstone(t *testing.T) {
	t.Parallel()

	o := newTestObject(t, New())
	keys := collidingKeys(t, o.Cap(), 2)
	a, b := keys[0], keys[1]

	_ = o.Set(a, NewUint64(1))
	_ = o.Set(b, NewUint64(2))
	o.Delete(a)

	// b must be overwritten in place, not inserted again into a's tombstone.
	_ = o.Set(b, NewUint64(3))
	if o.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", o.Len())
	}
	n := 0
	for k := range o.Keys() {
		if k == b {
			n++
		}
	}
	if n != 1 {
		t.Errorf("key %q appears %d times", b, n)
	}
}

func TestObjectResizeOnFullCycle(t *testing.T) {
	t.Parallel()

	o := newTestObject(t, New())
	for i := range MinObjectCapacity {
		_ = o.Set(fmt.Sprintf("k%d", i), NewInt64(int64(i)))
	}
	if o.Cap() != MinObjectCapacity {
		t.Fatalf("Cap() with full table = %d, want %d", o.Cap(), MinObjectCapacity)
	}

	_ = o.Set("extra", NewNull())
	if o.Cap() != 2*MinObjectCapacity {
		t.Fatalf("Cap() after overflow = %d, want %d", o.Cap(), 2*MinObjectCapacity)
	}
	for i := range MinObjectCapacity {
		if got, ok := Field[int64](o, fmt.Sprintf("k%d", i)); !ok || got != int64(i) {
			t.Errorf("k%d = %d, %v after resize", i, got, ok)
		}
	}
	if o.Get("extra").Kind() != KindNull {
		t.Error("extra missing after resize")
	}
}

func TestObjectFullTableReusesTombstone(t *testing.T) {
	t.Parallel()

	o := newTestObject(t, New())
	for i := range MinObjectCapacity {
		_ = o.Set(fmt.Sprintf("k%d", i), NewInt64(int64(i)))
	}
	o.Delete("k3")
	_ = o.Set("new", NewBool(true))

	if o.Cap() != MinObjectCapacity {
		t.Errorf("Cap() = %d, want %d", o.Cap(), MinObjectCapacity)
	}
	if o.Len() != MinObjectCapacity {
		t.Errorf("Len() = %d, want %d", o.Len(), MinObjectCapacity)
	}
	if o.Get("missing") != nil {
		t.Error("lookup of missing key in full table returned a value")
	}
}

func TestObjectResizeDropsTombstones(t *testing.T) {
	t.Parallel()

	o := newTestObject(t, New())
	for i := range MinObjectCapacity {
		_ = o.Set(fmt.Sprintf("k%d", i), NewInt64(int64(i)))
	}
	for i := range 4 {
		o.Delete(fmt.Sprintf("k%d", i))
	}
	if err := o.Reserve(64); err != nil {
		t.Fatal(err)
	}

	for _, e := range o.entries {
		if e.state == entryTombstone {
			t.Fatal("tombstone survived resize")
		}
	}
	keys := slices.Sorted(o.Keys())
	want := []string{"k4", "k5", "k6", "k7"}
	if !slices.Equal(keys, want) {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}
}

func TestObjectManyKeys(t *testing.T) {
	t.Parallel()

	o := newTestObject(t, New())
	for i := range 500 {
		_ = o.Set(fmt.Sprintf("key-%d", i), NewInt64(int64(i)))
	}
	for i := 0; i < 500; i += 2 {
		o.Delete(fmt.Sprintf("key-%d", i))
	}
	if o.Len() != 250 {
		t.Fatalf("Len() = %d, want 250", o.Len())
	}
	for i := range 500 {
		v := o.Get(fmt.Sprintf("key-%d", i))
		if (i%2 == 0) != (v == nil) {
			t.Fatalf("key-%d presence = %v", i, v != nil)
		}
	}
}
