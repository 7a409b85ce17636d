package document

import (
	"errors"
	"testing"
)

func newTestArray(t *testing.T, d *Document) *Array {
	t.Helper()
	v, err := d.NewArray(0)
	if err != nil {
		t.Fatalf("NewArray() error = %v", err)
	}
	a, _ := v.Array()
	return a
}

func TestArraySetGrows(t *testing.T) {
	t.Parallel()

	a := newTestArray(t, New())
	if err := a.Set(100, NewInt64(7)); err != nil {
		t.Fatalf("Set(100) error = %v", err)
	}

	if a.Len() != 101 {
		t.Errorf("Len() = %d, want 101", a.Len())
	}
	if a.Cap() < 101 {
		t.Errorf("Cap() = %d, want >= 101", a.Cap())
	}
	if got, ok := Index[int64](a, 100); !ok || got != 7 {
		t.Errorf("Get(100) = %d, %v, want 7, true", got, ok)
	}
	for i := range 100 {
		if a.Get(i) != nil {
			t.Fatalf("Get(%d) = %v, want absent", i, a.Get(i).Interface())
		}
	}
	if a.Get(101) != nil || a.Get(-1) != nil {
		t.Error("out of range Get returned a value")
	}
}

func TestArraySetKeepsEarlierItems(t *testing.T) {
	t.Parallel()

	a := newTestArray(t, New())
	for i := range 3 {
		if err := a.Push(NewUint64(uint64(i))); err != nil {
			t.Fatal(err)
		}
	}
	if err := a.Set(50, NewBool(true)); err != nil {
		t.Fatal(err)
	}
	if err := a.Set(1, NewNull()); err != nil {
		t.Fatal(err)
	}

	want := []any{uint64(0), nil, uint64(2)}
	for i, w := range want {
		if got := a.Get(i).Interface(); got != w {
			t.Errorf("Get(%d) = %v, want %v", i, got, w)
		}
	}
	if a.Get(1).Kind() != KindNull {
		t.Error("Get(1) is not null")
	}
	if a.Len() != 51 {
		t.Errorf("Len() = %d, want 51", a.Len())
	}
}

func TestArrayPushGrowth(t *testing.T) {
	t.Parallel()

	a := newTestArray(t, New())
	if a.Cap() != MinArrayCapacity {
		t.Fatalf("initial Cap() = %d, want %d", a.Cap(), MinArrayCapacity)
	}

	for i := range 1000 {
		if err := a.Push(NewInt64(int64(i))); err != nil {
			t.Fatalf("Push(%d) error = %v", i, err)
		}
	}
	if a.Len() != 1000 || a.Cap() != 1024 {
		t.Errorf("Len() = %d, Cap() = %d, want 1000, 1024", a.Len(), a.Cap())
	}

	sum := int64(0)
	for i, v := range a.All() {
		n, _ := v.Int64()
		if n != int64(i) {
			t.Fatalf("item %d = %d", i, n)
		}
		sum += n
	}
	if sum != 499500 {
		t.Errorf("sum = %d, want 499500", sum)
	}
}

func TestArrayAllSkipsHoles(t *testing.T) {
	t.Parallel()

	a := newTestArray(t, New())
	_ = a.Set(2, NewBool(true))
	_ = a.Set(5, NewBool(false))

	var got []int
	for i := range a.All() {
		got = append(got, i)
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 5 {
		t.Errorf("All() indexes = %v, want [2 5]", got)
	}
}

func TestArrayStrings(t *testing.T) {
	t.Parallel()

	d := New()
	a := newTestArray(t, d)

	name := []byte("caller")
	if err := a.PushString(string(name)); err != nil {
		t.Fatal(err)
	}
	if err := a.SetString(3, "third"); err != nil {
		t.Fatal(err)
	}
	name[0] = 'C'

	if got, _ := Index[string](a, 0); got != "caller" {
		t.Errorf("item 0 = %q, want caller", got)
	}
	if got, _ := Index[string](a, 3); got != "third" {
		t.Errorf("item 3 = %q, want third", got)
	}
}

func TestArrayIndexRange(t *testing.T) {
	t.Parallel()

	a := newTestArray(t, New())
	if err := a.Set(-1, NewNull()); !errors.Is(err, ErrIndexRange) {
		t.Errorf("Set(-1) error = %v, want %v", err, ErrIndexRange)
	}
	if err := a.Set(MaxArrayLen, NewNull()); !errors.Is(err, ErrIndexRange) {
		t.Errorf("Set(MaxArrayLen) error = %v, want %v", err, ErrIndexRange)
	}
}

func TestArrayMemoryLimit(t *testing.T) {
	t.Parallel()

	d := New(WithBlockSize(8), WithMaxBlocks(2))
	a := newTestArray(t, d)

	var err error
	for i := 0; i < 1000 && err == nil; i++ {
		err = a.Push(NewInt64(int64(i)))
	}
	if !errors.Is(err, ErrMemory) {
		t.Fatalf("Push error = %v, want %v", err, ErrMemory)
	}
}

func TestArrayNotCreatedByDocument(t *testing.T) {
	t.Parallel()

	var a Array
	if err := a.Push(NewNull()); !errors.Is(err, ErrNotCreated) {
		t.Errorf("Push on zero Array error = %v, want %v", err, ErrNotCreated)
	}
}
