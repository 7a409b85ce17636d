// Package document implements an arena-backed JSON document: a tree of
// tagged Values with growable arrays and open-addressing objects, a
// recursive-descent parser and a two-pass serializer.
//
// Every node, string, array slot and object entry of a document lives in
// arenas owned by a Document. Pointers obtained from a document are valid
// until its next Parse, Reset or Free. A Document is not safe for concurrent
// use; callers sharing one must serialize whole parse, mutate and serialize
// calls.
package document

import (
	"time"

	"github.com/jacoelho/jdoc/internal/arena"
	"github.com/jacoelho/jdoc/internal/observability"
)

// DefaultBlockSize is the element count of the first block of each arena.
const DefaultBlockSize = 1024

type options struct {
	blockSize int
	maxBlocks int
	hooks     observability.Hooks
}

// Option configures a Document.
type Option func(*options)

// WithBlockSize sets the element count of the first block of each arena.
func WithBlockSize(n int) Option {
	return func(o *options) { o.blockSize = n }
}

// WithMaxBlocks limits the blocks each arena may own. Exceeding the limit
// fails the current parse or mutation with ErrMemory. Zero means unlimited.
func WithMaxBlocks(n int) Option {
	return func(o *options) { o.maxBlocks = n }
}

// WithHooks sets the instrumentation hooks.
func WithHooks(h observability.Hooks) Option {
	return func(o *options) {
		if h != nil {
			o.hooks = h
		}
	}
}

// Document owns the arenas backing one value tree.
type Document struct {
	strings *arena.Arena[byte]
	values  *arena.Arena[Value]
	entries *arena.Arena[entry]
	arrays  *arena.Arena[Array]
	objects *arena.Arena[Object]

	root    Value
	hooks   observability.Hooks
	scratch []byte
}

// New creates an empty document.
func New(opts ...Option) *Document {
	o := options{
		blockSize: DefaultBlockSize,
		hooks:     observability.Noop{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Document{
		strings: arena.NewBytes(o.blockSize, o.maxBlocks),
		values:  arena.New[Value](o.blockSize, o.maxBlocks),
		entries: arena.New[entry](o.blockSize, o.maxBlocks),
		arrays:  arena.New[Array](o.blockSize, o.maxBlocks),
		objects: arena.New[Object](o.blockSize, o.maxBlocks),
		root:    NewNull(),
		hooks:   o.hooks,
	}
}

// Root returns the root value of the document.
func (d *Document) Root() *Value {
	return &d.root
}

// SetRoot replaces the root value.
func (d *Document) SetRoot(v Value) {
	d.root = v
}

// Parse discards the current tree and parses src into a new one. The
// returned value is the document root: either the parsed tree or an
// Error-kind value. src is not retained.
func (d *Document) Parse(src []byte) *Value {
	start := time.Now()
	d.Reset()

	d.root = d.parse(src)

	d.hooks.OnParse(observability.ParseEvent{
		Bytes:       len(src),
		Duration:    time.Since(start),
		Err:         d.root.Err(),
		ArenaBlocks: d.blocks(),
	})
	return &d.root
}

// Reset discards the tree and rewinds every arena, keeping their blocks.
func (d *Document) Reset() {
	d.strings.Reset()
	d.values.Reset()
	d.entries.Reset()
	d.arrays.Reset()
	d.objects.Reset()
	d.root = NewNull()
}

// Free discards the tree and releases every arena block.
func (d *Document) Free() {
	d.strings.Free()
	d.values.Free()
	d.entries.Free()
	d.arrays.Free()
	d.objects.Free()
	d.root = NewNull()
	d.scratch = nil
}

// String returns a String value holding a copy of s in the document arena.
func (d *Document) String(s string) (Value, error) {
	b, err := arena.DupString(d.strings, s)
	if err != nil {
		return Value{}, memoryError(err)
	}
	return Value{kind: KindString, str: b}, nil
}

// SetString stores a copy of s in v.
func (d *Document) SetString(v *Value, s string) error {
	nv, err := d.String(s)
	if err != nil {
		return err
	}
	*v = nv
	return nil
}

// NewArray returns an Array value with room for at least capacity items.
func (d *Document) NewArray(capacity int) (Value, error) {
	a, err := d.newArray(capacity)
	if err != nil {
		return Value{}, err
	}
	return Value{kind: KindArray, arr: a}, nil
}

// NewObject returns an Object value with at least capacity buckets.
func (d *Document) NewObject(capacity int) (Value, error) {
	o, err := d.newObject(capacity)
	if err != nil {
		return Value{}, err
	}
	return Value{kind: KindObject, obj: o}, nil
}

func (d *Document) newArray(capacity int) (*Array, error) {
	a, err := d.arrays.New()
	if err != nil {
		return nil, memoryError(err)
	}
	a.doc = d
	if err := a.Reserve(capacity); err != nil {
		return nil, err
	}
	return a, nil
}

func (d *Document) newObject(capacity int) (*Object, error) {
	o, err := d.objects.New()
	if err != nil {
		return nil, memoryError(err)
	}
	o.doc = d
	if err := o.Reserve(capacity); err != nil {
		return nil, err
	}
	return o, nil
}

// ArenaUsage reports the state of one document arena in elements.
type ArenaUsage struct {
	Name   string
	Blocks int
	Used   int
	Cap    int
}

// Usage reports the state of every arena of the document.
func (d *Document) Usage() []ArenaUsage {
	return []ArenaUsage{
		{Name: "strings", Blocks: d.strings.Blocks(), Used: d.strings.Used(), Cap: d.strings.Cap()},
		{Name: "values", Blocks: d.values.Blocks(), Used: d.values.Used(), Cap: d.values.Cap()},
		{Name: "entries", Blocks: d.entries.Blocks(), Used: d.entries.Used(), Cap: d.entries.Cap()},
		{Name: "arrays", Blocks: d.arrays.Blocks(), Used: d.arrays.Used(), Cap: d.arrays.Cap()},
		{Name: "objects", Blocks: d.objects.Blocks(), Used: d.objects.Used(), Cap: d.objects.Cap()},
	}
}

func (d *Document) blocks() int {
	n := 0
	for _, u := range d.Usage() {
		n += u.Blocks
	}
	return n
}
