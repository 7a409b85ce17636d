// Package arena provides bump allocators that hand out slices carved from a
// list of large blocks. Individual allocations are never freed; the whole
// arena is rewound with Reset or released with Free.
package arena

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

const (
	// DefaultBlockSize is the element count of the first block when none is configured.
	DefaultBlockSize = 4096

	// MaxAlign is the natural maximum alignment used by byte arenas.
	MaxAlign = 8
)

var (
	ErrExhausted        = errors.New("arena: block limit reached")
	ErrInvalidAlignment = errors.New("arena: alignment must be a power of two")
	ErrInvalidSize      = errors.New("arena: invalid allocation size")
)

type block[T any] struct {
	data []T
	used int
}

// Arena is a bump allocator for values of type T.
// Slices returned by Alloc stay valid until Reset or Free is called.
// An Arena is not safe for concurrent use.
type Arena[T any] struct {
	blocks    []block[T]
	cur       int
	blockSize int
	maxBlocks int
	align     int
}

// New creates an arena whose first block holds blockSize elements.
// maxBlocks limits the number of blocks the arena may own (0 = unlimited).
func New[T any](blockSize, maxBlocks int) *Arena[T] {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if maxBlocks < 0 {
		maxBlocks = 0
	}
	return &Arena[T]{
		blockSize: blockSize,
		maxBlocks: maxBlocks,
		align:     1,
	}
}

// NewBytes creates a byte arena whose default alignment is MaxAlign.
func NewBytes(blockSize, maxBlocks int) *Arena[byte] {
	a := New[byte](blockSize, maxBlocks)
	a.align = MaxAlign
	return a
}

// Alloc returns a zeroed slice of n elements whose offset within its block is
// a multiple of align. An align of 0 selects the arena default.
func (a *Arena[T]) Alloc(n, align int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	if align == 0 {
		align = a.align
	}
	if align < 0 || bits.OnesCount(uint(align)) != 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAlignment, align)
	}

	if len(a.blocks) == 0 {
		if err := a.grow(max(a.blockSize, n)); err != nil {
			return nil, err
		}
	}

	for {
		b := &a.blocks[a.cur]
		off := alignUp(b.used, align)
		if off <= len(b.data) && n <= len(b.data)-off {
			b.used = off + n
			s := b.data[off : off+n : off+n]
			clear(s)
			return s, nil
		}
		if err := a.advance(n + align - 1); err != nil {
			return nil, err
		}
	}
}

// Make allocates n elements at the default alignment.
func (a *Arena[T]) Make(n int) ([]T, error) {
	return a.Alloc(n, 0)
}

// New allocates a single zeroed element and returns a pointer to it.
func (a *Arena[T]) New() (*T, error) {
	s, err := a.Alloc(1, 0)
	if err != nil {
		return nil, err
	}
	return &s[0], nil
}

// advance moves to a block that can hold need elements, reusing blocks kept
// by a previous Reset when they are large enough.
func (a *Arena[T]) advance(need int) error {
	next := a.cur + 1
	if next < len(a.blocks) {
		if len(a.blocks[next].data) < need {
			a.blocks[next].data = make([]T, need)
		}
		a.blocks[next].used = 0
		a.cur = next
		return nil
	}

	last := len(a.blocks[a.cur].data)
	size := last * 2
	if last > math.MaxInt/2 || size < need {
		size = need
	}
	return a.grow(size)
}

func (a *Arena[T]) grow(size int) error {
	if a.maxBlocks > 0 && len(a.blocks) >= a.maxBlocks {
		return fmt.Errorf("%w: %d blocks", ErrExhausted, len(a.blocks))
	}
	a.blocks = append(a.blocks, block[T]{data: make([]T, size)})
	a.cur = len(a.blocks) - 1
	return nil
}

// Reset rewinds the arena to its first block. Blocks are kept for reuse.
func (a *Arena[T]) Reset() {
	for i := range a.blocks {
		a.blocks[i].used = 0
	}
	a.cur = 0
}

// Free releases every block.
func (a *Arena[T]) Free() {
	a.blocks = nil
	a.cur = 0
}

// Blocks returns the number of blocks owned by the arena.
func (a *Arena[T]) Blocks() int {
	return len(a.blocks)
}

// Used returns the number of elements handed out since the last Reset,
// including alignment padding.
func (a *Arena[T]) Used() int {
	n := 0
	for i := 0; i <= a.cur && i < len(a.blocks); i++ {
		n += a.blocks[i].used
	}
	return n
}

// Cap returns the total element capacity of all blocks.
func (a *Arena[T]) Cap() int {
	n := 0
	for _, b := range a.blocks {
		n += len(b.data)
	}
	return n
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
