// Package fileio reads and writes whole files through an afero filesystem.
// Every failure wraps one sentinel from a small closed set so callers can
// branch with errors.Is without inspecting OS errors.
package fileio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jacoelho/jdoc/internal/arena"
)

var (
	ErrOpen     = errors.New("fileio: open failed")
	ErrSeek     = errors.New("fileio: seek failed")
	ErrTell     = errors.New("fileio: tell failed")
	ErrRead     = errors.New("fileio: read failed")
	ErrWrite    = errors.New("fileio: write failed")
	ErrTooLarge = errors.New("fileio: file too large")
	ErrMemory   = errors.New("fileio: out of memory")
)

// DefaultMaxSize is the largest file ReadFile accepts unless overridden.
const DefaultMaxSize = math.MaxUint32

const filePerm = 0o644

// FS reads and writes whole files.
type FS struct {
	fs      afero.Fs
	maxSize int64
	buffers *arena.Arena[byte]
}

// Option configures an FS.
type Option func(*FS)

// WithMaxSize rejects files of n bytes or more with ErrTooLarge.
func WithMaxSize(n int64) Option {
	return func(f *FS) {
		if n > 0 {
			f.maxSize = n
		}
	}
}

// WithArena reads file contents into a instead of the Go heap. Buffers stay
// valid until a is reset.
func WithArena(a *arena.Arena[byte]) Option {
	return func(f *FS) {
		f.buffers = a
	}
}

// New wraps fs.
func New(fs afero.Fs, opts ...Option) *FS {
	f := &FS{fs: fs, maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// OS returns an FS over the host filesystem.
func OS(opts ...Option) *FS {
	return New(afero.NewOsFs(), opts...)
}

// ReadFile loads path into memory.
func (f *FS) ReadFile(path string) ([]byte, error) {
	file, err := f.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	defer file.Close()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSeek, path, err)
	}
	length, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTell, path, err)
	}
	if length >= f.maxSize {
		return nil, fmt.Errorf("%w: %s: %d bytes", ErrTooLarge, path, length)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSeek, path, err)
	}

	buf, err := f.alloc(int(length))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMemory, path, err)
	}
	if _, err := io.ReadFull(file, buf); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	return buf, nil
}

func (f *FS) alloc(n int) ([]byte, error) {
	if f.buffers == nil {
		return make([]byte, n), nil
	}
	return f.buffers.Alloc(n, 1)
}

// WriteFile replaces path with data. The data is written to a temporary
// file in the same directory and renamed over path, so readers never see
// a partial file.
func (f *FS) WriteFile(path string, data []byte) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := afero.TempFile(f.fs, dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	defer func() {
		if err != nil {
			_ = f.fs.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := f.fs.Chmod(tmp.Name(), filePerm); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := f.fs.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}

// ReadAll drains r, used for standard input where seeking is not possible.
func (f *FS) ReadAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, f.maxSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if int64(len(data)) >= f.maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}
	return data, nil
}

// Exists reports whether path names an existing regular file.
func (f *FS) Exists(path string) bool {
	info, err := f.fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
