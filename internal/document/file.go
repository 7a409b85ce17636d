package document

import (
	"time"

	"github.com/jacoelho/jdoc/internal/observability"
)

// FileReader loads a whole file into memory.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// FileWriter persists a whole buffer to a file.
type FileWriter interface {
	WriteFile(path string, data []byte) error
}

// ParseFile reads path through r and parses its contents. Any read failure
// yields an Error-kind root with ErrFile; callers needing the cause should
// call r directly.
func (d *Document) ParseFile(r FileReader, path string) *Value {
	start := time.Now()
	data, err := r.ReadFile(path)
	if err != nil {
		d.Reset()
		d.root = NewError(ErrFile)
		d.hooks.OnParse(observability.ParseEvent{
			Duration:    time.Since(start),
			Err:         ErrFile,
			ArenaBlocks: d.blocks(),
		})
		return &d.root
	}
	return d.Parse(data)
}

// ToFile renders v and writes it to path through w.
func (d *Document) ToFile(w FileWriter, path string, v *Value, indent int) error {
	return w.WriteFile(path, d.Marshal(v, indent))
}
