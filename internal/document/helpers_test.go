package document

import (
	"errors"

	"github.com/jacoelho/jdoc/internal/observability"
)

type recorder struct {
	parses         []observability.ParseEvent
	serializations []observability.SerializeEvent
}

func (r *recorder) OnParse(e observability.ParseEvent) { r.parses = append(r.parses, e) }
func (r *recorder) OnSerialize(e observability.SerializeEvent) { r.serializations = append(r.serializations, e) }

var errNotFound = errors.New("not found")

// memFiles is an in-memory FileReader and FileWriter.
type memFiles map[string][]byte

func (m memFiles) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, errNotFound
	}
	return data, nil
}

func (m memFiles) WriteFile(path string, data []byte) error {
	m[path] = append([]byte(nil), data...)
	return nil
}
