// Package observability defines the instrumentation hooks a document reports
// to. Hooks are injected per document; there is no process-wide registry.
//
// Implementations must be cheap: hooks run synchronously on the parsing or
// serializing goroutine.
package observability

import "time"

// ParseEvent describes one completed parse.
type ParseEvent struct {
	// Bytes is the size of the input text.
	Bytes int
	// Duration covers tokenizing and tree building.
	Duration time.Duration
	// Err is nil on success, otherwise the document error code.
	Err error
	// ArenaBlocks is the number of arena blocks the document owns afterwards.
	ArenaBlocks int
}

// SerializeEvent describes one completed serialization.
type SerializeEvent struct {
	Bytes    int
	Indent   int
	Duration time.Duration
}

// Hooks receives document events.
type Hooks interface {
	OnParse(ParseEvent)
	OnSerialize(SerializeEvent)
}

// Noop is a Hooks implementation that discards every event.
type Noop struct{}

func (Noop) OnParse(ParseEvent)         {}
func (Noop) OnSerialize(SerializeEvent) {}

// Multi fans events out to several hooks in order.
type Multi []Hooks

func (m Multi) OnParse(e ParseEvent) {
	for _, h := range m {
		h.OnParse(e)
	}
}

func (m Multi) OnSerialize(e SerializeEvent) {
	for _, h := range m {
		h.OnSerialize(e)
	}
}
