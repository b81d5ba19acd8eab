// Package timelanetest provides a recording Logger for tests of code
// instrumented with package timelane.
package timelanetest

import (
	"fmt"
	"sync"

	"github.com/timelane-tools/timelane-go/pkg/timelane"
	"github.com/timelane-tools/timelane-go/pkg/version"
	"github.com/timelane-tools/timelane-go/pkg/wire"
)

// Entry is one recorded record with its decoded fields.
type Entry struct {
	wire.Fields

	Record timelane.Record
}

// NewEntry decodes a record into an Entry.
func NewEntry(r timelane.Record) Entry {
	return Entry{Fields: wire.Decode(r.Message), Record: r}
}

// SignpostType returns the record kind name: "begin", "event" or "end".
func (e Entry) SignpostType() string { return e.Record.Kind.String() }

// Message returns the raw record text.
func (e Entry) Message() string { return e.Record.Message }

// IsVersion reports whether the entry is the version handshake.
func (e Entry) IsVersion() bool {
	_, ok := e.Version()
	return ok && e.Record.SignpostID == timelane.SignpostExclusive
}

// OutputTLDR summarizes an event entry as "<type>, <subscription>, <value>".
func (e Entry) OutputTLDR() string {
	typ, _ := e.Type()
	sub, _ := e.Subscription()
	val, _ := e.Value()
	return typ + ", " + sub + ", " + val
}

// RecordType returns the manifest record type the entry should follow.
func (e Entry) RecordType() string {
	switch e.Record.Kind {
	case timelane.KindBegin:
		return "begin"
	case timelane.KindEnd:
		return "end"
	default:
		if e.Record.SignpostID == timelane.SignpostExclusive {
			return "version"
		}
		return "event"
	}
}

// CheckLayout returns an error if the entry's fields are not in the order
// the manifest prescribes for its record type.
func (e Entry) CheckLayout(m *version.Manifest) error {
	layout, ok := m.Layout(e.RecordType())
	if !ok {
		return fmt.Errorf("manifest %d has no %q layout", m.Version, e.RecordType())
	}
	if kind := e.Record.Kind.String(); layout.Kind != kind {
		return fmt.Errorf("%s record emitted as %s, manifest wants %s", e.RecordType(), kind, layout.Kind)
	}
	if keys := wire.Keys(e.Record.Message); !layout.Matches(keys) {
		return fmt.Errorf("%s record has fields %v, manifest wants %v", e.RecordType(), keys, layout.Fields)
	}
	return nil
}

// Recorder is a Logger that keeps every record it receives.
// It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Log records the entry.
func (r *Recorder) Log(record timelane.Record) {
	entry := NewEntry(record)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

// Entries returns a copy of the recorded entries in arrival order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Reset discards all recorded entries.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// ForSubscription returns the entries whose signpost ID is id, in order.
func (r *Recorder) ForSubscription(id uint64) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Record.SignpostID == timelane.SignpostID(id) {
			out = append(out, e)
		}
	}
	return out
}

// Compile-time interface satisfaction check.
var _ timelane.Logger = (*Recorder)(nil)
