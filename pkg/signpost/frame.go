package signpost

import (
	"time"

	"github.com/timelane-tools/timelane-go/pkg/timelane"
	"github.com/timelane-tools/timelane-go/pkg/wire"
)

// Frame is one record as written to a signpost stream.
// CBOR encoding uses integer keys for compactness.
type Frame struct {
	// Timestamp when the record was logged (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Session identifies the stream the frame was written to (UUID).
	Session string `cbor:"2,keyasint"`

	// Kind is the signpost kind (begin, event, end).
	Kind timelane.Kind `cbor:"3,keyasint"`

	// Subsystem and Category identify the logging channel.
	Subsystem string `cbor:"4,keyasint,omitempty"`
	Category  string `cbor:"5,keyasint,omitempty"`

	// Name is the signpost name.
	Name string `cbor:"6,keyasint,omitempty"`

	// SignpostID correlates frames of one subscription.
	SignpostID uint64 `cbor:"7,keyasint"`

	// Message is the wire-format record text.
	Message string `cbor:"8,keyasint"`
}

// NewFrame builds the frame for a record.
func NewFrame(r timelane.Record, session string, ts time.Time) Frame {
	return Frame{
		Timestamp:  ts,
		Session:    session,
		Kind:       r.Kind,
		Subsystem:  r.Channel.Subsystem,
		Category:   r.Channel.Category,
		Name:       r.Name,
		SignpostID: uint64(r.SignpostID),
		Message:    r.Message,
	}
}

// Record returns the record the frame was built from.
func (f Frame) Record() timelane.Record {
	return timelane.Record{
		Kind:       f.Kind,
		Channel:    timelane.Channel{Subsystem: f.Subsystem, Category: f.Category},
		Name:       f.Name,
		SignpostID: timelane.SignpostID(f.SignpostID),
		Message:    f.Message,
	}
}

// Fields decodes the frame's record text.
func (f Frame) Fields() wire.Fields {
	return wire.Decode(f.Message)
}
