package signpost

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/timelane-tools/timelane-go/pkg/timelane"
)

// StreamLogger writes records to a stream in CBOR format.
// It is safe for concurrent use from multiple goroutines.
type StreamLogger struct {
	session string
	now     func() time.Time

	mu      sync.Mutex
	w       io.Writer
	closer  io.Closer
	closed  bool
	dropped uint64
}

// NewStreamLogger creates a StreamLogger writing to w with a fresh session
// ID. Close does not close w.
func NewStreamLogger(w io.Writer) *StreamLogger {
	return &StreamLogger{
		session: uuid.New().String(),
		now:     time.Now,
		w:       w,
	}
}

// NewFileStreamLogger creates a StreamLogger that appends to the file at
// path. The file is created with permissions 0644 if it doesn't exist and
// is closed by Close.
func NewFileStreamLogger(path string) (*StreamLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l := NewStreamLogger(f)
	l.closer = f
	return l, nil
}

// Session returns the session ID stamped on every frame.
func (l *StreamLogger) Session() string {
	return l.session
}

// Log writes a frame for the record.
// Encoding errors are counted, not returned: logging must not disrupt the
// instrumented code.
func (l *StreamLogger) Log(record timelane.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	data, err := EncodeFrame(NewFrame(record, l.session, l.now()))
	if err != nil {
		l.dropped++
		return
	}
	if _, err := l.w.Write(data); err != nil {
		l.dropped++
	}
}

// Dropped returns the number of records that could not be written.
func (l *StreamLogger) Dropped() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// Close stops the logger and closes the file it opened, if any.
// It is safe to call Close multiple times. After Close is called,
// subsequent Log calls are silently ignored.
func (l *StreamLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}

	l.closed = true
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ timelane.Logger = (*StreamLogger)(nil)
