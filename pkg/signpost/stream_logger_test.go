package signpost

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/timelane-tools/timelane-go/pkg/timelane"
)

func TestStreamLoggerSession(t *testing.T) {
	l := NewStreamLogger(io.Discard)
	if _, err := uuid.Parse(l.Session()); err != nil {
		t.Errorf("Session() = %q is not a UUID: %v", l.Session(), err)
	}

	other := NewStreamLogger(io.Discard)
	if l.Session() == other.Session() {
		t.Error("two streams share a session ID")
	}
}

func TestStreamLoggerWritesFrames(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStreamLogger(&buf)

	reg := timelane.NewRegistryWithConfig(timelane.Config{DefaultLogger: logger})
	sub := reg.NewSubscription(timelane.WithName("Downloads"))
	sub.Begin("")
	sub.Event(timelane.ValueEvent("chunk"), "")
	sub.End(timelane.EndCompleted)

	frames, err := NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}

	if v, _ := frames[0].Fields().Version(); v != "2" {
		t.Errorf("first frame version = %q, want 2", v)
	}
	if name, _ := frames[1].Fields().Subscribe(); name != "Downloads" {
		t.Errorf("begin subscribe = %q, want Downloads", name)
	}
	if val, _ := frames[2].Fields().Value(); val != "chunk" {
		t.Errorf("event value = %q, want chunk", val)
	}
	if frames[3].Kind != timelane.KindEnd {
		t.Errorf("last frame kind = %v, want end", frames[3].Kind)
	}

	for i, f := range frames {
		if f.Session != logger.Session() {
			t.Errorf("frame %d session = %q, want %q", i, f.Session, logger.Session())
		}
		if f.Timestamp.IsZero() {
			t.Errorf("frame %d has no timestamp", i)
		}
	}
}

func TestStreamLoggerIgnoresLogAfterClose(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStreamLogger(&buf)

	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}

	logger.Log(timelane.Record{Message: "version:2"})
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes after Close", buf.Len())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestStreamLoggerCountsDroppedRecords(t *testing.T) {
	logger := NewStreamLogger(failingWriter{})
	logger.Log(timelane.Record{Message: "version:2"})
	logger.Log(timelane.Record{Message: "completion:3###error:"})

	if logger.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", logger.Dropped())
	}
}

func TestFileStreamLoggerAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.tlane")

	logger1, err := NewFileStreamLogger(path)
	if err != nil {
		t.Fatalf("NewFileStreamLogger failed: %v", err)
	}
	logger1.Log(timelane.Record{Kind: timelane.KindBegin, SignpostID: 1, Message: "subscribe:A###source:###id:1"})
	logger1.Close()

	info1, _ := os.Stat(path)

	logger2, err := NewFileStreamLogger(path)
	if err != nil {
		t.Fatalf("NewFileStreamLogger second open failed: %v", err)
	}
	logger2.Log(timelane.Record{Kind: timelane.KindBegin, SignpostID: 2, Message: "subscribe:B###source:###id:2"})
	logger2.Close()

	info2, _ := os.Stat(path)
	if info2.Size() <= info1.Size() {
		t.Errorf("file did not grow: size before=%d, size after=%d", info1.Size(), info2.Size())
	}

	reader, err := OpenReader(path)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer reader.Close()

	frames, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[0].Session == frames[1].Session {
		t.Error("frames from two loggers share a session")
	}
	if frames[1].SignpostID != 2 {
		t.Errorf("second frame SignpostID = %d, want 2", frames[1].SignpostID)
	}
}

func TestFileStreamLoggerBadPath(t *testing.T) {
	_, err := NewFileStreamLogger(filepath.Join(t.TempDir(), "missing", "capture.tlane"))
	if err == nil {
		t.Error("NewFileStreamLogger should fail for a missing directory")
	}
}

func TestStreamLoggerThreadSafe(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStreamLogger(&buf)
	reg := timelane.NewRegistryWithConfig(timelane.Config{DefaultLogger: logger})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := reg.NewSubscription()
			for j := 0; j < 50; j++ {
				sub.Event(timelane.ValueEvent("v"), "")
			}
		}()
	}
	wg.Wait()

	frames, err := NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(frames) != 501 {
		t.Errorf("got %d frames, want 501", len(frames))
	}
}
