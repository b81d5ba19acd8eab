package signpost

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/timelane-tools/timelane-go/pkg/timelane"
)

func TestFrameCBORRoundTrip(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456789, time.UTC)
	original := Frame{
		Timestamp:  ts,
		Session:    "abc12345-def6-7890-abcd-ef1234567890",
		Kind:       timelane.KindEvent,
		Subsystem:  timelane.DefaultChannel.Subsystem,
		Category:   timelane.DefaultChannel.Category,
		Name:       timelane.RecordName,
		SignpostID: 42,
		Message:    "subscription:S###type:Output###value:1###source:###id:42",
	}

	data, err := EncodeFrame(original)
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	decoded, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameExclusiveIDSurvives(t *testing.T) {
	data, err := EncodeFrame(Frame{Kind: timelane.KindEvent, SignpostID: uint64(timelane.SignpostExclusive), Message: "version:2"})
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeFrame(data)
	if err != nil {
		t.Fatal(err)
	}
	if timelane.SignpostID(decoded.SignpostID) != timelane.SignpostExclusive {
		t.Errorf("SignpostID = %x, want exclusive", decoded.SignpostID)
	}
}

func TestFrameEncodingIsDeterministic(t *testing.T) {
	f := Frame{Session: "s", Kind: timelane.KindBegin, Name: "subscriptions", SignpostID: 1, Message: "subscribe:S###source:###id:1"}

	a, err := EncodeFrame(f)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncodeFrame(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("encoding the same frame twice produced different bytes")
	}
}

func TestDecodeFrameInvalid(t *testing.T) {
	if _, err := DecodeFrame([]byte{0xff, 0x00}); err == nil {
		t.Error("DecodeFrame should fail on garbage")
	}
}

func TestFrameRecordRoundTrip(t *testing.T) {
	rec := timelane.Record{
		Kind:       timelane.KindEnd,
		Channel:    timelane.DefaultChannel,
		Name:       timelane.RecordName,
		SignpostID: 9,
		Message:    "completion:2###error:boom",
	}

	f := NewFrame(rec, "session", time.Now())
	if got := f.Record(); got != rec {
		t.Errorf("Record() = %+v, want %+v", got, rec)
	}

	if msg, _ := f.Fields().Error(); msg != "boom" {
		t.Errorf("Fields().Error() = %q, want boom", msg)
	}
}

func TestFrameTimestampIsTagged(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456789, time.UTC)
	data, err := EncodeFrame(Frame{Timestamp: ts})
	if err != nil {
		t.Fatal(err)
	}

	// tag 0, text(30) "2026-01-28T10:15:32.123456789Z"
	want := append([]byte{0xc0, 0x78, 0x1e}, "2026-01-28T10:15:32.123456789Z"...)
	if !bytes.Contains(data, want) {
		t.Errorf("timestamp not encoded as tagged RFC 3339 text: % x", data)
	}
}

func TestDecodeFrameRejectsDuplicateKeys(t *testing.T) {
	// map(2) {8: "a", 8: "b"}
	data := []byte{0xa2, 0x08, 0x61, 'a', 0x08, 0x61, 'b'}
	if _, err := DecodeFrame(data); err == nil {
		t.Error("DecodeFrame should reject a repeated key")
	}
}

func TestDecodeFrameSkipsUnknownKeys(t *testing.T) {
	// map(2) {7: 5, 99: "future"}
	data := append([]byte{0xa2, 0x07, 0x05, 0x18, 0x63, 0x66}, "future"...)
	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if f.SignpostID != 5 {
		t.Errorf("SignpostID = %d, want 5", f.SignpostID)
	}
}
