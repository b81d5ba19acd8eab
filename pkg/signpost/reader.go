package signpost

import (
	"errors"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// ErrClosed is returned by Next after the Reader was closed.
var ErrClosed = errors.New("signpost: reader closed")

// Reader reads frames from a CBOR-encoded stream.
// It provides an iterator interface for streaming large captures.
type Reader struct {
	closer  io.Closer
	decoder *cbor.Decoder
	closed  bool
}

// NewReader creates a Reader that reads frames from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{decoder: newItemDecoder(r)}
}

// OpenReader creates a Reader that reads all frames from the file at path.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		closer:  f,
		decoder: newItemDecoder(f),
	}, nil
}

// Next returns the next frame.
// Returns io.EOF when no more frames are available.
func (r *Reader) Next() (Frame, error) {
	if r.closed {
		return Frame{}, ErrClosed
	}

	var raw cbor.RawMessage
	if err := r.decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, err
	}
	return DecodeFrame(raw)
}

// ReadAll returns every remaining frame.
func (r *Reader) ReadAll() ([]Frame, error) {
	var frames []Frame
	for {
		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
}

// Close closes the underlying file, if the Reader opened one.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
