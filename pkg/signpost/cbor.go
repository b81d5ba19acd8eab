package signpost

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

var (
	frameEncMode cbor.EncMode
	frameDecMode cbor.DecMode
)

func init() {
	var err error

	// Frames are flat maps with integer keys. Timestamps carry tag 0 so a
	// generic CBOR tool shows them as times, at full nanosecond precision.
	frameEncMode, err = cbor.EncOptions{
		Sort:        cbor.SortCoreDeterministic,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeRFC3339Nano,
		TimeTag:     cbor.EncTagRequired,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("signpost: frame encoder mode: %v", err))
	}

	// A frame with a repeated key was not written by a StreamLogger and is
	// rejected. Unknown keys are skipped so older readers accept newer frames.
	frameDecMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		IndefLength:       cbor.IndefLengthForbidden,
		TimeTag:           cbor.DecTagOptional,
		MaxNestedLevels:   4,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("signpost: frame decoder mode: %v", err))
	}
}

// EncodeFrame encodes a Frame to CBOR bytes.
func EncodeFrame(f Frame) ([]byte, error) {
	return frameEncMode.Marshal(f)
}

// DecodeFrame decodes one CBOR-encoded Frame.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := frameDecMode.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("signpost: decode frame: %w", err)
	}
	return f, nil
}

// newItemDecoder splits a stream into raw CBOR items for DecodeFrame.
func newItemDecoder(r io.Reader) *cbor.Decoder {
	return frameDecMode.NewDecoder(r)
}
