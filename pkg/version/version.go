// Package version provides the Timelane protocol version announced by the
// handshake record and the wire manifests describing each version.
package version

import (
	"errors"
	"fmt"
	"strconv"
)

// Current is the protocol version implemented by this library.
const Current = 2

// ErrInvalidVersion is returned when a version field cannot be parsed.
var ErrInvalidVersion = errors.New("invalid protocol version")

// Parse parses the value of a version field.
func Parse(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidVersion)
	}

	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	if v == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	return int(v), nil
}

// Compatible reports whether a consumer built against this library can
// parse a stream announcing version v.
func Compatible(v int) bool {
	_, err := LoadManifest(v)
	return err == nil
}
