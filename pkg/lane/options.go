package lane

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/timelane-tools/timelane-go/pkg/timelane"
)

// Option configures an instrumented pipeline.
type Option func(*options)

type options struct {
	name      string
	hasName   bool
	source    string
	hasSource bool
	lanes     timelane.LaneTypeOptions
	formatter any
	logger    timelane.Logger
	registry  *timelane.Registry
}

func newOptions(opts []Option) options {
	o := options{
		lanes:    timelane.LaneOptionAll,
		registry: timelane.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithName sets the subscription name shown on the lane.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
		o.hasName = true
	}
}

// WithSource sets the source description. Without it the source is the
// file and line that started the pipeline, e.g. "search.go:42".
func WithSource(source string) Option {
	return func(o *options) {
		o.source = source
		o.hasSource = true
	}
}

// WithLanes selects the lanes to log to. The default is all lanes.
func WithLanes(lanes timelane.LaneTypeOptions) Option {
	return func(o *options) {
		o.lanes = lanes
	}
}

// WithFormatter sets how values are rendered into event records. The
// formatter is ignored by pipelines whose element type is not T. Values
// are rendered with fmt.Sprint by default.
func WithFormatter[T any](format func(T) string) Option {
	return func(o *options) {
		o.formatter = format
	}
}

// WithLogger binds the subscription to l instead of the registry default.
func WithLogger(l timelane.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRegistry creates the subscription on r instead of the process-wide
// registry.
func WithRegistry(r *timelane.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

func formatterFor[T any](o options) func(T) string {
	if f, ok := o.formatter.(func(T) string); ok && f != nil {
		return f
	}
	return func(v T) string { return fmt.Sprint(v) }
}

// callerSource describes the caller skip frames above it as "file:line".
func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}
