package timelane

import (
	"strconv"

	"github.com/timelane-tools/timelane-go/pkg/wire"
)

// Option configures a Subscription.
type Option func(*subscriptionOptions)

type subscriptionOptions struct {
	name    string
	hasName bool
	logger  Logger
}

// WithName sets the subscription's lane name. Without it the name is
// "subscription-<id>".
func WithName(name string) Option {
	return func(o *subscriptionOptions) {
		o.name = name
		o.hasName = true
	}
}

// WithLogger binds the subscription to l instead of the registry default.
func WithLogger(l Logger) Option {
	return func(o *subscriptionOptions) {
		o.logger = l
	}
}

func defaultName(id uint64) string {
	return "subscription-" + strconv.FormatUint(id, 10)
}

// Subscription is one observed pipeline instance.
//
// A Subscription has a "begin" record (plotted on subscription lanes) and
// optionally any of: value events, a completion or error event, a
// cancellation event (plotted on event lanes), and an "end" record.
//
// Its identity, name and logger never change, so it is safe for concurrent
// use without further locking.
type Subscription struct {
	id       uint64
	name     string
	logger   Logger
	registry *Registry
}

// ID returns the subscription identity.
func (s *Subscription) ID() uint64 { return s.id }

// Name returns the subscription's lane name.
func (s *Subscription) Name() string { return s.name }

// Logger returns the logger the subscription emits to.
func (s *Subscription) Logger() Logger { return s.logger }

// Begin reports that the subscription started. source optionally describes
// where it was started from. Every call emits a new begin record.
func (s *Subscription) Begin(source string) {
	s.emit(KindBegin, wire.EncodeBegin(s.name, source, s.id), true)
}

// Event reports a value or terminal event seen by the subscription.
func (s *Subscription) Event(event Event, source string) {
	s.emit(KindEvent, wire.EncodeEvent(s.name, event.Type(), event.Text(), source, s.id), true)
}

// End reports how the subscription ended. End does not emit the version
// handshake.
func (s *Subscription) End(state EndState) {
	s.emit(KindEnd, wire.EncodeEnd(state.Code(), state.Message()), false)
}

func (s *Subscription) emit(kind Kind, message string, handshake bool) {
	s.registry.deliver(s.logger, Record{
		Kind:       kind,
		Channel:    s.registry.channel,
		Name:       RecordName,
		SignpostID: SignpostID(s.id),
		Message:    message,
	}, handshake)
}
