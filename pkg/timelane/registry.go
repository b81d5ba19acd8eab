package timelane

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/timelane-tools/timelane-go/pkg/version"
	"github.com/timelane-tools/timelane-go/pkg/wire"
)

// Config configures a Registry.
type Config struct {
	// DefaultLogger is bound to subscriptions created without WithLogger.
	// Nil selects an SlogLogger following slog.Default().
	DefaultLogger Logger

	// Channel is stamped on every record. The zero value selects DefaultChannel.
	Channel Channel

	// Version is announced by the handshake record. Zero selects version.Current.
	Version int

	// Diagnostics receives operational messages about the registry itself.
	// Nil discards them.
	Diagnostics *slog.Logger
}

// DefaultConfig returns the configuration of the process-wide registry.
func DefaultConfig() Config {
	return Config{
		DefaultLogger: NewSlogLogger(nil),
		Channel:       DefaultChannel,
		Version:       version.Current,
	}
}

// handshakeState tracks the protocol version handshake of a Registry.
type handshakeState uint8

const (
	handshakePending handshakeState = iota
	handshakeEmitting
	handshakeDone
)

// queuedRecord is a record held back while the handshake is emitted.
type queuedRecord struct {
	logger Logger
	record Record
}

// Registry allocates subscription identities and emits the protocol version
// handshake at most once.
//
// The version record goes only to the logger of the subscription whose
// Begin or Event runs first. If that subscription was created WithLogger,
// the registry's default logger never receives the version record.
//
// Loggers may call back into the registry from Log, including while the
// version record is being logged: records reported during the handshake are
// queued and delivered, in order, right after it.
type Registry struct {
	counter atomic.Uint64

	// mu guards state and queue. It is never held while a Logger runs.
	mu    sync.Mutex
	state handshakeState
	queue []queuedRecord

	loggerMu      sync.RWMutex
	defaultLogger Logger

	channel Channel
	version int
	diag    *slog.Logger
}

// NewRegistry creates a registry with default configuration.
func NewRegistry() *Registry {
	return NewRegistryWithConfig(DefaultConfig())
}

// NewRegistryWithConfig creates a registry with custom configuration.
func NewRegistryWithConfig(config Config) *Registry {
	if config.DefaultLogger == nil {
		config.DefaultLogger = NewSlogLogger(nil)
	}
	if config.Channel == (Channel{}) {
		config.Channel = DefaultChannel
	}
	if config.Version <= 0 {
		config.Version = version.Current
	}
	if config.Diagnostics == nil {
		config.Diagnostics = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Registry{
		defaultLogger: config.DefaultLogger,
		channel:       config.Channel,
		version:       config.Version,
		diag:          config.Diagnostics,
	}
}

// DefaultLogger returns the logger bound to subscriptions created without
// an explicit logger.
func (r *Registry) DefaultLogger() Logger {
	r.loggerMu.RLock()
	defer r.loggerMu.RUnlock()
	return r.defaultLogger
}

// SetDefaultLogger replaces the default logger. Existing subscriptions keep
// the logger they were created with. A nil logger selects Disabled.
// If the handshake has already been emitted, l never receives the version
// record.
func (r *Registry) SetDefaultLogger(l Logger) {
	if l == nil {
		l = Disabled
	}
	r.loggerMu.Lock()
	defer r.loggerMu.Unlock()
	r.defaultLogger = l
}

// Channel returns the channel stamped on records.
func (r *Registry) Channel() Channel { return r.channel }

// Version returns the protocol version announced by the handshake.
func (r *Registry) Version() int { return r.version }

// VersionEmitted reports whether the handshake record has been emitted.
func (r *Registry) VersionEmitted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == handshakeDone
}

// NewSubscription creates a subscription with a fresh identity.
func (r *Registry) NewSubscription(opts ...Option) *Subscription {
	var o subscriptionOptions
	for _, opt := range opts {
		opt(&o)
	}

	id := r.nextID()

	name := o.name
	if !o.hasName {
		name = defaultName(id)
	}
	logger := o.logger
	if logger == nil {
		logger = r.DefaultLogger()
	}

	return &Subscription{
		id:       id,
		name:     name,
		logger:   logger,
		registry: r,
	}
}

// nextID returns the next subscription identity. The first is 1.
func (r *Registry) nextID() uint64 {
	return r.counter.Add(1)
}

// deliver logs record to l. A record that can trigger the handshake makes
// the first such caller log the version record before anything else.
// Records reported while the version record is being logged are queued
// and delivered by that caller.
func (r *Registry) deliver(l Logger, record Record, handshake bool) {
	r.mu.Lock()
	switch {
	case r.state == handshakeEmitting:
		r.queue = append(r.queue, queuedRecord{logger: l, record: record})
		r.mu.Unlock()
		return
	case r.state == handshakeDone || !handshake:
		r.mu.Unlock()
		l.Log(record)
		return
	}
	r.state = handshakeEmitting
	r.queue = append(r.queue, queuedRecord{logger: l, record: record})
	r.mu.Unlock()

	defer r.flush()

	l.Log(Record{
		Kind:       KindEvent,
		Channel:    r.channel,
		Name:       RecordName,
		SignpostID: SignpostExclusive,
		Message:    wire.EncodeVersion(r.version),
	})

	r.diag.LogAttrs(context.Background(), slog.LevelDebug, "protocol version announced",
		slog.Int("version", r.version))
}

// flush delivers queued records until the queue stays empty, then marks the
// handshake done.
func (r *Registry) flush() {
	for {
		r.mu.Lock()
		batch := r.queue
		r.queue = nil
		if len(batch) == 0 {
			r.state = handshakeDone
			r.mu.Unlock()
			return
		}
		r.mu.Unlock()

		for _, q := range batch {
			q.logger.Log(q.record)
		}
	}
}

// ---------------------------------------------------------------------------
// Process-wide registry
// ---------------------------------------------------------------------------

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// NewSubscription creates a subscription on the process-wide registry.
func NewSubscription(opts ...Option) *Subscription {
	return defaultRegistry.NewSubscription(opts...)
}

// SetDefaultLogger replaces the default logger of the process-wide registry.
// Call it before the first Begin or Event so the new logger receives the
// version record.
func SetDefaultLogger(l Logger) {
	defaultRegistry.SetDefaultLogger(l)
}
