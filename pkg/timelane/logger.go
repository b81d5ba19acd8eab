package timelane

// Kind is the signpost kind a record is emitted with.
type Kind uint8

const (
	// KindBegin marks the start of a subscription interval.
	KindBegin Kind = 0
	// KindEvent marks a point event (values, terminal events, the handshake).
	KindEvent Kind = 1
	// KindEnd marks the end of a subscription interval.
	KindEnd Kind = 2
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEvent:
		return "event"
	case KindEnd:
		return "end"
	default:
		return "unknown"
	}
}

// SignpostID correlates the records of one subscription on the channel.
type SignpostID uint64

// SignpostExclusive is the identifier used for records that do not belong
// to any subscription, such as the version handshake.
const SignpostExclusive SignpostID = 0xEEEEB0B5B2B2EEEE

// RecordName is the signpost name every Timelane record is emitted under.
const RecordName = "subscriptions"

// Channel identifies the logging channel records are emitted to.
type Channel struct {
	Subsystem string
	Category  string
}

// DefaultChannel is the channel a Timelane consumer listens on.
var DefaultChannel = Channel{
	Subsystem: "tools.timelane.subscriptions",
	Category:  "DynamicStackTracing",
}

// Record is one rendered lifecycle record.
type Record struct {
	Kind       Kind
	Channel    Channel
	Name       string
	SignpostID SignpostID

	// Message is the wire-format record text.
	Message string
}

// Logger receives the records emitted by subscriptions.
type Logger interface {
	// Log records one lifecycle record. Implementations must be thread-safe
	// and should not block; failures are not reported back.
	Log(record Record)
}

// LoggerFunc adapts a function to the Logger interface.
type LoggerFunc func(record Record)

// Log calls f(record).
func (f LoggerFunc) Log(record Record) { f(record) }

// NoopLogger discards all records.
// NoopLogger is safe for concurrent use and usable as a zero value.
type NoopLogger struct{}

// Log discards the record.
func (NoopLogger) Log(Record) {}

// Disabled is a Logger that does not log anything.
var Disabled Logger = NoopLogger{}

// ProxyLogger receives records as a flat signpost-style call.
type ProxyLogger interface {
	LogSignpost(kind Kind, channel Channel, name string, id SignpostID, message string)
}

// Proxy returns a Logger forwarding every record to p.
func Proxy(p ProxyLogger) Logger {
	return LoggerFunc(func(r Record) {
		p.LogSignpost(r.Kind, r.Channel, r.Name, r.SignpostID, r.Message)
	})
}

// MultiLogger sends records to multiple loggers.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger that sends records to all provided
// loggers. Nil loggers are skipped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// Log sends the record to all configured loggers, in order.
func (m *MultiLogger) Log(record Record) {
	for _, l := range m.loggers {
		l.Log(record)
	}
}

// Compile-time interface satisfaction checks.
var (
	_ Logger = NoopLogger{}
	_ Logger = LoggerFunc(nil)
	_ Logger = (*MultiLogger)(nil)
)
