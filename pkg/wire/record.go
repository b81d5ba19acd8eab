package wire

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// FieldSeparator separates the fields of a record.
	FieldSeparator = "###"

	// KeyValueSeparator separates a field's key from its value.
	KeyValueSeparator = ":"

	// MaxTextLength is the number of characters kept from a free-text payload.
	MaxTextLength = 50

	// Ellipsis is appended to free-text payloads that were truncated.
	Ellipsis = "..."
)

// Field keys.
const (
	KeySubscribe    = "subscribe"
	KeySource       = "source"
	KeyID           = "id"
	KeySubscription = "subscription"
	KeyType         = "type"
	KeyValue        = "value"
	KeyCompletion   = "completion"
	KeyError        = "error"
	KeyVersion      = "version"
)

// EventType is the kind of event reported on an event record.
type EventType uint8

const (
	// EventOutput is a value emitted by the subscription.
	EventOutput EventType = 0

	// EventCompleted is a successful completion.
	EventCompleted EventType = 1

	// EventError is a failure carrying an error message.
	EventError EventType = 2

	// EventCancelled is a cancellation.
	EventCancelled EventType = 3
)

// String returns the label written to the type field.
func (t EventType) String() string {
	switch t {
	case EventOutput:
		return "Output"
	case EventCompleted:
		return "Completed"
	case EventError:
		return "Error"
	case EventCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// ParseEventType maps a type field label back to its EventType.
func ParseEventType(label string) (EventType, bool) {
	switch label {
	case "Output":
		return EventOutput, true
	case "Completed":
		return EventCompleted, true
	case "Error":
		return EventError, true
	case "Cancelled":
		return EventCancelled, true
	default:
		return 0, false
	}
}

// CompletionCode is the numeric state written to the completion field.
type CompletionCode uint8

const (
	// CompletionActive is reserved for a subscription that has not ended.
	CompletionActive CompletionCode = 0

	// CompletionCancelled indicates the subscription was cancelled.
	CompletionCancelled CompletionCode = 1

	// CompletionError indicates the subscription failed.
	CompletionError CompletionCode = 2

	// CompletionCompleted indicates the subscription completed successfully.
	CompletionCompleted CompletionCode = 3
)

// String returns the completion state name.
func (c CompletionCode) String() string {
	switch c {
	case CompletionActive:
		return "ACTIVE"
	case CompletionCancelled:
		return "CANCELLED"
	case CompletionError:
		return "ERROR"
	case CompletionCompleted:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}

// Truncate limits text to MaxTextLength characters, appending Ellipsis when
// anything was cut. Text at or under the limit is returned unchanged.
func Truncate(text string) string {
	if utf8.RuneCountInString(text) <= MaxTextLength {
		return text
	}

	n := 0
	for i := range text {
		if n == MaxTextLength {
			return text[:i] + Ellipsis
		}
		n++
	}
	return text
}

// EncodeBegin renders the record for a subscription start.
func EncodeBegin(name, source string, id uint64) string {
	return join(
		field(KeySubscribe, name),
		field(KeySource, source),
		field(KeyID, strconv.FormatUint(id, 10)),
	)
}

// EncodeEvent renders the record for an emitted value or terminal event.
// The value is truncated.
func EncodeEvent(name string, typ EventType, value, source string, id uint64) string {
	return join(
		field(KeySubscription, name),
		field(KeyType, typ.String()),
		field(KeyValue, Truncate(value)),
		field(KeySource, source),
		field(KeyID, strconv.FormatUint(id, 10)),
	)
}

// EncodeEnd renders the record for a subscription end. The error message is
// truncated and is empty unless code is CompletionError.
func EncodeEnd(code CompletionCode, errorMessage string) string {
	return join(
		field(KeyCompletion, strconv.Itoa(int(code))),
		field(KeyError, Truncate(errorMessage)),
	)
}

// EncodeVersion renders the protocol version handshake record.
func EncodeVersion(version int) string {
	return field(KeyVersion, strconv.Itoa(version))
}

func field(key, value string) string {
	return key + KeyValueSeparator + value
}

func join(fields ...string) string {
	return strings.Join(fields, FieldSeparator)
}
