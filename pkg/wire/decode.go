package wire

import (
	"strconv"
	"strings"
)

// Fields holds the key/value fields recovered from a record.
type Fields map[string]string

// Decode splits a record into its fields. A part that does not split into
// exactly one key and one value is dropped. When a key repeats, the last
// occurrence wins.
func Decode(record string) Fields {
	fields := make(Fields)
	for _, part := range strings.Split(record, FieldSeparator) {
		pair := strings.Split(part, KeyValueSeparator)
		if len(pair) != 2 {
			continue
		}
		fields[pair[0]] = pair[1]
	}
	return fields
}

// Get returns the value stored under key.
func (f Fields) Get(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

// Subscribe returns the subscription name of a begin record.
func (f Fields) Subscribe() (string, bool) { return f.Get(KeySubscribe) }

// Source returns the source annotation of a begin or event record.
func (f Fields) Source() (string, bool) { return f.Get(KeySource) }

// ID returns the raw subscription identity.
func (f Fields) ID() (string, bool) { return f.Get(KeyID) }

// Subscription returns the subscription name of an event record.
func (f Fields) Subscription() (string, bool) { return f.Get(KeySubscription) }

// Type returns the event label of an event record.
func (f Fields) Type() (string, bool) { return f.Get(KeyType) }

// Value returns the payload of an event record.
func (f Fields) Value() (string, bool) { return f.Get(KeyValue) }

// Completion returns the raw completion code of an end record.
func (f Fields) Completion() (string, bool) { return f.Get(KeyCompletion) }

// Error returns the error message of an end record.
func (f Fields) Error() (string, bool) { return f.Get(KeyError) }

// Version returns the raw protocol version of a handshake record.
func (f Fields) Version() (string, bool) { return f.Get(KeyVersion) }

// SubscriptionID returns the id field parsed as a subscription identity.
func (f Fields) SubscriptionID() (uint64, bool) {
	raw, ok := f.ID()
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// EventType returns the type field parsed as an EventType.
func (f Fields) EventType() (EventType, bool) {
	raw, ok := f.Type()
	if !ok {
		return 0, false
	}
	return ParseEventType(raw)
}

// CompletionCode returns the completion field parsed as a CompletionCode.
func (f Fields) CompletionCode() (CompletionCode, bool) {
	raw, ok := f.Completion()
	if !ok {
		return 0, false
	}
	code, err := strconv.ParseUint(raw, 10, 8)
	if err != nil || code > uint64(CompletionCompleted) {
		return 0, false
	}
	return CompletionCode(code), true
}

// Keys returns the keys of a record's well-formed fields in wire order.
func Keys(record string) []string {
	var keys []string
	for _, part := range strings.Split(record, FieldSeparator) {
		pair := strings.Split(part, KeyValueSeparator)
		if len(pair) != 2 {
			continue
		}
		keys = append(keys, pair[0])
	}
	return keys
}
