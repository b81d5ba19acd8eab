package timelane

import "github.com/timelane-tools/timelane-go/pkg/wire"

// Event is a value or terminal event observed by a subscription.
// Build one with ValueEvent, CompletionEvent, ErrorEvent or CancelledEvent.
type Event struct {
	typ  wire.EventType
	text string
}

// ValueEvent is a value emitted by the pipeline, already rendered as text.
func ValueEvent(text string) Event {
	return Event{typ: wire.EventOutput, text: text}
}

// CompletionEvent is a successful completion.
func CompletionEvent() Event {
	return Event{typ: wire.EventCompleted}
}

// ErrorEvent is a failure with the given message.
func ErrorEvent(message string) Event {
	return Event{typ: wire.EventError, text: message}
}

// CancelledEvent is a cancellation.
func CancelledEvent() Event {
	return Event{typ: wire.EventCancelled}
}

// Type returns the event type written to the type field.
func (e Event) Type() wire.EventType { return e.typ }

// Text returns the payload written to the value field before truncation.
// It is empty for completions and cancellations.
func (e Event) Text() string { return e.text }

// EndState is how a subscription ended.
type EndState struct {
	code    wire.CompletionCode
	message string
}

var (
	// EndCompleted ends a subscription that completed successfully.
	EndCompleted = EndState{code: wire.CompletionCompleted}
	// EndCancelled ends a subscription that was cancelled.
	EndCancelled = EndState{code: wire.CompletionCancelled}
)

// EndError ends a subscription that failed with message.
func EndError(message string) EndState {
	return EndState{code: wire.CompletionError, message: message}
}

// Code returns the completion code written to the end record.
func (s EndState) Code() wire.CompletionCode { return s.code }

// Message returns the error message, empty unless the state is an error.
func (s EndState) Message() string { return s.message }
