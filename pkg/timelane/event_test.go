package timelane_test

import (
	"testing"

	"github.com/timelane-tools/timelane-go/pkg/timelane"
	"github.com/timelane-tools/timelane-go/pkg/wire"
)

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name  string
		event timelane.Event
		typ   wire.EventType
		text  string
	}{
		{"value", timelane.ValueEvent("42"), wire.EventOutput, "42"},
		{"completion", timelane.CompletionEvent(), wire.EventCompleted, ""},
		{"error", timelane.ErrorEvent("boom"), wire.EventError, "boom"},
		{"cancelled", timelane.CancelledEvent(), wire.EventCancelled, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.Type() != tt.typ {
				t.Errorf("Type() = %v, want %v", tt.event.Type(), tt.typ)
			}
			if tt.event.Text() != tt.text {
				t.Errorf("Text() = %q, want %q", tt.event.Text(), tt.text)
			}
		})
	}
}

func TestEndStates(t *testing.T) {
	tests := []struct {
		name  string
		state timelane.EndState
		code  wire.CompletionCode
		msg   string
	}{
		{"completed", timelane.EndCompleted, wire.CompletionCompleted, ""},
		{"cancelled", timelane.EndCancelled, wire.CompletionCancelled, ""},
		{"error", timelane.EndError("Test Error"), wire.CompletionError, "Test Error"},
		{"zero", timelane.EndState{}, wire.CompletionActive, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.state.Code() != tt.code {
				t.Errorf("Code() = %v, want %v", tt.state.Code(), tt.code)
			}
			if tt.state.Message() != tt.msg {
				t.Errorf("Message() = %q, want %q", tt.state.Message(), tt.msg)
			}
		})
	}
}
