package lane

import (
	"context"
	"errors"

	"github.com/timelane-tools/timelane-go/pkg/timelane"
)

// tracker reports one pipeline's lifecycle to the lanes it was configured
// for.
type tracker struct {
	sub    *timelane.Subscription
	source string
	lanes  timelane.LaneTypeOptions
}

func newTracker(o options) *tracker {
	subOpts := make([]timelane.Option, 0, 2)
	if o.hasName {
		subOpts = append(subOpts, timelane.WithName(o.name))
	}
	if o.logger != nil {
		subOpts = append(subOpts, timelane.WithLogger(o.logger))
	}
	return &tracker{
		sub:    o.registry.NewSubscription(subOpts...),
		source: o.source,
		lanes:  o.lanes,
	}
}

func (t *tracker) begin() {
	if t.lanes.Has(timelane.LaneSubscription) {
		t.sub.Begin(t.source)
	}
}

func (t *tracker) value(text string) {
	if t.lanes.Has(timelane.LaneEvent) {
		t.sub.Event(timelane.ValueEvent(text), t.source)
	}
}

func (t *tracker) finish(event timelane.Event, state timelane.EndState) {
	if t.lanes.Has(timelane.LaneEvent) {
		t.sub.Event(event, t.source)
	}
	if t.lanes.Has(timelane.LaneSubscription) {
		t.sub.End(state)
	}
}

func (t *tracker) completed() {
	t.finish(timelane.CompletionEvent(), timelane.EndCompleted)
}

func (t *tracker) cancelled() {
	t.finish(timelane.CancelledEvent(), timelane.EndCancelled)
}

func (t *tracker) failed(err error) {
	t.finish(timelane.ErrorEvent(err.Error()), timelane.EndError(err.Error()))
}

// Observe forwards every value received from in to the returned channel,
// logging it as a value event. When in is closed the subscription completes
// and the returned channel is closed. When ctx is done first the
// subscription is cancelled and the returned channel is closed without
// draining in.
func Observe[T any](ctx context.Context, in <-chan T, opts ...Option) <-chan T {
	o := newOptions(opts)
	if !o.hasSource {
		o.source = callerSource(2)
	}
	format := formatterFor[T](o)

	t := newTracker(o)
	t.begin()

	out := make(chan T)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				t.cancelled()
				return
			case v, ok := <-in:
				if !ok {
					t.completed()
					return
				}
				t.value(format(v))
				select {
				case out <- v:
				case <-ctx.Done():
					t.cancelled()
					return
				}
			}
		}
	}()
	return out
}

// Run calls produce and logs every value it passes to emit. A nil error
// completes the subscription, an error caused by ctx cancels it, and any
// other error fails it. Run returns the error produce returned.
func Run[T any](ctx context.Context, produce func(ctx context.Context, emit func(T)) error, opts ...Option) error {
	o := newOptions(opts)
	if !o.hasSource {
		o.source = callerSource(2)
	}
	format := formatterFor[T](o)

	t := newTracker(o)
	t.begin()

	err := produce(ctx, func(v T) {
		t.value(format(v))
	})

	switch {
	case err == nil:
		t.completed()
	case isCancellation(ctx, err):
		t.cancelled()
	default:
		t.failed(err)
	}
	return err
}

func isCancellation(ctx context.Context, err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	return ctx.Err() != nil && errors.Is(err, ctx.Err())
}
