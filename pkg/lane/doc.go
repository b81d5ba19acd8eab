// Package lane instruments Go pipelines with Timelane subscriptions.
//
// Observe wraps a channel and Run wraps a producer function. Both create a
// subscription, report its begin record, every value it produces and how it
// ended. WithLanes selects which records are emitted: the subscription lane
// receives begin and end records, the event lane receives value and
// terminal events.
//
//	out := lane.Observe(ctx, results, lane.WithName("Search"))
//	for r := range out {
//		...
//	}
package lane
