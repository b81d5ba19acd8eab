// Package timelane reports the lifecycle of asynchronous pipelines to a
// visualization tool.
//
// A Subscription represents one observed pipeline. It reports when it
// begins, every value or terminal event it sees, and how it ends. Each call
// renders one record in the text format defined by package wire and hands
// it to the subscription's Logger.
//
// # Basic Usage
//
//	sub := timelane.NewSubscription(timelane.WithName("Downloads"))
//	sub.Begin("")
//	sub.Event(timelane.ValueEvent("42"), "")
//	sub.End(timelane.EndCompleted)
//
// # Registry
//
// Subscription identities and the one-time protocol version handshake are
// owned by a Registry. The package-level functions use a process-wide
// default registry; tests and embedders may create their own with
// NewRegistry.
//
// The first Begin or Event call on any subscription of a registry emits a
// version record before its own record. End never triggers the handshake.
//
// # Loggers
//
// A Logger receives every rendered Record. The default is an SlogLogger
// following slog.Default(). Disabled discards records, Proxy forwards them
// to an object with a flat signpost-style method and MultiLogger fans out
// to several loggers.
package timelane
