package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/timelane-tools/timelane-go/pkg/timelane"
)

// Shell drives subscriptions by hand from an interactive prompt.
type Shell struct {
	reg  *timelane.Registry
	rl   *readline.Instance
	out  io.Writer
	subs map[uint64]*timelane.Subscription
}

// NewShell creates an interactive shell creating subscriptions on reg.
func NewShell(reg *timelane.Registry) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "timelane> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := newShell(reg, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(reg *timelane.Registry, out io.Writer) *Shell {
	return &Shell{
		reg:  reg,
		out:  out,
		subs: make(map[uint64]*timelane.Subscription),
	}
}

// Stderr returns a writer that coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Run starts the interactive command loop. It returns when the user quits,
// input ends, or ctx is done.
func (s *Shell) Run(ctx context.Context) {
	closer := &onceCloser{c: s.rl}
	defer closer.Close()

	// Closing readline unblocks a pending Readline when ctx ends.
	stop := closeOnDone(ctx, closer)
	defer stop()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			// EOF, interrupt or closed by ctx
			if err == readline.ErrInterrupt && ctx.Err() == nil {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}

		if !s.Execute(line) {
			fmt.Fprintln(s.out, "Exiting...")
			return
		}
	}
}

// closeOnDone closes c once ctx is done. The returned stop function ends the
// watch without closing c.
func closeOnDone(ctx context.Context, c io.Closer) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-ctx.Done():
			c.Close()
		case <-done:
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-finished
	}
}

// onceCloser closes c at most once.
type onceCloser struct {
	once sync.Once
	c    io.Closer
	err  error
}

func (o *onceCloser) Close() error {
	o.once.Do(func() { o.err = o.c.Close() })
	return o.err
}

// Execute runs one command line. It returns false when the shell should
// exit.
func (s *Shell) Execute(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "new", "n":
		s.cmdNew(args)

	case "begin", "b":
		s.cmdBegin(args)

	case "value", "v":
		s.cmdValue(args)

	case "complete":
		s.withSub(args, func(sub *timelane.Subscription, _ []string) {
			sub.Event(timelane.CompletionEvent(), "")
		})

	case "fail":
		s.withSub(args, func(sub *timelane.Subscription, rest []string) {
			sub.Event(timelane.ErrorEvent(strings.Join(rest, " ")), "")
		})

	case "cancel":
		s.withSub(args, func(sub *timelane.Subscription, _ []string) {
			sub.Event(timelane.CancelledEvent(), "")
		})

	case "end", "e":
		s.cmdEnd(args)

	case "list", "ls":
		s.cmdList()

	case "quit", "exit", "q":
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Timelane Commands:
  Subscriptions:
    new [name]                 - Create a subscription
    begin <id> [source]        - Report that the subscription started
    list                       - List subscriptions

  Events:
    value <id> <text>          - Report a value
    complete <id>              - Report a completion event
    fail <id> <message>        - Report an error event
    cancel <id>                - Report a cancellation event
    end <id> completed|cancelled|error [message]
                               - Report how the subscription ended

  General:
    help                       - Show this help
    quit                       - Exit`)
}

func (s *Shell) cmdNew(args []string) {
	var opts []timelane.Option
	if len(args) > 0 {
		opts = append(opts, timelane.WithName(strings.Join(args, " ")))
	}
	sub := s.reg.NewSubscription(opts...)
	s.subs[sub.ID()] = sub
	fmt.Fprintf(s.out, "Created subscription %d (%s)\n", sub.ID(), sub.Name())
}

func (s *Shell) cmdBegin(args []string) {
	s.withSub(args, func(sub *timelane.Subscription, rest []string) {
		sub.Begin(strings.Join(rest, " "))
	})
}

func (s *Shell) cmdValue(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: value <id> <text>")
		return
	}
	s.withSub(args, func(sub *timelane.Subscription, rest []string) {
		sub.Event(timelane.ValueEvent(strings.Join(rest, " ")), "")
	})
}

func (s *Shell) cmdEnd(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: end <id> completed|cancelled|error [message]")
		return
	}
	s.withSub(args, func(sub *timelane.Subscription, rest []string) {
		switch strings.ToLower(rest[0]) {
		case "completed", "complete":
			sub.End(timelane.EndCompleted)
		case "cancelled", "cancel":
			sub.End(timelane.EndCancelled)
		case "error", "fail":
			sub.End(timelane.EndError(strings.Join(rest[1:], " ")))
		default:
			fmt.Fprintf(s.out, "Unknown end state: %s\n", rest[0])
		}
	})
}

func (s *Shell) cmdList() {
	if len(s.subs) == 0 {
		fmt.Fprintln(s.out, "No subscriptions")
		return
	}

	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		fmt.Fprintf(s.out, "  %4d  %s\n", id, s.subs[id].Name())
	}
}

// withSub resolves the subscription named by args[0] and calls fn with the
// remaining arguments.
func (s *Shell) withSub(args []string, fn func(sub *timelane.Subscription, rest []string)) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Missing subscription ID")
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid subscription ID: %s\n", args[0])
		return
	}
	sub, ok := s.subs[id]
	if !ok {
		fmt.Fprintf(s.out, "Unknown subscription: %d\n", id)
		return
	}
	fn(sub, args[1:])
}
