package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/timelane-tools/timelane-go/pkg/lane"
	"github.com/timelane-tools/timelane-go/pkg/timelane"
)

// End states a scenario pipeline can finish with.
const (
	EndCompleted = "completed"
	EndError     = "error"
	EndCancelled = "cancelled"
)

// Scenario is a set of pipelines replayed concurrently.
type Scenario struct {
	// Name identifies the scenario in log output.
	Name string `yaml:"name"`

	// Pipelines are started together.
	Pipelines []Pipeline `yaml:"pipelines"`
}

// Pipeline describes one instrumented pipeline.
type Pipeline struct {
	// Name is the subscription name. Required.
	Name string `yaml:"name"`

	// Source is reported as the subscription source.
	Source string `yaml:"source,omitempty"`

	// Lanes selects the lanes to log to: all, subscription or event.
	Lanes string `yaml:"lanes,omitempty"`

	// Values are emitted in order.
	Values []string `yaml:"values,omitempty"`

	// Interval is the pause before each value.
	Interval time.Duration `yaml:"interval,omitempty"`

	// End is completed (default), error or cancelled.
	End string `yaml:"end,omitempty"`

	// Error is the failure message when End is error.
	Error string `yaml:"error,omitempty"`
}

// LoadError provides details about a scenario loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File == "" {
		return msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ParseScenario parses and validates a scenario from YAML bytes.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	if len(s.Pipelines) == 0 {
		return nil, &LoadError{
			Message: "scenario must have at least one pipeline",
		}
	}

	for i := range s.Pipelines {
		if err := s.Pipelines[i].validate(); err != nil {
			return nil, &LoadError{
				Message: "pipeline " + strconv.Itoa(i),
				Cause:   err,
			}
		}
	}

	return &s, nil
}

// LoadScenario loads a scenario from a file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	s, err := ParseScenario(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return s, nil
}

func (p *Pipeline) validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Interval < 0 {
		return fmt.Errorf("%s: interval must not be negative", p.Name)
	}
	if _, err := parseLanes(p.Lanes); err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}
	switch p.End {
	case "":
		p.End = EndCompleted
	case EndCompleted, EndCancelled:
	case EndError:
		if p.Error == "" {
			p.Error = "failed"
		}
	default:
		return fmt.Errorf("%s: unknown end state %q", p.Name, p.End)
	}
	return nil
}

func parseLanes(s string) (timelane.LaneTypeOptions, error) {
	switch s {
	case "", "all":
		return timelane.LaneOptionAll, nil
	case "subscription":
		return timelane.LaneOptionSubscription, nil
	case "event":
		return timelane.LaneOptionEvent, nil
	default:
		return 0, fmt.Errorf("unknown lanes %q", s)
	}
}

// RunScenario replays every pipeline of s on reg and waits for all of them.
// Scripted failures and cancellations are not errors; RunScenario only
// fails when ctx ends before the pipelines do.
func RunScenario(ctx context.Context, s *Scenario, reg *timelane.Registry) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, p := range s.Pipelines {
		p := p
		g.Go(func() error {
			return replay(ctx, p, reg)
		})
	}

	return g.Wait()
}

func replay(ctx context.Context, p Pipeline, reg *timelane.Registry) error {
	lanes, err := parseLanes(p.Lanes)
	if err != nil {
		return err
	}

	pctx, cancel := context.WithCancel(ctx)
	defer cancel()

	_ = lane.Run(pctx, func(ctx context.Context, emit func(string)) error {
		for _, v := range p.Values {
			if p.Interval > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(p.Interval):
				}
			}
			emit(v)
		}

		switch p.End {
		case EndError:
			return errors.New(p.Error)
		case EndCancelled:
			cancel()
			return ctx.Err()
		default:
			return nil
		}
	},
		lane.WithRegistry(reg),
		lane.WithName(p.Name),
		lane.WithSource(p.Source),
		lane.WithLanes(lanes),
	)

	return ctx.Err()
}
