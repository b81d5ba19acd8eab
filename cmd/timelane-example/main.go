// Command timelane-example drives the timelane library by hand or from a
// scenario file.
//
// Records are written to slog at Debug level and, with -capture, to a
// signpost CBOR stream that can be read back with the signpost package.
//
// Usage:
//
//	timelane-example [flags]
//
// Flags:
//
//	-scenario string    Scenario YAML file to replay
//	-interactive        Start the interactive shell
//	-capture string     Append records to a signpost capture file
//	-log-level string   Log level: debug, info, warn, error (default "debug")
//
// Examples:
//
//	# Replay a scenario and keep a capture
//	timelane-example -scenario search.yaml -capture search.tlane
//
//	# Drive subscriptions by hand
//	timelane-example -interactive
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/timelane-tools/timelane-go/pkg/signpost"
	"github.com/timelane-tools/timelane-go/pkg/timelane"
)

// Config holds the command configuration.
type Config struct {
	Scenario    string
	Interactive bool
	Capture     string
	LogLevel    string
}

var config Config

func init() {
	flag.StringVar(&config.Scenario, "scenario", "", "Scenario YAML file to replay")
	flag.BoolVar(&config.Interactive, "interactive", false, "Start the interactive shell")
	flag.StringVar(&config.Capture, "capture", "", "Append records to a signpost capture file")
	flag.StringVar(&config.LogLevel, "log-level", "debug", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	if err := validateConfig(config); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func validateConfig(cfg Config) error {
	if cfg.Scenario == "" && !cfg.Interactive {
		return errors.New("one of -scenario or -interactive is required")
	}
	if cfg.Scenario != "" && cfg.Interactive {
		return errors.New("-scenario and -interactive are mutually exclusive")
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

func run(ctx context.Context, cfg Config) error {
	var scenario *Scenario
	if cfg.Scenario != "" {
		s, err := LoadScenario(cfg.Scenario)
		if err != nil {
			return err
		}
		scenario = s
	}

	var shell *Shell
	logOut := io.Writer(os.Stderr)
	if cfg.Interactive {
		sh, err := NewShell(nil)
		if err != nil {
			return err
		}
		shell = sh
		logOut = sh.Stderr()
	}

	level, _ := parseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	loggers := []timelane.Logger{timelane.NewSlogLogger(logger)}

	var capture *signpost.StreamLogger
	if cfg.Capture != "" {
		c, err := signpost.NewFileStreamLogger(cfg.Capture)
		if err != nil {
			return fmt.Errorf("failed to open capture: %w", err)
		}
		capture = c
		loggers = append(loggers, capture)
		logger.Info("capturing records", slog.String("path", cfg.Capture), slog.String("session", capture.Session()))
	}

	regCfg := timelane.DefaultConfig()
	regCfg.DefaultLogger = timelane.NewMultiLogger(loggers...)
	regCfg.Diagnostics = logger
	reg := timelane.NewRegistryWithConfig(regCfg)

	var err error
	if shell != nil {
		shell.reg = reg
		shell.Run(ctx)
	} else {
		logger.Info("replaying scenario", slog.String("name", scenario.Name), slog.Int("pipelines", len(scenario.Pipelines)))
		err = RunScenario(ctx, scenario, reg)
	}

	if capture != nil {
		if dropped := capture.Dropped(); dropped > 0 {
			logger.Warn("records dropped from capture", slog.Uint64("count", dropped))
		}
		if cerr := capture.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close capture: %w", cerr)
		}
	}
	return err
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
