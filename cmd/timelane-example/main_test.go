package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timelane-tools/timelane-go/pkg/signpost"
	"github.com/timelane-tools/timelane-go/pkg/timelane"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"scenario", Config{Scenario: "a.yaml", LogLevel: "info"}, false},
		{"interactive", Config{Interactive: true, LogLevel: "debug"}, false},
		{"neither", Config{LogLevel: "info"}, true},
		{"both", Config{Scenario: "a.yaml", Interactive: true, LogLevel: "info"}, true},
		{"bad level", Config{Scenario: "a.yaml", LogLevel: "loud"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := parseLevel(in)
		if err != nil {
			t.Errorf("parseLevel(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRunScenarioWithCapture(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	dir := t.TempDir()
	scenarioPath := filepath.Join(dir, "scenario.yaml")
	capturePath := filepath.Join(dir, "capture.tlane")
	require.NoError(t, os.WriteFile(scenarioPath, []byte(searchScenario), 0644))

	err := run(context.Background(), Config{
		Scenario: scenarioPath,
		Capture:  capturePath,
		LogLevel: "error",
	})
	require.NoError(t, err)

	reader, err := signpost.OpenReader(capturePath)
	require.NoError(t, err)
	defer reader.Close()

	frames, err := reader.ReadAll()
	require.NoError(t, err)

	// version + Query(5+end) + Fetch(3+end) + Typeahead(2)
	require.Len(t, frames, 13)
	assert.Equal(t, timelane.SignpostExclusive, timelane.SignpostID(frames[0].SignpostID))
	for _, f := range frames {
		assert.Equal(t, frames[0].Session, f.Session)
	}
}

func TestRunReportsMissingScenario(t *testing.T) {
	err := run(context.Background(), Config{
		Scenario: filepath.Join(t.TempDir(), "missing.yaml"),
		LogLevel: "info",
	})
	var le *LoadError
	assert.ErrorAs(t, err, &le)
}
