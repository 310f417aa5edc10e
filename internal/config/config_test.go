package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/seatplan/internal/domain"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, domain.StrategyExhaustive, cfg.Solver.ParsedStrategy())
	assert.Equal(t, domain.Descending, cfg.Solver.ParsedOrder())
	assert.Equal(t, 1.5, cfg.Suggest.Threshold)
	assert.Equal(t, 25, cfg.Suggest.EarlyStop)
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, "seatplan.yaml", `
server:
  addr: ":9000"
  read_header_timeout: 2s
log:
  level: debug
storage:
  driver: badger
  path: /tmp/runs
solver:
  strategy: priority
  order: random
  seed: 42
suggest:
  threshold: 2
  bootstrap: 50
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "badger", cfg.Storage.Driver)
	assert.Equal(t, domain.StrategyPriority, cfg.Solver.ParsedStrategy())
	assert.Equal(t, domain.Random, cfg.Solver.ParsedOrder())
	assert.EqualValues(t, 42, cfg.Solver.Seed)
	assert.Equal(t, 2.0, cfg.Suggest.Threshold)
	assert.Equal(t, 50, cfg.Suggest.Bootstrap)
	// untouched keys keep their defaults
	assert.Equal(t, 0.05, cfg.Suggest.Tolerance)
}

func TestLoadJSON(t *testing.T) {
	p := writeFile(t, "seatplan.json", `{"storage": {"driver": "memory", "path": ""}, "solver": {"strategy": "naive", "order": "asc"}}`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, domain.StrategyNaive, cfg.Solver.ParsedStrategy())
	assert.Equal(t, domain.Ascending, cfg.Solver.ParsedOrder())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SEATPLAN_ADDR", ":7070")
	t.Setenv("SEATPLAN_LOG_LEVEL", "WARN")
	t.Setenv("SEATPLAN_STRATEGY", "priority")
	t.Setenv("SEATPLAN_SEED", "9")
	t.Setenv("SEATPLAN_TOLERANCE", "0.1")
	t.Setenv("SEATPLAN_BOOTSTRAP", "not-a-number")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, domain.StrategyPriority, cfg.Solver.ParsedStrategy())
	assert.EqualValues(t, 9, cfg.Solver.Seed)
	assert.EqualValues(t, 9, cfg.Suggest.Seed)
	assert.Equal(t, 0.1, cfg.Suggest.Tolerance)
	assert.Equal(t, 100, cfg.Suggest.Bootstrap, "unparsable values are ignored")
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown level", "log:\n  level: loud\n"},
		{"unknown strategy", "solver:\n  strategy: greedy\n"},
		{"unknown driver", "storage:\n  driver: s3\n"},
		{"fs without path", "storage:\n  driver: fs\n  path: \"\"\n"},
		{"tolerance above one", "suggest:\n  tolerance: 2\n"},
		{"zero bootstrap", "suggest:\n  bootstrap: 0\n"},
		{"garbage", "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.yaml", tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" Info ":  slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
