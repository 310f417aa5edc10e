// Package config loads service settings and venue layouts.
//
// Settings are resolved in three layers: built-in defaults, an optional YAML
// or JSON file, then SEATPLAN_* environment variables. The result is checked
// with struct tags before use.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"svw.info/seatplan/internal/domain"
	"svw.info/seatplan/internal/suggest"
)

type Config struct {
	Server  ServerConfig   `json:"server" yaml:"server"`
	Log     LogConfig      `json:"log" yaml:"log"`
	Storage StorageConfig  `json:"storage" yaml:"storage"`
	Solver  SolverConfig   `json:"solver" yaml:"solver"`
	Suggest suggest.Config `json:"suggest" yaml:"suggest"`
}

type ServerConfig struct {
	Addr              string        `json:"addr" yaml:"addr" validate:"required"`
	ReadHeaderTimeout time.Duration `json:"read_header_timeout" yaml:"read_header_timeout" validate:"gt=0"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`
}

// StorageConfig selects where solved runs are kept.
type StorageConfig struct {
	Driver string `json:"driver" yaml:"driver" validate:"oneof=fs badger memory"`
	// Path is a directory for both fs and badger; ignored for memory.
	Path string `json:"path" yaml:"path" validate:"required_unless=Driver memory"`
}

type SolverConfig struct {
	Strategy string `json:"strategy" yaml:"strategy" validate:"oneof=exhaustive priority naive"`
	Order    string `json:"order" yaml:"order" validate:"oneof=desc asc random"`
	Seed     int64  `json:"seed" yaml:"seed"`
}

// ParsedStrategy returns the validated strategy enum.
func (c SolverConfig) ParsedStrategy() domain.Strategy {
	s, _ := domain.ParseStrategy(c.Strategy)
	return s
}

// ParsedOrder returns the validated pop order enum.
func (c SolverConfig) ParsedOrder() domain.PopOrder {
	o, _ := domain.ParsePopOrder(c.Order)
	return o
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
		},
		Log:     LogConfig{Level: "info"},
		Storage: StorageConfig{Driver: "fs", Path: "./data"},
		Solver: SolverConfig{
			Strategy: domain.StrategyExhaustive.String(),
			Order:    domain.Descending.String(),
			Seed:     1,
		},
		Suggest: suggest.DefaultConfig(),
	}
}

// Load resolves the configuration. An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

var validate = validator.New()

func (c Config) Validate() error {
	return validate.Struct(c)
}

// decodeFile reads YAML, falling back to JSON.
func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		if jsonErr := json.Unmarshal(data, out); jsonErr != nil {
			return fmt.Errorf("parse %s (tried YAML and JSON): YAML error: %v, JSON error: %w", path, err, jsonErr)
		}
	}
	return nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("SEATPLAN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SEATPLAN_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("SEATPLAN_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("SEATPLAN_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("SEATPLAN_STRATEGY"); v != "" {
		c.Solver.Strategy = strings.ToLower(v)
	}
	if v := os.Getenv("SEATPLAN_ORDER"); v != "" {
		c.Solver.Order = strings.ToLower(v)
	}
	if v := os.Getenv("SEATPLAN_SEED"); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Solver.Seed = i
			c.Suggest.Seed = i
		}
	}
	if v := os.Getenv("SEATPLAN_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Suggest.Threshold = f
		}
	}
	if v := os.Getenv("SEATPLAN_TOLERANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Suggest.Tolerance = f
		}
	}
	if v := os.Getenv("SEATPLAN_BOOTSTRAP"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			c.Suggest.Bootstrap = i
		}
	}
	if v := os.Getenv("SEATPLAN_PARALLELISM"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			c.Suggest.Parallelism = i
		}
	}
}

// ParseLevel maps debug|info|warn|error to a slog level; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewLogger builds the text logger used by every command.
func NewLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(level)}))
}
