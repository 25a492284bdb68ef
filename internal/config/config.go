package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
)

// Mode selects what the demo binary does after start-up.
type Mode string

const (
	// ModeRun runs the widget demo once and exits.
	ModeRun Mode = "run"
	// ModeServe serves the demo over HTTP until interrupted.
	ModeServe Mode = "serve"
)

// Config is the demo binary's environment configuration.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME"            envDefault:"events-demo"`
	Env             string        `env:"ENV"                     envDefault:"dev"`
	LogFile         string        `env:"LOG_FILE"`
	LogLevel        string        `env:"LOG_LEVEL"               envDefault:"info"`
	Mode            Mode          `env:"EVENTS_MODE"             envDefault:"run"`
	HTTPAddr        string        `env:"EVENTS_HTTP_ADDR"        envDefault:":8080"`
	OTelEndpoint    string        `env:"EVENTS_OTEL_ENDPOINT"`
	OTelEnabled     bool          `env:"EVENTS_OTEL_ENABLED"     envDefault:"true"`
	DemoInput       string        `env:"EVENTS_DEMO_INPUT"       envDefault:"Hello"`
	ShutdownTimeout time.Duration `env:"EVENTS_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

var errInvalid = errors.New("invalid config")

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Mode = Mode(strings.ToLower(string(cfg.Mode)))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeRun, ModeServe:
	default:
		return fmt.Errorf("%w: EVENTS_MODE %q is neither %q nor %q", errInvalid, c.Mode, ModeRun, ModeServe)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: LOG_LEVEL: %v", errInvalid, err)
	}
	if c.Mode == ModeServe && c.HTTPAddr == "" {
		return fmt.Errorf("%w: EVENTS_HTTP_ADDR is required in serve mode", errInvalid)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: EVENTS_SHUTDOWN_TIMEOUT must be positive", errInvalid)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

// TracingEnabled reports whether spans should be exported.
func (c Config) TracingEnabled() bool {
	return c.OTelEnabled && c.OTelEndpoint != ""
}

// IsInvalid reports whether err came from Validate.
func IsInvalid(err error) bool {
	return errors.Is(err, errInvalid)
}
