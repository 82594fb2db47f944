package options

import (
	"log/slog"
	"os"
)

// defaultArenaCapacity matches the interpreter's built-in arena sizing.
const defaultArenaCapacity = 100

// DefaultConfig initializes a Config with sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.SetHandler(DefaultHandler())
	cfg.arenaCapacity = defaultArenaCapacity
	return cfg
}

// DefaultHandler returns the default logging handler
func DefaultHandler() slog.Handler {
	return slog.NewTextHandler(os.Stdout, nil)
}

// WithDefaults applies default values to any config properties that are unset
func WithDefaults() Option {
	return func(c *Config) error {
		if c.handler == nil {
			c.handler = DefaultHandler()
		}

		if c.arenaCapacity == 0 {
			c.arenaCapacity = defaultArenaCapacity
		}

		return nil
	}
}
