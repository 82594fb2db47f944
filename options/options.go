package options

import (
	"fmt"
	"log/slog"
)

// Config holds all configuration for creating an interpreter instance
type Config struct {
	// Logger for the interpreter
	handler slog.Handler
	// Initial capacity of the collector's temporary-root arena
	arenaCapacity int
	// Start with the collector disabled
	gcDisabled bool
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithLogHandler sets the logger handler for the interpreter
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler != nil {
			c.handler = handler
		}
		return nil
	}
}

// WithArenaCapacity sets the initial capacity of the GC arena
func WithArenaCapacity(capacity int) Option {
	return func(c *Config) error {
		if capacity < 0 {
			return fmt.Errorf("arena capacity must not be negative, got %d", capacity)
		}
		c.arenaCapacity = capacity
		return nil
	}
}

// WithGCDisabled starts the interpreter with the collector disabled.
// Callers re-enable it with the GC control operations once setup that must
// not trigger a collection is complete.
func WithGCDisabled() Option {
	return func(c *Config) error {
		c.gcDisabled = true
		return nil
	}
}

// Validate performs basic validation on the configuration
func (c *Config) Validate() error {
	if c.handler == nil {
		return fmt.Errorf("no log handler specified")
	}
	if c.arenaCapacity < 0 {
		return fmt.Errorf("negative arena capacity")
	}
	return nil
}

// GetHandler returns the configured logger handler
func (c *Config) GetHandler() slog.Handler {
	return c.handler
}

// SetHandler sets the logger handler
func (c *Config) SetHandler(handler slog.Handler) {
	c.handler = handler
}

// GetArenaCapacity returns the configured arena capacity
func (c *Config) GetArenaCapacity() int {
	return c.arenaCapacity
}

// GetGCDisabled returns whether the collector starts disabled
func (c *Config) GetGCDisabled() bool {
	return c.gcDisabled
}
