// Package vmbridge embeds a small tagged-value interpreter and exposes its
// primitives to host programs: value construction and inspection through
// the bridge package, class registration, exception handling, and garbage
// collector control, plus scoped helpers that keep the collector's arena
// and enable flag balanced.
package vmbridge

import (
	"fmt"

	"github.com/robbyt/go-vmbridge/options"
	"github.com/robbyt/go-vmbridge/vm"
)

// New creates a booted interpreter instance
func New(opts ...options.Option) (*vm.State, error) {
	cfg := options.DefaultConfig()

	// Apply all options
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	// Apply defaults option as final step to fill in any missing values
	if err := options.WithDefaults()(cfg); err != nil {
		return nil, fmt.Errorf("error applying defaults: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := vm.NewState(cfg.GetHandler(), cfg.GetArenaCapacity())
	if cfg.GetGCDisabled() {
		s.GCDisable()
	}
	return s, nil
}

// FromSettingsFile creates an interpreter instance configured from a YAML
// settings file. Explicit options are applied after the file, so they win.
func FromSettingsFile(path string, opts ...options.Option) (*vm.State, error) {
	fileOpts, err := options.FromYAMLFile(path)
	if err != nil {
		return nil, err
	}

	allOpts := append(fileOpts, opts...)
	return New(allOpts...)
}

// Protect runs fn inside an exception-catching boundary, converting a raise
// into the returned error.
func Protect(s *vm.State, fn func(s *vm.State) vm.Value) (vm.Value, error) {
	return s.Protect(fn)
}

// WithArena brackets fn in an arena save/restore pair, so temporary values
// fn constructs are rooted while it runs and released when it returns. The
// arena is restored even when fn raises.
func WithArena(s *vm.State, fn func(s *vm.State) vm.Value) (vm.Value, error) {
	savepoint := s.CreateArenaSavepoint()
	defer savepoint.Restore()
	return s.Protect(fn)
}

// WithGCPaused runs fn with the collector disabled, restoring the prior
// enable state afterwards. Pauses nest: an inner pause does not re-enable
// a collector the outer pause disabled.
func WithGCPaused(s *vm.State, fn func(s *vm.State) vm.Value) (vm.Value, error) {
	wasEnabled := s.GCDisable()
	defer func() {
		if wasEnabled {
			s.GCEnable()
		}
	}()
	return s.Protect(fn)
}
