package options

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSettings is the on-disk shape of an interpreter settings file.
type fileSettings struct {
	ArenaCapacity int    `yaml:"arena_capacity"`
	GCDisabled    bool   `yaml:"gc_disabled"`
	LogLevel      string `yaml:"log_level"`
}

// FromYAML parses a YAML settings document into options. Unknown keys are
// rejected so typos in settings files fail loudly.
func FromYAML(contents []byte) ([]Option, error) {
	var settings fileSettings

	dec := yaml.NewDecoder(bytes.NewReader(contents))
	dec.KnownFields(true)
	if err := dec.Decode(&settings); err != nil {
		if errors.Is(err, io.EOF) {
			// empty document, nothing to configure
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	var opts []Option
	if settings.ArenaCapacity != 0 {
		opts = append(opts, WithArenaCapacity(settings.ArenaCapacity))
	}
	if settings.GCDisabled {
		opts = append(opts, WithGCDisabled())
	}
	if settings.LogLevel != "" {
		level, err := parseLevel(settings.LogLevel)
		if err != nil {
			return nil, err
		}
		handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		opts = append(opts, WithLogHandler(handler))
	}

	return opts, nil
}

// FromYAMLFile reads a settings file from disk and parses it into options.
func FromYAMLFile(path string) ([]Option, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return FromYAML(contents)
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", name, err)
	}
	return level, nil
}
