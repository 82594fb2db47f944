package options

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NotNil(t, cfg.GetHandler())
	require.Equal(t, defaultArenaCapacity, cfg.GetArenaCapacity())
	require.False(t, cfg.GetGCDisabled())
	require.NoError(t, cfg.Validate())
}

func TestWithLogHandler(t *testing.T) {
	t.Parallel()

	handler := slog.NewTextHandler(io.Discard, nil)

	t.Run("sets the handler", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, WithLogHandler(handler)(cfg))
		require.Equal(t, handler, cfg.GetHandler())
	})

	t.Run("nil handler is ignored", func(t *testing.T) {
		cfg := &Config{}
		cfg.SetHandler(handler)
		require.NoError(t, WithLogHandler(nil)(cfg))
		require.Equal(t, handler, cfg.GetHandler())
	})
}

func TestWithArenaCapacity(t *testing.T) {
	t.Parallel()

	t.Run("sets the capacity", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, WithArenaCapacity(500)(cfg))
		require.Equal(t, 500, cfg.GetArenaCapacity())
	})

	t.Run("rejects negative capacity", func(t *testing.T) {
		cfg := &Config{}
		require.Error(t, WithArenaCapacity(-1)(cfg))
	})
}

func TestWithGCDisabled(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	require.NoError(t, WithGCDisabled()(cfg))
	require.True(t, cfg.GetGCDisabled())
}

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	t.Run("fills missing values", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, WithDefaults()(cfg))
		require.NotNil(t, cfg.GetHandler())
		require.Equal(t, defaultArenaCapacity, cfg.GetArenaCapacity())
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		handler := slog.NewTextHandler(io.Discard, nil)
		cfg := &Config{}
		require.NoError(t, WithLogHandler(handler)(cfg))
		require.NoError(t, WithArenaCapacity(7)(cfg))
		require.NoError(t, WithDefaults()(cfg))
		require.Equal(t, handler, cfg.GetHandler())
		require.Equal(t, 7, cfg.GetArenaCapacity())
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("missing handler", func(t *testing.T) {
		cfg := &Config{}
		require.Error(t, cfg.Validate())
	})

	t.Run("complete config", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.Validate())
	})
}
