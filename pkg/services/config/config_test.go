package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)

		assert.Equal(t, "localhost:8080", cfg.Server.Addr())
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.False(t, cfg.Dashboard.FillGaps)
		assert.Equal(t, 5, cfg.Dashboard.TopStates)
		assert.Equal(t, "BRL", cfg.Dashboard.Currency)
		assert.Equal(t, "pt-BR", cfg.Dashboard.Locale)
		assert.Equal(t, "default", cfg.Profiles.Default)
		assert.Equal(t, ".atlasprofiles", filepath.Base(cfg.Profiles.Path))
	})

	t.Run("file values", func(t *testing.T) {
		// Given
		path := filepath.Join(t.TempDir(), "atlas.yaml")
		content := `
server:
  port: 9090
  shutdown_timeout: 3s
dashboard:
  fill_gaps: true
  top_states: 10
profiles:
  default: olist
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When
		cfg, err := LoadConfig(path)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
		assert.True(t, cfg.Dashboard.FillGaps)
		assert.Equal(t, 10, cfg.Dashboard.TopStates)
		assert.Equal(t, "olist", cfg.Profiles.Default)
		assert.Equal(t, "localhost", cfg.Server.Host)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("ATLAS_SERVER_PORT", "7070")
		t.Setenv("ATLAS_DASHBOARD_CURRENCY", "USD")

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "USD", cfg.Dashboard.Currency)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid top states", func(t *testing.T) {
		t.Setenv("ATLAS_DASHBOARD_TOP_STATES", "0")
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "top_states")
	})
}
