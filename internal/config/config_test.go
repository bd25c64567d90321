package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults to the open-data provider", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ProviderOpenData, cfg.ProviderKind)
		assert.Equal(t, ":8080", cfg.Listen)
		assert.Equal(t, 3, cfg.Retry.MaxAttempts)
		assert.NotZero(t, cfg.LoadTimeout)
	})

	t.Run("static provider requires a source", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		viper.Set("provider.kind", ProviderStatic)

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("static provider with a source", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		viper.Set("provider.kind", ProviderStatic)
		viper.Set("provider.static.source", "/srv/schedules")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "/srv/schedules", cfg.Static.Source)
		assert.Equal(t, "dataset.json", cfg.Static.Manifest)
	})

	t.Run("unknown provider kind is rejected", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		viper.Set("provider.kind", "carrier-pigeon")

		_, err := Load()
		require.Error(t, err)
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, filepath.Join(home, "data"), ExpandPath("~/data"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "https://example.com/data", ExpandPath("https://example.com/data"))

	t.Setenv("BIN_ALERT_TEST_DIR", "/tmp/schedules")
	assert.Equal(t, "/tmp/schedules", ExpandPath("$BIN_ALERT_TEST_DIR"))
}
