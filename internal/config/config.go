// Package config resolves application settings from viper into typed
// structures the rest of the application consumes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/binalert/bin-alert/internal/common"
)

// Provider kinds accepted by the "provider.kind" setting.
const (
	ProviderStatic   = "static"
	ProviderOpenData = "opendata"
)

// StaticSettings configures the static file provider.
type StaticSettings struct {
	// Source is either an http(s) base URL or a local directory.
	Source string
	// Manifest is the manifest resource name within the source.
	Manifest string
}

// OpenDataSettings configures the open-data provider.
type OpenDataSettings struct {
	RecordsBaseURL string
	PageSize       int
	MaxPages       int
}

// Config is the resolved application configuration.
type Config struct {
	ProviderKind string
	Static       StaticSettings
	OpenData     OpenDataSettings
	LoadTimeout  time.Duration
	Retry        common.RetryOptions
	Listen       string
}

// Load resolves the configuration from viper, applying defaults.
func Load() (Config, error) {
	viper.SetDefault("provider.kind", ProviderOpenData)
	viper.SetDefault("provider.static.manifest", "dataset.json")
	viper.SetDefault("provider.load_timeout", "2m")
	viper.SetDefault("provider.retry.max_attempts", 3)
	viper.SetDefault("server.listen", ":8080")

	cfg := Config{
		ProviderKind: viper.GetString("provider.kind"),
		Static: StaticSettings{
			Source:   ExpandPath(viper.GetString("provider.static.source")),
			Manifest: viper.GetString("provider.static.manifest"),
		},
		OpenData: OpenDataSettings{
			RecordsBaseURL: viper.GetString("provider.opendata.base_url"),
			PageSize:       viper.GetInt("provider.opendata.page_size"),
			MaxPages:       viper.GetInt("provider.opendata.max_pages"),
		},
		LoadTimeout: viper.GetDuration("provider.load_timeout"),
		Retry: common.RetryOptions{
			MaxAttempts: viper.GetInt("provider.retry.max_attempts"),
		},
		Listen: viper.GetString("server.listen"),
	}

	switch cfg.ProviderKind {
	case ProviderStatic:
		if cfg.Static.Source == "" {
			return Config{}, fmt.Errorf("%w: provider.static.source is required for the static provider", common.ErrMissingConfig)
		}
	case ProviderOpenData:
		// All open-data settings have working defaults.
	default:
		return Config{}, fmt.Errorf("%w: unknown provider kind %q", common.ErrInvalidConfig, cfg.ProviderKind)
	}

	return cfg, nil
}

// ExpandPath expands ~ and environment variables in a file path. URLs are
// returned untouched.
func ExpandPath(path string) string {
	if path == "" || strings.Contains(path, "://") {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
