package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "ATLAS"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Profiles  ProfilesConfig  `mapstructure:"profiles"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DashboardConfig struct {
	FillGaps  bool   `mapstructure:"fill_gaps"`
	TopStates int    `mapstructure:"top_states"`
	Currency  string `mapstructure:"currency"`
	Locale    string `mapstructure:"locale"`
}

type ProfilesConfig struct {
	Path    string `mapstructure:"path"`
	Default string `mapstructure:"default"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("dashboard.fill_gaps", false)
	v.SetDefault("dashboard.top_states", 5)
	v.SetDefault("dashboard.currency", "BRL")
	v.SetDefault("dashboard.locale", "pt-BR")
	v.SetDefault("profiles.default", "default")

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("profiles.path", filepath.Join(home, ".atlasprofiles"))
}

// LoadConfig reads the optional config file at path, then applies
// ATLAS_* environment overrides (ATLAS_SERVER_PORT, ATLAS_DASHBOARD_FILL_GAPS, ...).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Dashboard.TopStates <= 0 {
		return nil, fmt.Errorf("dashboard.top_states must be positive, got %d", cfg.Dashboard.TopStates)
	}
	return &cfg, nil
}
