package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	homedir "github.com/mitchellh/go-homedir"
	apppaths "github.com/muesli/go-app-paths"
	"github.com/spf13/viper"
)

// demoConfig is the demo tool's own settings, layered flag > env >
// file > built-in default — the same precedence shape as the Cascade
// (spec.md §4.A), which SPEC_FULL.md calls out as the ambient-stack
// mirror of the domain-stack cascade.
type demoConfig struct {
	DocPath   string  `mapstructure:"doc"`
	StylePath string  `mapstructure:"style"`
	Zoom      float64 `mapstructure:"zoom"`
	Watch     bool    `mapstructure:"watch"`
	Theme     string  `mapstructure:"theme"` // "dark" | "light" | "auto"
}

const appName = "flowdoc-demo"

// envOverrides are settings that live outside the flag/file cascade
// entirely -- ambient terminal/CI signals rather than document
// settings, parsed straight from the environment with caarlos0/env
// instead of threading them through viper's precedence chain.
type envOverrides struct {
	NoColor bool `env:"NO_COLOR"`
	LogJSON bool `env:"FLOWDOC_LOG_JSON" envDefault:"false"`
}

func loadEnvOverrides() (envOverrides, error) {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return envOverrides{}, fmt.Errorf("parsing environment overrides: %w", err)
	}
	return o, nil
}

// configDir locates the user's config directory for this tool,
// mirroring glow's own config discovery: go-app-paths first, falling
// back to $HOME/.config/<app> via go-homedir when the platform lookup
// fails.
func configDir() string {
	scope := apppaths.NewScope(apppaths.User, appName)
	if path, err := scope.ConfigPath("config.yaml"); err == nil && path != "" {
		return filepath.Dir(path)
	}
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// loadConfig builds a viper instance with flag > env > file > default
// precedence and unmarshals it into a demoConfig. v is the cobra
// command's own *viper.Viper-backed flag set, already populated by
// cobra's flag parsing; loadConfig binds it to env vars and an
// optional config file before reading the merged result.
func loadConfig(v *viper.Viper) (demoConfig, error) {
	v.SetEnvPrefix("FLOWDOC")
	v.AutomaticEnv()

	v.SetDefault("doc", "")
	v.SetDefault("style", "")
	v.SetDefault("zoom", 1.0)
	v.SetDefault("watch", false)
	v.SetDefault("theme", "auto")

	if dir := configDir(); dir != "" {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return demoConfig{}, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg demoConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return demoConfig{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// ensureConfigDir creates the config directory on first run so a user
// who later writes a config.yaml there has somewhere to put it. Best
// effort: failures are non-fatal since flag/env/default precedence
// still works without a config file.
func ensureConfigDir() {
	dir := configDir()
	if dir == "" {
		return
	}
	_ = os.MkdirAll(dir, 0o755)
}
