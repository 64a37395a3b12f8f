package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Repo     RepoConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// RepoConfig holds git repository settings.
type RepoConfig struct {
	// Path is the working directory inspected for branches and diffs.
	// Defaults to the current directory.
	Path string
}

// UIConfig holds presentation and timing settings.
type UIConfig struct {
	// TickMillis is the idle update interval of the event producer.
	TickMillis int
}

// DataDir is where the database and log file live.
func DataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "gitreview")
}

// TickInterval converts the configured tick rate to a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.UI.TickMillis) * time.Millisecond
}

// Load reads configuration from file and env. Env var overrides use prefix GITREVIEW_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(DataDir(), "gitreview.db"))
	v.SetDefault("repo.path", ".")
	v.SetDefault("ui.tick_millis", 33)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("GITREVIEW_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "gitreview"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GITREVIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
