package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Source  string        `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Site    SiteConfig    `yaml:"site"`
	Strict  bool          `yaml:"strict"`
	Serve   ServeConfig   `yaml:"serve,omitempty"`
	History HistoryConfig `yaml:"history,omitempty"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // Clean output directory before build
}

// SiteConfig holds site-wide rendering settings.
type SiteConfig struct {
	// Prefix is prepended to every generated internal link, for deployment
	// under a non-root URL path.
	Prefix string `yaml:"prefix,omitempty"`
	// Template selects a built-in template by name. It overrides any
	// template.html discovered in the source tree.
	Template string `yaml:"template,omitempty"`
}

// ServeConfig configures the local preview server.
type ServeConfig struct {
	Port         int    `yaml:"port,omitempty"`
	Watch        bool   `yaml:"watch,omitempty"`
	RebuildEvery string `yaml:"rebuild_every,omitempty"` // Go duration string, e.g. "5m"
}

// HistoryConfig configures the optional build-history store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// Load loads configuration from the specified file. A missing file is not an
// error: flags alone are enough to drive a build, so Load returns defaults.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Normalize()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Normalize applies defaults to unset fields.
func (c *Config) Normalize() {
	if c.Source == "" {
		c.Source = "."
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./output"
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = 8080
	}
	if c.History.Path == "" {
		c.History.Path = ".sitegen/history.db"
	}
}

// loadEnvFiles loads environment variables from .env/.env.local if present.
// Existing process environment variables are not overwritten.
func loadEnvFiles() {
	for _, p := range []string{".env", ".env.local"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}
