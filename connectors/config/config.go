package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the structure of config.yml used by the tool. Every field
// is optional; command-line flags override anything set here.
type Config struct {
	CSV  string `yaml:"csv"`
	DB   string `yaml:"db"`
	Addr string `yaml:"addr"`
}

// Fallbacks used when neither a flag nor the config file provides a value.
const (
	DefaultCSV  = "linear-export.csv"
	DefaultDB   = "db/metrics.db"
	DefaultAddr = ":8080"
)

// Path returns the config file location: CONFIG_PATH if set, ./config.yml
// otherwise.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "./config.yml"
}

// Load parses the YAML configuration file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("Loaded config: %s", path))
	return &c, nil
}

// LoadOptional reads the config if the file exists and parses; otherwise it
// returns an empty config so flag and fallback resolution still work.
func LoadOptional() *Config {
	p := Path()
	if _, err := os.Stat(p); err != nil {
		return &Config{}
	}
	c, err := Load(p)
	if err != nil {
		slog.Warn("config.load.error", "path", p, "error", err)
		return &Config{}
	}
	return c
}

// Resolve applies the precedence flag > config file > fallback.
func Resolve(flagValue, configValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	return fallback
}
