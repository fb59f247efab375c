package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults used when a field is absent from the config file.
const (
	DefaultDBPath   = "pdf_database.db"
	DefaultTopN     = 10
	DefaultHTTPAddr = "127.0.0.1:8080"
)

// Config holds analyzer settings.
type Config struct {
	DBPath         string   `yaml:"db_path"`
	TopN           int      `yaml:"top_n"`
	ExtraStopwords []string `yaml:"extra_stopwords"`
	HTTPAddr       string   `yaml:"http_addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath:   DefaultDBPath,
		TopN:     DefaultTopN,
		HTTPAddr: DefaultHTTPAddr,
	}
}

// Load reads configuration from a YAML file. An empty path returns the
// defaults; absent fields fall back to them.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = DefaultHTTPAddr
	}
	return cfg, nil
}
