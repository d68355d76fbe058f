// Package config loads CLI and server settings from etch.yaml and ETCH_* variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "etch.yaml"

// Output formats understood by the CLI.
const (
	FormatJSON     = "json"
	FormatDisplay  = "display"
	FormatMermaid  = "mermaid"
	FormatMarkdown = "markdown"
)

// Config holds every tunable setting.
type Config struct {
	LogLevel   string `yaml:"log_level" mapstructure:"log_level"`
	Addr       string `yaml:"addr" mapstructure:"addr"`
	Format     string `yaml:"format" mapstructure:"format"`
	HideValues bool   `yaml:"hide_values" mapstructure:"hide_values"`
	Backend    string `yaml:"backend" mapstructure:"backend"` // Recorder used by the HTTP API: "lm" or "gm"
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel: "info",
		Addr:     ":8080",
		Format:   FormatDisplay,
		Backend:  "gm",
	}
}

// Load reads path (a missing file is not an error) and applies ETCH_* environment overrides.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an injectable environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	raw := map[string]any{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	case os.IsNotExist(err):
		// No file means defaults plus environment.
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	for _, key := range []string{"log_level", "addr", "format", "hide_values", "backend"} {
		if v, ok := lookup("ETCH_" + strings.ToUpper(key)); ok {
			raw[key] = v
		}
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatDisplay, FormatMermaid, FormatMarkdown:
	default:
		return fmt.Errorf("invalid format %q (want json, display, mermaid or markdown)", c.Format)
	}
	switch c.Backend {
	case "lm", "gm":
	default:
		return fmt.Errorf("invalid backend %q (want lm or gm)", c.Backend)
	}
	return nil
}
