package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/voltwise/stationmatch/core/engine"
	"github.com/voltwise/stationmatch/core/metrics"
	"github.com/voltwise/stationmatch/infra/directory"
)

// APIConfig defines the HTTP listen settings.
type APIConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies the default listen address.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Validate checks the listen address is present.
func (c APIConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("api addr is required")
	}
	return nil
}

// Config is the root service configuration.
type Config struct {
	API       APIConfig        `json:"api"`
	Directory directory.Config `json:"directory"`
	Metrics   metrics.Config   `json:"metrics"`
	Engine    engine.Config    `json:"engine"`
}

// Load reads the configuration file, applies SM_* environment overrides and
// fills in defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. SM_API__ADDR=:9000
	if err := k.Load(env.Provider("SM_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "sm_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.API.SetDefaults()
	cfg.Directory.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Engine.SetDefaults()
	if err := cfg.API.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
