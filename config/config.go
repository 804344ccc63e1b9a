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

	"github.com/sajals2410/elyx-assignment/core/metrics"
)

type Config struct {
	Engine  EngineConfig   `json:"engine"`
	Inputs  InputsConfig   `json:"inputs"`
	Output  OutputConfig   `json:"output"`
	Range   RangeConfig    `json:"range"`
	Store   StoreConfig    `json:"store"`
	Metrics metrics.Config `json:"metrics"`
	API     APIConfig      `json:"api"`
}

// Load reads the configuration file, applies environment overrides with the
// ALLOC_ prefix and validates every section.
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
	// Optional environment overrides
	if err := k.Load(env.Provider("ALLOC_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "alloc_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Engine.SetDefaults()
	cfg.Output.SetDefaults()
	cfg.Store.SetDefaults()
	cfg.API.SetDefaults()
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Range.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Store.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
