package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Title        string   `toml:"title"`
	SourcePaths  []string `toml:"source_paths"`
	Snapshot     string   `toml:"snapshot"` // serialized type-description document
	SystemPrefix string   `toml:"system_prefix"`
	Diagram      Diagram  `toml:"diagram"`
	Exclude      Exclude  `toml:"exclude"`
	Watch        Watch    `toml:"watch"`
	Output       Output   `toml:"output"`
	History      History  `toml:"history"`
}

type Diagram struct {
	ExcludeClasses    bool `toml:"exclude_classes"`
	ExcludeInterfaces bool `toml:"exclude_interfaces"`
	ExcludeEnums      bool `toml:"exclude_enums"`
	NestedInheritance bool `toml:"nested_inheritance"`
	GroupByNamespace  bool `toml:"group_by_namespace"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce         time.Duration `toml:"debounce"`
	RendersPerSecond float64       `toml:"renders_per_second"`
}

type Output struct {
	Mermaid  string `toml:"mermaid"`
	PlantUML string `toml:"plantuml"`
	DOT      string `toml:"dot"`
	TSV      string `toml:"tsv"`
}

type History struct {
	Path string `toml:"path"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.RendersPerSecond == 0 {
		cfg.Watch.RendersPerSecond = 2
	}
	if len(cfg.SourcePaths) == 0 && cfg.Snapshot == "" {
		cfg.SourcePaths = []string{"."}
	}
	if cfg.Output.Mermaid == "" {
		cfg.Output.Mermaid = "classdiag.md"
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{".git", "node_modules", "build", "target", "dist"}
	}
}
