package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config is the lexgen.yaml shape. Flags override file values; both are
// optional except the lexicon directory, which must come from one of them.
type config struct {
	Lexicons string `yaml:"lexicons"`
	Out      string `yaml:"out"`
}

func loadConfig() (config, error) {
	cfg := config{Out: "gen"}

	path := configPath
	if path == "" {
		if _, err := os.Stat("lexgen.yaml"); err == nil {
			path = "lexgen.yaml"
		}
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		if cfg.Out == "" {
			cfg.Out = "gen"
		}
	}

	if lexiconDir != "" {
		cfg.Lexicons = lexiconDir
	}
	if outDir != "" {
		cfg.Out = outDir
	}
	if cfg.Lexicons == "" {
		return cfg, fmt.Errorf("no lexicon directory: pass --lexicons or set it in lexgen.yaml")
	}
	return cfg, nil
}
