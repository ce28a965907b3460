// Package config loads REPL bootstrap settings from a YAML file (spec §6
// "Configuration (ambient stack)"): initial view, prompt template, idle
// timeout, undo/manual keyword choice, color theme, and a fixed ETH_IFNAME
// interface count (no custom interface-name prefixes). None of
// this has an original_source/ counterpart — democli.c hardcodes
// everything — it's the ambient configuration layer every complete service
// in this corpus carries, applied to the one piece of the library that
// plausibly wants it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape, one field per REPL/Engine bootstrap knob.
type Config struct {
	Prompt        string        `yaml:"prompt"`
	InitialView   string        `yaml:"initial_view"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
	UndoKeyword   string        `yaml:"undo_keyword"`
	ManualKeyword string        `yaml:"manual_keyword"`
	Theme         string        `yaml:"theme"`
	EthIfnum      int           `yaml:"eth_ifnum"`
	EOFCommand    string        `yaml:"eof_command"`
}

// Default returns the library's built-in defaults (spec §5's 300s idle
// timeout, "no"/"man" literals), used when no config file is supplied.
func Default() *Config {
	return &Config{
		Prompt:        "{host}{view}> ",
		InitialView:   "basic",
		IdleTimeout:   300 * time.Second,
		UndoKeyword:   "no",
		ManualKeyword: "man",
		Theme:         "tokyo-night",
		EthIfnum:      0, // 0 means "discover via netlink"
	}
}

// Load reads and parses a YAML config file, filling in Default() for any
// field the file omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
