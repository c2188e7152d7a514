// Package config defines the repstream configuration model and default
// values.
//
// Configuration lives in a TOML file. Precedence is: built-in defaults <
// config file < CLI flag overrides. Detection thresholds are not
// configurable; they are tuned constants inside the state machines.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds every configuration field for the repstream CLI.
type Config struct {
	// HistoryDB is the path of the SQLite session-history database.
	HistoryDB string `toml:"history_db"`
	// TemplateProfile is an optional path to a YAML reference profile.
	// Empty selects rule-based scoring.
	TemplateProfile string `toml:"template_profile"`
	// WatchDir is the default drop directory for the watch command.
	WatchDir string `toml:"watch_dir"`
	// Exercise is the default pipeline mode: pushup, squat or axis.
	Exercise string `toml:"exercise"`
	// AxisHand selects the tracked wrist in axis mode: left or right.
	AxisHand string `toml:"axis_hand"`
	// Verbose enables debug logging.
	Verbose bool `toml:"verbose"`
}

// Default returns a Config populated with all built-in default values.
func Default() Config {
	return Config{
		HistoryDB: filepath.Join(dataDir(), "history.db"),
		WatchDir:  filepath.Join(dataDir(), "inbox"),
		Exercise:  "pushup",
		AxisHand:  "left",
	}
}

// Load reads configuration from path, or from the first standard location
// when path is empty. A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	paths := []string{path}
	if path == "" {
		paths = standardPaths()
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			if path != "" {
				return cfg, fmt.Errorf("config file: %w", err)
			}
			continue
		}
		if _, err := toml.DecodeFile(p, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", p, err)
		}
		break
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Exercise {
	case "pushup", "squat", "axis":
	default:
		return fmt.Errorf("config: unknown exercise %q", c.Exercise)
	}
	switch c.AxisHand {
	case "left", "right":
	default:
		return fmt.Errorf("config: unknown axis_hand %q", c.AxisHand)
	}
	return nil
}

// standardPaths returns the config file lookup order.
func standardPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return []string{"repstream.toml"}
	}
	return []string{
		"repstream.toml",
		filepath.Join(home, ".config", "repstream", "config.toml"),
	}
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".repstream"
	}
	return filepath.Join(home, ".local", "share", "repstream")
}
