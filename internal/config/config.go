// Package config loads cgwt configuration from a TOML file, falling back to
// defaults when no file exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration.
type Config struct {
	Agent     AgentConfig     `toml:"agent"`
	Tmux      TmuxConfig      `toml:"tmux"`
	Worktrees WorktreesConfig `toml:"worktrees"`
}

// AgentConfig controls the AI agent launched inside sessions.
type AgentConfig struct {
	// Command is the full command line started in every new session/window.
	Command string `toml:"command"`
}

// TmuxConfig controls how tmux is driven.
type TmuxConfig struct {
	// SupervisorWindowName names the first window of supervisor sessions.
	SupervisorWindowName string `toml:"supervisor_window_name"`
}

// WorktreesConfig controls where branch worktrees are checked out.
type WorktreesConfig struct {
	// Dir is the directory (relative to the worktree parent) that holds
	// per-branch checkouts. Empty means the parent itself.
	Dir string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Agent: AgentConfig{Command: "claude"},
		Tmux:  TmuxConfig{SupervisorWindowName: "supervisor"},
	}
}

// DefaultPath returns the user config file location,
// ~/.config/cgwt/config.toml on Linux.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "cgwt", "config.toml")
}

// Load reads the config file at path, layering it over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the config at path (or the default location when path
// is empty). A missing file is not an error; a malformed one is.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}
