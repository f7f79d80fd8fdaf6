// Package config merges built-in defaults, the TOML config file and
// command-line flags into the editor configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/seek/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
	Theme  ThemeConfig   `toml:"theme"`
}

// EditorConfig holds editor and search settings.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	ScrollOff       int  `toml:"scroll_off"`
	SystemClipboard bool `toml:"system_clipboard"`
	LiteralSearch   bool `toml:"literal_search"` // match patterns verbatim instead of as regexps
	MaxMatches      int  `toml:"max_matches"`    // 0 means unlimited
	WatchFile       bool `toml:"watch_file"`     // report external changes to the open file
}

// ThemeConfig points at an optional TOML theme file.
type ThemeConfig struct {
	File string `toml:"file"`
}

// NewDefaultConfig creates a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			Level: "info",
			File:  DefaultLogPath(),
		},
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			LiteralSearch:   LiteralSearch,
			MaxMatches:      DefaultMaxMatches,
			WatchFile:       WatchFile,
		},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/seek/config.toml, or "" when the
// user config directory is unknown.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// DefaultLogPath returns the log file under the user cache directory,
// falling back to the working directory.
func DefaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return DefaultLogFileName
	}
	return filepath.Join(dir, AppName, DefaultLogFileName)
}

// decodeFile decodes a TOML file over cfg. Keys missing from the file keep
// their current values. A missing file is not an error.
func decodeFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debugf("Config file not found: %s", path)
			return nil
		}
		return fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': unrecognized keys: %v", path, undecoded)
	}
	logger.Infof("Loaded configuration from: %s", path)
	return nil
}

// validate resets out-of-range values to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()
	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.MaxMatches < 0 {
		c.Editor.MaxMatches = defaults.Editor.MaxMatches
	}
	if c.Logger.Level == "" {
		c.Logger.Level = defaults.Logger.Level
	}
}

// Load builds the configuration: defaults, then the file at path (the
// default location when path is empty), then flags that were set. The
// returned config is always usable; a file error is returned alongside it.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	if path == "" {
		path = DefaultConfigPath()
	}
	var loadErr error
	if path != "" {
		fileCfg := *cfg
		if err := decodeFile(path, &fileCfg); err != nil {
			loadErr = err
		} else {
			cfg = &fileCfg
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, loadErr
}
