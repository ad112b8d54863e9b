package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	MediaFolder string `koanf:"media_folder"` // folder scanned for media at startup, empty means cwd

	// Playback behavior
	Playback PlaybackConfig `koanf:"playback"`
}

// PlaybackConfig holds playback-related configuration.
type PlaybackConfig struct {
	Volume   float64 `koanf:"volume"`    // initial volume level (0.0-1.0, default: 1.0)
	Muted    bool    `koanf:"muted"`     // start muted (default: false)
	Loop     string  `koanf:"loop"`      // "none", "all", or "single" (default: "none")
	SeekStep int     `koanf:"seek_step"` // relative seek step in seconds (1-300, default: 10)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		MediaFolder: "", // empty means use cwd
		Playback: PlaybackConfig{
			Volume:   1.0,
			SeekStep: 10,
		},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Expand ~ in media_folder
	if cfg.MediaFolder != "" {
		cfg.MediaFolder = expandPath(cfg.MediaFolder)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/reel/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "reel", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	// Apply defaults
	if cfg.Volume < 0 || cfg.Volume > 1 {
		cfg.Volume = 1.0
	}
	switch cfg.Loop {
	case "none", "all", "single":
	default:
		cfg.Loop = "none"
	}
	if cfg.SeekStep <= 0 || cfg.SeekStep > 300 {
		cfg.SeekStep = 10
	}

	return cfg
}
