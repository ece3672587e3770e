// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Data     DataConfig     `toml:"data"`
	Service  ServiceConfig  `toml:"service"`
	Controls ControlsConfig `toml:"controls"`
	Feedback FeedbackConfig `toml:"feedback"`
}

// DataConfig maps the raw series input settings.
type DataConfig struct {
	Path        *string `toml:"path"`
	DateColumn  *string `toml:"date-column"`
	ValueColumn *string `toml:"value-column"`
}

// ServiceConfig maps the analysis service settings.
type ServiceConfig struct {
	URL       *string `toml:"url"`
	TimeoutMs *int    `toml:"timeout-ms"`
}

// ControlsConfig maps the default analysis controls.
type ControlsConfig struct {
	Freq   *string  `toml:"freq"`
	Period *int     `toml:"period"`
	Lags   *int     `toml:"lags"`
	Bins   *float64 `toml:"bins"`
}

// FeedbackConfig maps the status message settings.
type FeedbackConfig struct {
	DisplayMs *int `toml:"display-ms"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
