// Package config loads conversion settings for the command line tool from
// YAML files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/aerissecure/typstxl"
)

// Output modes.
const (
	ModeRecord = "record"
	ModeMarkup = "markup"
)

// MaxFileSize limits config input (64KB is far above any real file).
const MaxFileSize = 64 << 10

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidMode    = errors.New("invalid output mode")
	ErrInvalidSheet   = errors.New("invalid sheet index")
)

// Config holds the settings of one conversion.
type Config struct {
	Sheet int         `yaml:"sheet"`
	Mode  string      `yaml:"mode"` // "record" or "markup"
	Parse ParseConfig `yaml:"parse"`
}

// ParseConfig toggles the optional parts of the output.
type ParseConfig struct {
	Alignment       bool `yaml:"alignment"`
	Border          bool `yaml:"border"`
	BackgroundColor bool `yaml:"backgroundColor"`
	FontStyle       bool `yaml:"fontStyle"`
	TableStyle      bool `yaml:"tableStyle"`
}

// Default returns the settings used without a config file: first sheet,
// record mode, every style part off.
func Default() *Config {
	return &Config{Mode: ModeRecord}
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (max %d)", ErrConfigParse, path, info.Size(), MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML config data. Unknown fields are rejected; missing ones
// keep the Default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(data) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeRecord, ModeMarkup:
	default:
		return fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidMode, c.Mode, ModeRecord, ModeMarkup)
	}
	if c.Sheet < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSheet, c.Sheet)
	}
	return nil
}

// Options converts the config to conversion options.
func (c *Config) Options() typstxl.Options {
	return typstxl.Options{
		SheetIndex:      c.Sheet,
		Alignment:       c.Parse.Alignment,
		Border:          c.Parse.Border,
		BackgroundColor: c.Parse.BackgroundColor,
		FontStyle:       c.Parse.FontStyle,
		TableStyle:      c.Parse.TableStyle,
	}
}
