// Package config provides configuration management for the textbreak
// command. It supports YAML and TOML configuration files, environment
// variables, and sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/textbreak"
	"github.com/gogpu/textbreak/segment"
)

// Measurer names accepted in configuration.
const (
	MeasurerOpenType  = "opentype"
	MeasurerShaping   = "shaping"
	MeasurerCells     = "cells"
	MeasurerRuneWidth = "runewidth"
	MeasurerTable     = "table"
)

// Output format names.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	measurers = []string{MeasurerOpenType, MeasurerShaping, MeasurerCells, MeasurerRuneWidth, MeasurerTable}
	formats   = []string{FormatText, FormatJSON, FormatYAML}
	colors    = []string{"auto", "always", "never"}
)

// Config represents the complete textbreak configuration.
type Config struct {
	// Wrap configures line packing and truncation
	Wrap WrapConfig `yaml:"wrap" toml:"wrap"`

	// Measure configures width measurement
	Measure MeasureConfig `yaml:"measure" toml:"measure"`

	// Segmenter is the segmentation backend (gotext, uniseg)
	Segmenter string `yaml:"segmenter" toml:"segmenter"`

	// Workers is the number of goroutines for batch wrapping; 0 uses GOMAXPROCS
	Workers int `yaml:"workers" toml:"workers"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output" toml:"output"`
}

// WrapConfig holds wrapping settings.
type WrapConfig struct {
	// Width is the maximum line width. Zero means the terminal width for
	// cell-based measurers, or 80 when there is no terminal.
	Width float64 `yaml:"width" toml:"width"`
	// MaxLines limits the number of lines; -1 disables the limit
	MaxLines int `yaml:"max_lines" toml:"max_lines"`
	// Truncate is the truncation policy (ellipsis, hard)
	Truncate string `yaml:"truncate" toml:"truncate"`
	// Ellipsis is the truncation marker
	Ellipsis string `yaml:"ellipsis" toml:"ellipsis"`
	// Collapse trims the text and collapses runs of spaces
	Collapse bool `yaml:"collapse" toml:"collapse"`
}

// MeasureConfig holds measurement settings.
type MeasureConfig struct {
	// Measurer selects the measurer (opentype, shaping, cells, runewidth, table)
	Measurer string `yaml:"measurer" toml:"measurer"`
	// Font is the CSS font shorthand passed to the measurer
	Font string `yaml:"font" toml:"font"`
	// Widths is the path of a grapheme width table; it implies the table measurer
	Widths string `yaml:"widths,omitempty" toml:"widths,omitempty"`
	// Fallback is the width of graphemes missing from the table; negative means none
	Fallback float64 `yaml:"fallback" toml:"fallback"`
	// AmbiguousWide counts East Asian ambiguous characters as two cells
	AmbiguousWide bool `yaml:"ambiguous_wide" toml:"ambiguous_wide"`
	// Cache is the per-shard capacity of the measurement cache; 0 disables it
	Cache int `yaml:"cache" toml:"cache"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Format is the output format (text, json, yaml)
	Format string `yaml:"format" toml:"format"`
	// Color controls color output (auto, always, never)
	Color string `yaml:"color" toml:"color"`
	// Widths prints the width of each line in text output
	Widths bool `yaml:"widths" toml:"widths"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Wrap: WrapConfig{
			Width:    0,
			MaxLines: textbreak.NoLimit,
			Truncate: textbreak.TruncateEllipsis.String(),
			Ellipsis: textbreak.DefaultEllipsis,
		},
		Measure: MeasureConfig{
			Measurer: MeasurerCells,
			Font:     "16px sans-serif",
			Fallback: -1,
		},
		Segmenter: segment.GoTextName,
		Output: OutputConfig{
			Format: FormatText,
			Color:  "auto",
		},
	}
}

// Load loads configuration from path, merging with defaults, then applies
// environment overrides. An empty path loads defaults and environment only.
// Files ending in .toml are decoded as TOML, anything else as YAML.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		// #nosec G304 - path is provided by the user
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.decode(path, data); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	cfg.applyEnvironment()
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), c)
		return err
	}
	return yaml.Unmarshal(data, c)
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern TEXTBREAK_<KEY>.
func (c *Config) applyEnvironment() {
	// Wrap settings
	if v := os.Getenv("TEXTBREAK_WIDTH"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.Wrap.Width = f
		}
	}
	if v := os.Getenv("TEXTBREAK_MAX_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= textbreak.NoLimit {
			c.Wrap.MaxLines = n
		}
	}
	if v := os.Getenv("TEXTBREAK_TRUNCATE"); v != "" {
		c.Wrap.Truncate = v
	}
	if v := os.Getenv("TEXTBREAK_ELLIPSIS"); v != "" {
		c.Wrap.Ellipsis = v
	}
	if v := os.Getenv("TEXTBREAK_COLLAPSE"); v != "" {
		c.Wrap.Collapse = parseBool(v)
	}

	// Measure settings
	if v := os.Getenv("TEXTBREAK_MEASURER"); v != "" {
		c.Measure.Measurer = v
	}
	if v := os.Getenv("TEXTBREAK_FONT"); v != "" {
		c.Measure.Font = v
	}
	if v := os.Getenv("TEXTBREAK_WIDTHS"); v != "" {
		c.Measure.Widths = v
	}
	if v := os.Getenv("TEXTBREAK_CACHE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Measure.Cache = n
		}
	}

	if v := os.Getenv("TEXTBREAK_SEGMENTER"); v != "" {
		c.Segmenter = v
	}
	if v := os.Getenv("TEXTBREAK_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Workers = n
		}
	}

	// Output settings
	if v := os.Getenv("TEXTBREAK_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("TEXTBREAK_COLOR"); v != "" {
		c.Output.Color = v
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Wrap.Width < 0 {
		return fmt.Errorf("config: width must not be negative, got %v", c.Wrap.Width)
	}
	if c.Wrap.MaxLines < textbreak.NoLimit {
		return fmt.Errorf("config: max_lines must be -1 or more, got %d", c.Wrap.MaxLines)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if _, err := textbreak.ParseTruncatePolicy(c.Wrap.Truncate); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := segment.Lookup(c.Segmenter); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !slices.Contains(measurers, strings.ToLower(c.Measure.Measurer)) {
		return fmt.Errorf("config: unknown measurer %q (available: %s)", c.Measure.Measurer, strings.Join(measurers, ", "))
	}
	if !slices.Contains(formats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("config: unknown format %q (available: %s)", c.Output.Format, strings.Join(formats, ", "))
	}
	if !slices.Contains(colors, strings.ToLower(c.Output.Color)) {
		return fmt.Errorf("config: unknown color mode %q (available: %s)", c.Output.Color, strings.Join(colors, ", "))
	}
	return nil
}

// MeasurerName returns the effective measurer: a widths table selects the
// table measurer.
func (c *Config) MeasurerName() string {
	if c.Measure.Widths != "" {
		return MeasurerTable
	}
	return strings.ToLower(c.Measure.Measurer)
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// LoadWidths reads a grapheme width table. The file maps grapheme strings
// to widths, in YAML or, for .toml files, TOML.
func LoadWidths(path string) (map[string]float64, error) {
	// #nosec G304 - path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	widths := make(map[string]float64)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err = toml.Decode(string(data), &widths)
	} else {
		err = yaml.Unmarshal(data, &widths)
	}
	if err != nil {
		return nil, fmt.Errorf("config: widths %s: %w", path, err)
	}
	return widths, nil
}
