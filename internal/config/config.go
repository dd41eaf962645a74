// Package config loads the optional bibleodt.yaml settings file and merges
// it with command-line values.
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/bibleodt/core/errors"
	"github.com/FocuswithJustin/bibleodt/internal/formats/odt"
	"github.com/FocuswithJustin/bibleodt/internal/logging"
)

// DefaultFile is read from the working directory when no file is named.
const DefaultFile = "bibleodt.yaml"

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "auto"
)

// LogConfig selects log verbosity and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config models bibleodt.yaml.
type Config struct {
	// Style is a preset name or a path to a styles.xml file. A relative
	// path is resolved against the directory holding the config file.
	Style string `yaml:"style"`

	// BibleName replaces the name carried by the input document.
	BibleName string `yaml:"bible_name,omitempty"`

	Log LogConfig `yaml:"log"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Style: odt.DefaultStyle,
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Load reads the config file at path. An empty path means DefaultFile,
// which may be absent; a file named explicitly must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, errors.NewIO("read config", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Config{}, &errors.ParseError{Format: "YAML", Path: path, Message: err.Error(), Err: err}
	}

	parsed.applyDefaults()
	parsed.normalize(filepath.Dir(path))
	if err := parsed.validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return parsed, nil
}

// Override returns c with every non-empty argument taking precedence.
func (c Config) Override(style, level, format string) Config {
	if style != "" {
		c.Style = style
	}
	if level != "" {
		c.Log.Level = level
	}
	if format != "" {
		c.Log.Format = format
	}
	return c
}

// LogLevel returns the parsed log level.
func (c Config) LogLevel() (logging.Level, error) {
	return logging.ParseLevel(c.Log.Level)
}

// LogFormat returns the parsed log format.
func (c Config) LogFormat() (logging.Format, error) {
	return logging.ParseFormat(c.Log.Format)
}

func (c *Config) applyDefaults() {
	d := Default()
	if strings.TrimSpace(c.Style) == "" {
		c.Style = d.Style
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

func (c *Config) normalize(base string) {
	c.Style = strings.TrimSpace(c.Style)
	c.BibleName = strings.TrimSpace(c.BibleName)
	if isStylePath(c.Style) && !filepath.IsAbs(c.Style) {
		c.Style = filepath.Join(base, c.Style)
	}
}

func (c *Config) validate() error {
	if _, err := c.LogLevel(); err != nil {
		return &errors.ValidationError{Field: "log.level", Value: c.Log.Level, Message: err.Error()}
	}
	if _, err := c.LogFormat(); err != nil {
		return &errors.ValidationError{Field: "log.format", Value: c.Log.Format, Message: err.Error()}
	}
	return nil
}

// isStylePath reports whether style names a file rather than a preset.
func isStylePath(style string) bool {
	for _, p := range odt.Presets() {
		if style == p {
			return false
		}
	}
	return strings.ContainsAny(style, `/\`) || filepath.Ext(style) != ""
}
