package doodle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default window settings.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultTPS    = 60
)

// Options configures the window and renderer. Zero fields take defaults.
type Options struct {
	// Title is the window title.
	Title string `yaml:"title" toml:"title"`
	// Background clears the screen each frame. The zero value leaves the
	// screen black.
	Background Color `yaml:"background" toml:"background"`
	// TPS is the number of Update calls per second (default 60).
	TPS int `yaml:"tps" toml:"tps"`
	// Resizable lets the user resize the window.
	Resizable bool `yaml:"resizable" toml:"resizable"`
	// AntiAlias smooths shape edges and filters scaled images.
	AntiAlias bool `yaml:"antialias" toml:"antialias"`
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool `yaml:"show_fps" toml:"show_fps"`
	// Debug enables per-frame stats and tree warnings on the logger.
	Debug bool `yaml:"debug" toml:"debug"`
	// Headless disables device polling; only injected input is processed.
	Headless bool `yaml:"headless" toml:"headless"`
	// ScreenshotDir is where Screenshot writes PNGs (default "screenshots").
	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
}

func (o Options) withDefaults() Options {
	if o.TPS <= 0 {
		o.TPS = DefaultTPS
	}
	if o.ScreenshotDir == "" {
		o.ScreenshotDir = "screenshots"
	}
	if o.Title == "" {
		o.Title = "doodle"
	}
	return o
}

// Config is the file form of a scene setup: the window size plus Options.
type Config struct {
	Width   int `yaml:"width" toml:"width"`
	Height  int `yaml:"height" toml:"height"`
	Options `yaml:",inline"`
}

// Format names a config/scene file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("doodle: unsupported config extension %q", filepath.Ext(path))
}

// Decode unmarshals data in the given format into v.
func Decode(data []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("doodle: parse yaml: %w", err)
		}
		return nil
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("doodle: parse toml: %w", err)
		}
		return nil
	}
	return fmt.Errorf("doodle: unsupported format %q", format)
}

// ParseConfig decodes a Config from data.
func ParseConfig(data []byte, format Format) (Config, error) {
	var cfg Config
	if err := Decode(data, format, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a .yaml, .yml or .toml config file.
func LoadConfig(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("doodle: read config: %w", err)
	}
	return ParseConfig(data, format)
}

// UnmarshalText parses a color string (see ParseColor), letting colors be
// written as strings in YAML and TOML files.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText formats the color as "#rrggbb" or "#rrggbbaa".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
