// Package config handles textsprite configuration loading and saving.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Filename is the name looked for in the working and config directories.
const Filename = "textsprite.yaml"

var errBadColor = errors.New("config: colors must be written as #RRGGBB")

// Config holds all tool settings.
type Config struct {
	Compile CompileConfig `yaml:"compile"`
	Cache   CacheConfig   `yaml:"cache"`
	Render  RenderConfig  `yaml:"render"`
	Import  ImportConfig  `yaml:"import"`
	Codegen CodegenConfig `yaml:"codegen"`
	Logging LoggingConfig `yaml:"logging"`
}

// CompileConfig controls directory scans.
type CompileConfig struct {
	Extension string `yaml:"extension"`
	Workers   int    `yaml:"workers"`
}

// CacheConfig locates the compile cache. An empty path disables it.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// RenderConfig controls preview images.
type RenderConfig struct {
	Palette []string `yaml:"palette"`
	Scale   int      `yaml:"scale"`
}

// ImportConfig controls converting images to sprite text.
type ImportConfig struct {
	Glyphs string `yaml:"glyphs"`
	Indent string `yaml:"indent"`
}

// CodegenConfig controls generated Go source.
type CodegenConfig struct {
	Package string `yaml:"package"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns a Config with the stock settings. The palette is the
// WASM-4 default.
func Default() *Config {
	return &Config{
		Compile: CompileConfig{
			Extension: ".sprite",
			Workers:   10,
		},
		Render: RenderConfig{
			Palette: []string{"#E0F8CF", "#86C06C", "#306850", "#071821"},
			Scale:   1,
		},
		Import: ImportConfig{
			Glyphs: "█▓▒.",
			Indent: "",
		},
		Codegen: CodegenConfig{
			Package: "sprites",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load returns the defaults overlaid with the file at path. With an empty
// path the standard locations are searched and a missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	return cfg, nil
}

func findConfigFile() string {
	candidates := []string{
		Filename,
		filepath.Join(Dir(), Filename),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Dir returns the OS-appropriate config directory.
func Dir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "textsprite")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "textsprite")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "textsprite")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "textsprite")
	}
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// SaveTo writes the config to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Colors parses the render palette.
func (r RenderConfig) Colors() (color.Palette, error) {
	p := make(color.Palette, 0, len(r.Palette))
	for _, s := range r.Palette {
		c, err := parseColor(s)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	return p, nil
}

func parseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", errBadColor, s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", errBadColor, s)
	}

	return color.RGBA{byte(v >> 16), byte(v >> 8), byte(v), 0xff}, nil
}
