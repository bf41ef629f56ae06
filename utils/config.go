package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the game
type Config struct {
	ViewWidth           int      `json:"view_width" yaml:"view_width"`
	ViewHeight          int      `json:"view_height" yaml:"view_height"`
	OriginX             int      `json:"origin_x" yaml:"origin_x"`
	OriginY             int      `json:"origin_y" yaml:"origin_y"`
	FrameRate           Duration `json:"frame_rate" yaml:"frame_rate"`
	AutoAdvance         bool     `json:"auto_advance" yaml:"auto_advance"`
	StagnationThreshold int      `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	MaxGenerations      int      `json:"max_generations" yaml:"max_generations"`
	Pattern             string   `json:"pattern" yaml:"pattern"`
	ClearScreen         bool     `json:"clear_screen" yaml:"clear_screen"`
	LogLevel            string   `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		ViewWidth:           40,
		ViewHeight:          20,
		OriginX:             -20,
		OriginY:             -10,
		FrameRate:           Duration(400 * time.Millisecond),
		AutoAdvance:         false,
		StagnationThreshold: 5,
		MaxGenerations:      0, // unlimited
		Pattern:             "glider",
		ClearScreen:         true,
		LogLevel:            "info",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}
	return config, nil
}

// Validate checks that the config values are usable
func (c Config) Validate() error {
	if c.ViewWidth <= 0 || c.ViewHeight <= 0 {
		return errors.Errorf("view must be positive, got %dx%d", c.ViewWidth, c.ViewHeight)
	}
	if c.FrameRate <= 0 {
		return errors.Errorf("frame_rate must be positive, got %s", time.Duration(c.FrameRate))
	}
	if c.StagnationThreshold < 0 || c.MaxGenerations < 0 {
		return errors.New("stagnation_threshold and max_generations must not be negative")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Duration is a time.Duration read from config files as a string such as "250ms"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "duration must be a string")
	}
	return d.set(s)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return errors.Wrap(err, "duration must be a string")
	}
	return d.set(s)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) set(s string) error {
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", s)
	}
	*d = Duration(parsed)
	return nil
}
