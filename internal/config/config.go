package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/ballpit/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrontend    = "viz"
	DefaultFPS         = 60
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultFrames      = 1200
	DefaultRecordEvery = 1
	DefaultDataDir     = ".ballpit"
	DefaultTheme       = "cyberpunk"
	DefaultCellWidth   = 8.0
	DefaultCellHeight  = 16.0
)

var ErrUnknownFormat = errors.New("config: unknown file format")

type Config struct {
	Frontend    string         `yaml:"frontend" toml:"frontend"`
	FPS         int            `yaml:"fps" toml:"fps"`
	Seed        int64          `yaml:"seed" toml:"seed"`
	Width       float64        `yaml:"width" toml:"width"`
	Height      float64        `yaml:"height" toml:"height"`
	Frames      int            `yaml:"frames" toml:"frames"`
	RecordEvery int            `yaml:"record_every" toml:"record_every"`
	DataDir     string         `yaml:"data_dir" toml:"data_dir"`
	Theme       string         `yaml:"theme" toml:"theme"`
	Rainbow     bool           `yaml:"rainbow" toml:"rainbow"`
	Sound       bool           `yaml:"sound" toml:"sound"`
	CellWidth   float64        `yaml:"cell_width" toml:"cell_width"`
	CellHeight  float64        `yaml:"cell_height" toml:"cell_height"`
	Physics     physics.Params `yaml:"physics" toml:"physics"`
}

func DefaultConfig() *Config {
	return &Config{
		Frontend:    DefaultFrontend,
		FPS:         DefaultFPS,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Frames:      DefaultFrames,
		RecordEvery: DefaultRecordEvery,
		DataDir:     DefaultDataDir,
		Theme:       DefaultTheme,
		CellWidth:   DefaultCellWidth,
		CellHeight:  DefaultCellHeight,
		Physics:     physics.DefaultParams(),
	}
}

// Load reads a YAML or TOML file on top of the defaults. The format is
// picked from the file extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	switch format(path) {
	case "yaml":
		err = yaml.Unmarshal(data, cfg)
	case "toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	switch format(path) {
	case "yaml":
		data, err = yaml.Marshal(cfg)
	case "toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(cfg)
		data = buf.Bytes()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return fmt.Errorf("cell size must be positive, got %gx%g", c.CellWidth, c.CellHeight)
	}
	return c.Physics.Validate()
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	}
	return ""
}
