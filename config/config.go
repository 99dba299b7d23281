package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/zammelRocks/whale-spectrogram/logging"
	"github.com/zammelRocks/whale-spectrogram/render"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "SPECRENDER_"

// OutputConfig controls what the CLI writes
type OutputConfig struct {
	Dir     string   `yaml:"dir"`
	Methods []string `yaml:"methods"` // empty renders every method present
	Legend  bool     `yaml:"legend"`  // stack the legend under each image
	Zoom    int      `yaml:"zoom"`    // integer upscale of the written PNG
}

// LoggingConfig controls the global logger
type LoggingConfig struct {
	Level string `yaml:"level"`
	Color bool   `yaml:"color"`
}

// Config is the complete CLI configuration
type Config struct {
	Render  render.Config `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Render: *render.DefaultConfig(),
		Output: OutputConfig{
			Dir:    "spectrograms",
			Legend: true,
			Zoom:   1,
		},
		Logging: LoggingConfig{
			Level: "info",
			Color: true,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file. A .env file in the
// working directory is loaded first when present; real environment variables
// take precedence over it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overrides fields from SPECRENDER_* variables looked up with lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"BLOCK_SCALE":   &c.Render.BlockScale,
		"TICK_COUNT":    &c.Render.TickCount,
		"LEGEND_HEIGHT": &c.Render.LegendHeight,
		"MARGIN_LEFT":   &c.Render.Margins.Left,
		"MARGIN_RIGHT":  &c.Render.Margins.Right,
		"MARGIN_TOP":    &c.Render.Margins.Top,
		"MARGIN_BOTTOM": &c.Render.Margins.Bottom,
		"ZOOM":          &c.Output.Zoom,
	}
	for name, dst := range ints {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
	}

	floats := map[string]*float64{
		"DB_FLOOR":   &c.Render.DBFloor,
		"DB_CEILING": &c.Render.DBCeiling,
	}
	for name, dst := range floats {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = f
	}

	bools := map[string]*bool{
		"LEGEND":    &c.Output.Legend,
		"LOG_COLOR": &c.Logging.Color,
	}
	for name, dst := range bools {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
	}

	if v, ok := lookup(EnvPrefix + "OUT_DIR"); ok {
		c.Output.Dir = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvPrefix + "METHODS"); ok {
		c.Output.Methods = splitList(v)
	}

	return nil
}

// Validate checks render settings, output settings and the log level
func (c *Config) Validate() error {
	if err := c.Render.Validate(); err != nil {
		return err
	}
	if c.Output.Zoom < 1 {
		return fmt.Errorf("output zoom must be at least 1, got %d", c.Output.Zoom)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// Logger builds the logger described by the logging section
func (c *Config) Logger() logging.Logger {
	l := logging.NewDefaultLogger()
	if !c.Logging.Color {
		l.SetColors(false)
	}
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		level = logging.InfoLevel
	}
	l.SetLevel(level)
	return l
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
