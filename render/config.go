package render

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure
var ErrInvalidConfig = errors.New("invalid render config")

// Margins are the pixel insets around the raster reserved for axis labels
type Margins struct {
	Left   int `yaml:"left" json:"left"`
	Right  int `yaml:"right" json:"right"`
	Top    int `yaml:"top" json:"top"`
	Bottom int `yaml:"bottom" json:"bottom"`
}

// Config holds the per-render settings. It is never mutated by a render.
type Config struct {
	BlockScale   int     `yaml:"block_scale" json:"block_scale"`     // pixels per matrix cell on each axis
	DBFloor      float64 `yaml:"db_floor" json:"db_floor"`           // quietest displayed level
	DBCeiling    float64 `yaml:"db_ceiling" json:"db_ceiling"`       // loudest displayed level
	Margins      Margins `yaml:"margins" json:"margins"`             // label bands around the raster
	TickCount    int     `yaml:"tick_count" json:"tick_count"`       // labeled intervals per axis
	LegendHeight int     `yaml:"legend_height" json:"legend_height"` // 0 disables the legend strip
}

// DefaultConfig returns the viewer's stock settings
func DefaultConfig() *Config {
	return &Config{
		BlockScale: 3,
		DBFloor:    -80,
		DBCeiling:  0,
		Margins: Margins{
			Left:   60,
			Right:  20,
			Top:    20,
			Bottom: 40,
		},
		TickCount:    5,
		LegendHeight: 28,
	}
}

// Validate checks the invariants the rasterizer and calibrator rely on
func (c *Config) Validate() error {
	if c.BlockScale <= 0 {
		return fmt.Errorf("%w: block scale must be positive, got %d", ErrInvalidConfig, c.BlockScale)
	}

	if math.IsNaN(c.DBFloor) || math.IsInf(c.DBFloor, 0) ||
		math.IsNaN(c.DBCeiling) || math.IsInf(c.DBCeiling, 0) {
		return fmt.Errorf("%w: dB bounds must be finite", ErrInvalidConfig)
	}

	if c.DBFloor >= c.DBCeiling {
		return fmt.Errorf("%w: dB floor %g must be below ceiling %g", ErrInvalidConfig, c.DBFloor, c.DBCeiling)
	}

	m := c.Margins
	if m.Left < 0 || m.Right < 0 || m.Top < 0 || m.Bottom < 0 {
		return fmt.Errorf("%w: margins must not be negative", ErrInvalidConfig)
	}

	if c.TickCount <= 0 {
		return fmt.Errorf("%w: tick count must be positive, got %d", ErrInvalidConfig, c.TickCount)
	}

	if c.LegendHeight < 0 {
		return fmt.Errorf("%w: legend height must not be negative", ErrInvalidConfig)
	}

	return nil
}

// CanvasSize returns the full image size for a rows x cols matrix
func (c *Config) CanvasSize(rows, cols int) (width, height int) {
	width = cols*c.BlockScale + c.Margins.Left + c.Margins.Right
	height = rows*c.BlockScale + c.Margins.Top + c.Margins.Bottom
	return width, height
}
