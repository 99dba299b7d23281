package render

import (
	"image/color"
	"math"
)

// Normalize clamps db into [floor, ceiling] and rescales it to [0, 1].
// Non-finite values (NaN and both infinities) are read as floor.
func Normalize(db, floor, ceiling float64) float64 {
	if math.IsNaN(db) || math.IsInf(db, 0) || ceiling <= floor {
		return 0
	}

	clamped := math.Max(floor, math.Min(ceiling, db))
	return (clamped - floor) / (ceiling - floor)
}

// ColorAt maps a normalized intensity onto the ocean palette:
// deep blue for quiet, cyan for medium, near-white for peaks.
// Out of range input is clamped; NaN is treated as 0.
func ColorAt(t float64) color.RGBA {
	if math.IsNaN(t) || t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	var r, g, b float64

	switch {
	case t < 0.3:
		r = 60 * t
		g = 20 + 80*t
		b = 60 + 150*t
	case t < 0.6:
		u := (t - 0.3) / 0.3
		r = 18 + 50*u
		g = 44 + 140*u
		b = 105 + 140*u
	case t < 0.85:
		v := (t - 0.6) / 0.25
		r = 68 + 90*v
		g = 184 + 50*v
		b = 245 + 10*v
	default:
		w := (t - 0.85) / 0.15
		r = 158 + 97*w
		g = 234 + 21*w
		b = 255
	}

	return color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}
}

// ColorFor is the full dB -> RGB mapping used for every spectrogram cell
func ColorFor(db, floor, ceiling float64) color.RGBA {
	return ColorAt(Normalize(db, floor, ceiling))
}

func channel(v float64) uint8 {
	v = math.Floor(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
