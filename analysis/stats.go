package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/zammelRocks/whale-spectrogram/render"
)

// IntensityStats summarizes the dB cells of one spectrogram
type IntensityStats struct {
	Rows      int     `json:"rows"`
	Cols      int     `json:"cols"`
	Min       float64 `json:"min_db"`
	Max       float64 `json:"max_db"`
	Mean      float64 `json:"mean_db"`
	NonFinite int     `json:"non_finite"` // cells drawn at the floor
	Clipped   int     `json:"clipped"`    // finite cells outside the display range
	Truncated bool    `json:"truncated"`
}

// Stats computes IntensityStats over the reconciled cells of in; clipping is
// counted against [floor, ceiling]. Min/Max/Mean are NaN when no cell is finite.
func Stats(in render.Input, floor, ceiling float64) IntensityStats {
	st := IntensityStats{
		Rows:      in.Rows(),
		Cols:      in.Cols(),
		Min:       math.NaN(),
		Max:       math.NaN(),
		Mean:      math.NaN(),
		Truncated: in.Truncated(),
	}
	if !in.HasData() {
		return st
	}

	finite := make([]float64, 0, in.Rows()*in.Cols())
	for f := range in.Rows() {
		for _, v := range in.Row(f) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				st.NonFinite++
				continue
			}
			if v < floor || v > ceiling {
				st.Clipped++
			}
			finite = append(finite, v)
		}
	}

	if len(finite) == 0 {
		return st
	}

	st.Min = floats.Min(finite)
	st.Max = floats.Max(finite)
	st.Mean = stat.Mean(finite, nil)
	return st
}
