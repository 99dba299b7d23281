package render

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatMatrix(rows, cols int, db float64) [][]float64 {
	m := make([][]float64, rows)
	for f := range m {
		m[f] = make([]float64, cols)
		for t := range m[f] {
			m[f][t] = db
		}
	}
	return m
}

func TestCalibrateValuesAndLabels(t *testing.T) {
	in := NewInput(flatMatrix(10, 20, -40), []float64{0, 22050}, []float64{0, 2})
	axes := Calibrate(in, DefaultConfig())

	require.Len(t, axes.Freq, 6)
	require.Len(t, axes.Time, 6)

	wantFreq := []string{"0", "4410", "8820", "13230", "17640", "22050"}
	wantTime := []string{"0.0", "0.4", "0.8", "1.2", "1.6", "2.0"}
	for i := range 6 {
		assert.Equal(t, i, axes.Freq[i].Index)
		assert.Equal(t, wantFreq[i], axes.Freq[i].Label)
		assert.Equal(t, wantTime[i], axes.Time[i].Label)
		assert.InDelta(t, 22050*float64(i)/5, axes.Freq[i].Value, 1e-9)
		assert.InDelta(t, 2*float64(i)/5, axes.Time[i].Value, 1e-9)
	}

	assert.Equal(t, image.Rect(60, 20, 60+60, 20+30), axes.Plot)
}

func TestCalibratePixelPositions(t *testing.T) {
	in := NewInput(flatMatrix(10, 20, -40), nil, nil)
	cfg := DefaultConfig()
	axes := Calibrate(in, cfg)

	plotH := 10 * cfg.BlockScale
	plotW := 20 * cfg.BlockScale

	// frequency ticks rise from the bottom edge to the top edge
	assert.Equal(t, cfg.Margins.Top+plotH, axes.Freq[0].Pos)
	assert.Equal(t, cfg.Margins.Top, axes.Freq[len(axes.Freq)-1].Pos)

	assert.Equal(t, cfg.Margins.Left, axes.Time[0].Pos)
	assert.Equal(t, cfg.Margins.Left+plotW, axes.Time[len(axes.Time)-1].Pos)
}

func TestCalibrateEvenSpacing(t *testing.T) {
	tests := []struct {
		rows, cols, scale, ticks int
	}{
		{10, 20, 3, 5},
		{7, 13, 3, 5},
		{33, 9, 2, 4},
		{128, 431, 1, 8},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.BlockScale = tt.scale
		cfg.TickCount = tt.ticks

		axes := Calibrate(NewInput(flatMatrix(tt.rows, tt.cols, 0), nil, nil), cfg)
		freqStep := float64(tt.rows*tt.scale) / float64(tt.ticks)
		timeStep := float64(tt.cols*tt.scale) / float64(tt.ticks)

		for i := 0; i < tt.ticks; i++ {
			df := float64(axes.Freq[i].Pos - axes.Freq[i+1].Pos)
			dt := float64(axes.Time[i+1].Pos - axes.Time[i].Pos)
			assert.LessOrEqual(t, math.Abs(df-freqStep), 1.0, "freq step %d of %+v", i, tt)
			assert.LessOrEqual(t, math.Abs(dt-timeStep), 1.0, "time step %d of %+v", i, tt)
			assert.Positive(t, df)
			assert.Positive(t, dt)
		}
	}
}

func TestCalibrateIndexFallback(t *testing.T) {
	axes := Calibrate(NewInput(flatMatrix(4, 8, 0), nil, nil), DefaultConfig())
	assert.Equal(t, "4", axes.Freq[5].Label)
	assert.Equal(t, "8.0", axes.Time[5].Label)
}

func TestAxesNeverDrawOverRaster(t *testing.T) {
	in := NewInput([][]float64{
		{-80, -70, -60, -50},
		{-40, -30, -20, -10},
		{-5, 0, -80, -40},
	}, []float64{0, 500, 1000}, []float64{0, 0.1, 0.2, 0.3})
	cfg := DefaultConfig()

	out, err := Render(in, cfg)
	require.NoError(t, err)
	raster := Rasterize(in, cfg)

	plot := out.Axes.Plot
	for y := plot.Min.Y; y < plot.Max.Y; y++ {
		for x := plot.Min.X; x < plot.Max.X; x++ {
			require.Equal(t, raster.RGBAAt(x-plot.Min.X, y-plot.Min.Y), out.Image.RGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestAxesPaintLabelBands(t *testing.T) {
	in := NewInput(flatMatrix(20, 40, -40), []float64{0, 8000}, []float64{0, 3})
	out, err := Render(in, DefaultConfig())
	require.NoError(t, err)

	bg := image.NewRGBA(image.Rect(0, 0, 1, 1))
	bg.Set(0, 0, backgroundColor)
	plain := bg.RGBAAt(0, 0)

	changed := func(r image.Rectangle) bool {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if out.Image.RGBAAt(x, y) != plain {
					return true
				}
			}
		}
		return false
	}

	plot := out.Axes.Plot
	assert.True(t, changed(image.Rect(0, plot.Min.Y, plot.Min.X, plot.Max.Y)), "left band has labels")
	assert.True(t, changed(image.Rect(plot.Min.X, plot.Max.Y, plot.Max.X, out.Image.Bounds().Max.Y)), "bottom band has labels")
}

func TestAxisTextDoesNotOverlap(t *testing.T) {
	tests := []struct {
		name  string
		rows  int
		freqs []float64
	}{
		{"short plot, 22 kHz", 20, []float64{0, 22050}},
		{"tall plot, 8 kHz", 120, []float64{0, 8000}},
		{"short plot, 500 Hz", 20, []float64{0, 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			in := NewInput(flatMatrix(tt.rows, 40, -40), tt.freqs, []float64{0, 3})
			axes := Calibrate(in, cfg)
			width, height := cfg.CanvasSize(in.Rows(), in.Cols())
			canvas := image.Rect(0, 0, width, height)

			labels := drawAxes(image.NewRGBA(canvas), axes, cfg)

			require.False(t, labels.FreqTitle.Empty())
			require.False(t, labels.TimeTitle.Empty())
			assert.True(t, labels.FreqTitle.In(canvas), "freq title %v", labels.FreqTitle)
			assert.True(t, labels.TimeTitle.In(canvas), "time title %v", labels.TimeTitle)

			for i, r := range labels.Freq {
				assert.False(t, r.Overlaps(labels.FreqTitle), "freq label %q %v overlaps title %v", axes.Freq[i].Label, r, labels.FreqTitle)
				assert.False(t, r.Overlaps(axes.Plot), "freq label %q over plot", axes.Freq[i].Label)
			}
			for i, r := range labels.Time {
				assert.False(t, r.Overlaps(labels.TimeTitle), "time label %q %v overlaps title %v", axes.Time[i].Label, r, labels.TimeTitle)
				assert.GreaterOrEqual(t, labels.TimeTitle.Min.Y-r.Max.Y, titleGap)
			}
			assert.LessOrEqual(t, labels.FreqTitle.Max.X, cfg.Margins.Left/4+labelFace.Metrics().Descent.Ceil())
		})
	}
}
