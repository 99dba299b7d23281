package render

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"gonum.org/v1/gonum/floats"
)

// Axis titles
const (
	FreqAxisTitle = "Frequency (Hz)"
	TimeAxisTitle = "Time (s)"
)

const (
	tickLength = 5 // perpendicular tick mark length
	labelGap   = 8 // distance between plot edge and tick label
	titleGap   = 4 // minimum distance between tick labels and axis title
	axisWidth  = 2

	timeTitleOffset = 28 // time title top, below the plot
)

var (
	axisColor       = color.NRGBA{R: 34, G: 211, B: 238, A: 153}
	tickLabelColor  = color.NRGBA{R: 0xba, G: 0xe6, B: 0xfd, A: 255}
	axisTitleColor  = color.NRGBA{R: 0x7d, G: 0xd3, B: 0xfc, A: 255}
	backgroundColor = color.NRGBA{R: 0, G: 10, B: 20, A: 242}
)

// Tick is one calibration mark on an axis
type Tick struct {
	Index int     `json:"index"`
	Value float64 `json:"value"` // physical value (Hz or s)
	Pos   int     `json:"pos"`   // canvas pixel: y for frequency, x for time
	Label string  `json:"label"`
}

// Axes is the calibration of one rendered spectrogram
type Axes struct {
	Plot image.Rectangle `json:"plot"` // where the raster sits on the canvas
	Freq []Tick          `json:"freq"`
	Time []Tick          `json:"time"`
}

// Calibrate computes TickCount+1 evenly spaced ticks per axis, mapping the
// physical ranges [0, MaxFreq] and [0, MaxTime] onto the plot rectangle
func Calibrate(in Input, cfg *Config) Axes {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	n := cfg.TickCount
	if n < 1 {
		n = 1
	}

	plotW := in.Cols() * cfg.BlockScale
	plotH := in.Rows() * cfg.BlockScale
	left, top := cfg.Margins.Left, cfg.Margins.Top

	axes := Axes{
		Plot: image.Rect(left, top, left+plotW, top+plotH),
		Freq: make([]Tick, n+1),
		Time: make([]Tick, n+1),
	}

	freqVals := floats.Span(make([]float64, n+1), 0, in.MaxFreq())
	timeVals := floats.Span(make([]float64, n+1), 0, in.MaxTime())

	for i := 0; i <= n; i++ {
		frac := float64(i) / float64(n)

		axes.Freq[i] = Tick{
			Index: i,
			Value: freqVals[i],
			Pos:   top + plotH - int(math.Round(float64(plotH)*frac)),
			Label: strconv.FormatFloat(freqVals[i], 'f', 0, 64),
		}

		axes.Time[i] = Tick{
			Index: i,
			Value: timeVals[i],
			Pos:   left + int(math.Round(float64(plotW)*frac)),
			Label: strconv.FormatFloat(timeVals[i], 'f', 1, 64),
		}
	}

	return axes
}

// axisLabels records where drawAxes placed its text
type axisLabels struct {
	Freq      []image.Rectangle
	Time      []image.Rectangle
	FreqTitle image.Rectangle
	TimeTitle image.Rectangle
}

// drawAxes paints axis lines, tick marks, labels and titles onto overlay,
// which must be a transparent image the size of the canvas
func drawAxes(overlay *image.RGBA, axes Axes, cfg *Config) axisLabels {
	plot := axes.Plot
	x0, x1 := float64(plot.Min.X), float64(plot.Max.X)
	y0, y1 := float64(plot.Min.Y), float64(plot.Max.Y)

	gc := draw2dimg.NewGraphicContext(overlay)
	gc.SetStrokeColor(axisColor)
	gc.SetLineWidth(axisWidth)
	gc.SetLineCap(draw2d.ButtCap)

	// Frequency axis along the left edge, time axis along the bottom
	gc.BeginPath()
	gc.MoveTo(x0, y0)
	gc.LineTo(x0, y1)
	gc.MoveTo(x0, y1)
	gc.LineTo(x1, y1)
	gc.Stroke()

	gc.BeginPath()
	for _, tick := range axes.Freq {
		y := float64(tick.Pos)
		gc.MoveTo(x0-tickLength, y)
		gc.LineTo(x0, y)
	}
	for _, tick := range axes.Time {
		x := float64(tick.Pos)
		gc.MoveTo(x, y1)
		gc.LineTo(x, y1+tickLength)
	}
	gc.Stroke()

	labels := axisLabels{
		Freq: make([]image.Rectangle, len(axes.Freq)),
		Time: make([]image.Rectangle, len(axes.Time)),
	}

	freqLeft := plot.Min.X - labelGap
	for i, tick := range axes.Freq {
		r := drawText(overlay, tick.Label, plot.Min.X-labelGap, tick.Pos, alignRight, alignMiddle, tickLabelColor)
		labels.Freq[i] = r
		freqLeft = min(freqLeft, r.Min.X)
	}

	timeBottom := plot.Max.Y + labelGap
	for i, tick := range axes.Time {
		r := drawText(overlay, tick.Label, tick.Pos, plot.Max.Y+labelGap, alignCenter, alignTop, tickLabelColor)
		labels.Time[i] = r
		timeBottom = max(timeBottom, r.Max.Y)
	}

	// Time title sits inside the bottom margin, never above the tick labels
	timeTop := min(plot.Max.Y+timeTitleOffset, plot.Max.Y+cfg.Margins.Bottom-textHeight())
	timeTop = max(timeTop, timeBottom+titleGap)
	labels.TimeTitle = drawText(overlay, TimeAxisTitle, plot.Min.X+plot.Dx()/2, timeTop, alignCenter, alignTop, axisTitleColor)

	// Frequency title baseline at a quarter of the left margin, pushed further
	// left when wide tick labels would reach it
	titleX := cfg.Margins.Left/4 - labelFace.Metrics().Ascent.Ceil()
	if limit := freqLeft - titleGap - textHeight(); titleX > limit {
		titleX = limit
	}
	labels.FreqTitle = drawTextVertical(overlay, FreqAxisTitle, titleX, plot.Min.Y+plot.Dy()/2, axisTitleColor)

	clearRect(overlay, plot)
	return labels
}

// clearRect makes r fully transparent so compositing the overlay leaves the
// pixels underneath untouched
func clearRect(img *image.RGBA, r image.Rectangle) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := img.PixOffset(r.Min.X, y)
		clear(img.Pix[off : off+4*r.Dx()])
	}
}
