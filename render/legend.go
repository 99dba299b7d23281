package render

import (
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/draw"
)

const (
	legendBarHeight = 12
	legendPad       = 8
)

var legendLabelColor = color.NRGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 255}

// LegendStops are the five palette samples the legend gradient runs through,
// quiet to loud
func LegendStops() []color.RGBA {
	return []color.RGBA{ColorAt(0), ColorAt(0.25), ColorAt(0.5), ColorAt(0.75), ColorAt(1)}
}

// DBLabel formats a dB bound for display, e.g. "-80 dB"
func DBLabel(db float64) string {
	return strconv.FormatFloat(db, 'f', -1, 64) + " dB"
}

// RenderLegend draws the gradient bar flanked by the floor and ceiling labels.
// It returns nil when width or the configured legend height is not positive.
func RenderLegend(cfg *Config, width int) *image.RGBA {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	height := cfg.LegendHeight
	if width <= 0 || height <= 0 {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	midY := height / 2
	lo := DBLabel(cfg.DBFloor)
	hi := DBLabel(cfg.DBCeiling)

	loRect := drawText(img, lo, legendPad, midY, alignLeft, alignMiddle, legendLabelColor)
	hiRect := drawText(img, hi, width-legendPad, midY, alignRight, alignMiddle, legendLabelColor)

	barTop := midY - legendBarHeight/2
	bar := image.Rect(loRect.Max.X+legendPad, barTop, hiRect.Min.X-legendPad, barTop+legendBarHeight)
	bar = bar.Intersect(img.Bounds())
	if bar.Dx() > 0 {
		drawGradient(img, bar, LegendStops())
	}

	return img
}

// drawGradient fills r left to right, interpolating linearly between equally
// spaced stops
func drawGradient(img *image.RGBA, r image.Rectangle, stops []color.RGBA) {
	segments := len(stops) - 1
	span := r.Dx() - 1

	for x := 0; x < r.Dx(); x++ {
		pos := 0.0
		if span > 0 {
			pos = float64(x) / float64(span) * float64(segments)
		}

		i := int(pos)
		if i >= segments {
			i = segments - 1
		}
		frac := pos - float64(i)
		c := lerpRGBA(stops[i], stops[i+1], frac)

		for y := r.Min.Y; y < r.Max.Y; y++ {
			img.SetRGBA(r.Min.X+x, y, c)
		}
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	mix := func(p, q uint8) uint8 {
		return uint8(float64(p) + (float64(q)-float64(p))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
