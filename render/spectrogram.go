package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// NoDataMessage is shown by Placeholder
const NoDataMessage = "No spectrogram data available"

var placeholderTextColor = color.NRGBA{R: 0x64, G: 0x74, B: 0x8b, A: 255}

// Spectrogram is the output of one render
type Spectrogram struct {
	Image   *image.RGBA `json:"-"` // canvas with raster and axes, nil without data
	Legend  *image.RGBA `json:"-"` // gradient strip, nil when disabled or without data
	Axes    Axes        `json:"axes"`
	HasData bool        `json:"has_data"`
}

// Width returns the declared canvas width in pixels
func (s *Spectrogram) Width() int {
	if s == nil || s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dx()
}

// Height returns the declared canvas height in pixels, legend excluded
func (s *Spectrogram) Height() int {
	if s == nil || s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dy()
}

// Render produces the calibrated canvas and legend for in. An input without
// data yields HasData=false and never reaches the rasterizer.
func Render(in Input, cfg *Config) (*Spectrogram, error) {
	return render(in, cfg, nil)
}

func render(in Input, cfg *Config, abandon func() bool) (*Spectrogram, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !in.HasData() {
		return &Spectrogram{HasData: false}, nil
	}

	raster := rasterize(in, cfg, abandon)
	if raster == nil {
		return nil, nil
	}

	width, height := cfg.CanvasSize(in.Rows(), in.Cols())
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	axes := Calibrate(in, cfg)
	draw.Draw(canvas, axes.Plot, raster, image.Point{}, draw.Src)

	if abandon != nil && abandon() {
		return nil, nil
	}

	overlay := image.NewRGBA(canvas.Bounds())
	drawAxes(overlay, axes, cfg)
	draw.Draw(canvas, canvas.Bounds(), overlay, image.Point{}, draw.Over)

	return &Spectrogram{
		Image:   canvas,
		Legend:  RenderLegend(cfg, width),
		Axes:    axes,
		HasData: true,
	}, nil
}

// Compose stacks the canvas above the legend into a single image
func (s *Spectrogram) Compose() *image.RGBA {
	if s == nil || s.Image == nil {
		return nil
	}
	if s.Legend == nil {
		return s.Image
	}

	w := max(s.Image.Bounds().Dx(), s.Legend.Bounds().Dx())
	h := s.Image.Bounds().Dy() + s.Legend.Bounds().Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	draw.Draw(out, s.Image.Bounds(), s.Image, image.Point{}, draw.Src)
	legendAt := image.Rect(0, s.Image.Bounds().Dy(), s.Legend.Bounds().Dx(), h)
	draw.Draw(out, legendAt, s.Legend, image.Point{}, draw.Src)

	return out
}

// Scaled returns img blown up by an integer factor with nearest-neighbour
// sampling, which keeps the cell blocks crisp on high density displays
func Scaled(img *image.RGBA, factor int) (*image.RGBA, error) {
	if img == nil {
		return nil, nil
	}
	if factor < 1 {
		return nil, fmt.Errorf("scale factor must be at least 1, got %d", factor)
	}
	if factor == 1 {
		return img, nil
	}

	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out, nil
}

// Placeholder draws the card shown in place of a spectrogram without data
func Placeholder(width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)
	drawText(img, NoDataMessage, width/2, height/2, alignCenter, alignMiddle, placeholderTextColor)
	return img
}
