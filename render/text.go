package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type hAlign int

const (
	alignLeft hAlign = iota
	alignCenter
	alignRight
)

type vAlign int

const (
	alignBaseline vAlign = iota
	alignTop
	alignMiddle
)

var labelFace font.Face = basicfont.Face7x13

func textWidth(s string) int {
	return font.MeasureString(labelFace, s).Ceil()
}

func textHeight() int {
	m := labelFace.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// drawText draws s anchored at (x, y) and returns the rectangle it covers
func drawText(dst draw.Image, s string, x, y int, h hAlign, v vAlign, col color.Color) image.Rectangle {
	w := textWidth(s)
	m := labelFace.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()

	switch h {
	case alignCenter:
		x -= w / 2
	case alignRight:
		x -= w
	}

	baseline := y
	switch v {
	case alignTop:
		baseline = y + ascent
	case alignMiddle:
		baseline = y + (ascent-descent)/2
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: labelFace,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)

	return image.Rect(x, baseline-ascent, x+w, baseline+descent)
}

// drawTextVertical draws s rotated 90 degrees counter-clockwise (reading
// bottom to top), its box starting at column x and centered on row cy.
// Glyph tops face left, so the baseline sits at x + ascent.
func drawTextVertical(dst draw.Image, s string, x, cy int, col color.Color) image.Rectangle {
	w, h := textWidth(s), textHeight()
	if w == 0 || h == 0 {
		return image.Rectangle{}
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: labelFace,
		Dot:  fixed.P(0, labelFace.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)

	rotated := image.NewAlpha(image.Rect(0, 0, h, w))
	for y := range h {
		for x := range w {
			rotated.SetAlpha(y, w-1-x, mask.AlphaAt(x, y))
		}
	}

	r := image.Rect(x, cy-w/2, x+h, cy-w/2+w)
	draw.DrawMask(dst, r, image.NewUniform(col), image.Point{}, rotated, image.Point{}, draw.Over)
	return r
}
