package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegendStopsOrdered(t *testing.T) {
	stops := LegendStops()
	require.Len(t, stops, 5)
	assert.Equal(t, color.RGBA{0, 20, 60, 255}, stops[0])
	for i := 1; i < len(stops); i++ {
		assert.Greater(t, luminance(stops[i]), luminance(stops[i-1]), "stop %d", i)
	}
}

func TestDBLabel(t *testing.T) {
	assert.Equal(t, "-80 dB", DBLabel(-80))
	assert.Equal(t, "0 dB", DBLabel(0))
	assert.Equal(t, "-12.5 dB", DBLabel(-12.5))
}

func TestRenderLegendGradientQuietToLoud(t *testing.T) {
	cfg := DefaultConfig()
	img := RenderLegend(cfg, 300)
	require.NotNil(t, img)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, cfg.LegendHeight, img.Bounds().Dy())

	y := cfg.LegendHeight / 2
	left := textWidth(DBLabel(cfg.DBFloor)) + 2*legendPad
	right := 300 - textWidth(DBLabel(cfg.DBCeiling)) - 2*legendPad - 1

	// scan the bar row and require luminance never drops
	prev := -1
	for x := left; x <= right; x++ {
		l := luminance(img.RGBAAt(x, y))
		require.GreaterOrEqual(t, l, prev, "x=%d", x)
		prev = l
	}

	assert.Equal(t, LegendStops()[0], img.RGBAAt(left, y))
	assert.Equal(t, LegendStops()[4], img.RGBAAt(right, y))
}

func TestRenderLegendDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LegendHeight = 0
	assert.Nil(t, RenderLegend(cfg, 200))
	assert.Nil(t, RenderLegend(DefaultConfig(), 0))
}
