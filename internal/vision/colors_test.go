package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colorPage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func fillColorRect(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.Set(x, y, c)
		}
	}
}

func TestColorDetectorBlankPage(t *testing.T) {
	detector := NewColorDetector(DefaultColorConfig())

	regions, err := detector.Detect(colorPage(600, 600), 72)
	require.NoError(t, err)
	assert.Empty(t, regions, "a white page has no background colors")
}

func TestColorDetectorTwoBlocks(t *testing.T) {
	img := colorPage(600, 600)
	fillColorRect(img, 0, 0, 300, 300, color.RGBA{R: 255, A: 255})
	fillColorRect(img, 300, 300, 600, 600, color.RGBA{B: 255, A: 255})

	detector := NewColorDetector(DefaultColorConfig())
	regions, err := detector.Detect(img, 72)
	require.NoError(t, err)
	require.Len(t, regions, 2)

	byHex := make(map[string]ColorRegion, len(regions))
	for _, r := range regions {
		assert.Equal(t, "background_color", r.ElementType)
		assert.Equal(t, PositionUnits, r.Position.Units)
		byHex[r.Color.Hex] = r
	}

	red, ok := byHex["#ff0000"]
	require.True(t, ok, "missing red region, got %v", byHex)
	assert.Equal(t, [3]int{255, 0, 0}, red.Color.RGB)
	// Nine fully red 100px cells fit inside the 300px block.
	assert.Equal(t, 9, red.RegionCount)
	assert.InDelta(t, 0.0, red.Position.X, 0.01)
	assert.InDelta(t, 0.0, red.Position.Y, 0.01)
	assert.InDelta(t, 300.0, red.Position.Width, 0.01)
	assert.InDelta(t, 300.0, red.Position.Height, 0.01)

	blue, ok := byHex["#0000ff"]
	require.True(t, ok, "missing blue region, got %v", byHex)
	assert.Equal(t, [3]int{0, 0, 255}, blue.Color.RGB)
	assert.Equal(t, 4, blue.RegionCount)
	assert.InDelta(t, 300.0, blue.Position.X, 0.01)
	assert.InDelta(t, 300.0, blue.Position.Y, 0.01)
}

func TestColorDetectorSingleColor(t *testing.T) {
	img := colorPage(600, 400)
	fillColorRect(img, 0, 0, 400, 400, color.RGBA{R: 200, G: 220, A: 255})

	detector := NewColorDetector(DefaultColorConfig())
	regions, err := detector.Detect(img, 72)
	require.NoError(t, err)
	require.Len(t, regions, 1)

	assert.Equal(t, [3]int{200, 220, 0}, regions[0].Color.RGB)
	// Twelve fully colored 100px cells fit inside the 400x400 block.
	assert.Equal(t, 12, regions[0].RegionCount)
}

func TestColorDetectorIgnoresGrayCells(t *testing.T) {
	img := colorPage(600, 400)
	// Mid-gray carries no channel spread, so it is not a background color.
	fillColorRect(img, 0, 0, 400, 400, color.RGBA{R: 140, G: 140, B: 140, A: 255})

	detector := NewColorDetector(DefaultColorConfig())
	regions, err := detector.Detect(img, 72)
	require.NoError(t, err)
	assert.Empty(t, regions)
}

func TestColorDetectorScalesToPoints(t *testing.T) {
	img := colorPage(600, 600)
	fillColorRect(img, 0, 0, 400, 400, color.RGBA{G: 180, B: 40, A: 255})

	detector := NewColorDetector(DefaultColorConfig())
	regions, err := detector.Detect(img, 144)
	require.NoError(t, err)
	require.Len(t, regions, 1)

	// At 144 DPI one pixel is half a point.
	assert.InDelta(t, 0.0, regions[0].Position.X, 0.01)
	assert.InDelta(t, 200.0, regions[0].Position.Width, 0.01)
}
