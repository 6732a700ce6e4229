package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessKeepsSmallImagesUnscaled(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	result, err := p.Process(bytes.NewReader(encodePNG(t, 800, 600)))
	require.NoError(t, err)

	assert.Equal(t, 800, result.Width)
	assert.Equal(t, 600, result.Height)
	assert.Equal(t, "image/png", result.ContentType)
	assert.NotEmpty(t, result.Display)
	assert.NotEmpty(t, result.Preview)
}

func TestProcessBoundsOversizedImages(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	result, err := p.Process(bytes.NewReader(encodePNG(t, 4000, 2000)))
	require.NoError(t, err)

	assert.LessOrEqual(t, result.Width, 1920)
	assert.LessOrEqual(t, result.Height, 1080)
}

func TestProcessPreviewIsSixteenByNine(t *testing.T) {
	cfg := DefaultConfig()
	p := NewProcessor(cfg)

	result, err := p.Process(bytes.NewReader(encodePNG(t, 1000, 1000)))
	require.NoError(t, err)

	preview, err := png.Decode(bytes.NewReader(result.Preview))
	require.NoError(t, err)
	assert.Equal(t, cfg.PreviewWidth, preview.Bounds().Dx())
	assert.Equal(t, cfg.PreviewHeight, preview.Bounds().Dy())
}

func TestProcessRejectsNonImageData(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	_, err := p.Process(bytes.NewReader([]byte("definitely not an image")))
	assert.Error(t, err)
}

func TestBackgroundPaths(t *testing.T) {
	display, preview := BackgroundPaths("abc123", ".png")
	assert.Equal(t, "backgrounds/abc123.png", display)
	assert.Equal(t, "backgrounds/abc123_preview.png", preview)
}
