package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// ProcessedBackground holds the display variant of an uploaded background
// plus a small preview for the admin console.
type ProcessedBackground struct {
	Display     []byte
	Preview     []byte
	ContentType string
	Width       int
	Height      int
}

// Config for background processing
type Config struct {
	MaxWidth      int // Max width for the display variant (default 1920)
	MaxHeight     int // Max height for the display variant (default 1080)
	PreviewWidth  int // Preview width (default 480)
	PreviewHeight int // Preview height (default 270)
	Quality       int // JPEG quality 1-100 (default 85)
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		MaxWidth:      1920,
		MaxHeight:     1080,
		PreviewWidth:  480,
		PreviewHeight: 270,
		Quality:       85,
	}
}

// Processor prepares uploaded background images for serving.
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Process decodes an uploaded background, bounds it to the display size and
// renders a 16:9 preview crop.
func (p *Processor) Process(reader io.Reader) (*ProcessedBackground, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	result := &ProcessedBackground{
		ContentType: mimeFromFormat(format),
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}

	resized := img
	if result.Width > p.config.MaxWidth || result.Height > p.config.MaxHeight {
		resized = imaging.Fit(img, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)
		result.Width = resized.Bounds().Dx()
		result.Height = resized.Bounds().Dy()
	}

	display, err := p.encode(resized, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode display variant: %w", err)
	}
	result.Display = display

	preview := imaging.Fill(img, p.config.PreviewWidth, p.config.PreviewHeight, imaging.Center, imaging.Lanczos)
	previewData, err := p.encode(preview, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	result.Preview = previewData

	return result, nil
}

// encode encodes image to bytes
func (p *Processor) encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		// JPEG for everything else
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.config.Quality}); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func mimeFromFormat(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// BackgroundPaths returns storage keys for the display and preview variants.
func BackgroundPaths(id, ext string) (display, preview string) {
	display = fmt.Sprintf("backgrounds/%s%s", id, ext)
	preview = fmt.Sprintf("backgrounds/%s_preview%s", id, ext)
	return
}
