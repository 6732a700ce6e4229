package images

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"net/url"

	"github.com/disintegration/imaging"
)

const (
	placeholderWidth  = 600
	placeholderHeight = 400
)

// PlaceholderURL returns a hosted placeholder card for the description.
func PlaceholderURL(description string) string {
	if len(description) > 100 {
		description = description[:100]
	}
	return "https://placehold.co/600x400/4A90E2/FFFFFF?text=" + url.QueryEscape(description)
}

// Synthesize renders a deterministic gradient card for the description,
// for serving placeholders from our own storage instead of a third party.
func Synthesize(description string) ([]byte, error) {
	top, bottom := paletteFor(description)

	canvas := image.NewNRGBA(image.Rect(0, 0, placeholderWidth, placeholderHeight))
	for y := 0; y < placeholderHeight; y++ {
		t := float64(y) / float64(placeholderHeight-1)
		c := lerpColor(top, bottom, t)
		for x := 0; x < placeholderWidth; x++ {
			canvas.SetNRGBA(x, y, c)
		}
	}

	// A light blur softens the banding the linear gradient leaves behind.
	img := imaging.Blur(canvas, 1.5)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}

var palettes = [][2]color.NRGBA{
	{{R: 0x4A, G: 0x90, B: 0xE2, A: 0xFF}, {R: 0x14, G: 0x3A, B: 0x6E, A: 0xFF}},
	{{R: 0x50, G: 0xC8, B: 0x78, A: 0xFF}, {R: 0x1E, G: 0x5E, B: 0x38, A: 0xFF}},
	{{R: 0xE2, G: 0x8A, B: 0x4A, A: 0xFF}, {R: 0x6E, G: 0x38, B: 0x14, A: 0xFF}},
	{{R: 0x9B, G: 0x59, B: 0xB6, A: 0xFF}, {R: 0x44, G: 0x20, B: 0x55, A: 0xFF}},
}

func paletteFor(description string) (color.NRGBA, color.NRGBA) {
	h := fnv.New32a()
	h.Write([]byte(description))
	p := palettes[h.Sum32()%uint32(len(palettes))]
	return p[0], p[1]
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.NRGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: 0xFF,
	}
}
