// Package iconload turns image files into sanitizer input. It decodes,
// downscales to the sanitizer's dimension cap, and flattens pixels into
// the packed buffer layout the notification service expects. The output
// still goes through sanitize.ValidateImage; this package produces
// candidate descriptors, it never bypasses the gate.
package iconload

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // decoder registration
	_ "image/png"  // decoder registration
	"os"

	"github.com/nfnt/resize"

	"github.com/llehouerou/notifygate/internal/sanitize"
)

// FromFile loads and validates an icon from a PNG or JPEG file.
func FromFile(path string) (*sanitize.ImageDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return FromImage(img)
}

// FromImage converts a decoded image into a validated descriptor,
// downscaling first if either dimension exceeds the sanitizer cap.
func FromImage(img image.Image) (*sanitize.ImageDescriptor, error) {
	b := img.Bounds()
	if b.Dx() > sanitize.MaxWidth || b.Dy() > sanitize.MaxHeight {
		img = resize.Thumbnail(sanitize.MaxWidth, sanitize.MaxHeight, img, resize.Lanczos3)
		b = img.Bounds()
	}

	width := b.Dx()
	height := b.Dy()
	hasAlpha := hasAlphaChannel(img)

	channels := 3
	if hasAlpha {
		channels = 4
	}
	rowStride := width * channels

	data := make([]byte, height*rowStride)
	for y := 0; y < height; y++ {
		row := data[y*rowStride:]
		for x := 0; x < width; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			p := row[x*channels:]
			p[0] = byte(r >> 8)
			p[1] = byte(g >> 8)
			p[2] = byte(bl >> 8)
			if hasAlpha {
				p[3] = byte(a >> 8)
			}
		}
	}

	return sanitize.ValidateImage(
		int32(width), int32(height), int32(rowStride),
		hasAlpha, 8, int32(channels), data,
	)
}

// hasAlphaChannel reports whether the image's color model can carry
// transparency. Opaque models (JPEG's YCbCr, Gray) get a 3-channel
// buffer, everything else keeps its alpha.
func hasAlphaChannel(img image.Image) bool {
	switch img.ColorModel() {
	case color.YCbCrModel, color.GrayModel, color.Gray16Model, color.CMYKModel:
		return false
	}
	return true
}
