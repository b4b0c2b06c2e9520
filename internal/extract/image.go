package extract

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"os"

	// Decoders for the supported image extensions. PNG and JPEG come from
	// the standard library; the rest from golang.org/x/image.
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 90

// normalizeImage decodes an image file, flattens it to RGB, and re-encodes
// it as a single-frame JPEG held in memory. Multi-frame containers decode
// to their first frame.
func normalizeImage(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	// Flatten to RGBA; the JPEG encoder drops the alpha channel, which
	// gives the RGB frame the model expects.
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgba, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to re-encode image %s: %w", path, err)
	}
	return buf.Bytes(), nil
}
