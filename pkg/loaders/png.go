package loaders

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"
)

// EncodePNG writes img to w as PNG
func EncodePNG(w io.Writer, img *image.RGBA) error {
	if err := gg.NewContextForRGBA(img).EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes img to a PNG file
func SavePNG(path string, img *image.RGBA) error {
	if err := gg.NewContextForRGBA(img).SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// SaveJPEG writes img to a JPEG file
func SaveJPEG(path string, img *image.RGBA) error {
	if err := gg.SaveJPG(path, img, jpegQuality); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
