package loaders

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
)

// ImageFormat selects the encoding of a rendered frame
type ImageFormat string

const (
	FormatPPM  ImageFormat = "ppm"
	FormatPNG  ImageFormat = "png"
	FormatJPEG ImageFormat = "jpg"
)

// jpegQuality is used for every JPEG written
const jpegQuality = 95

// ParseImageFormat validates a format name such as "png" or "jpeg"
func ParseImageFormat(name string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("unsupported image format %q (use ppm, png or jpg)", name)
	}
}

// FormatFromPath derives the format from a file extension, defaulting to PPM
func FormatFromPath(path string) ImageFormat {
	format, err := ParseImageFormat(filepath.Ext(path))
	if err != nil {
		return FormatPPM
	}
	return format
}

// SaveImage writes img to path in the given format
func SaveImage(path string, img *image.RGBA, format ImageFormat) error {
	switch format {
	case FormatPPM:
		return SavePPM(path, img)
	case FormatPNG:
		return SavePNG(path, img)
	case FormatJPEG:
		return SaveJPEG(path, img)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// EncodeImage writes img to w in the given format
func EncodeImage(w io.Writer, img *image.RGBA, format ImageFormat) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, img)
	case FormatPNG:
		return EncodePNG(w, img)
	default:
		return fmt.Errorf("cannot stream image format %q", format)
	}
}
