package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{178, 76, 76, 255})
	return img
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, testImage()); err != nil {
		t.Fatalf("WritePPM() error: %v", err)
	}

	expected := "P3\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n178 76 76\n"
	if buf.String() != expected {
		t.Errorf("Unexpected PPM output:\n%q\nwant\n%q", buf.String(), expected)
	}
}

func TestSavePNG_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	img := testImage()
	if err := SaveImage(path, img, FormatFromPath(path)); err != nil {
		t.Fatalf("SaveImage() error: %v", err)
	}

	loaded, err := gg.LoadPNG(path)
	if err != nil {
		t.Fatalf("LoadPNG() error: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			r, g, b, _ := loaded.At(x, y).RGBA()
			want := img.RGBAAt(x, y)
			if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
				t.Errorf("Pixel (%d,%d) = (%d,%d,%d), want %v", x, y, r>>8, g>>8, b>>8, want)
			}
		}
	}
}

func TestEncodeImage(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeImage(&buf, testImage(), FormatPNG); err != nil {
		t.Fatalf("EncodeImage(png) error: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Encoded data is not a PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 2 || decoded.Bounds().Dy() != 2 {
		t.Errorf("Unexpected bounds %v", decoded.Bounds())
	}

	buf.Reset()
	if err := EncodeImage(&buf, testImage(), FormatPPM); err != nil || !bytes.HasPrefix(buf.Bytes(), []byte("P3\n")) {
		t.Errorf("EncodeImage(ppm) = %q, %v", buf.String(), err)
	}

	if err := EncodeImage(&buf, testImage(), FormatJPEG); err == nil {
		t.Error("Expected error streaming JPEG")
	}
}

func TestSaveImage_Formats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ppm", "b.png", "c.jpg"} {
		path := filepath.Join(dir, name)
		if err := SaveImage(path, testImage(), FormatFromPath(path)); err != nil {
			t.Fatalf("SaveImage(%s) error: %v", name, err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("Expected %s to be written: %v", name, err)
		}
	}

	if err := SaveImage(filepath.Join(dir, "missing", "x.ppm"), testImage(), FormatPPM); err == nil {
		t.Error("Expected error writing into a missing directory")
	}
}

func TestParseImageFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ImageFormat
		wantErr  bool
	}{
		{"ppm", FormatPPM, false},
		{"PNG", FormatPNG, false},
		{".png", FormatPNG, false},
		{"jpeg", FormatJPEG, false},
		{"jpg", FormatJPEG, false},
		{"gif", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseImageFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseImageFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseImageFormat(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}

	if FormatFromPath("render") != FormatPPM || FormatFromPath("x/render.PNG") != FormatPNG {
		t.Error("FormatFromPath did not derive the expected formats")
	}
}
