package renderer

import (
	"image"
	"image/color"
	"testing"
	"time"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red 0.2126 + Green 0.7152 + Blue 0.0722 + Black 0 = 1.0, averaged over 4
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_Empty(t *testing.T) {
	if lum := CalculateAverageLuminance(image.NewRGBA(image.Rect(0, 0, 0, 0))); lum != 0 {
		t.Errorf("Expected 0 for empty image, got %f", lum)
	}
}

func TestRenderStats_RaysPerSecond(t *testing.T) {
	stats := RenderStats{PrimaryRays: 100, ShadowRays: 50, ReflectionRays: 50, Elapsed: 2 * time.Second}
	if rps := stats.RaysPerSecond(); rps != 100 {
		t.Errorf("Expected 100 rays/s, got %f", rps)
	}
	if rps := (RenderStats{PrimaryRays: 10}).RaysPerSecond(); rps != 0 {
		t.Errorf("Expected 0 rays/s without elapsed time, got %f", rps)
	}
}
