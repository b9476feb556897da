package renderer

import (
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/alariq/basic-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	TotalPixels    int           `json:"totalPixels"`    // Pixels written
	PrimaryRays    int64         `json:"primaryRays"`    // Camera rays traced
	ShadowRays     int64         `json:"shadowRays"`     // Visibility tests toward lights
	ReflectionRays int64         `json:"reflectionRays"` // Recursive mirror rays
	Hits           int64         `json:"hits"`           // Rays that struck a surface
	Misses         int64         `json:"misses"`         // Rays that escaped to the background
	MaxDepth       int           `json:"maxDepth"`
	Workers        int           `json:"workers"`
	Elapsed        time.Duration `json:"elapsed"`
}

// RaysPerSecond returns the total ray throughput
func (s RenderStats) RaysPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	total := s.PrimaryRays + s.ShadowRays + s.ReflectionRays
	return float64(total) / s.Elapsed.Seconds()
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%dx%d, %d primary / %d shadow / %d reflection rays, %d workers, %v",
		s.Width, s.Height, s.PrimaryRays, s.ShadowRays, s.ReflectionRays, s.Workers, s.Elapsed.Round(time.Millisecond))
}

// renderCounters are shared by every band of a render
type renderCounters struct {
	pixels      atomic.Int64
	primaryRays atomic.Int64
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image,
// with channels scaled to [0,1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Divide(255).Luminance()
		}
	}
	return total / float64(pixels)
}
