package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"time"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/integrator"
	"github.com/alariq/basic-raytracer/pkg/scene"
)

// Config contains rendering configuration
type Config struct {
	Width           int   // Image width
	Height          int   // Image height
	MaxDepth        int   // Maximum ray bounce depth
	GammaCorrection bool  // Square-root colors before quantization
	NumWorkers      int   // Parallel row bands; 1 renders sequentially, 0 uses every CPU
	Seed            int64 // Lens sampling seed, 0 seeds from the clock
}

// ConfigFromScene returns a sequential configuration using the scene's
// resolution and bounce budget
func ConfigFromScene(s *scene.Scene) Config {
	return Config{
		Width:      s.RenderConfig.Width,
		Height:     s.RenderConfig.Height,
		MaxDepth:   s.RenderConfig.MaxDepth,
		NumWorkers: 1,
	}
}

// Raytracer renders a scene through its camera, one color per pixel
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	camera     *Camera
	config     Config
	seed       int64
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. The scene must already be validated.
func NewRaytracer(s *scene.Scene, integ integrator.Integrator, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	aspectRatio := float64(config.Width) / float64(config.Height)
	return &Raytracer{
		scene:      s,
		integrator: integ,
		camera:     NewCamera(s.CameraConfig, aspectRatio, NewRandom(seed)),
		config:     config,
		seed:       seed,
		logger:     logger,
	}
}

// Camera returns the camera used for primary rays
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Config returns the render configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// ScreenCoordinates maps viewport column i and row j (j = 0 is the bottom)
// to normalized (s, t). A single-pixel axis maps to the viewport center.
func (rt *Raytracer) ScreenCoordinates(i, j int) (float64, float64) {
	s, t := 0.5, 0.5
	if rt.config.Width > 1 {
		s = float64(i) / float64(rt.config.Width-1)
	}
	if rt.config.Height > 1 {
		t = float64(j) / float64(rt.config.Height-1)
	}
	return s, t
}

// PixelRay returns the primary ray through image pixel (x, y), where y = 0
// is the top row of the image
func (rt *Raytracer) PixelRay(x, y int) core.Ray {
	s, t := rt.ScreenCoordinates(x, rt.config.Height-1-y)
	return rt.camera.GetRay(s, t)
}

// Render traces every pixel. Rows are visited from the top of the viewport
// (j = height-1) down and columns left to right; viewport row j is written
// to image row height-1-j.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))

	counterSource, hasCounters := rt.integrator.(interface{ Counters() *integrator.Counters })
	if hasCounters {
		counterSource.Counters().Reset()
	}

	rt.logger.Printf("Rendering %dx%d, max depth %d, %d worker(s)\n",
		rt.config.Width, rt.config.Height, rt.config.MaxDepth, rt.config.NumWorkers)

	var counters renderCounters
	if err := rt.renderBands(ctx, img, &counters); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render aborted: %w", err)
	}

	stats := RenderStats{
		Width:       rt.config.Width,
		Height:      rt.config.Height,
		TotalPixels: int(counters.pixels.Load()),
		PrimaryRays: counters.primaryRays.Load(),
		MaxDepth:    rt.config.MaxDepth,
		Workers:     rt.config.NumWorkers,
		Elapsed:     time.Since(start),
	}
	if hasCounters {
		c := counterSource.Counters()
		stats.ShadowRays = c.ShadowRays.Load()
		stats.ReflectionRays = c.ReflectionRays.Load()
		stats.Hits = c.Hits.Load()
		stats.Misses = c.Misses.Load()
	}

	rt.logger.Printf("Render completed: %v\n", stats)
	return img, stats, nil
}

// renderRow shades viewport row j with the given camera
func (rt *Raytracer) renderRow(camera *Camera, j int, img *image.RGBA, counters *renderCounters) {
	y := rt.config.Height - 1 - j
	for i := 0; i < rt.config.Width; i++ {
		s, t := rt.ScreenCoordinates(i, j)
		ray := camera.GetRay(s, t)
		pixelColor := rt.integrator.RayColor(ray, rt.scene, rt.config.MaxDepth)
		img.SetRGBA(i, y, Quantize(pixelColor, rt.config.GammaCorrection))
	}
	counters.primaryRays.Add(int64(rt.config.Width))
	counters.pixels.Add(int64(rt.config.Width))
}

// Quantize converts a linear color to 8-bit RGBA: optional square-root
// gamma, clamp to [0,1], scale by 255 and truncate
func Quantize(c core.Color, gamma bool) color.RGBA {
	c = core.NewVec3(unitClamp(c.X), unitClamp(c.Y), unitClamp(c.Z))
	if gamma {
		c = c.Sqrt()
	}

	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}

// unitClamp clamps to [0,1] and maps NaN to 0
func unitClamp(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
