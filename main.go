package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/integrator"
	"github.com/alariq/basic-raytracer/pkg/loaders"
	"github.com/alariq/basic-raytracer/pkg/renderer"
	"github.com/alariq/basic-raytracer/pkg/scene"
)

// options holds the command line settings of one render
type options struct {
	Scene   string
	Output  string
	Format  string
	Width   int
	Height  int
	Bounces int
	Workers int
	Seed    int64
	Gamma   bool
	Fresnel bool
	Falloff bool
}

func main() {
	// Parse command line flags
	var opts options
	flag.StringVar(&opts.Scene, "scene", "default", "Built-in scene name, name of a file in scenes/, or path to an .xml scene")
	flag.StringVar(&opts.Output, "out", "", "Output file (default: the scene's output file)")
	flag.StringVar(&opts.Format, "format", "", "Output format: ppm, png or jpg (default: from the output file extension)")
	flag.IntVar(&opts.Width, "width", 0, "Override image width")
	flag.IntVar(&opts.Height, "height", 0, "Override image height")
	flag.IntVar(&opts.Bounces, "bounces", 0, "Override maximum ray bounces")
	flag.IntVar(&opts.Workers, "workers", 1, "Parallel workers (1 = sequential, 0 = all CPUs)")
	flag.Int64Var(&opts.Seed, "seed", 0, "Lens sampling seed (0 = seed from the clock)")
	flag.BoolVar(&opts.Gamma, "gamma", false, "Apply gamma 2 correction before quantization")
	flag.BoolVar(&opts.Fresnel, "fresnel", false, "Weight reflections with Schlick's Fresnel approximation")
	flag.BoolVar(&opts.Falloff, "falloff", false, "Attenuate point lights with distance squared")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Basic Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		listScenes()
		return
	}

	logger := renderer.NewDefaultLogger()
	filename, stats, err := run(context.Background(), opts, logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rays: %d primary, %d shadow, %d reflection (%.0f rays/s)\n",
		stats.PrimaryRays, stats.ShadowRays, stats.ReflectionRays, stats.RaysPerSecond())
	fmt.Printf("Render saved as %s\n", filename)
}

// listScenes prints every built-in and discovered XML scene
func listScenes() {
	all, err := scene.ListAllScenes("")
	if err != nil {
		fmt.Printf("  (scene discovery failed: %v)\n", err)
		return
	}
	for _, group := range all.Groups {
		fmt.Printf("  %s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Printf("    %-14s %s\n", info.Name, info.Description)
		}
	}
}

// run renders one scene and writes it to disk, returning the output path
func run(ctx context.Context, opts options, logger core.Logger) (string, renderer.RenderStats, error) {
	s, err := createScene(opts.Scene, logger)
	if err != nil {
		return "", renderer.RenderStats{}, err
	}

	s.RenderConfig = scene.MergeRenderConfig(s.RenderConfig, scene.RenderConfig{
		Width:    opts.Width,
		Height:   opts.Height,
		MaxDepth: opts.Bounces,
	})
	if err := s.Validate(); err != nil {
		return "", renderer.RenderStats{}, err
	}

	filename, format, err := outputTarget(opts, s)
	if err != nil {
		return "", renderer.RenderStats{}, err
	}

	integConfig := integrator.DefaultConfig()
	integConfig.FresnelEnabled = opts.Fresnel
	integConfig.PointLightFalloff = opts.Falloff

	config := renderer.ConfigFromScene(s)
	config.GammaCorrection = opts.Gamma
	config.NumWorkers = opts.Workers
	config.Seed = opts.Seed

	logger.Printf("Rendering scene %q (%d primitives, %d lights)\n", s.Name, s.GetPrimitiveCount(), len(s.Lights))
	rt := renderer.NewRaytracer(s, integrator.NewWhittedIntegrator(integConfig), config, logger)
	img, stats, err := rt.Render(ctx)
	if err != nil {
		return "", stats, err
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", stats, fmt.Errorf("error creating output directory: %w", err)
		}
	}
	if err := loaders.SaveImage(filename, img, format); err != nil {
		return "", stats, err
	}
	return filename, stats, nil
}

// createScene resolves a scene argument: an .xml path, a built-in scene, or
// the name of an .xml file in the scenes directory
func createScene(sceneType string, logger core.Logger) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene given")
	}

	if strings.EqualFold(filepath.Ext(sceneType), ".xml") {
		return loaders.LoadScene(sceneType, logger)
	}

	if s, err := scene.NewBuiltinScene(sceneType); err == nil {
		return s, nil
	}

	path := filepath.Join("scenes", sceneType+".xml")
	if _, err := os.Stat(path); err == nil {
		return loaders.LoadScene(path, logger)
	}

	return nil, fmt.Errorf("unknown scene %q (built-in: %s, or an .xml scene file)",
		sceneType, strings.Join(scene.BuiltinNames(), ", "))
}

// outputTarget picks the output file and format. -out overrides the scene's
// output file and -format overrides the extension.
func outputTarget(opts options, s *scene.Scene) (string, loaders.ImageFormat, error) {
	filename := opts.Output
	if filename == "" {
		filename = s.OutputFile
	}
	if filename == "" {
		filename = s.Name + ".ppm"
	}

	if opts.Format == "" {
		return filename, loaders.FormatFromPath(filename), nil
	}
	format, err := loaders.ParseImageFormat(opts.Format)
	if err != nil {
		return "", "", err
	}
	return filename, format, nil
}
