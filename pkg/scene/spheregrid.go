package scene

import (
	"fmt"
	"math"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/geometry"
	"github.com/alariq/basic-raytracer/pkg/lights"
	"github.com/alariq/basic-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a 10x10 grid of spheres on a ground quad.
// Hue varies along X and reflectance along Z.
func NewSphereGridScene(cameraOverrides ...CameraConfig) *Scene {
	defaultCameraConfig := CameraConfig{
		Center:        core.NewVec3(4.5, 6, 18),    // Farther back and slightly lower
		LookAt:        core.NewVec3(4.5, 0.8, 4.5), // Center of the grid
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		Aperture:      0.0,
		FocusDistance: 0.0,
	}

	s := New()
	s.Name = "spheregrid"
	s.OutputFile = "spheregrid.ppm"
	s.CameraConfig = applyCameraOverrides(defaultCameraConfig, cameraOverrides)
	s.RenderConfig = RenderConfig{Width: 480, Height: 270, MaxDepth: 6}
	s.Ambient = core.NewVec3(0.15, 0.15, 0.15)

	const gridSize = 10
	const spacing = 1.0
	const radius = 0.4

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			hue := float64(i) / gridSize * 360.0
			albedo := oklchToRGB(0.7, 0.15, hue)
			reflectance := float64(j) / (gridSize - 1) * 0.9

			mat := material.NewMirrorMaterial(albedo, 1, 0.8, 0.6, 48, reflectance)
			center := core.NewVec3(float64(i)*spacing, radius, float64(j)*spacing)
			s.AddSphere(geometry.NewSphere(center, radius, mat))
		}
	}

	groundMat := material.NewPhongMaterial(core.NewVec3(0.5, 0.5, 0.5), 1, 0.8, 0, 1)
	// u = +Z, v = +X so the ground faces up
	ground := NewQuadMeshData(fmt.Sprintf("ground-%d", gridSize),
		core.NewVec3(-20, 0, -20), core.NewVec3(0, 0, 50), core.NewVec3(50, 0, 0))
	s.AddMesh(geometry.NewMesh(ground, groundMat))

	s.AddLight(lights.NewDirectionalLight(core.NewVec3(-0.5, -1, -0.7), core.NewVec3(0.9, 0.9, 0.85)))

	return s
}
