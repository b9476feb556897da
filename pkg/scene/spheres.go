package scene

import (
	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/geometry"
	"github.com/alariq/basic-raytracer/pkg/lights"
	"github.com/alariq/basic-raytracer/pkg/material"
)

// NewSpheresScene creates three spheres resting on a large ground sphere,
// lit by a directional sun and a warm point light
func NewSpheresScene(cameraOverrides ...CameraConfig) *Scene {
	defaultCameraConfig := CameraConfig{
		Center:        core.NewVec3(0, 0.75, 2), // Slightly above and behind the spheres
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		Aperture:      0.0,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	s := New()
	s.Name = "spheres"
	s.OutputFile = "spheres.ppm"
	s.CameraConfig = applyCameraOverrides(defaultCameraConfig, cameraOverrides)
	s.RenderConfig = RenderConfig{Width: 400, Height: 225, MaxDepth: 8}
	s.Ambient = core.NewVec3(0.1, 0.1, 0.1)

	ground := material.NewMirrorMaterial(core.NewVec3(0.8, 0.8, 0.0), 1, 0.9, 0.0, 1, 0.1)
	center := material.NewPhongMaterial(core.NewVec3(0.1, 0.2, 0.5), 1, 0.9, 0.5, 64)
	left := material.NewMirrorMaterial(core.NewVec3(0.8, 0.8, 0.8), 0.5, 0.3, 1.0, 256, 0.8)
	right := material.NewMirrorMaterial(core.NewVec3(0.8, 0.6, 0.2), 1, 0.8, 0.8, 32, 0.3)
	right.RefractionIOF = 1.5

	s.AddSphere(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground))
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center))
	s.AddSphere(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, left))
	s.AddSphere(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, right))

	s.AddLight(lights.NewDirectionalLight(core.NewVec3(-1, -1, -0.5), core.NewVec3(0.8, 0.8, 0.8)))
	s.AddLight(lights.NewPointLight(core.NewVec3(2, 2, 0), 0.1, core.NewVec3(0.5, 0.4, 0.3)))

	return s
}
