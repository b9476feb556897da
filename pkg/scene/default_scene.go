package scene

import (
	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/geometry"
	"github.com/alariq/basic-raytracer/pkg/material"
)

// NewDefaultScene creates a single red sphere in front of the camera, lit
// only by a white ambient term, with the sky gradient behind it
func NewDefaultScene(cameraOverrides ...CameraConfig) *Scene {
	s := New()
	s.Name = "default"
	s.OutputFile = "default.ppm"
	s.CameraConfig = applyCameraOverrides(DefaultCameraConfig(), cameraOverrides)
	s.RenderConfig = RenderConfig{Width: 256, Height: 256, MaxDepth: 5}
	s.Ambient = core.NewVec3(1, 1, 1)

	red := material.NewMaterial(core.NewVec3(0.7, 0.3, 0.3))
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, red))

	return s
}

// NewGradientScene creates an empty scene: every pixel shows the sky gradient
func NewGradientScene(cameraOverrides ...CameraConfig) *Scene {
	s := New()
	s.Name = "gradient"
	s.OutputFile = "gradient.ppm"
	s.CameraConfig = applyCameraOverrides(DefaultCameraConfig(), cameraOverrides)
	s.RenderConfig = RenderConfig{Width: 256, Height: 256, MaxDepth: 1}
	return s
}

func applyCameraOverrides(base CameraConfig, overrides []CameraConfig) CameraConfig {
	if len(overrides) > 0 {
		return MergeCameraConfig(base, overrides[0])
	}
	return base
}
