package scene

import (
	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/geometry"
	"github.com/alariq/basic-raytracer/pkg/lights"
	"github.com/alariq/basic-raytracer/pkg/material"
)

// NewCornellScene creates a Cornell box built from quad meshes, lit by a
// point light under the ceiling, with a mirror sphere and a glossy sphere
func NewCornellScene(cameraOverrides ...CameraConfig) *Scene {
	defaultCameraConfig := CameraConfig{
		Center:        core.NewVec3(278, 278, -800), // Outside the box looking in
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		Aperture:      0.0,
		FocusDistance: 0.0,
	}

	s := New()
	s.Name = "cornell"
	s.OutputFile = "cornell.ppm"
	s.CameraConfig = applyCameraOverrides(defaultCameraConfig, cameraOverrides)
	s.RenderConfig = RenderConfig{Width: 400, Height: 400, MaxDepth: 6}
	s.Ambient = core.NewVec3(0.1, 0.1, 0.1)
	s.SetBackground(core.NewVec3(0, 0, 0))

	white := material.NewPhongMaterial(core.NewVec3(0.73, 0.73, 0.73), 1, 0.9, 0, 1)
	red := material.NewPhongMaterial(core.NewVec3(0.65, 0.05, 0.05), 1, 0.9, 0, 1)
	green := material.NewPhongMaterial(core.NewVec3(0.12, 0.45, 0.15), 1, 0.9, 0, 1)

	// Cornell box dimensions (standard 555x555x555 units)
	boxSize := 555.0
	x := core.NewVec3(boxSize, 0, 0)
	y := core.NewVec3(0, boxSize, 0)
	z := core.NewVec3(0, 0, boxSize)
	origin := core.NewVec3(0, 0, 0)

	// Edge order is chosen so every wall's normal points into the box
	walls := []struct {
		data *geometry.MeshData
		mat  material.Material
	}{
		{NewQuadMeshData("floor", origin, z, x), white},
		{NewQuadMeshData("ceiling", y, x, z), white},
		{NewQuadMeshData("back", z, y, x), white},
		{NewQuadMeshData("left", origin, y, z), red},
		{NewQuadMeshData("right", x, z, y), green},
	}
	for _, w := range walls {
		s.AddMesh(geometry.NewMesh(w.data, w.mat))
	}

	mirror := material.NewMirrorMaterial(core.NewVec3(0.8, 0.8, 0.9), 0.2, 0.2, 1.0, 512, 0.85)
	glossy := material.NewPhongMaterial(core.NewVec3(0.9, 0.9, 0.9), 1, 0.8, 0.6, 64)

	s.AddSphere(geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, mirror))
	s.AddSphere(geometry.NewSphere(core.NewVec3(370, 90, 351), 90, glossy))

	s.AddLight(lights.NewPointLight(core.NewVec3(278, 540, 278), 10, core.NewVec3(0.9, 0.9, 0.9)))

	return s
}
