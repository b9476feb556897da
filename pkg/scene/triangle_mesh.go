package scene

import (
	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/geometry"
	"github.com/alariq/basic-raytracer/pkg/lights"
	"github.com/alariq/basic-raytracer/pkg/material"
)

// NewTriangleMeshScene creates a scene showcasing triangle mesh geometry:
// a tessellated sphere and a rotated pyramid placed with transforms
func NewTriangleMeshScene(cameraOverrides ...CameraConfig) *Scene {
	defaultCameraConfig := CameraConfig{
		Center:        core.NewVec3(0, 2, 6), // Position camera to see the meshes
		LookAt:        core.NewVec3(0, 1, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          45.0,
		Aperture:      0.0,
		FocusDistance: 0.0,
	}

	s := New()
	s.Name = "trianglemesh"
	s.OutputFile = "trianglemesh.ppm"
	s.CameraConfig = applyCameraOverrides(defaultCameraConfig, cameraOverrides)
	s.RenderConfig = RenderConfig{Width: 400, Height: 225, MaxDepth: 5}
	s.Ambient = core.NewVec3(0.1, 0.1, 0.1)

	addTriangleMeshGround(s)
	addTriangleMeshGeometry(s)

	s.AddLight(lights.NewDirectionalLight(core.NewVec3(-1, -2, -1), core.NewVec3(0.7, 0.7, 0.7)))
	s.AddLight(lights.NewPointLight(core.NewVec3(-3, 4, 2), 0.5, core.NewVec3(0.4, 0.45, 0.5)))

	return s
}

// addTriangleMeshGround adds a mirror-ish ground quad
func addTriangleMeshGround(s *Scene) {
	groundMaterial := material.NewMirrorMaterial(core.NewVec3(0.7, 0.7, 0.7), 1, 0.8, 0, 1, 0.2)
	ground := NewQuadMeshData("ground",
		core.NewVec3(-10, 0, -10), core.NewVec3(0, 0, 20), core.NewVec3(20, 0, 0))
	s.AddMesh(geometry.NewMesh(ground, groundMaterial))
}

// addTriangleMeshGeometry adds the tessellated sphere and pyramid
func addTriangleMeshGeometry(s *Scene) {
	sphereMat := material.NewPhongMaterial(core.NewVec3(0.8, 0.3, 0.3), 1, 0.8, 0.5, 32)
	sphereTransform := geometry.Transform{
		Translate: core.NewVec3(-1.2, 1, 0),
		Scale:     core.NewVec3(1, 1, 1),
	}
	sphere := sphereTransform.Apply(NewUVSphereMeshData("uv-sphere", 16, 32))
	s.AddMesh(geometry.NewMesh(sphere, sphereMat))

	pyramidMat := material.NewMirrorMaterial(core.NewVec3(0.3, 0.6, 0.8), 1, 0.7, 0.8, 64, 0.25)
	pyramidTransform := geometry.Transform{
		Translate: core.NewVec3(1.3, 0, -0.5),
		Rotate:    core.NewVec3(0, 30, 0),
		Scale:     core.NewVec3(1.5, 1.5, 1.5),
	}
	pyramid := pyramidTransform.Apply(NewPyramidMeshData("pyramid", 1.2, 1.4))
	s.AddMesh(geometry.NewMesh(pyramid, pyramidMat))
}
