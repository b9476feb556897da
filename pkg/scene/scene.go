package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/geometry"
	"github.com/alariq/basic-raytracer/pkg/lights"
)

// ErrInvalidScene is wrapped by every Validate failure
var ErrInvalidScene = errors.New("invalid scene")

// NoBackground is the background sentinel: a negative X component means the
// sky gradient is used for rays that escape the scene.
var NoBackground = core.NewVec3(-1, -1, -1)

// CameraConfig contains the camera placement. VFov is in degrees.
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look-from)
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens aperture, 0 for a pinhole camera
	FocusDistance float64   // Distance to the focus plane, 0 = distance to LookAt
}

// RenderConfig contains the output resolution and bounce budget
type RenderConfig struct {
	Width    int // Image width
	Height   int // Image height
	MaxDepth int // Maximum ray bounce depth (max_bounces)
}

// DefaultCameraConfig looks down -Z from the origin with a 90 degree field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90.0,
		Aperture:      0.0,
		FocusDistance: 0.0,
	}
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:    256,
		Height:   256,
		MaxDepth: 5,
	}
}

// MergeCameraConfig applies non-zero fields of override on top of base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}
	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// MergeRenderConfig applies positive fields of override on top of base
func MergeRenderConfig(base, override RenderConfig) RenderConfig {
	result := base
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.MaxDepth > 0 {
		result.MaxDepth = override.MaxDepth
	}
	return result
}

// AspectRatio returns width / height
func (c RenderConfig) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Scene is populated once (by a loader or a builder function) and is read
// only while rendering.
type Scene struct {
	Name         string
	Spheres      []*geometry.Sphere
	Meshes       []*geometry.Mesh
	Lights       []lights.Light
	Ambient      core.Color
	Background   core.Color
	CameraConfig CameraConfig
	RenderConfig RenderConfig
	OutputFile   string
}

// New creates an empty scene with default camera and render settings and
// no background color
func New() *Scene {
	return &Scene{
		Spheres:      make([]*geometry.Sphere, 0),
		Meshes:       make([]*geometry.Mesh, 0),
		Lights:       make([]lights.Light, 0),
		Background:   NoBackground,
		CameraConfig: DefaultCameraConfig(),
		RenderConfig: DefaultRenderConfig(),
	}
}

// Intersect returns the nearest hit in [tMin, tMax) over every sphere and
// then every mesh. tMax narrows to the closest hit found so far.
func (s *Scene) Intersect(ray core.Ray, tMin, tMax float64) (geometry.HitRecord, bool) {
	var closest geometry.HitRecord
	hitAnything := false

	for _, sphere := range s.Spheres {
		if hit, isHit := sphere.Hit(ray, tMin, tMax); isHit {
			tMax = hit.T
			closest = hit
			hitAnything = true
		}
	}

	for _, mesh := range s.Meshes {
		if hit, isHit := mesh.Hit(ray, tMin, tMax); isHit {
			tMax = hit.T
			closest = hit
			hitAnything = true
		}
	}

	return closest, hitAnything
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(sphere *geometry.Sphere) {
	s.Spheres = append(s.Spheres, sphere)
}

// AddMesh adds a mesh to the scene
func (s *Scene) AddMesh(mesh *geometry.Mesh) {
	s.Meshes = append(s.Meshes, mesh)
}

// AddLight adds a light to the scene
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// SetBackground sets a solid background color
func (s *Scene) SetBackground(c core.Color) {
	s.Background = c
}

// HasBackground reports whether a background color is set
func (s *Scene) HasBackground() bool {
	return s.Background.X >= 0
}

// GetPrimitiveCount returns the number of spheres plus the number of mesh triangles
func (s *Scene) GetPrimitiveCount() int {
	count := len(s.Spheres)
	for _, mesh := range s.Meshes {
		count += mesh.TriangleCount()
	}
	return count
}

// Validate checks everything the renderer relies on. It must pass before
// rendering starts.
func (s *Scene) Validate() error {
	if s.RenderConfig.Width <= 0 || s.RenderConfig.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidScene, s.RenderConfig.Width, s.RenderConfig.Height)
	}
	if s.RenderConfig.MaxDepth < 0 {
		return fmt.Errorf("%w: negative max bounces %d", ErrInvalidScene, s.RenderConfig.MaxDepth)
	}

	cam := s.CameraConfig
	if cam.VFov <= 0 || cam.VFov >= 180 {
		return fmt.Errorf("%w: vertical field of view %g outside (0, 180)", ErrInvalidScene, cam.VFov)
	}
	w := cam.Center.Subtract(cam.LookAt)
	if w.NearZero() {
		return fmt.Errorf("%w: camera position equals look-at point", ErrInvalidScene)
	}
	if cam.Up.Cross(w).NearZero() {
		return fmt.Errorf("%w: camera up vector is parallel to the view direction", ErrInvalidScene)
	}
	if cam.Aperture < 0 || cam.FocusDistance < 0 {
		return fmt.Errorf("%w: negative aperture or focus distance", ErrInvalidScene)
	}

	for i, sphere := range s.Spheres {
		if !(sphere.Radius > 0) || math.IsInf(sphere.Radius, 0) {
			return fmt.Errorf("%w: sphere %d has radius %g", ErrInvalidScene, i, sphere.Radius)
		}
		if err := sphere.Material.Validate(); err != nil {
			return fmt.Errorf("%w: sphere %d: %v", ErrInvalidScene, i, err)
		}
	}
	for i, mesh := range s.Meshes {
		if err := mesh.Material().Validate(); err != nil {
			return fmt.Errorf("%w: mesh %d (%s): %v", ErrInvalidScene, i, mesh.Data().Name, err)
		}
	}
	for i, light := range s.Lights {
		if err := light.Validate(); err != nil {
			return fmt.Errorf("%w: light %d: %v", ErrInvalidScene, i, err)
		}
	}
	return nil
}
