package integrator

import (
	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/scene"
)

var (
	skyBottom = core.NewVec3(1.0, 1.0, 1.0)
	skyTop    = core.NewVec3(0.5, 0.7, 1.0)
)

// SkyGradient returns the procedural sky for a ray direction: white at the
// bottom blending to light blue at the top, driven by the normalized y
// component
func SkyGradient(direction core.Vec3) core.Color {
	unitDirection := direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return skyBottom.Multiply(1.0 - t).Add(skyTop.Multiply(t))
}

// background returns the scene's background color, or the sky gradient
// when none is set
func background(s *scene.Scene, ray core.Ray) core.Color {
	if s.HasBackground() {
		return s.Background
	}
	return SkyGradient(ray.Direction)
}
