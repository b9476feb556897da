package integrator

import (
	"sync/atomic"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance arriving along ray with depth bounces
	// left. depth <= 0 yields black.
	RayColor(ray core.Ray, scene *scene.Scene, depth int) core.Color
}

// Config selects the optional shading behaviors and the ray intervals
type Config struct {
	FresnelEnabled    bool    // Weight reflectance with Schlick's approximation
	PointLightFalloff bool    // Divide point light contributions by distance squared
	TMin              float64 // Start of every ray interval, avoids self-intersection
	TMax              float64 // End of primary and reflection ray intervals
	ShadowTMax        float64 // End of shadow ray intervals for directional lights
}

// DefaultConfig returns the plain Whitted behavior: no Fresnel weighting and
// no point light falloff
func DefaultConfig() Config {
	return Config{
		FresnelEnabled:    false,
		PointLightFalloff: false,
		TMin:              1e-3,
		TMax:              1e5,
		ShadowTMax:        1e5,
	}
}

// Counters tracks traced rays. Safe for concurrent use.
type Counters struct {
	ShadowRays     atomic.Int64
	ReflectionRays atomic.Int64
	Hits           atomic.Int64
	Misses         atomic.Int64
}

// Reset zeroes every counter
func (c *Counters) Reset() {
	c.ShadowRays.Store(0)
	c.ReflectionRays.Store(0)
	c.Hits.Store(0)
	c.Misses.Store(0)
}
