package integrator

import (
	"math"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/geometry"
	"github.com/alariq/basic-raytracer/pkg/lights"
	"github.com/alariq/basic-raytracer/pkg/scene"
)

// WhittedIntegrator shades hits with ambient, Lambertian diffuse and Phong
// specular terms from every unshadowed light, plus one recursive mirror
// reflection per bounce
type WhittedIntegrator struct {
	config   Config
	counters *Counters
}

// NewWhittedIntegrator creates a new Whitted-style integrator
func NewWhittedIntegrator(config Config) *WhittedIntegrator {
	return &WhittedIntegrator{
		config:   config,
		counters: &Counters{},
	}
}

// Config returns the integrator configuration
func (w *WhittedIntegrator) Config() Config {
	return w.config
}

// Counters returns the ray counters updated by RayColor
func (w *WhittedIntegrator) Counters() *Counters {
	return w.counters
}

// RayColor computes the color seen along ray
func (w *WhittedIntegrator) RayColor(ray core.Ray, s *scene.Scene, depth int) core.Color {
	// Bounce budget exhausted
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := s.Intersect(ray, w.config.TMin, w.config.TMax)
	if !isHit {
		w.counters.Misses.Add(1)
		return background(s, ray)
	}
	w.counters.Hits.Add(1)

	mat := hit.Material
	ambient := s.Ambient.Multiply(mat.Ka)
	diffuse, specular := w.directLighting(ray, hit, s)

	reflected, kRefl := w.reflection(ray, hit, s, depth)

	local := ambient.Add(diffuse).MultiplyVec(mat.Albedo).Add(specular)
	return local.Multiply(1 - kRefl).Add(reflected.Multiply(kRefl))
}

// directLighting sums the diffuse and specular contributions of every light
// that is not shadowed at the hit point
func (w *WhittedIntegrator) directLighting(ray core.Ray, hit geometry.HitRecord, s *scene.Scene) (diffuse, specular core.Color) {
	mat := hit.Material
	viewDir := ray.Origin.Subtract(hit.Point).Normalize()

	for _, light := range s.Lights {
		sample, ok := light.Illuminate(hit.Point)
		if !ok {
			continue
		}

		if w.occluded(hit.Point, sample, light, s) {
			continue
		}

		lightDir := sample.Direction
		attenuation := 1.0
		if light.Type == lights.LightTypePoint && w.config.PointLightFalloff {
			attenuation = 1.0 / (sample.Distance * sample.Distance)
		}
		lightColor := light.Color.Multiply(attenuation)

		lambert := math.Max(hit.Normal.Dot(lightDir.Negate()), 0)
		diffuse = diffuse.Add(lightColor.Multiply(lambert * mat.Kd))

		phong := math.Pow(math.Max(viewDir.Dot(lightDir.Reflect(hit.Normal)), 0), mat.Exponent)
		specular = specular.Add(lightColor.Multiply(phong * mat.Ks))
	}

	return diffuse, specular
}

// occluded casts a shadow ray from point toward the light. Directional
// lights test up to ShadowTMax, point lights up to their distance.
func (w *WhittedIntegrator) occluded(point core.Point3, sample lights.Sample, light lights.Light, s *scene.Scene) bool {
	tMax := w.config.ShadowTMax
	if light.Type == lights.LightTypePoint {
		tMax = sample.Distance
	}

	w.counters.ShadowRays.Add(1)
	shadowRay := core.NewRay(point, sample.Direction.Negate())
	_, blocked := s.Intersect(shadowRay, w.config.TMin, tMax)
	return blocked
}

// reflection traces the mirror ray and returns its color with the weight
// it gets in the final blend. The weight is 0 when nothing is traced.
func (w *WhittedIntegrator) reflection(ray core.Ray, hit geometry.HitRecord, s *scene.Scene, depth int) (core.Color, float64) {
	mat := hit.Material
	if mat.Reflectance <= 0 {
		return core.Vec3{}, 0
	}

	unitDir := ray.Direction.Normalize()
	reflectedDir := unitDir.Reflect(hit.Normal)
	if reflectedDir.Dot(hit.Normal) <= 0 {
		return core.Vec3{}, 0
	}

	kRefl := mat.Reflectance
	if w.config.FresnelEnabled {
		kRefl = mat.FresnelReflectance(unitDir.Negate().Dot(hit.Normal))
	}

	w.counters.ReflectionRays.Add(1)
	reflected := w.RayColor(core.NewRay(hit.Point, reflectedDir), s, depth-1)
	return reflected, kRefl
}
