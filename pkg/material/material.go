package material

import (
	"errors"
	"fmt"

	"github.com/alariq/basic-raytracer/pkg/core"
)

// ErrInvalidMaterial is returned by Validate for out-of-range coefficients
var ErrInvalidMaterial = errors.New("invalid material")

// Material holds the Phong coefficients and reflectance terms of a surface.
// Materials are plain values: each primitive keeps its own copy.
type Material struct {
	Ka, Kd, Ks    float64    // Ambient, diffuse and specular coefficients
	Exponent      float64    // Specular shininess
	Reflectance   float64    // Weight of the recursive mirror term (0-1)
	Transmittance float64    // Loaded and carried, not used for refraction
	RefractionIOF float64    // Index of refraction, used by the Fresnel weighting
	Albedo        core.Color // Base color
}

// NewMaterial creates a plain diffuse material with the given base color
func NewMaterial(albedo core.Color) Material {
	return Material{
		Ka:            1,
		Kd:            1,
		Ks:            0,
		Exponent:      16,
		Reflectance:   0,
		Transmittance: 0,
		RefractionIOF: 1.0,
		Albedo:        albedo,
	}
}

// NewPhongMaterial creates a material with explicit Phong coefficients;
// reflectance and transmittance stay at zero
func NewPhongMaterial(albedo core.Color, ka, kd, ks, exponent float64) Material {
	m := NewMaterial(albedo)
	m.Ka = ka
	m.Kd = kd
	m.Ks = ks
	m.Exponent = exponent
	return m
}

// NewMirrorMaterial creates a Phong material that also reflects
func NewMirrorMaterial(albedo core.Color, ka, kd, ks, exponent, reflectance float64) Material {
	m := NewPhongMaterial(albedo, ka, kd, ks, exponent)
	m.Reflectance = reflectance
	return m
}

// Validate checks that every coefficient is in its usable range
func (m Material) Validate() error {
	switch {
	case m.Ka < 0 || m.Kd < 0 || m.Ks < 0:
		return fmt.Errorf("%w: negative phong coefficient (ka=%g kd=%g ks=%g)", ErrInvalidMaterial, m.Ka, m.Kd, m.Ks)
	case m.Exponent < 0:
		return fmt.Errorf("%w: negative exponent %g", ErrInvalidMaterial, m.Exponent)
	case m.Reflectance < 0 || m.Reflectance > 1:
		return fmt.Errorf("%w: reflectance %g outside [0,1]", ErrInvalidMaterial, m.Reflectance)
	case m.Transmittance < 0 || m.Transmittance > 1:
		return fmt.Errorf("%w: transmittance %g outside [0,1]", ErrInvalidMaterial, m.Transmittance)
	case m.RefractionIOF <= 0:
		return fmt.Errorf("%w: index of refraction %g must be positive", ErrInvalidMaterial, m.RefractionIOF)
	case m.Albedo.X < 0 || m.Albedo.Y < 0 || m.Albedo.Z < 0:
		return fmt.Errorf("%w: negative albedo %v", ErrInvalidMaterial, m.Albedo)
	}
	return nil
}
