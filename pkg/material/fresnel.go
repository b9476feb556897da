package material

import "math"

// Schlick calculates the Fresnel reflectance using Schlick's approximation.
// cosine is the cosine between the view direction and the normal, clamped to [0,1].
func Schlick(cosine, refractionRatio float64) float64 {
	cosine = math.Max(0, math.Min(1, cosine))

	// Calculate R0 for normal incidence
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// FresnelReflectance weights the material's reflectance by the Schlick term
// for a surface seen at the given cosine
func (m Material) FresnelReflectance(cosine float64) float64 {
	return m.Reflectance * Schlick(cosine, m.RefractionIOF)
}
