package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/geometry"
	"github.com/alariq/basic-raytracer/pkg/integrator"
	"github.com/alariq/basic-raytracer/pkg/material"
	"github.com/alariq/basic-raytracer/pkg/renderer"
	"github.com/alariq/basic-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	T            float64                `json:"t"`        // Ray parameter of the hit
	Distance     float64                `json:"distance"` // World-space distance from the camera
	FrontFace    bool                   `json:"frontFace"`
	Color        string                 `json:"color"` // Rendered pixel color, #rrggbb
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult identifies the primitive hit by an inspection ray
type InspectResult struct {
	Hit       bool
	Ray       core.Ray
	HitRecord geometry.HitRecord
	Sphere    *geometry.Sphere // Set when a sphere was hit
	Mesh      *geometry.Mesh   // Set when a mesh was hit
}

// inspectPixel casts the primary ray through an image pixel and returns the
// first primitive it hits
func inspectPixel(rt *renderer.Raytracer, sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	config := integrator.DefaultConfig()
	ray := rt.PixelRay(pixelX, pixelY)

	hit, isHit := sceneObj.Intersect(ray, config.TMin, config.TMax)
	if !isHit {
		return InspectResult{Ray: ray}
	}

	// Scene.Intersect doesn't report the primitive, so find the one with the
	// same hit parameter
	result := InspectResult{Hit: true, Ray: ray, HitRecord: hit}
	for _, sphere := range sceneObj.Spheres {
		if h, ok := sphere.Hit(ray, config.TMin, config.TMax); ok && h.T == hit.T {
			result.Sphere = sphere
			return result
		}
	}
	for _, mesh := range sceneObj.Meshes {
		if h, ok := mesh.Hit(ray, config.TMin, config.TMax); ok && h.T == hit.T {
			result.Mesh = mesh
			return result
		}
	}
	return result
}

// extractMaterialInfo describes the Phong coefficients of a material
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"albedo":        vecArray(mat.Albedo),
		"color":         hexColor(mat.Albedo),
		"ka":            mat.Ka,
		"kd":            mat.Kd,
		"ks":            mat.Ks,
		"exponent":      mat.Exponent,
		"reflectance":   mat.Reflectance,
		"transmittance": mat.Transmittance,
		"refractionIOF": mat.RefractionIOF,
	}
}

// extractGeometryInfo describes the primitive that was hit
func extractGeometryInfo(result InspectResult) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch {
	case result.Sphere != nil:
		properties["center"] = vecArray(result.Sphere.Center)
		properties["radius"] = result.Sphere.Radius
		return "sphere", properties

	case result.Mesh != nil:
		properties["name"] = result.Mesh.Data().Name
		properties["triangleCount"] = result.Mesh.TriangleCount()
		bbox := result.Mesh.BoundingBox()
		properties["boundingBox"] = map[string]interface{}{
			"min": vecArray(bbox.Min),
			"max": vecArray(bbox.Max),
		}
		return "mesh", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	sceneReq, err := parseSceneRequest(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(sceneReq, core.NopLogger{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Validate pixel coordinates
	width, height := sceneObj.RenderConfig.Width, sceneObj.RenderConfig.Height
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Pixel coordinates out of bounds (%dx%d)", width, height))
		return
	}

	// Inspection uses a fixed seed so lens samples are repeatable
	config := renderer.ConfigFromScene(sceneObj)
	config.Seed = 1
	rt := renderer.NewRaytracer(sceneObj, integrator.NewWhittedIntegrator(integrator.DefaultConfig()), config, nil)

	result := inspectPixel(rt, sceneObj, pixelX, pixelY)
	pixel := integrator.NewWhittedIntegrator(integrator.DefaultConfig()).RayColor(result.Ray, sceneObj, config.MaxDepth)

	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Color: hexColor(pixel)})
		return
	}

	hit := result.HitRecord
	geometryType, geometryProps := extractGeometryInfo(result)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		T:            hit.T,
		Distance:     hit.T * result.Ray.Direction.Length(),
		FrontFace:    result.Ray.Direction.Dot(hit.Normal) < 0,
		Color:        hexColor(pixel),
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(hit.Material),
			"geometry": geometryProps,
		},
	})
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// hexColor formats a linear color the way the renderer quantizes it
func hexColor(c core.Color) string {
	q := renderer.Quantize(c, false)
	return fmt.Sprintf("#%02x%02x%02x", q.R, q.G, q.B)
}
