package loaders

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/geometry"
	"github.com/alariq/basic-raytracer/pkg/lights"
	"github.com/alariq/basic-raytracer/pkg/material"
	"github.com/alariq/basic-raytracer/pkg/scene"
)

// ErrMissingField is returned when a required element or attribute is absent
var ErrMissingField = errors.New("missing required field")

type xmlScene struct {
	XMLName    xml.Name     `xml:"scene"`
	OutputFile *string      `xml:"output_file,attr"`
	Background *xmlColor    `xml:"background_color"`
	Camera     *xmlCamera   `xml:"camera"`
	Lights     *xmlLights   `xml:"lights"`
	Surfaces   *xmlSurfaces `xml:"surfaces"`
}

type xmlColor struct {
	R *float64 `xml:"r,attr"`
	G *float64 `xml:"g,attr"`
	B *float64 `xml:"b,attr"`
}

type xmlVec struct {
	X *float64 `xml:"x,attr"`
	Y *float64 `xml:"y,attr"`
	Z *float64 `xml:"z,attr"`
}

type xmlAttr struct {
	Angle      *float64 `xml:"angle,attr"`
	Horizontal *float64 `xml:"horizontal,attr"`
	Vertical   *float64 `xml:"vertical,attr"`
	N          *float64 `xml:"n,attr"`
}

type xmlLens struct {
	Aperture      *float64 `xml:"aperture,attr"`
	FocusDistance *float64 `xml:"focus_distance,attr"`
}

type xmlCamera struct {
	Position      *xmlVec  `xml:"position"`
	LookAt        *xmlVec  `xml:"lookat"`
	Up            *xmlVec  `xml:"up"`
	HorizontalFov *xmlAttr `xml:"horizontal_fov"`
	Resolution    *xmlAttr `xml:"resolution"`
	MaxBounces    *xmlAttr `xml:"max_bounces"`
	Lens          *xmlLens `xml:"lens"`
}

type xmlLights struct {
	Ambient  *xmlAmbient     `xml:"ambient_light"`
	Parallel []xmlParallel   `xml:"parallel_light"`
	Point    []xmlPointLight `xml:"point_light"`
}

type xmlAmbient struct {
	Color *xmlColor `xml:"color"`
}

type xmlParallel struct {
	Color     *xmlColor `xml:"color"`
	Direction *xmlVec   `xml:"direction"`
}

type xmlPointLight struct {
	Radius   *float64  `xml:"radius,attr"`
	Color    *xmlColor `xml:"color"`
	Position *xmlVec   `xml:"position"`
}

type xmlSurfaces struct {
	Spheres []xmlSphere `xml:"sphere"`
	Meshes  []xmlMesh   `xml:"mesh"`
}

type xmlSphere struct {
	Radius   *float64     `xml:"radius,attr"`
	Position *xmlVec      `xml:"position"`
	Material *xmlMaterial `xml:"material_solid"`
}

type xmlMesh struct {
	Name      *string       `xml:"name,attr"`
	Material  *xmlMaterial  `xml:"material_solid"`
	Transform *xmlTransform `xml:"transform"`
}

type xmlTransform struct {
	Translate *xmlVec `xml:"translate"`
	Rotate    *xmlVec `xml:"rotate"`
	Scale     *xmlVec `xml:"scale"`
}

type xmlMaterial struct {
	Color         *xmlColor `xml:"color"`
	Phong         *xmlPhong `xml:"phong"`
	Reflectance   *xmlCoeff `xml:"reflectance"`
	Transmittance *xmlCoeff `xml:"transmittance"`
	Refraction    *xmlCoeff `xml:"refraction"`
}

type xmlPhong struct {
	Ka       *float64 `xml:"ka,attr"`
	Kd       *float64 `xml:"kd,attr"`
	Ks       *float64 `xml:"ks,attr"`
	Exponent *float64 `xml:"exponent,attr"`
}

type xmlCoeff struct {
	R   *float64 `xml:"r,attr"`
	T   *float64 `xml:"t,attr"`
	IOF *float64 `xml:"iof,attr"`
}

// missing builds an ErrMissingField error naming the element path
func missing(path string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, path)
}

// LoadScene reads an XML scene file. Mesh file names are resolved relative
// to the scene file's directory.
func LoadScene(filename string, logger core.Logger) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file, filepath.Dir(filename), logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	s.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return s, nil
}

// ParseScene decodes an XML scene and validates the result. baseDir is
// used to resolve relative mesh paths.
func ParseScene(r io.Reader, baseDir string, logger core.Logger) (*scene.Scene, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	startTime := time.Now()

	var doc xmlScene
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse scene XML: %w", err)
	}

	s := scene.New()

	if doc.OutputFile == nil {
		return nil, missing("scene@output_file")
	}
	s.OutputFile = *doc.OutputFile

	if doc.Background != nil {
		bg, err := doc.Background.color("background_color")
		if err != nil {
			return nil, err
		}
		s.SetBackground(bg)
	}

	if doc.Camera == nil {
		return nil, missing("camera")
	}
	if err := readCamera(doc.Camera, s); err != nil {
		return nil, err
	}

	if doc.Lights == nil {
		return nil, missing("lights")
	}
	if err := readLights(doc.Lights, s); err != nil {
		return nil, err
	}

	if doc.Surfaces == nil {
		return nil, missing("surfaces")
	}
	if err := readSurfaces(doc.Surfaces, baseDir, s, logger); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	overlaps, err := s.Overlaps()
	if err != nil {
		return nil, err
	}
	for _, o := range overlaps {
		logger.Printf("Warning: overlapping primitives %v\n", o)
	}

	logger.Printf("Loaded scene: %d spheres, %d meshes, %d lights in %v\n",
		len(s.Spheres), len(s.Meshes), len(s.Lights), time.Since(startTime))
	return s, nil
}

func readCamera(el *xmlCamera, s *scene.Scene) error {
	position, err := el.Position.vec("camera/position")
	if err != nil {
		return err
	}
	lookAt, err := el.LookAt.vec("camera/lookat")
	if err != nil {
		return err
	}
	up, err := el.Up.vec("camera/up")
	if err != nil {
		return err
	}

	if el.HorizontalFov == nil || el.HorizontalFov.Angle == nil {
		return missing("camera/horizontal_fov@angle")
	}
	if el.Resolution == nil || el.Resolution.Horizontal == nil {
		return missing("camera/resolution@horizontal")
	}
	if el.Resolution.Vertical == nil {
		return missing("camera/resolution@vertical")
	}
	if el.MaxBounces == nil || el.MaxBounces.N == nil {
		return missing("camera/max_bounces@n")
	}

	s.RenderConfig = scene.RenderConfig{
		Width:    int(*el.Resolution.Horizontal),
		Height:   int(*el.Resolution.Vertical),
		MaxDepth: int(*el.MaxBounces.N),
	}
	if s.RenderConfig.Width <= 0 || s.RenderConfig.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d", scene.ErrInvalidScene, s.RenderConfig.Width, s.RenderConfig.Height)
	}

	s.CameraConfig = scene.CameraConfig{
		Center: position,
		LookAt: lookAt,
		Up:     up,
		VFov:   VerticalFov(*el.HorizontalFov.Angle, s.RenderConfig.AspectRatio()),
	}
	if el.Lens != nil {
		if el.Lens.Aperture != nil {
			s.CameraConfig.Aperture = *el.Lens.Aperture
		}
		if el.Lens.FocusDistance != nil {
			s.CameraConfig.FocusDistance = *el.Lens.FocusDistance
		}
	}
	return nil
}

// VerticalFov converts a horizontal field of view in degrees to the
// vertical field of view for the given aspect ratio (width / height)
func VerticalFov(hfov, aspectRatio float64) float64 {
	h := math.Tan(core.DegreesToRadians(hfov) / 2)
	return 2 * math.Atan(h/aspectRatio) * 180 / math.Pi
}

func readLights(el *xmlLights, s *scene.Scene) error {
	if el.Ambient == nil {
		return missing("lights/ambient_light")
	}
	ambient, err := el.Ambient.Color.color("lights/ambient_light/color")
	if err != nil {
		return err
	}
	s.Ambient = ambient

	for i, p := range el.Parallel {
		path := fmt.Sprintf("lights/parallel_light[%d]", i)
		c, err := p.Color.color(path + "/color")
		if err != nil {
			return err
		}
		dir, err := p.Direction.vec(path + "/direction")
		if err != nil {
			return err
		}
		s.AddLight(lights.NewDirectionalLight(dir, c))
	}

	for i, p := range el.Point {
		path := fmt.Sprintf("lights/point_light[%d]", i)
		c, err := p.Color.color(path + "/color")
		if err != nil {
			return err
		}
		pos, err := p.Position.vec(path + "/position")
		if err != nil {
			return err
		}
		radius := 0.0
		if p.Radius != nil {
			radius = *p.Radius
		}
		s.AddLight(lights.NewPointLight(pos, radius, c))
	}
	return nil
}

func readSurfaces(el *xmlSurfaces, baseDir string, s *scene.Scene, logger core.Logger) error {
	for i, sp := range el.Spheres {
		path := fmt.Sprintf("surfaces/sphere[%d]", i)
		if sp.Radius == nil {
			return missing(path + "@radius")
		}
		center, err := sp.Position.vec(path + "/position")
		if err != nil {
			return err
		}
		mat, err := sp.Material.material(path + "/material_solid")
		if err != nil {
			return err
		}
		s.AddSphere(geometry.NewSphere(center, *sp.Radius, mat))
	}

	for i, m := range el.Meshes {
		path := fmt.Sprintf("surfaces/mesh[%d]", i)
		if m.Name == nil {
			return missing(path + "@name")
		}
		mat, err := m.Material.material(path + "/material_solid")
		if err != nil {
			return err
		}
		transform, err := m.Transform.transform(path + "/transform")
		if err != nil {
			return err
		}

		meshPath := *m.Name
		if !filepath.IsAbs(meshPath) {
			meshPath = filepath.Join(baseDir, meshPath)
		}
		data, err := LoadMesh(meshPath)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !transform.IsIdentity() {
			data = transform.Apply(data)
		}

		mesh := geometry.NewMesh(data, mat)
		logger.Printf("Loaded mesh %s: %d triangles\n", *m.Name, mesh.TriangleCount())
		s.AddMesh(mesh)
	}
	return nil
}

func (c *xmlColor) color(path string) (core.Color, error) {
	if c == nil {
		return core.Color{}, missing(path)
	}
	if c.R == nil || c.G == nil || c.B == nil {
		return core.Color{}, missing(path + "@r,g,b")
	}
	return core.NewVec3(*c.R, *c.G, *c.B), nil
}

func (v *xmlVec) vec(path string) (core.Vec3, error) {
	if v == nil {
		return core.Vec3{}, missing(path)
	}
	if v.X == nil || v.Y == nil || v.Z == nil {
		return core.Vec3{}, missing(path + "@x,y,z")
	}
	return core.NewVec3(*v.X, *v.Y, *v.Z), nil
}

// material reads a material_solid block. Every child element is required.
func (m *xmlMaterial) material(path string) (material.Material, error) {
	if m == nil {
		return material.Material{}, missing(path)
	}
	albedo, err := m.Color.color(path + "/color")
	if err != nil {
		return material.Material{}, err
	}

	if m.Phong == nil {
		return material.Material{}, missing(path + "/phong")
	}
	p := m.Phong
	if p.Ka == nil || p.Kd == nil || p.Ks == nil || p.Exponent == nil {
		return material.Material{}, missing(path + "/phong@ka,kd,ks,exponent")
	}
	mat := material.NewPhongMaterial(albedo, *p.Ka, *p.Kd, *p.Ks, *p.Exponent)

	switch {
	case m.Reflectance == nil:
		return material.Material{}, missing(path + "/reflectance")
	case m.Reflectance.R == nil:
		return material.Material{}, missing(path + "/reflectance@r")
	case m.Transmittance == nil:
		return material.Material{}, missing(path + "/transmittance")
	case m.Transmittance.T == nil:
		return material.Material{}, missing(path + "/transmittance@t")
	case m.Refraction == nil:
		return material.Material{}, missing(path + "/refraction")
	case m.Refraction.IOF == nil:
		return material.Material{}, missing(path + "/refraction@iof")
	}
	mat.Reflectance = *m.Reflectance.R
	mat.Transmittance = *m.Transmittance.T
	mat.RefractionIOF = *m.Refraction.IOF

	if err := mat.Validate(); err != nil {
		return material.Material{}, fmt.Errorf("%s: %w", path, err)
	}
	return mat, nil
}

// transform reads an optional transform block; absent parts stay identity
func (t *xmlTransform) transform(path string) (geometry.Transform, error) {
	tr := geometry.IdentityTransform()
	if t == nil {
		return tr, nil
	}

	var err error
	if t.Translate != nil {
		if tr.Translate, err = t.Translate.vec(path + "/translate"); err != nil {
			return tr, err
		}
	}
	if t.Rotate != nil {
		if tr.Rotate, err = t.Rotate.vec(path + "/rotate"); err != nil {
			return tr, err
		}
	}
	if t.Scale != nil {
		if tr.Scale, err = t.Scale.vec(path + "/scale"); err != nil {
			return tr, err
		}
	}
	return tr, nil
}
