package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/geometry"
	"github.com/alariq/basic-raytracer/pkg/lights"
	"github.com/alariq/basic-raytracer/pkg/material"
)

func colored(r, g, b float64) material.Material {
	return material.NewMaterial(core.NewVec3(r, g, b))
}

func TestScene_IntersectNearestHit(t *testing.T) {
	near := colored(1, 0, 0)
	middle := colored(0, 1, 0)
	far := colored(0, 0, 1)
	meshMat := colored(1, 1, 0)

	tests := []struct {
		name             string
		build            func(s *Scene)
		expectedT        float64
		expectedMaterial material.Material
	}{
		{
			name: "Spheres added far to near",
			build: func(s *Scene) {
				s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -10), 1, far))
				s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -6), 1, middle))
				s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -3), 1, near))
			},
			expectedT:        2,
			expectedMaterial: near,
		},
		{
			name: "Spheres added near to far",
			build: func(s *Scene) {
				s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -3), 1, near))
				s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -6), 1, middle))
				s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -10), 1, far))
			},
			expectedT:        2,
			expectedMaterial: near,
		},
		{
			name: "Mesh in front of spheres",
			build: func(s *Scene) {
				s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -6), 1, middle))
				quad := NewQuadMeshData("front", core.NewVec3(-1, -1, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0))
				s.AddMesh(geometry.NewMesh(quad, meshMat))
			},
			expectedT:        1,
			expectedMaterial: meshMat,
		},
		{
			name: "Mesh behind sphere cannot override",
			build: func(s *Scene) {
				s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -3), 1, near))
				quad := NewQuadMeshData("back", core.NewVec3(-1, -1, -8), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0))
				s.AddMesh(geometry.NewMesh(quad, meshMat))
			},
			expectedT:        2,
			expectedMaterial: near,
		},
		{
			name: "Overlapping spheres",
			build: func(s *Scene) {
				s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -5), 2, far))
				s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -4), 2, middle))
			},
			expectedT:        2,
			expectedMaterial: middle,
		},
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.build(s)

			hit, isHit := s.Intersect(ray, 0.001, 1e5)
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if hit.Material != tt.expectedMaterial {
				t.Errorf("Expected material %v, got %v", tt.expectedMaterial.Albedo, hit.Material.Albedo)
			}
		})
	}
}

func TestScene_IntersectMiss(t *testing.T) {
	s := New()
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -3), 1, colored(1, 1, 1)))

	// Ray pointing away
	if _, isHit := s.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 0.001, 1e5); isHit {
		t.Error("Expected miss for ray pointing away")
	}
	// Sphere beyond tMax
	if _, isHit := s.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, 2); isHit {
		t.Error("Expected miss when hit is at tMax")
	}
	// Empty scene
	if _, isHit := New().Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, 1e5); isHit {
		t.Error("Expected miss for empty scene")
	}
}

func TestScene_Background(t *testing.T) {
	s := New()
	if s.HasBackground() {
		t.Error("New scene should use the sky gradient")
	}

	s.SetBackground(core.NewVec3(0, 0, 0))
	if !s.HasBackground() {
		t.Error("Black background should count as set")
	}

	s.SetBackground(core.NewVec3(-0.5, 1, 1))
	if s.HasBackground() {
		t.Error("Negative X component is the unset sentinel")
	}
}

func TestScene_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(s *Scene)
		wantErr bool
	}{
		{"Default scene", func(s *Scene) {}, false},
		{"Zero width", func(s *Scene) { s.RenderConfig.Width = 0 }, true},
		{"Negative bounces", func(s *Scene) { s.RenderConfig.MaxDepth = -1 }, true},
		{"Zero field of view", func(s *Scene) { s.CameraConfig.VFov = 0 }, true},
		{"Camera at look-at", func(s *Scene) { s.CameraConfig.LookAt = s.CameraConfig.Center }, true},
		{"Up parallel to view", func(s *Scene) { s.CameraConfig.Up = core.NewVec3(0, 0, 1) }, true},
		{"Zero radius sphere", func(s *Scene) {
			s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -1), 0, colored(1, 1, 1)))
		}, true},
		{"Invalid sphere material", func(s *Scene) {
			m := colored(1, 1, 1)
			m.Reflectance = 2
			s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -1), 1, m))
		}, true},
		{"Degenerate light", func(s *Scene) {
			s.AddLight(lights.NewDirectionalLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1)))
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDefaultScene()
			tt.modify(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidScene) {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestBuiltinScenes(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			s, err := NewBuiltinScene(name)
			if err != nil {
				t.Fatalf("NewBuiltinScene(%q) error: %v", name, err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Built-in scene %q is invalid: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Scene name = %q, want %q", s.Name, name)
			}
		})
	}

	if _, err := NewBuiltinScene("nonexistent"); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestDefaultScene_CameraOverrides(t *testing.T) {
	s := NewDefaultScene(CameraConfig{VFov: 60, Center: core.NewVec3(0, 0, 1)})
	if s.CameraConfig.VFov != 60 {
		t.Errorf("Expected VFov override 60, got %f", s.CameraConfig.VFov)
	}
	if s.CameraConfig.Center != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected Center override, got %v", s.CameraConfig.Center)
	}
	// Unset fields keep the defaults
	if s.CameraConfig.LookAt != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected default LookAt, got %v", s.CameraConfig.LookAt)
	}
}

func TestMergeRenderConfig(t *testing.T) {
	merged := MergeRenderConfig(DefaultRenderConfig(), RenderConfig{Width: 64, MaxDepth: 0})
	if merged.Width != 64 || merged.Height != 256 || merged.MaxDepth != 5 {
		t.Errorf("Unexpected merge result %+v", merged)
	}
}

func TestScene_GetPrimitiveCount(t *testing.T) {
	s := New()
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, colored(1, 1, 1)))
	quad := NewQuadMeshData("quad", core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
	s.AddMesh(geometry.NewMesh(quad, colored(1, 1, 1)))

	if got := s.GetPrimitiveCount(); got != 3 {
		t.Errorf("Expected 3 primitives, got %d", got)
	}
}
