package lights

import (
	"fmt"
	"math"

	"github.com/alariq/basic-raytracer/pkg/core"
)

type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
)

// Light is a directional or point light. Color is an intensity and may
// exceed 1. Directional lights use Direction (unit, the way light travels);
// point lights use Position. Radius is carried from scene files but is not
// used for shading.
type Light struct {
	Type      LightType
	Direction core.Vec3
	Position  core.Point3
	Color     core.Color
	Radius    float64
}

// NewDirectionalLight creates an infinitely distant light travelling along direction
func NewDirectionalLight(direction core.Vec3, color core.Color) Light {
	return Light{
		Type:      LightTypeDirectional,
		Direction: direction.Normalize(),
		Color:     color,
	}
}

// NewPointLight creates a light at position. radius is informational only.
func NewPointLight(position core.Point3, radius float64, color core.Color) Light {
	return Light{
		Type:     LightTypePoint,
		Position: position,
		Color:    color,
		Radius:   radius,
	}
}

// Sample describes the light as seen from a shading point
type Sample struct {
	Direction core.Vec3 // Unit direction the light travels, toward the point
	Distance  float64   // Distance to the light; +Inf for directional lights
}

// Illuminate returns the propagation direction and distance of the light
// arriving at point. ok is false when point coincides with a point light.
func (l Light) Illuminate(point core.Point3) (Sample, bool) {
	switch l.Type {
	case LightTypeDirectional:
		return Sample{Direction: l.Direction, Distance: math.Inf(1)}, true
	case LightTypePoint:
		toPoint := point.Subtract(l.Position)
		distance := toPoint.Length()
		if distance == 0 {
			return Sample{}, false
		}
		return Sample{Direction: toPoint.Divide(distance), Distance: distance}, true
	}
	return Sample{}, false
}

// Validate checks that the light is usable for shading
func (l Light) Validate() error {
	switch l.Type {
	case LightTypeDirectional:
		if math.IsNaN(l.Direction.Length()) || l.Direction.NearZero() {
			return fmt.Errorf("directional light has degenerate direction %v", l.Direction)
		}
	case LightTypePoint:
	default:
		return fmt.Errorf("unknown light type %q", l.Type)
	}
	return nil
}

func (l Light) String() string {
	switch l.Type {
	case LightTypeDirectional:
		return fmt.Sprintf("directional(dir=%v color=%v)", l.Direction, l.Color)
	default:
		return fmt.Sprintf("%s(pos=%v color=%v)", l.Type, l.Position, l.Color)
	}
}
