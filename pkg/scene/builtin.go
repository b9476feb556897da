package scene

import (
	"fmt"
	"sort"
)

// builtinScenes maps scene names to their constructors
var builtinScenes = map[string]func(...CameraConfig) *Scene{
	"default":      NewDefaultScene,
	"gradient":     NewGradientScene,
	"spheres":      NewSpheresScene,
	"spheregrid":   NewSphereGridScene,
	"cornell":      NewCornellScene,
	"trianglemesh": NewTriangleMeshScene,
}

// BuiltinNames returns the names of the built-in scenes in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltinScene creates a built-in scene by name
func NewBuiltinScene(name string, cameraOverrides ...CameraConfig) (*Scene, error) {
	create, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, BuiltinNames())
	}
	return create(cameraOverrides...), nil
}
