package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alariq/basic-raytracer/pkg/geometry"
)

// LoadMesh loads mesh data from an .obj or .ply file and validates it
func LoadMesh(path string) (*geometry.MeshData, error) {
	var (
		data *geometry.MeshData
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		data, err = LoadOBJ(path)
	case ".ply":
		data, err = LoadPLY(path)
	default:
		return nil, fmt.Errorf("unsupported mesh file %s (use .obj or .ply)", path)
	}
	if err != nil {
		return nil, err
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}
	return data, nil
}
