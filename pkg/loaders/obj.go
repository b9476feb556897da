package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/geometry"
)

// LoadOBJ loads a Wavefront OBJ file as triangle mesh data
func LoadOBJ(filename string) (*geometry.MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	data, err := ParseOBJ(file, filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParseOBJ reads OBJ text. Supported statements are v, vt (parsed and
// discarded), vn (normalized on load) and f in the p, p/t, p//n and p/t/n
// forms. Polygons are fan-triangulated and negative indices count back from
// the most recent element. Grouping and material statements are ignored.
func ParseOBJ(reader io.Reader, name string) (*geometry.MeshData, error) {
	data := &geometry.MeshData{Name: name}
	texCoords := 0

	scanner := bufio.NewScanner(reader)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseOBJFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNum, err)
			}
			data.Positions = append(data.Positions, core.NewVec3(p[0], p[1], p[2]))

		case "vt":
			if _, err := parseOBJFloats(fields[1:], 2); err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNum, err)
			}
			texCoords++

		case "vn":
			n, err := parseOBJFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNum, err)
			}
			normal := core.NewVec3(n[0], n[1], n[2])
			if normal.NearZero() {
				return nil, fmt.Errorf("line %d: degenerate normal %v", lineNum, normal)
			}
			data.Normals = append(data.Normals, normal.Normalize())

		case "f":
			if err := parseOBJFace(fields[1:], data, texCoords); err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNum, err)
			}

		case "o", "g", "s", "usemtl", "mtllib", "l", "p":
			// Not used by the renderer
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	if len(data.Faces) == 0 {
		return nil, fmt.Errorf("no faces in OBJ data")
	}
	return data, nil
}

// parseOBJFloats parses at least count floats; extra components (the
// optional w of a vertex) are ignored
func parseOBJFloats(fields []string, count int) ([]float64, error) {
	if len(fields) < count {
		return nil, fmt.Errorf("expected %d components, got %d", count, len(fields))
	}
	values := make([]float64, count)
	for i := 0; i < count; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", fields[i])
		}
		values[i] = v
	}
	return values, nil
}

// parseOBJFace appends the fan triangulation of one polygon to data.Faces
func parseOBJFace(refs []string, data *geometry.MeshData, texCoords int) error {
	if len(refs) < 3 {
		return fmt.Errorf("need at least 3 vertices, got %d", len(refs))
	}

	corners := make([]geometry.FaceVertex, len(refs))
	for i, ref := range refs {
		parts := strings.Split(ref, "/")
		if len(parts) > 3 {
			return fmt.Errorf("invalid vertex reference %q", ref)
		}

		p, err := resolveOBJIndex(parts[0], len(data.Positions))
		if err != nil {
			return fmt.Errorf("position of %q: %w", ref, err)
		}
		if len(parts) > 1 && parts[1] != "" {
			if _, err := resolveOBJIndex(parts[1], texCoords); err != nil {
				return fmt.Errorf("texture coordinate of %q: %w", ref, err)
			}
		}

		n := -1
		if len(parts) == 3 && parts[2] != "" {
			n, err = resolveOBJIndex(parts[2], len(data.Normals))
			if err != nil {
				return fmt.Errorf("normal of %q: %w", ref, err)
			}
		}
		corners[i] = geometry.FaceVertex{P: p, N: n}
	}

	for k := 1; k+1 < len(corners); k++ {
		data.Faces = append(data.Faces, corners[0], corners[k], corners[k+1])
	}
	return nil
}

// resolveOBJIndex converts a 1-based or negative (relative) index into a
// 0-based index into a list currently holding count elements
func resolveOBJIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}

	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, fmt.Errorf("index 0 is not valid")
	}

	if i < 0 || i >= count {
		return 0, fmt.Errorf("index %s out of range (%d defined)", s, count)
	}
	return i, nil
}
