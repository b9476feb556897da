package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/geometry"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement

	HasNormals bool
}

// PLYElement is one element block (vertex, face or anything else) in file order
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// element returns the element with the given name, or nil
func (h *PLYHeader) element(name string) *PLYElement {
	for i := range h.Elements {
		if h.Elements[i].Name == name {
			return &h.Elements[i]
		}
	}
	return nil
}

// LoadPLY loads a PLY file as triangle mesh data
func LoadPLY(filename string) (*geometry.MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ParsePLY(file, filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParsePLY reads ASCII or binary PLY data. Vertex x/y/z are required and
// nx/ny/nz are used as per-vertex normals when present. Polygons are
// fan-triangulated. Other elements and properties are skipped.
func ParsePLY(r io.Reader, name string) (*geometry.MeshData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}
	if header.element("vertex") == nil || header.element("face") == nil {
		return nil, fmt.Errorf("PLY data needs vertex and face elements")
	}

	var body plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		body = &plyASCIIReader{scanner: scanner}
	case "binary_little_endian":
		body = &plyBinaryReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		body = &plyBinaryReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	data := &geometry.MeshData{Name: name}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readPLYVertices(body, element, header.HasNormals, data)
		case "face":
			err = readPLYFaces(body, element, header.HasNormals, data)
		default:
			err = skipPLYElement(body, element)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read PLY %s data: %w", element.Name, err)
		}
	}

	if len(data.Faces) == 0 {
		return nil, fmt.Errorf("no faces in PLY data")
	}
	return data, nil
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var current *PLYElement
	normals := 0

	first := true
	for {
		raw, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("missing end_header: %w", err)
		}
		line := strings.TrimSpace(raw)

		if first {
			if line != "ply" {
				return nil, fmt.Errorf("not a PLY file")
			}
			first = false
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %s", line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %s", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
			current = &header.Elements[len(header.Elements)-1]
		case "property":
			if current == nil {
				return nil, fmt.Errorf("property before any element: %s", line)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			current.Properties = append(current.Properties, prop)
			if current.Name == "vertex" && (prop.Name == "nx" || prop.Name == "ny" || prop.Name == "nz") {
				normals++
			}
		default:
			return nil, fmt.Errorf("unknown header line: %s", line)
		}
	}

	header.HasNormals = normals == 3
	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		return PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}, nil
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

func readPLYVertices(body plyValueReader, element PLYElement, hasNormals bool, data *geometry.MeshData) error {
	data.Positions = make([]core.Point3, 0, element.Count)
	if hasNormals {
		data.Normals = make([]core.Vec3, 0, element.Count)
	}

	values := make(map[string]float64, len(element.Properties))
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if prop.IsList {
				if err := skipPLYList(body, prop); err != nil {
					return err
				}
				continue
			}
			v, err := body.next(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d property %s: %w", i, prop.Name, err)
			}
			values[prop.Name] = v
		}

		data.Positions = append(data.Positions, core.NewVec3(values["x"], values["y"], values["z"]))
		if hasNormals {
			n := core.NewVec3(values["nx"], values["ny"], values["nz"])
			if n.NearZero() {
				return fmt.Errorf("vertex %d has a degenerate normal", i)
			}
			data.Normals = append(data.Normals, n.Normalize())
		}
	}
	return nil
}

func readPLYFaces(body plyValueReader, element PLYElement, hasNormals bool, data *geometry.MeshData) error {
	data.Faces = make([]geometry.FaceVertex, 0, element.Count*3)

	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
				if err := skipPLYProperty(body, prop); err != nil {
					return err
				}
				continue
			}

			count, err := body.next(prop.ListType)
			if err != nil {
				return fmt.Errorf("face %d vertex count: %w", i, err)
			}
			if count < 3 {
				return fmt.Errorf("face %d has %v vertices", i, count)
			}

			corners := make([]geometry.FaceVertex, int(count))
			for k := range corners {
				v, err := body.next(prop.DataType)
				if err != nil {
					return fmt.Errorf("face %d index %d: %w", i, k, err)
				}
				idx := int(v)
				if idx < 0 || idx >= len(data.Positions) {
					return fmt.Errorf("face %d index %d out of range", i, idx)
				}
				corners[k] = geometry.FaceVertex{P: idx, N: -1}
				if hasNormals {
					corners[k].N = idx
				}
			}

			for k := 1; k+1 < len(corners); k++ {
				data.Faces = append(data.Faces, corners[0], corners[k], corners[k+1])
			}
		}
	}
	return nil
}

func skipPLYElement(body plyValueReader, element PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if err := skipPLYProperty(body, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipPLYProperty(body plyValueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipPLYList(body, prop)
	}
	_, err := body.next(prop.Type)
	return err
}

func skipPLYList(body plyValueReader, prop PLYProperty) error {
	count, err := body.next(prop.ListType)
	if err != nil {
		return err
	}
	for k := 0; k < int(count); k++ {
		if _, err := body.next(prop.DataType); err != nil {
			return err
		}
	}
	return nil
}

// plyValueReader yields the next scalar of the body as float64
type plyValueReader interface {
	next(dataType string) (float64, error)
}

type plyASCIIReader struct {
	scanner *bufio.Scanner
}

func (r *plyASCIIReader) next(dataType string) (float64, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	v, err := strconv.ParseFloat(r.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, r.scanner.Text())
	}
	return v, nil
}

type plyBinaryReader struct {
	reader io.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (r *plyBinaryReader) next(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	b := r.buf[:size]
	if _, err := io.ReadFull(r.reader, b); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(r.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(r.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(r.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(r.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(r.order.Uint32(b))), nil
	default: // double, float64
		return math.Float64frombits(r.order.Uint64(b)), nil
	}
}

// getTypeSize returns the size in bytes of a PLY data type, 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}
