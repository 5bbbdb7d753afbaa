package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMesh is returned for meshes without vertices.
	ErrEmptyMesh = errors.New("geometry: mesh has no vertices")

	// ErrIndexOutOfRange is returned when an index does not address a vertex.
	ErrIndexOutOfRange = errors.New("geometry: index out of range")

	// ErrIndexCount is returned when a triangle list index count is not a multiple of three.
	ErrIndexCount = errors.New("geometry: index count is not a multiple of 3")
)

// Mesh is vertex data with an optional uint16 index list forming a triangle list.
type Mesh struct {
	Label    string
	Vertices []Vertex
	Indices  []uint16
}

// Indexed reports whether the mesh is drawn through its index list.
func (m Mesh) Indexed() bool {
	return len(m.Indices) > 0
}

// Validate checks that the mesh can be uploaded and drawn as a triangle list.
//
// Returns:
//   - error: ErrEmptyMesh, ErrIndexCount or ErrIndexOutOfRange, or nil
func (m Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyMesh, m.Label)
	}
	if !m.Indexed() {
		return nil
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %q has %d indices", ErrIndexCount, m.Label, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: %q index[%d]=%d, %d vertices", ErrIndexOutOfRange, m.Label, i, idx, len(m.Vertices))
		}
	}
	return nil
}

// Triangle returns the red/green/blue triangle drawn without an index buffer.
func Triangle() Mesh {
	return Mesh{
		Label: "triangle",
		Vertices: []Vertex{
			{Position: [3]float32{0.0, 0.5, 0.0}, Color: [3]float32{1.0, 0.0, 0.0}},
			{Position: [3]float32{-0.5, -0.5, 0.0}, Color: [3]float32{0.0, 1.0, 0.0}},
			{Position: [3]float32{0.5, -0.5, 0.0}, Color: [3]float32{0.0, 0.0, 1.0}},
		},
	}
}

// Pentagon returns a purple pentagon built from three indexed triangles.
func Pentagon() Mesh {
	purple := [3]float32{0.5, 0.0, 0.5}
	return Mesh{
		Label: "pentagon",
		Vertices: []Vertex{
			{Position: [3]float32{-0.0868241, 0.49240386, 0.0}, Color: purple},
			{Position: [3]float32{-0.49513406, 0.06958647, 0.0}, Color: purple},
			{Position: [3]float32{-0.21918549, -0.44939706, 0.0}, Color: purple},
			{Position: [3]float32{0.35966998, -0.3473291, 0.0}, Color: purple},
			{Position: [3]float32{0.44147372, 0.2347359, 0.0}, Color: purple},
		},
		Indices: []uint16{
			0, 1, 4,
			1, 2, 4,
			2, 3, 4,
		},
	}
}

// CellQuad returns a square centred on the origin with the given half extent, wound
// counter-clockwise so it survives back-face culling.
//
// Parameters:
//   - halfSize: half of the side length in clip-space units
//   - color: RGB colour of every corner
//
// Returns:
//   - Mesh: four vertices and two triangles
func CellQuad(halfSize float32, color [3]float32) Mesh {
	return Mesh{
		Label: "cell",
		Vertices: []Vertex{
			{Position: [3]float32{-halfSize, -halfSize, 0.0}, Color: color},
			{Position: [3]float32{halfSize, -halfSize, 0.0}, Color: color},
			{Position: [3]float32{halfSize, halfSize, 0.0}, Color: color},
			{Position: [3]float32{-halfSize, halfSize, 0.0}, Color: color},
		},
		Indices: []uint16{
			0, 1, 2,
			0, 2, 3,
		},
	}
}
