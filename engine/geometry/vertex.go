package geometry

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"
)

// VertexSource is the WGSL definition of VertexInput matching the Vertex record.
//
//go:embed assets/vertex.wgsl
var VertexSource string

// Vertex is one corner of a mesh. Size: 24 bytes.
type Vertex struct {
	Position [3]float32 // offset  0, slot 0
	Color    [3]float32 // offset 12, slot 1
}

// Vertex slots. Slots 2-4 are unused and kept free between vertex and instance data.
const (
	SlotPosition uint32 = 0
	SlotColor    uint32 = 1
)

var vertexLayout = mustLayout(wgpu.VertexStepModeVertex,
	Field{Slot: SlotPosition, Format: wgpu.VertexFormatFloat32x3},
	Field{Slot: SlotColor, Format: wgpu.VertexFormatFloat32x3},
)

// VertexLayout returns the per-vertex layout of Vertex.
//
// Returns:
//   - Layout: stride 24, slots 0 and 1
func VertexLayout() Layout {
	return vertexLayout.Clone()
}
