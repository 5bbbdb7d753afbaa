package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-life/common"
	"github.com/Carmen-Shannon/oxy-life/engine/geometry"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrInstanceCountMismatch is returned when the instance bytes do not match the instance layout stride.
var ErrInstanceCountMismatch = errors.New("renderer: instance data does not match instance count")

// Vertex buffer slots bound per frame.
const (
	vertexBufferSlot   uint32 = 0
	instanceBufferSlot uint32 = 1
)

// DrawKind selects the draw command a DrawPlan issues.
type DrawKind int

const (
	// DrawDirect issues Draw over the vertex buffer.
	DrawDirect DrawKind = iota

	// DrawIndexed issues DrawIndexed over the index buffer.
	DrawIndexed
)

func (k DrawKind) String() string {
	if k == DrawIndexed {
		return "indexed"
	}
	return "direct"
}

// DrawPlan is the draw command derived from uploaded geometry.
type DrawPlan struct {
	Kind          DrawKind
	VertexCount   uint32
	IndexCount    uint32
	InstanceCount uint32
}

// GeometryBuffers holds the GPU vertex buffer plus the optional index and instance buffers
// of one mesh, with the counts needed to draw them.
type GeometryBuffers struct {
	label string

	vertexBuffer   *wgpu.Buffer
	indexBuffer    *wgpu.Buffer
	instanceBuffer *wgpu.Buffer

	vertexCount   uint32
	indexCount    uint32
	instanceCount uint32
	hasInstances  bool
}

// NewGeometryBuffers validates mesh and instances and uploads them to the session device.
// An empty instances slice uploads no instance buffer and draws a single instance.
//
// Parameters:
//   - session: the GPU session
//   - mesh: the vertices and optional uint16 indices
//   - instances: per-instance model matrices, may be nil
//
// Returns:
//   - *GeometryBuffers: the uploaded buffers
//   - error: a geometry validation error, ErrInstanceCountMismatch, or the device error
func NewGeometryBuffers(session *Session, mesh geometry.Mesh, instances []geometry.InstanceRaw) (*GeometryBuffers, error) {
	return newGeometryBuffers(session.uploader, mesh, instances)
}

func newGeometryBuffers(up bufferUploader, mesh geometry.Mesh, instances []geometry.InstanceRaw) (*GeometryBuffers, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	instanceData, err := instanceBytes(instances)
	if err != nil {
		return nil, err
	}

	label := common.Coalesce(mesh.Label, "Mesh")
	g := &GeometryBuffers{
		label:         label,
		vertexCount:   uint32(len(mesh.Vertices)),
		indexCount:    uint32(len(mesh.Indices)),
		instanceCount: uint32(len(instances)),
		hasInstances:  len(instances) > 0,
	}

	g.vertexBuffer, err = up.createBuffer(label+" Vertex Buffer", common.SliceToBytes(mesh.Vertices), wgpu.BufferUsageVertex)
	if err != nil {
		return nil, fmt.Errorf("upload %s vertices: %w", label, err)
	}

	if mesh.Indexed() {
		g.indexBuffer, err = up.createBuffer(label+" Index Buffer", common.PadTo4(common.SliceToBytes(mesh.Indices)), wgpu.BufferUsageIndex)
		if err != nil {
			g.Release()
			return nil, fmt.Errorf("upload %s indices: %w", label, err)
		}
	}

	if g.hasInstances {
		g.instanceBuffer, err = up.createBuffer(label+" Instance Buffer", instanceData, wgpu.BufferUsageVertex)
		if err != nil {
			g.Release()
			return nil, fmt.Errorf("upload %s instances: %w", label, err)
		}
	}
	return g, nil
}

// instanceBytes views instances as bytes and checks the view against the instance layout stride.
func instanceBytes(instances []geometry.InstanceRaw) ([]byte, error) {
	data := common.SliceToBytes(instances)
	stride := geometry.InstanceLayout().Stride
	if uint64(len(data)) != uint64(len(instances))*stride {
		return nil, fmt.Errorf("%w: %d bytes for %d instances of stride %d", ErrInstanceCountMismatch, len(data), len(instances), stride)
	}
	return data, nil
}

// Label returns the label used for the GPU buffers.
func (g *GeometryBuffers) Label() string {
	return g.label
}

// Plan returns the draw command for the uploaded geometry.
//
// Returns:
//   - DrawPlan: DrawIndexed when an index buffer exists, otherwise DrawDirect; one instance without an instance buffer
func (g *GeometryBuffers) Plan() DrawPlan {
	instances := uint32(1)
	if g.hasInstances {
		instances = g.instanceCount
	}
	if g.indexCount > 0 {
		return DrawPlan{Kind: DrawIndexed, IndexCount: g.indexCount, InstanceCount: instances}
	}
	return DrawPlan{Kind: DrawDirect, VertexCount: g.vertexCount, InstanceCount: instances}
}

// Encode binds the buffers on pass and issues the planned draw.
// The vertex buffer goes to slot 0 and the instance buffer, when present, to slot 1.
//
// Parameters:
//   - pass: a render pass with the pipeline already set
func (g *GeometryBuffers) Encode(pass *wgpu.RenderPassEncoder) {
	pass.SetVertexBuffer(vertexBufferSlot, g.vertexBuffer, 0, wgpu.WholeSize)
	if g.instanceBuffer != nil {
		pass.SetVertexBuffer(instanceBufferSlot, g.instanceBuffer, 0, wgpu.WholeSize)
	}

	plan := g.Plan()
	switch plan.Kind {
	case DrawIndexed:
		pass.SetIndexBuffer(g.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		pass.DrawIndexed(plan.IndexCount, plan.InstanceCount, 0, 0, 0)
	default:
		pass.Draw(plan.VertexCount, plan.InstanceCount, 0, 0)
	}
}

// Release releases all buffers. Safe to call more than once.
func (g *GeometryBuffers) Release() {
	for _, b := range []**wgpu.Buffer{&g.vertexBuffer, &g.indexBuffer, &g.instanceBuffer} {
		if *b != nil {
			(*b).Release()
			*b = nil
		}
	}
}
