package geometry

import (
	_ "embed"
	"iter"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// InstanceSource is the WGSL definition of InstanceInput matching the InstanceRaw record.
//
//go:embed assets/instance.wgsl
var InstanceSource string

const (
	// DefaultGridSize is the number of cells per grid side.
	DefaultGridSize = 20

	// DefaultGridSpacing is the distance between neighbouring cell centres in clip-space units.
	DefaultGridSpacing float32 = 0.09

	// centreEpsilon is the displacement below which an instance counts as sitting on the origin.
	centreEpsilon float32 = 1e-6
)

// SlotModel is the first instance slot. The model matrix occupies four consecutive slots, one per column.
const SlotModel uint32 = 5

// Instance is the CPU-side placement of one grid cell.
type Instance struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// InstanceRaw is the uploaded form of an Instance: a column-major model matrix. Size: 64 bytes.
type InstanceRaw struct {
	Model [16]float32
}

// Raw flattens the instance to translation * rotation.
//
// Returns:
//   - InstanceRaw: the record uploaded to the instance buffer
func (i Instance) Raw() InstanceRaw {
	m := mgl32.Translate3D(i.Position.X(), i.Position.Y(), i.Position.Z()).Mul4(i.Rotation.Mat4())
	return InstanceRaw{Model: m}
}

var instanceLayout = mustLayout(wgpu.VertexStepModeInstance,
	Field{Slot: SlotModel, Format: wgpu.VertexFormatFloat32x4},
	Field{Slot: SlotModel + 1, Format: wgpu.VertexFormatFloat32x4},
	Field{Slot: SlotModel + 2, Format: wgpu.VertexFormatFloat32x4},
	Field{Slot: SlotModel + 3, Format: wgpu.VertexFormatFloat32x4},
)

// InstanceLayout returns the per-instance layout of InstanceRaw.
//
// Returns:
//   - Layout: stride 64, slots 5 to 8
func InstanceLayout() Layout {
	return instanceLayout.Clone()
}

// GridOption configures GenerateInstances.
type GridOption func(*grid)

type grid struct {
	spacing float32
	angle   float32 // radians
}

// WithSpacing sets the distance between neighbouring cell centres.
//
// Parameters:
//   - spacing: distance in clip-space units
//
// Returns:
//   - GridOption: option function to apply
func WithSpacing(spacing float32) GridOption {
	return func(g *grid) {
		g.spacing = spacing
	}
}

// WithRotationDegrees tilts every off-centre cell by the given angle around the axis pointing
// from the origin to the cell. The default of zero leaves every cell unrotated.
//
// Parameters:
//   - degrees: rotation angle
//
// Returns:
//   - GridOption: option function to apply
func WithRotationDegrees(degrees float32) GridOption {
	return func(g *grid) {
		g.angle = mgl32.DegToRad(degrees)
	}
}

// GenerateInstances lazily yields an n by n grid of instances, row by row. Cell (n/2, n/2)
// sits on the origin and always gets the identity rotation, since the direction to it is undefined.
//
// Parameters:
//   - n: cells per side; values below 1 yield nothing
//   - opts: spacing and rotation options
//
// Returns:
//   - iter.Seq[Instance]: the grid, n*n instances long
func GenerateInstances(n int, opts ...GridOption) iter.Seq[Instance] {
	g := grid{spacing: DefaultGridSpacing}
	for _, opt := range opts {
		opt(&g)
	}
	half := n / 2
	return func(yield func(Instance) bool) {
		for row := range n {
			for col := range n {
				pos := mgl32.Vec3{
					float32(col-half) * g.spacing,
					float32(row-half) * g.spacing,
					0,
				}
				rot := mgl32.QuatIdent()
				if pos.Len() >= centreEpsilon && g.angle != 0 {
					rot = mgl32.QuatRotate(g.angle, pos.Normalize())
				}
				if !yield(Instance{Position: pos, Rotation: rot}) {
					return
				}
			}
		}
	}
}

// RawInstances drains seq into upload-ready records.
//
// Parameters:
//   - seq: instances to flatten
//
// Returns:
//   - []InstanceRaw: one record per instance, in sequence order
func RawInstances(seq iter.Seq[Instance]) []InstanceRaw {
	var out []InstanceRaw
	for inst := range seq {
		out = append(out, inst.Raw())
	}
	return out
}
