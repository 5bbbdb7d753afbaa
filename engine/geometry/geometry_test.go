package geometry

import (
	"math"
	"testing"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayoutFloat32Triplets(t *testing.T) {
	for k := 1; k <= 6; k++ {
		fields := make([]Field, k)
		for i := range fields {
			fields[i] = Field{Slot: uint32(i), Format: wgpu.VertexFormatFloat32x3}
		}
		l, err := NewLayout(wgpu.VertexStepModeVertex, fields...)
		require.NoError(t, err)
		require.Len(t, l.Attributes, k)
		for i, a := range l.Attributes {
			assert.Equal(t, uint64(12*i), a.Offset, "k=%d attribute %d", k, i)
			if i > 0 {
				assert.Greater(t, a.Offset, l.Attributes[i-1].Offset)
			}
		}
		assert.Equal(t, uint64(12*k), l.Stride)
	}
}

func TestNewLayoutErrors(t *testing.T) {
	_, err := NewLayout(wgpu.VertexStepModeVertex)
	assert.ErrorIs(t, err, ErrEmptyLayout)

	_, err = NewLayout(wgpu.VertexStepModeVertex,
		Field{Slot: 0, Format: wgpu.VertexFormatFloat32x3},
		Field{Slot: 0, Format: wgpu.VertexFormatFloat32x3},
	)
	assert.ErrorIs(t, err, ErrSlotCollision)

	_, err = NewLayout(wgpu.VertexStepModeVertex, Field{Slot: 0, Format: wgpu.VertexFormat(0xFFFF)})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestVertexLayoutMatchesStruct(t *testing.T) {
	var v Vertex
	l := VertexLayout()
	assert.Equal(t, uint64(unsafe.Sizeof(v)), l.Stride)
	assert.Equal(t, wgpu.VertexStepModeVertex, l.StepMode)
	require.Len(t, l.Attributes, 2)
	assert.Equal(t, uint64(unsafe.Offsetof(v.Position)), l.Attributes[0].Offset)
	assert.Equal(t, uint64(unsafe.Offsetof(v.Color)), l.Attributes[1].Offset)
	assert.Equal(t, []uint32{0, 1}, l.Slots())
}

func TestInstanceLayoutMatchesStruct(t *testing.T) {
	var raw InstanceRaw
	l := InstanceLayout()
	assert.Equal(t, uint64(unsafe.Sizeof(raw)), l.Stride)
	assert.Equal(t, wgpu.VertexStepModeInstance, l.StepMode)
	assert.Equal(t, []uint32{5, 6, 7, 8}, l.Slots())
	for i, a := range l.Attributes {
		assert.Equal(t, uint64(16*i), a.Offset)
		assert.Equal(t, wgpu.VertexFormatFloat32x4, a.Format)
	}
}

func TestLayoutCloneIsIndependent(t *testing.T) {
	l := VertexLayout()
	l.Attributes[0].Slot = 42
	assert.Equal(t, uint32(0), VertexLayout().Attributes[0].Slot)
}

func TestLayoutWGPU(t *testing.T) {
	d := InstanceLayout().WGPU()
	assert.Equal(t, uint64(64), d.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, d.StepMode)
	require.Len(t, d.Attributes, 4)
	assert.Equal(t, uint32(8), d.Attributes[3].ShaderLocation)
	assert.Equal(t, uint64(48), d.Attributes[3].Offset)
}

func TestValidateLayouts(t *testing.T) {
	assert.NoError(t, ValidateLayouts(VertexLayout(), InstanceLayout()))

	clash, err := NewLayout(wgpu.VertexStepModeInstance, Field{Slot: 1, Format: wgpu.VertexFormatFloat32x4})
	require.NoError(t, err)
	assert.ErrorIs(t, ValidateLayouts(VertexLayout(), clash), ErrSlotCollision)
}

func TestMeshValidate(t *testing.T) {
	for _, m := range []Mesh{Triangle(), Pentagon(), CellQuad(0.04, [3]float32{1, 1, 1})} {
		assert.NoError(t, m.Validate(), m.Label)
		for _, idx := range m.Indices {
			assert.Less(t, int(idx), len(m.Vertices), m.Label)
		}
	}
	assert.False(t, Triangle().Indexed())
	assert.True(t, Pentagon().Indexed())

	bad := Pentagon()
	bad.Indices[4] = 5
	assert.ErrorIs(t, bad.Validate(), ErrIndexOutOfRange)

	short := Pentagon()
	short.Indices = short.Indices[:4]
	assert.ErrorIs(t, short.Validate(), ErrIndexCount)

	assert.ErrorIs(t, Mesh{Label: "empty"}.Validate(), ErrEmptyMesh)
}

func TestMeshWindingIsCounterClockwise(t *testing.T) {
	area := func(a, b, c Vertex) float32 {
		return (b.Position[0]-a.Position[0])*(c.Position[1]-a.Position[1]) -
			(b.Position[1]-a.Position[1])*(c.Position[0]-a.Position[0])
	}
	tri := Triangle()
	assert.Positive(t, area(tri.Vertices[0], tri.Vertices[1], tri.Vertices[2]))

	for _, m := range []Mesh{Pentagon(), CellQuad(0.5, [3]float32{})} {
		for i := 0; i < len(m.Indices); i += 3 {
			v := m.Vertices
			assert.Positive(t, area(v[m.Indices[i]], v[m.Indices[i+1]], v[m.Indices[i+2]]), "%s triangle %d", m.Label, i/3)
		}
	}
}

func TestGenerateInstancesGrid(t *testing.T) {
	var all []Instance
	for inst := range GenerateInstances(DefaultGridSize, WithRotationDegrees(45)) {
		all = append(all, inst)
	}
	require.Len(t, all, DefaultGridSize*DefaultGridSize)

	nearest := all[0]
	for _, inst := range all {
		if inst.Position.Len() < nearest.Position.Len() {
			nearest = inst
		}
		assert.False(t, math.IsNaN(float64(inst.Rotation.W)))
		for _, c := range inst.Rotation.V {
			assert.False(t, math.IsNaN(float64(c)))
		}
	}
	assert.InDelta(t, 0, nearest.Position.Len(), 1e-6)
	assert.Equal(t, mgl32.QuatIdent(), nearest.Rotation)

	off := all[0]
	assert.False(t, off.Rotation.ApproxEqual(mgl32.QuatIdent()))
	assert.InDelta(t, 1.0, off.Rotation.Len(), 1e-5)
}

func TestGenerateInstancesDefaultsToIdentity(t *testing.T) {
	n := 0
	for inst := range GenerateInstances(4, WithSpacing(0.5)) {
		assert.Equal(t, mgl32.QuatIdent(), inst.Rotation)
		n++
	}
	assert.Equal(t, 16, n)

	first := true
	for inst := range GenerateInstances(4, WithSpacing(0.5)) {
		if first {
			assert.Equal(t, mgl32.Vec3{-1, -1, 0}, inst.Position)
			first = false
		}
	}
}

func TestGenerateInstancesIsLazy(t *testing.T) {
	count := 0
	for range GenerateInstances(DefaultGridSize) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)

	assert.Empty(t, RawInstances(GenerateInstances(0)))
}

func TestInstanceRaw(t *testing.T) {
	inst := Instance{Position: mgl32.Vec3{0.25, -0.5, 0}, Rotation: mgl32.QuatIdent()}
	raw := inst.Raw()
	want := mgl32.Translate3D(0.25, -0.5, 0)
	assert.Equal(t, [16]float32(want), raw.Model)

	// translation lives in the fourth column
	assert.Equal(t, float32(0.25), raw.Model[12])
	assert.Equal(t, float32(-0.5), raw.Model[13])

	raws := RawInstances(GenerateInstances(3))
	assert.Len(t, raws, 9)
}

func TestWGSLStructSources(t *testing.T) {
	assert.Contains(t, VertexSource, "struct VertexInput")
	assert.Contains(t, VertexSource, "@location(1) color: vec3<f32>")
	assert.Contains(t, InstanceSource, "struct InstanceInput")
	assert.Contains(t, InstanceSource, "@location(8) model_3: vec4<f32>")
}
