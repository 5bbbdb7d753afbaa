package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-life/engine/geometry"
	"github.com/Carmen-Shannon/oxy-life/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustShader(t *testing.T, key, source string) shader.Shader {
	t.Helper()
	s, err := shader.NewShader(key, source)
	require.NoError(t, err)
	return s
}

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("basic")

	assert.Equal(t, "basic", p.Key())
	assert.Nil(t, p.Shader())
	assert.Empty(t, p.Layouts())
	assert.Equal(t, DefaultVertexEntryPoint, p.VertexEntryPoint())
	assert.Equal(t, DefaultFragmentEntryPoint, p.FragmentEntryPoint())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.Equal(t, ReplaceBlend(), p.BlendState())
	assert.Nil(t, p.RenderPipeline())
}

func TestReplaceBlend(t *testing.T) {
	b := ReplaceBlend()
	for _, c := range []wgpu.BlendComponent{b.Color, b.Alpha} {
		assert.Equal(t, wgpu.BlendFactorOne, c.SrcFactor)
		assert.Equal(t, wgpu.BlendFactorZero, c.DstFactor)
		assert.Equal(t, wgpu.BlendOperationAdd, c.Operation)
	}
}

func TestValidate(t *testing.T) {
	basic := mustShader(t, "basic", shader.BasicSource)
	instanced := mustShader(t, "instanced", shader.InstancedSource)

	colliding, err := geometry.NewLayout(wgpu.VertexStepModeInstance,
		geometry.Field{Slot: geometry.SlotColor, Format: wgpu.VertexFormatFloat32x4},
	)
	require.NoError(t, err)

	wrongFormat, err := geometry.NewLayout(wgpu.VertexStepModeVertex,
		geometry.Field{Slot: geometry.SlotPosition, Format: wgpu.VertexFormatFloat32x2},
		geometry.Field{Slot: geometry.SlotColor, Format: wgpu.VertexFormatFloat32x3},
	)
	require.NoError(t, err)

	tests := []struct {
		name string
		opts []PipelineBuilderOption
		err  error
	}{
		{
			name: "basic with vertex layout",
			opts: []PipelineBuilderOption{WithShader(basic), WithLayouts(geometry.VertexLayout())},
		},
		{
			name: "instanced with both layouts",
			opts: []PipelineBuilderOption{WithShader(instanced), WithLayouts(geometry.VertexLayout(), geometry.InstanceLayout())},
		},
		{
			name: "extra layout the shader ignores",
			opts: []PipelineBuilderOption{WithShader(basic), WithLayouts(geometry.VertexLayout(), geometry.InstanceLayout())},
		},
		{
			name: "no shader",
			opts: []PipelineBuilderOption{WithLayouts(geometry.VertexLayout())},
			err:  ErrNoShader,
		},
		{
			name: "no layouts",
			opts: []PipelineBuilderOption{WithShader(basic)},
			err:  ErrNoLayouts,
		},
		{
			name: "instance inputs unbound",
			opts: []PipelineBuilderOption{WithShader(instanced), WithLayouts(geometry.VertexLayout())},
			err:  ErrUnboundInput,
		},
		{
			name: "slot collision",
			opts: []PipelineBuilderOption{WithShader(basic), WithLayouts(geometry.VertexLayout(), colliding)},
			err:  geometry.ErrSlotCollision,
		},
		{
			name: "format mismatch",
			opts: []PipelineBuilderOption{WithShader(basic), WithLayouts(wrongFormat)},
			err:  ErrFormatMismatch,
		},
		{
			name: "missing entry point",
			opts: []PipelineBuilderOption{WithShader(basic), WithLayouts(geometry.VertexLayout()), WithEntryPoints("main", "fs_main")},
			err:  shader.ErrMissingEntryPoint,
		},
		{
			name: "bad cull mode",
			opts: []PipelineBuilderOption{WithShader(basic), WithLayouts(geometry.VertexLayout()), WithCullMode(wgpu.CullMode(99))},
			err:  ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPipeline(tt.name, tt.opts...).Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDescriptor(t *testing.T) {
	s := mustShader(t, "instanced", shader.InstancedSource)
	p := NewPipeline("instanced",
		WithShader(s),
		WithLayouts(geometry.VertexLayout(), geometry.InstanceLayout()),
	)
	require.NoError(t, p.Validate())

	d := p.Descriptor(nil, nil, wgpu.TextureFormatBGRA8UnormSrgb)

	assert.Equal(t, "instanced Render Pipeline", d.Label)
	assert.Equal(t, "vs_main", d.Vertex.EntryPoint)
	require.Len(t, d.Vertex.Buffers, 2)
	assert.Equal(t, uint64(24), d.Vertex.Buffers[0].ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, d.Vertex.Buffers[0].StepMode)
	assert.Equal(t, uint64(64), d.Vertex.Buffers[1].ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, d.Vertex.Buffers[1].StepMode)

	require.NotNil(t, d.Fragment)
	assert.Equal(t, "fs_main", d.Fragment.EntryPoint)
	require.Len(t, d.Fragment.Targets, 1)
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, d.Fragment.Targets[0].Format)
	assert.Equal(t, wgpu.ColorWriteMaskAll, d.Fragment.Targets[0].WriteMask)

	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, d.Primitive.Topology)
	assert.Equal(t, wgpu.FrontFaceCCW, d.Primitive.FrontFace)
	assert.Equal(t, wgpu.CullModeBack, d.Primitive.CullMode)
	assert.Nil(t, d.DepthStencil)
	assert.Equal(t, uint32(1), d.Multisample.Count)
	assert.Equal(t, uint32(0xFFFFFFFF), d.Multisample.Mask)
	assert.False(t, d.Multisample.AlphaToCoverageEnabled)
}

func TestWithLayoutsCopies(t *testing.T) {
	l := geometry.VertexLayout()
	p := NewPipeline("copy", WithLayouts(l))
	l.Attributes[0].Slot = 42

	got := p.Layouts()
	require.Len(t, got, 1)
	assert.Equal(t, geometry.SlotPosition, got[0].Attributes[0].Slot)

	got[0].Attributes[0].Slot = 43
	assert.Equal(t, geometry.SlotPosition, p.Layouts()[0].Attributes[0].Slot)
}

func TestOptionsOverride(t *testing.T) {
	p := NewPipeline("custom",
		WithEntryPoints("vmain", "fmain"),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithCullMode(wgpu.CullModeNone),
		WithWriteMask(wgpu.ColorWriteMaskRed),
		WithBlendState(nil),
	)
	assert.Equal(t, "vmain", p.VertexEntryPoint())
	assert.Equal(t, "fmain", p.FragmentEntryPoint())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.ColorWriteMaskRed, p.WriteMask())
	assert.Nil(t, p.BlendState())
}

func TestReleaseWithoutBuild(t *testing.T) {
	p := NewPipeline("unbuilt")
	assert.NotPanics(t, p.Release)
	assert.Nil(t, p.RenderPipeline())
}
