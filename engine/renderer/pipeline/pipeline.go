package pipeline

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-life/engine/geometry"
	"github.com/Carmen-Shannon/oxy-life/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// DefaultVertexEntryPoint is the vertex entry point every shader must export.
	DefaultVertexEntryPoint = "vs_main"

	// DefaultFragmentEntryPoint is the fragment entry point every shader must export.
	DefaultFragmentEntryPoint = "fs_main"
)

var (
	// ErrNoShader is returned when a pipeline is validated without a shader.
	ErrNoShader = errors.New("pipeline: no shader set")

	// ErrNoLayouts is returned when a pipeline binds no vertex buffer layout.
	ErrNoLayouts = errors.New("pipeline: no vertex buffer layouts set")

	// ErrUnboundInput is returned when a shader input slot is not fed by any layout.
	ErrUnboundInput = errors.New("pipeline: shader input not covered by a vertex buffer layout")

	// ErrFormatMismatch is returned when a layout attribute format differs from the shader input type.
	ErrFormatMismatch = errors.New("pipeline: attribute format does not match shader input")

	// ErrInvalidState is returned for fixed-function values outside their enumerations.
	ErrInvalidState = errors.New("pipeline: invalid fixed-function state")
)

// ReplaceBlend returns the blend state that writes the fragment colour over the target unchanged.
//
// Returns:
//   - *wgpu.BlendState: One/Zero/Add for both colour and alpha
func ReplaceBlend() *wgpu.BlendState {
	replace := wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorZero,
		Operation: wgpu.BlendOperationAdd,
	}
	return &wgpu.BlendState{Color: replace, Alpha: replace}
}

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	// key labels the pipeline and its GPU objects.
	key string

	shader  shader.Shader
	layouts []geometry.Layout

	vertexEntryPoint   string
	fragmentEntryPoint string

	// Fixed-function state. WebGPU has no polygon mode, so fill is always solid,
	// and there is no depth/stencil attachment.

	topology   wgpu.PrimitiveTopology
	frontFace  wgpu.FrontFace
	cullMode   wgpu.CullMode
	writeMask  wgpu.ColorWriteMask
	blendState *wgpu.BlendState

	// renderPipeline is the GPU object, nil until built by the renderer.
	renderPipeline *wgpu.RenderPipeline
}

// Pipeline is the immutable description of a render pipeline: one shader providing both stages,
// the vertex buffer layouts in bind order, and the fixed-function state. It owns the GPU
// pipeline once the renderer has built it.
type Pipeline interface {
	// Key returns the unique key of this pipeline.
	//
	// Returns:
	//   - string: the key
	Key() string

	// Shader returns the shader providing the vertex and fragment stages.
	//
	// Returns:
	//   - shader.Shader: the shader, or nil if none was set
	Shader() shader.Shader

	// Layouts returns the vertex buffer layouts in bind order. Layout i is read from vertex buffer slot i.
	//
	// Returns:
	//   - []geometry.Layout: copies of the layouts
	Layouts() []geometry.Layout

	// VertexEntryPoint returns the vertex stage entry point name.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the fragment stage entry point name.
	FragmentEntryPoint() string

	// Topology returns the primitive topology (default triangle list).
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding treated as front facing (default counter-clockwise).
	FrontFace() wgpu.FrontFace

	// CullMode returns the faces discarded before rasterisation (default back).
	CullMode() wgpu.CullMode

	// WriteMask returns the colour channels written (default all).
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the colour blend state (default ReplaceBlend).
	BlendState() *wgpu.BlendState

	// Validate checks the pipeline before it is built: a shader must be set and export both
	// entry points, layouts must not share slots, and every shader input must be read from a
	// layout attribute of the same format.
	//
	// Returns:
	//   - error: the first problem found, or nil
	Validate() error

	// Descriptor assembles the GPU descriptor for this pipeline.
	//
	// Parameters:
	//   - module: the compiled shader module
	//   - layout: the pipeline layout (no bind groups, no push constants)
	//   - format: the surface pixel format the single colour target renders into
	//
	// Returns:
	//   - *wgpu.RenderPipelineDescriptor: the descriptor
	Descriptor(module *wgpu.ShaderModule, layout *wgpu.PipelineLayout, format wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor

	// RenderPipeline returns the built GPU pipeline, or nil before it is built.
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the built GPU pipeline.
	//
	// Parameters:
	//   - rp: the GPU pipeline
	SetRenderPipeline(rp *wgpu.RenderPipeline)

	// Release releases the GPU pipeline, if built.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a Pipeline with the engine defaults, then applies opts:
// triangle list, counter-clockwise front face, back-face culling, replace blending,
// all colour channels, entry points vs_main and fs_main.
//
// Parameters:
//   - key: the unique key for this pipeline
//   - opts: builder options
//
// Returns:
//   - Pipeline: the configured, not yet built pipeline
func NewPipeline(key string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		key:                key,
		vertexEntryPoint:   DefaultVertexEntryPoint,
		fragmentEntryPoint: DefaultFragmentEntryPoint,
		topology:           wgpu.PrimitiveTopologyTriangleList,
		frontFace:          wgpu.FrontFaceCCW,
		cullMode:           wgpu.CullModeBack,
		writeMask:          wgpu.ColorWriteMaskAll,
		blendState:         ReplaceBlend(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Key() string {
	return p.key
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) Layouts() []geometry.Layout {
	out := make([]geometry.Layout, len(p.layouts))
	for i, l := range p.layouts {
		out[i] = l.Clone()
	}
	return out
}

func (p *pipeline) VertexEntryPoint() string {
	return p.vertexEntryPoint
}

func (p *pipeline) FragmentEntryPoint() string {
	return p.fragmentEntryPoint
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) Validate() error {
	if p.shader == nil {
		return fmt.Errorf("%s: %w", p.key, ErrNoShader)
	}
	if err := shader.RequireEntryPoints(p.shader, p.vertexEntryPoint, p.fragmentEntryPoint); err != nil {
		return fmt.Errorf("%s: %w", p.key, err)
	}
	if len(p.layouts) == 0 {
		return fmt.Errorf("%s: %w", p.key, ErrNoLayouts)
	}
	if err := geometry.ValidateLayouts(p.layouts...); err != nil {
		return fmt.Errorf("%s: %w", p.key, err)
	}

	formats := make(map[uint32]wgpu.VertexFormat)
	for _, l := range p.layouts {
		for _, a := range l.Attributes {
			formats[a.Slot] = a.Format
		}
	}
	for _, in := range p.shader.Inputs() {
		got, ok := formats[in.Location]
		if !ok {
			return fmt.Errorf("%s: %w: %s.%s @location(%d)", p.key, ErrUnboundInput, in.Struct, in.Name, in.Location)
		}
		if got != in.Format {
			return fmt.Errorf("%s: %w: @location(%d) layout %v, shader %v", p.key, ErrFormatMismatch, in.Location, got, in.Format)
		}
	}

	if !slices.Contains(validTopologies, p.topology) {
		return fmt.Errorf("%s: %w: topology %v", p.key, ErrInvalidState, p.topology)
	}
	if p.frontFace != wgpu.FrontFaceCCW && p.frontFace != wgpu.FrontFaceCW {
		return fmt.Errorf("%s: %w: front face %v", p.key, ErrInvalidState, p.frontFace)
	}
	if p.cullMode != wgpu.CullModeNone && p.cullMode != wgpu.CullModeFront && p.cullMode != wgpu.CullModeBack {
		return fmt.Errorf("%s: %w: cull mode %v", p.key, ErrInvalidState, p.cullMode)
	}
	return nil
}

var validTopologies = []wgpu.PrimitiveTopology{
	wgpu.PrimitiveTopologyPointList,
	wgpu.PrimitiveTopologyLineList,
	wgpu.PrimitiveTopologyLineStrip,
	wgpu.PrimitiveTopologyTriangleList,
	wgpu.PrimitiveTopologyTriangleStrip,
}

func (p *pipeline) Descriptor(module *wgpu.ShaderModule, layout *wgpu.PipelineLayout, format wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor {
	buffers := make([]wgpu.VertexBufferLayout, len(p.layouts))
	for i, l := range p.layouts {
		buffers[i] = l.WGPU()
	}
	return &wgpu.RenderPipelineDescriptor{
		Label:  p.key + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.vertexEntryPoint,
			Buffers:    buffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.fragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					Blend:     p.blendState,
					WriteMask: p.writeMask,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
