package pipeline

import (
	"github.com/Carmen-Shannon/oxy-life/engine/geometry"
	"github.com/Carmen-Shannon/oxy-life/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithShader sets the shader providing both stages.
//
// Parameters:
//   - s: the shader
//
// Returns:
//   - PipelineBuilderOption: a function that sets the shader for this pipeline
func WithShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.shader = s
	}
}

// WithLayouts sets the vertex buffer layouts in bind order, replacing any previous ones.
//
// Parameters:
//   - layouts: layout i describes vertex buffer slot i
//
// Returns:
//   - PipelineBuilderOption: a function that sets the layouts for this pipeline
func WithLayouts(layouts ...geometry.Layout) PipelineBuilderOption {
	return func(p *pipeline) {
		p.layouts = make([]geometry.Layout, len(layouts))
		for i, l := range layouts {
			p.layouts[i] = l.Clone()
		}
	}
}

// WithEntryPoints overrides the vertex and fragment entry point names.
//
// Parameters:
//   - vertex: vertex entry point
//   - fragment: fragment entry point
//
// Returns:
//   - PipelineBuilderOption: a function that sets the entry points for this pipeline
func WithEntryPoints(vertex, fragment string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexEntryPoint = vertex
		p.fragmentEntryPoint = fragment
	}
}

// WithTopology sets the primitive topology.
//
// Parameters:
//   - topology: e.g. wgpu.PrimitiveTopologyTriangleList
//
// Returns:
//   - PipelineBuilderOption: a function that sets the topology for this pipeline
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the winding order of front-facing triangles.
//
// Parameters:
//   - frontFace: wgpu.FrontFaceCCW or wgpu.FrontFaceCW
//
// Returns:
//   - PipelineBuilderOption: a function that sets the front face for this pipeline
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}

// WithCullMode sets which faces are culled.
//
// Parameters:
//   - cullMode: wgpu.CullModeNone, wgpu.CullModeFront or wgpu.CullModeBack
//
// Returns:
//   - PipelineBuilderOption: a function that sets the cull mode for this pipeline
func WithCullMode(cullMode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = cullMode
	}
}

// WithWriteMask sets the colour channels written to the target.
//
// Parameters:
//   - mask: the colour write mask
//
// Returns:
//   - PipelineBuilderOption: a function that sets the write mask for this pipeline
func WithWriteMask(mask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.writeMask = mask
	}
}

// WithBlendState sets the colour blend state. Nil disables blending, which behaves like ReplaceBlend.
//
// Parameters:
//   - state: the blend state
//
// Returns:
//   - PipelineBuilderOption: a function that sets the blend state for this pipeline
func WithBlendState(state *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendState = state
	}
}
