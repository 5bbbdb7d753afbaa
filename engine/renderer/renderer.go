package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-life/common"
	"github.com/Carmen-Shannon/oxy-life/engine/geometry"
	"github.com/Carmen-Shannon/oxy-life/engine/renderer/pipeline"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	session  *Session
	pipeline pipeline.Pipeline
	buffers  *GeometryBuffers
	loop     *FrameLoop
}

// Renderer ties one GPU session, one pipeline and one set of geometry buffers to a frame loop.
//
// This is the high-level API the host loop drives: resize on window events, render a frame per
// poll, release on exit.
type Renderer interface {
	// Pipeline returns the built pipeline.
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline
	Pipeline() pipeline.Pipeline

	// Plan returns the draw command issued every frame.
	//
	// Returns:
	//   - DrawPlan: the plan of the uploaded geometry
	Plan() DrawPlan

	// Resize reconfigures the surface for a new window size, keeping the session aspect.
	//
	// Parameters:
	//   - size: the new window size in pixels
	//
	// Returns:
	//   - bool: false if the size was ignored
	Resize(size common.Size) bool

	// Size returns the current surface size.
	//
	// Returns:
	//   - common.Size: the surface size
	Size() common.Size

	// Frame renders one frame.
	//
	// Returns:
	//   - FrameOutcome: what happened to the frame
	Frame() FrameOutcome

	// Err returns the fatal frame error, or nil.
	//
	// Returns:
	//   - error: the error that stopped the frame loop
	Err() error

	// Release frees the buffers, the pipeline and the session.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer builds p against session, uploads the geometry and prepares the frame loop.
// On error nothing created here is left allocated; the session stays owned by the caller.
//
// Parameters:
//   - session: the GPU session, owned by the Renderer on success
//   - p: the pipeline to build
//   - mesh: the geometry to upload
//   - instances: per-instance data, may be nil
//   - opts: frame loop options
//
// Returns:
//   - Renderer: the ready renderer
//   - error: a pipeline, geometry or device error
func NewRenderer(session *Session, p pipeline.Pipeline, mesh geometry.Mesh, instances []geometry.InstanceRaw, opts ...FrameLoopOption) (Renderer, error) {
	if err := session.BuildPipeline(p); err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	buffers, err := NewGeometryBuffers(session, mesh, instances)
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("upload geometry: %w", err)
	}
	return &renderer{
		session:  session,
		pipeline: p,
		buffers:  buffers,
		loop:     NewFrameLoop(NewFrameDriver(session, p, buffers), opts...),
	}, nil
}

func (r *renderer) Pipeline() pipeline.Pipeline {
	return r.pipeline
}

func (r *renderer) Plan() DrawPlan {
	return r.buffers.Plan()
}

func (r *renderer) Resize(size common.Size) bool {
	return r.session.Reconfigure(size)
}

func (r *renderer) Size() common.Size {
	return r.session.Size()
}

func (r *renderer) Frame() FrameOutcome {
	return r.loop.Frame()
}

func (r *renderer) Err() error {
	return r.loop.Err()
}

func (r *renderer) Release() {
	if r.buffers != nil {
		r.buffers.Release()
	}
	if r.pipeline != nil {
		r.pipeline.Release()
	}
	if r.session != nil {
		r.session.Release()
	}
}
