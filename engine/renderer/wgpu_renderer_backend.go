package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-life/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuBackend applies surface configurations and uploads buffers on a live device.
type wgpuBackend struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
}

var (
	_ surfaceConfigurer = &wgpuBackend{}
	_ bufferUploader    = &wgpuBackend{}
)

func (b *wgpuBackend) configure(cfg SurfaceConfig) {
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      cfg.Format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		PresentMode: cfg.PresentMode,
		AlphaMode:   cfg.AlphaMode,
	})
}

func (b *wgpuBackend) createBuffer(label string, contents []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	return b.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: contents,
		Usage:    usage,
	})
}

var (
	errFrameInFlight = errors.New("renderer: previous frame not yet presented")
	errNothingToSend = errors.New("renderer: no recorded commands to submit")
)

// wgpuFrameDriver draws one pipeline with one set of geometry buffers into the session surface.
type wgpuFrameDriver struct {
	session  *Session
	pipeline pipeline.Pipeline
	buffers  *GeometryBuffers

	// Frame state, held from AcquireTarget until Present or Discard.
	surfaceTexture *wgpu.Texture
	view           *wgpu.TextureView
	commands       *wgpu.CommandBuffer
}

var _ FrameDriver = &wgpuFrameDriver{}

// NewFrameDriver returns the FrameDriver drawing p with buffers into the session's surface.
// p must already be built with Session.BuildPipeline.
//
// Parameters:
//   - session: the GPU session owning device, queue and surface
//   - p: the built pipeline
//   - buffers: the uploaded geometry
//
// Returns:
//   - FrameDriver: the driver
func NewFrameDriver(session *Session, p pipeline.Pipeline, buffers *GeometryBuffers) FrameDriver {
	return &wgpuFrameDriver{session: session, pipeline: p, buffers: buffers}
}

func (d *wgpuFrameDriver) AcquireTarget() error {
	// wgpu-native rejects acquiring a second image before the first is presented.
	if d.surfaceTexture != nil {
		return errFrameInFlight
	}

	// The binding drops the acquire status and only returns error-scope errors, so a lost,
	// outdated or timed out surface may come back without an error here.
	surfaceTexture, err := d.session.Surface().GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	d.surfaceTexture = surfaceTexture
	d.view = view
	return nil
}

func (d *wgpuFrameDriver) Record() error {
	encoder, err := d.session.Device().CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       d.view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: d.session.ClearColor(),
			},
		},
	})
	defer pass.Release()

	pass.SetPipeline(d.pipeline.RenderPipeline())
	d.buffers.Encode(pass)
	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	commands, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}
	d.commands = commands
	return nil
}

func (d *wgpuFrameDriver) Submit() error {
	if d.commands == nil {
		return errNothingToSend
	}
	d.session.Queue().Submit(d.commands)
	d.commands.Release()
	d.commands = nil
	return nil
}

func (d *wgpuFrameDriver) Present() {
	if d.surfaceTexture == nil {
		return
	}
	d.session.Surface().Present()
	d.Discard()
}

func (d *wgpuFrameDriver) Discard() {
	if d.commands != nil {
		d.commands.Release()
		d.commands = nil
	}
	if d.view != nil {
		d.view.Release()
		d.view = nil
	}
	if d.surfaceTexture != nil {
		d.surfaceTexture.Release()
		d.surfaceTexture = nil
	}
}

func (d *wgpuFrameDriver) Recover() {
	d.Discard()
	d.session.Restore()
}
