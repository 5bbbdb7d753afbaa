package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-life/common"
	"github.com/Carmen-Shannon/oxy-life/engine/logging"
	"github.com/Carmen-Shannon/oxy-life/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoAdapterFound is returned when no adapter can present to the window surface.
	ErrNoAdapterFound = errors.New("renderer: no compatible GPU adapter found")

	// ErrDeviceCreationFailed is returned when the adapter refuses to create a device.
	ErrDeviceCreationFailed = errors.New("renderer: device creation failed")

	// ErrNoSurfaceFormat is returned when the surface reports no usable pixel format.
	ErrNoSurfaceFormat = errors.New("renderer: surface reports no pixel formats")

	// ErrInvalidSize is returned when the initial surface size is not positive after aspect correction.
	ErrInvalidSize = errors.New("renderer: surface size must be positive")
)

// SurfaceConfig is the live configuration of the presentation surface.
type SurfaceConfig struct {
	Width       uint32
	Height      uint32
	Format      wgpu.TextureFormat
	PresentMode wgpu.PresentMode
	AlphaMode   wgpu.CompositeAlphaMode
}

// Size returns the surface dimensions.
func (c SurfaceConfig) Size() common.Size {
	return common.Size{Width: int(c.Width), Height: int(c.Height)}
}

// FitAspect shrinks the proportionally larger side of (w, h) so the result has the given
// width/height ratio. Non-positive aspects are treated as 1.
//
// Parameters:
//   - w: requested width
//   - h: requested height
//   - aspect: target width divided by height
//
// Returns:
//   - int: corrected width
//   - int: corrected height
func FitAspect(w, h int, aspect float64) (int, int) {
	if aspect <= 0 {
		aspect = 1
	}
	if w <= 0 || h <= 0 {
		return max(w, 0), max(h, 0)
	}
	if float64(w) > float64(h)*aspect {
		return int(math.Round(float64(h) * aspect)), h
	}
	return w, int(math.Round(float64(w) / aspect))
}

// Session owns the GPU instance, adapter, device, queue and the configured window surface.
// It is created once at startup and used from the thread that created it.
type Session struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	configurer surfaceConfigurer
	uploader   bufferUploader
	config     SurfaceConfig

	// Options collected before creation.
	aspect          float64
	presentMode     PresentMode
	powerPreference wgpu.PowerPreference
	forceFallback   bool
	clearColor      wgpu.Color
}

// NewSession acquires an adapter compatible with the window surface, requests a device and
// configures the surface at size, corrected to the session aspect.
//
// Parameters:
//   - desc: the surface descriptor of the window
//   - size: the requested surface size in pixels
//   - opts: session options
//
// Returns:
//   - *Session: the ready session
//   - error: ErrNoAdapterFound, ErrDeviceCreationFailed, ErrNoSurfaceFormat or ErrInvalidSize
func NewSession(desc *wgpu.SurfaceDescriptor, size common.Size, opts ...SessionOption) (*Session, error) {
	s := newSession(opts...)
	log := logging.Logger()

	w, h := FitAspect(size.Width, size.Height, s.aspect)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSize, size)
	}

	s.instance = wgpu.CreateInstance(nil)
	s.surface = s.instance.CreateSurface(desc)

	adapter, err := s.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    s.surface,
		PowerPreference:      s.powerPreference,
		ForceFallbackAdapter: s.forceFallback,
	})
	if err != nil || adapter == nil {
		s.Release()
		return nil, fmt.Errorf("%w: %w", ErrNoAdapterFound, common.Coalesce(err, error(errNilAdapter)))
	}
	s.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "Main Device"})
	if err != nil || device == nil {
		s.Release()
		return nil, fmt.Errorf("%w: %w", ErrDeviceCreationFailed, common.Coalesce(err, error(errNilDevice)))
	}
	s.device = device
	s.queue = device.GetQueue()

	caps := s.surface.GetCapabilities(adapter)
	format, ok := preferredFormat(caps.Formats)
	if !ok {
		s.Release()
		return nil, ErrNoSurfaceFormat
	}
	var alpha wgpu.CompositeAlphaMode
	if len(caps.AlphaModes) > 0 {
		alpha = caps.AlphaModes[0]
	}

	backend := &wgpuBackend{surface: s.surface, adapter: s.adapter, device: s.device}
	s.configurer = backend
	s.uploader = backend
	s.config = SurfaceConfig{
		Width:       uint32(w),
		Height:      uint32(h),
		Format:      format,
		PresentMode: wgpuPresentMode(s.presentMode, caps.PresentModes),
		AlphaMode:   alpha,
	}
	s.configurer.configure(s.config)

	log.Info("gpu session ready",
		"size", s.config.Size().String(),
		"format", format,
		"present_mode", s.presentMode.String(),
		"fallback_adapter", s.forceFallback,
	)
	return s, nil
}

var (
	errNilAdapter = errors.New("adapter request returned nothing")
	errNilDevice  = errors.New("device request returned nothing")
)

// newSession applies options over the defaults without touching the GPU.
func newSession(opts ...SessionOption) *Session {
	s := &Session{
		aspect:          1,
		presentMode:     PresentModeVSync,
		powerPreference: wgpu.PowerPreferenceHighPerformance,
		clearColor:      wgpu.Color{R: 0, G: 0, B: 0, A: 1},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// preferredFormat picks an sRGB format when the surface offers one, else the first listed.
func preferredFormat(formats []wgpu.TextureFormat) (wgpu.TextureFormat, bool) {
	if len(formats) == 0 {
		var none wgpu.TextureFormat
		return none, false
	}
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8UnormSrgb || f == wgpu.TextureFormatRGBA8UnormSrgb {
			return f, true
		}
	}
	return formats[0], true
}

// Reconfigure corrects size to the session aspect and, when both sides stay positive,
// replaces the live SurfaceConfig and reapplies it to the surface.
//
// Parameters:
//   - size: the new window size in pixels
//
// Returns:
//   - bool: true if the surface was reconfigured, false if the size was ignored
func (s *Session) Reconfigure(size common.Size) bool {
	w, h := FitAspect(size.Width, size.Height, s.aspect)
	if w <= 0 || h <= 0 {
		logging.Logger().Debug("ignoring non-positive surface size", "requested", size.String())
		return false
	}

	next := s.config
	next.Width = uint32(w)
	next.Height = uint32(h)
	s.config = next

	s.configurer.configure(next)
	logging.Logger().Debug("surface reconfigured", "requested", size.String(), "applied", next.Size().String())
	return true
}

// Restore reapplies the live SurfaceConfig unchanged, as needed after the surface was lost.
func (s *Session) Restore() {
	cfg := s.Config()
	s.configurer.configure(cfg)
	logging.Logger().Info("surface restored", "size", cfg.Size().String())
}

// Config returns a copy of the live SurfaceConfig.
func (s *Session) Config() SurfaceConfig {
	return s.config
}

// Size returns the live surface size.
func (s *Session) Size() common.Size {
	return s.Config().Size()
}

// ClearColor returns the colour each frame's render pass clears to.
func (s *Session) ClearColor() wgpu.Color {
	return s.clearColor
}

// Device returns the logical device.
func (s *Session) Device() *wgpu.Device {
	return s.device
}

// Queue returns the device queue.
func (s *Session) Queue() *wgpu.Queue {
	return s.queue
}

// Surface returns the presentation surface.
func (s *Session) Surface() *wgpu.Surface {
	return s.surface
}

// BuildPipeline validates p and creates its shader module, an empty pipeline layout and the
// render pipeline targeting the surface format. The built pipeline is stored on p.
//
// Parameters:
//   - p: the pipeline to build
//
// Returns:
//   - error: a validation error, or the wrapped device error
func (s *Session) BuildPipeline(p pipeline.Pipeline) error {
	if err := p.Validate(); err != nil {
		return err
	}

	module, err := s.device.CreateShaderModule(p.Shader().Module())
	if err != nil {
		return fmt.Errorf("create shader module %s: %w", p.Shader().Key(), err)
	}
	defer module.Release()

	layout, err := s.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: p.Key() + " Pipeline Layout",
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout %s: %w", p.Key(), err)
	}
	defer layout.Release()

	rp, err := s.device.CreateRenderPipeline(p.Descriptor(module, layout, s.Config().Format))
	if err != nil {
		return fmt.Errorf("create render pipeline %s: %w", p.Key(), err)
	}
	p.SetRenderPipeline(rp)
	logging.Logger().Debug("pipeline built", "key", p.Key(), "layouts", len(p.Layouts()))
	return nil
}

// Release releases all GPU objects in reverse order of creation. Safe to call more than once.
func (s *Session) Release() {
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.device != nil {
		s.device.Release()
		s.device = nil
	}
	if s.adapter != nil {
		s.adapter.Release()
		s.adapter = nil
	}
	if s.surface != nil {
		s.surface.Release()
		s.surface = nil
	}
	if s.instance != nil {
		s.instance.Release()
		s.instance = nil
	}
}
