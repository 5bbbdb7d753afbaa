package engine

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-life/common"
	"github.com/Carmen-Shannon/oxy-life/engine/config"
	"github.com/Carmen-Shannon/oxy-life/engine/geometry"
	"github.com/Carmen-Shannon/oxy-life/engine/renderer"
	"github.com/Carmen-Shannon/oxy-life/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-life/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-life/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// cellColor is the colour of every grid cell.
var cellColor = [3]float32{0.85, 0.85, 0.85}

// Scene is what one geometry variant draws: a validated pipeline plus its mesh and instances.
type Scene struct {
	Pipeline  pipeline.Pipeline
	Mesh      geometry.Mesh
	Instances []geometry.InstanceRaw
}

// SceneFor builds the pipeline and geometry of cfg.Variant.
//
// Parameters:
//   - cfg: validated settings
//
// Returns:
//   - Scene: the pipeline, not yet built on a device, and the geometry
//   - error: a shader or pipeline validation error
func SceneFor(cfg config.Config) (Scene, error) {
	var (
		sc     Scene
		source = shader.BasicSource
		key    = "basic"
	)
	layouts := []geometry.Layout{geometry.VertexLayout()}

	switch cfg.Variant {
	case config.VariantTriangle:
		sc.Mesh = geometry.Triangle()
	case config.VariantIndexed:
		sc.Mesh = geometry.Pentagon()
	case config.VariantInstanced:
		source, key = shader.InstancedSource, "instanced"
		layouts = append(layouts, geometry.InstanceLayout())
		sc.Mesh = geometry.CellQuad(cfg.GridSpacing*0.45, cellColor)
		sc.Instances = geometry.RawInstances(geometry.GenerateInstances(cfg.GridSize,
			geometry.WithSpacing(cfg.GridSpacing),
			geometry.WithRotationDegrees(cfg.RotationDegrees),
		))
	default:
		return Scene{}, fmt.Errorf("%w: variant %q", config.ErrInvalid, cfg.Variant)
	}

	s, err := shader.NewShader(key, source)
	if err != nil {
		return Scene{}, err
	}
	sc.Pipeline = pipeline.NewPipeline(cfg.Variant,
		pipeline.WithShader(s),
		pipeline.WithLayouts(layouts...),
	)
	if err := sc.Pipeline.Validate(); err != nil {
		return Scene{}, err
	}
	return sc, nil
}

// SessionOptions maps cfg onto GPU session options.
func SessionOptions(cfg config.Config) []renderer.SessionOption {
	return []renderer.SessionOption{
		renderer.WithAspect(cfg.Aspect),
		renderer.WithPresentMode(presentMode(cfg.PresentMode)),
		renderer.WithPowerPreference(powerPreference(cfg.PowerPreference)),
		renderer.WithForceSoftwareRenderer(cfg.ForceFallbackAdapter),
		renderer.WithClearColor(cfg.ClearRGBA()),
	}
}

func presentMode(name string) renderer.PresentMode {
	if name == config.PresentUncapped {
		return renderer.PresentModeUncapped
	}
	return renderer.PresentModeVSync
}

func powerPreference(name string) wgpu.PowerPreference {
	if name == config.PowerLowPower {
		return wgpu.PowerPreferenceLowPower
	}
	return wgpu.PowerPreferenceHighPerformance
}

// New opens the window, creates the GPU session and renderer for cfg and returns the engine
// driving them. Everything opened here is closed again on error.
//
// Parameters:
//   - cfg: validated settings
//   - options: extra engine options, applied after the ones derived from cfg
//
// Returns:
//   - Engine: the ready engine; call Close when done
//   - error: a window, adapter, device, pipeline or geometry error
func New(cfg config.Config, options ...EngineBuilderOption) (Engine, error) {
	sc, err := SceneFor(cfg)
	if err != nil {
		return nil, err
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Title),
		window.WithSize(common.Size{Width: cfg.Width, Height: cfg.Height}),
	)
	if err != nil {
		return nil, err
	}

	session, err := renderer.NewSession(win.SurfaceDescriptor(), win.Size(), SessionOptions(cfg)...)
	if err != nil {
		_ = win.Close()
		return nil, err
	}

	r, err := renderer.NewRenderer(session, sc.Pipeline, sc.Mesh, sc.Instances)
	if err != nil {
		session.Release()
		_ = win.Close()
		return nil, err
	}

	opts := append([]EngineBuilderOption{WithProfiling(cfg.Profile)}, options...)
	return NewEngine(win, r, opts...), nil
}
