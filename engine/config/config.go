// Package config loads the host settings from defaults, an optional TOML file and command-line flags,
// in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"golang.org/x/image/colornames"
)

// MaxGridSize is the largest grid side; the grid holds at most 65536 instances.
const MaxGridSize = 1 << 8

// Geometry variants.
const (
	VariantTriangle  = "triangle"
	VariantIndexed   = "indexed"
	VariantInstanced = "instanced"
)

// Present modes.
const (
	PresentVSync    = "vsync"
	PresentUncapped = "uncapped"
)

// Power preferences.
const (
	PowerHighPerformance = "high-performance"
	PowerLowPower        = "low-power"
)

var (
	variants         = []string{VariantTriangle, VariantIndexed, VariantInstanced}
	presentModes     = []string{PresentVSync, PresentUncapped}
	powerPreferences = []string{PowerHighPerformance, PowerLowPower}
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// Config holds every host setting.
type Config struct {
	Title  string  `toml:"title"`
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Aspect float64 `toml:"aspect"`

	Variant         string  `toml:"variant"`
	GridSize        int     `toml:"grid_size"`
	GridSpacing     float32 `toml:"grid_spacing"`
	RotationDegrees float32 `toml:"rotation_degrees"`

	PresentMode          string `toml:"present_mode"`
	ClearColor           string `toml:"clear_color"`
	PowerPreference      string `toml:"power_preference"`
	ForceFallbackAdapter bool   `toml:"force_fallback_adapter"`

	Debug   bool `toml:"debug"`
	Profile bool `toml:"profile"`
}

// Default returns the settings of the original program: a 500x500 square window drawing the
// instanced 20x20 grid with vsync on a black background.
func Default() Config {
	return Config{
		Title:           "WGPU Conway's Game of life",
		Width:           500,
		Height:          500,
		Aspect:          1,
		Variant:         VariantInstanced,
		GridSize:        20,
		GridSpacing:     0.09,
		RotationDegrees: 0,
		PresentMode:     PresentVSync,
		ClearColor:      "black",
		PowerPreference: PowerHighPerformance,
	}
}

// Load decodes TOML from r over base. Unknown keys are rejected.
//
// Parameters:
//   - r: the TOML document
//   - base: the values kept for keys the document omits
//
// Returns:
//   - Config: the merged settings, not yet validated
//   - error: a decode error
func Load(r io.Reader, base Config) (Config, error) {
	cfg := base
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return base, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// LoadFile decodes the TOML file at path over base.
func LoadFile(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Load(f, base)
}

// Parse builds the settings from defaults, the file named by --config and the flags in args.
// Flags win over the file. The result is validated.
//
// Parameters:
//   - name: the program name used in usage output
//   - args: command-line arguments without the program name
//   - output: where usage and flag errors are written
//
// Returns:
//   - Config: the validated settings
//   - error: pflag.ErrHelp when help was requested, a flag, file or validation error otherwise
func Parse(name string, args []string, output io.Writer) (Config, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)

	var path string
	flags := Default()
	fs.StringVar(&path, "config", "", "path to a TOML config file")
	fs.StringVar(&flags.Title, "title", flags.Title, "window title")
	fs.IntVar(&flags.Width, "width", flags.Width, "initial window width in pixels")
	fs.IntVar(&flags.Height, "height", flags.Height, "initial window height in pixels")
	fs.Float64Var(&flags.Aspect, "aspect", flags.Aspect, "surface width/height ratio kept on resize")
	fs.StringVar(&flags.Variant, "variant", flags.Variant, "geometry: "+strings.Join(variants, "|"))
	fs.IntVar(&flags.GridSize, "grid-size", flags.GridSize, "instances per grid side")
	fs.Float32Var(&flags.GridSpacing, "grid-spacing", flags.GridSpacing, "distance between grid cells in clip space")
	fs.Float32Var(&flags.RotationDegrees, "rotation", flags.RotationDegrees, "instance rotation in degrees about each cell's offset")
	fs.StringVar(&flags.PresentMode, "present-mode", flags.PresentMode, "present mode: "+strings.Join(presentModes, "|"))
	fs.StringVar(&flags.ClearColor, "clear-color", flags.ClearColor, "background colour name (SVG 1.1)")
	fs.StringVar(&flags.PowerPreference, "power-preference", flags.PowerPreference, "adapter power preference: "+strings.Join(powerPreferences, "|"))
	fs.BoolVar(&flags.ForceFallbackAdapter, "fallback-adapter", flags.ForceFallbackAdapter, "force the software fallback adapter")
	fs.BoolVar(&flags.Debug, "debug", flags.Debug, "log at debug level")
	fs.BoolVar(&flags.Profile, "profile", flags.Profile, "log frame statistics every second")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path, cfg); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "title":
			cfg.Title = flags.Title
		case "width":
			cfg.Width = flags.Width
		case "height":
			cfg.Height = flags.Height
		case "aspect":
			cfg.Aspect = flags.Aspect
		case "variant":
			cfg.Variant = flags.Variant
		case "grid-size":
			cfg.GridSize = flags.GridSize
		case "grid-spacing":
			cfg.GridSpacing = flags.GridSpacing
		case "rotation":
			cfg.RotationDegrees = flags.RotationDegrees
		case "present-mode":
			cfg.PresentMode = flags.PresentMode
		case "clear-color":
			cfg.ClearColor = flags.ClearColor
		case "power-preference":
			cfg.PowerPreference = flags.PowerPreference
		case "fallback-adapter":
			cfg.ForceFallbackAdapter = flags.ForceFallbackAdapter
		case "debug":
			cfg.Debug = flags.Debug
		case "profile":
			cfg.Profile = flags.Profile
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting outside its allowed range.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	case !finite(c.Aspect) || c.Aspect <= 0:
		return fmt.Errorf("%w: aspect %g must be positive and finite", ErrInvalid, c.Aspect)
	case !slices.Contains(variants, c.Variant):
		return fmt.Errorf("%w: variant %q, want one of %v", ErrInvalid, c.Variant, variants)
	case c.GridSize <= 0:
		return fmt.Errorf("%w: grid size %d must be positive", ErrInvalid, c.GridSize)
	case c.GridSize > MaxGridSize:
		return fmt.Errorf("%w: grid size %d exceeds %d per side", ErrInvalid, c.GridSize, MaxGridSize)
	case !finite(float64(c.GridSpacing)) || c.GridSpacing <= 0:
		return fmt.Errorf("%w: grid spacing %g must be positive and finite", ErrInvalid, c.GridSpacing)
	case !finite(float64(c.RotationDegrees)):
		return fmt.Errorf("%w: rotation %g must be finite", ErrInvalid, c.RotationDegrees)
	case !slices.Contains(presentModes, c.PresentMode):
		return fmt.Errorf("%w: present mode %q, want one of %v", ErrInvalid, c.PresentMode, presentModes)
	case !slices.Contains(powerPreferences, c.PowerPreference):
		return fmt.Errorf("%w: power preference %q, want one of %v", ErrInvalid, c.PowerPreference, powerPreferences)
	}
	if _, ok := colornames.Map[strings.ToLower(c.ClearColor)]; !ok {
		return fmt.Errorf("%w: unknown clear colour %q", ErrInvalid, c.ClearColor)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ClearRGBA returns the named clear colour, or black if the name is unknown.
func (c Config) ClearRGBA() color.RGBA {
	if rgba, ok := colornames.Map[strings.ToLower(c.ClearColor)]; ok {
		return rgba
	}
	return colornames.Black
}
