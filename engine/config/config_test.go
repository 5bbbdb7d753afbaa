package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "WGPU Conway's Game of life", cfg.Title)
	assert.Equal(t, 500, cfg.Width)
	assert.Equal(t, 500, cfg.Height)
	assert.Equal(t, VariantInstanced, cfg.Variant)
	assert.Equal(t, 20, cfg.GridSize)
	assert.Equal(t, colornames.Black, cfg.ClearRGBA())
}

func TestLoad(t *testing.T) {
	doc := `
title = "life"
variant = "indexed"
grid_size = 10
clear_color = "CornflowerBlue"
`
	cfg, err := Load(strings.NewReader(doc), Default())
	require.NoError(t, err)
	assert.Equal(t, "life", cfg.Title)
	assert.Equal(t, VariantIndexed, cfg.Variant)
	assert.Equal(t, 10, cfg.GridSize)
	assert.Equal(t, 500, cfg.Width, "omitted keys keep the base value")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, colornames.Cornflowerblue, cfg.ClearRGBA())
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	base := Default()
	cfg, err := Load(strings.NewReader(`colour = "red"`), base)
	require.Error(t, err)
	assert.Equal(t, base, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero aspect", func(c *Config) { c.Aspect = 0 }},
		{"unknown variant", func(c *Config) { c.Variant = "hexagon" }},
		{"zero grid", func(c *Config) { c.GridSize = 0 }},
		{"huge grid", func(c *Config) { c.GridSize = 1000 }},
		{"grid one past limit", func(c *Config) { c.GridSize = MaxGridSize + 1 }},
		{"grid whose square overflows", func(c *Config) { c.GridSize = math.MaxInt }},
		{"nan aspect", func(c *Config) { c.Aspect = math.NaN() }},
		{"infinite aspect", func(c *Config) { c.Aspect = math.Inf(1) }},
		{"zero spacing", func(c *Config) { c.GridSpacing = 0 }},
		{"nan spacing", func(c *Config) { c.GridSpacing = float32(math.NaN()) }},
		{"infinite spacing", func(c *Config) { c.GridSpacing = float32(math.Inf(1)) }},
		{"nan rotation", func(c *Config) { c.RotationDegrees = float32(math.NaN()) }},
		{"infinite rotation", func(c *Config) { c.RotationDegrees = float32(math.Inf(-1)) }},
		{"unknown present mode", func(c *Config) { c.PresentMode = "mailbox" }},
		{"unknown power preference", func(c *Config) { c.PowerPreference = "turbo" }},
		{"unknown colour", func(c *Config) { c.ClearColor = "ultraviolet" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestValidateGridLimit(t *testing.T) {
	cfg := Default()
	cfg.GridSize = MaxGridSize
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsNonFinite(t *testing.T) {
	cfg, err := Load(strings.NewReader("aspect = nan\ngrid_spacing = nan\n"), Default())
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg, err = Load(strings.NewReader("aspect = inf\n"), Default())
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestParseFlags(t *testing.T) {
	cfg, err := Parse("life", []string{"--variant=triangle", "--width", "800", "--debug", "--rotation=45"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, VariantTriangle, cfg.Variant)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 500, cfg.Height)
	assert.True(t, cfg.Debug)
	assert.Equal(t, float32(45), cfg.RotationDegrees)
}

func TestParseFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.toml")
	require.NoError(t, os.WriteFile(path, []byte("variant = \"indexed\"\npresent_mode = \"uncapped\"\n"), 0o644))

	cfg, err := Parse("life", []string{"--config", path, "--variant", "instanced"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, VariantInstanced, cfg.Variant, "flag wins over file")
	assert.Equal(t, PresentUncapped, cfg.PresentMode, "file wins over default")
}

func TestParseErrors(t *testing.T) {
	out := &bytes.Buffer{}
	_, err := Parse("life", []string{"--help"}, out)
	assert.ErrorIs(t, err, pflag.ErrHelp)
	assert.Contains(t, out.String(), "--variant")

	_, err = Parse("life", []string{"--variant=cube"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Parse("life", []string{"--grid-size", strconv.Itoa(math.MaxInt)}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Parse("life", []string{"--no-such-flag"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = Parse("life", []string{"--config", filepath.Join(t.TempDir(), "missing.toml")}, &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
