package engine

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-life/engine/config"
	"github.com/Carmen-Shannon/oxy-life/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneFor(t *testing.T) {
	tests := []struct {
		variant   string
		indexed   bool
		instances int
		layouts   int
	}{
		{config.VariantTriangle, false, 0, 1},
		{config.VariantIndexed, true, 0, 1},
		{config.VariantInstanced, true, 400, 2},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			cfg := config.Default()
			cfg.Variant = tt.variant

			sc, err := SceneFor(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.variant, sc.Pipeline.Key())
			assert.Equal(t, tt.indexed, sc.Mesh.Indexed())
			assert.Len(t, sc.Instances, tt.instances)
			assert.Len(t, sc.Pipeline.Layouts(), tt.layouts)
			assert.NoError(t, sc.Mesh.Validate())
		})
	}
}

func TestSceneForGridSize(t *testing.T) {
	cfg := config.Default()
	cfg.GridSize = 3
	sc, err := SceneFor(cfg)
	require.NoError(t, err)
	assert.Len(t, sc.Instances, 9)
}

func TestSceneForUnknownVariant(t *testing.T) {
	cfg := config.Default()
	cfg.Variant = "cube"
	_, err := SceneFor(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestOptionMapping(t *testing.T) {
	assert.Equal(t, renderer.PresentModeVSync, presentMode(config.PresentVSync))
	assert.Equal(t, renderer.PresentModeUncapped, presentMode(config.PresentUncapped))
	assert.Equal(t, wgpu.PowerPreferenceHighPerformance, powerPreference(config.PowerHighPerformance))
	assert.Equal(t, wgpu.PowerPreferenceLowPower, powerPreference(config.PowerLowPower))
	assert.Len(t, SessionOptions(config.Default()), 5)
}
