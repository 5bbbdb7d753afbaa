package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-life/common"
	"github.com/Carmen-Shannon/oxy-life/engine/geometry"
	"github.com/Carmen-Shannon/oxy-life/engine/renderer/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, d *fakeDriver) (*renderer, *fakeConfigurer) {
	t.Helper()
	s, fc := newTestSession(t, common.Size{Width: 500, Height: 500})
	buffers, err := newGeometryBuffers(&fakeUploader{}, geometry.Pentagon(), nil)
	require.NoError(t, err)
	return &renderer{
		session:  s,
		pipeline: pipeline.NewPipeline("test"),
		buffers:  buffers,
		loop:     NewFrameLoop(d),
	}, fc
}

func TestRendererDelegates(t *testing.T) {
	d := &fakeDriver{}
	r, fc := newTestRenderer(t, d)

	assert.Equal(t, "test", r.Pipeline().Key())
	assert.Equal(t, DrawIndexed, r.Plan().Kind)

	assert.True(t, r.Resize(common.Size{Width: 640, Height: 480}))
	assert.Equal(t, common.Size{Width: 480, Height: 480}, r.Size())
	assert.Len(t, fc.applied, 1)

	assert.False(t, r.Resize(common.Size{}))
	assert.Len(t, fc.applied, 1)

	assert.Equal(t, FramePresented, r.Frame())
	assert.NoError(t, r.Err())
}

func TestRendererFatal(t *testing.T) {
	r, _ := newTestRenderer(t, &fakeDriver{acquireErrs: []error{ErrOutOfMemory}})

	assert.Equal(t, FrameFatal, r.Frame())
	assert.ErrorIs(t, r.Err(), ErrOutOfMemory)
	assert.NotPanics(t, r.Release)
}
