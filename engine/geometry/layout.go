// Package geometry describes the CPU-side records uploaded to the GPU and how their bytes map onto
// shader input slots. Nothing here touches a device; layouts are converted to wgpu descriptors only
// when a pipeline is built.
package geometry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrEmptyLayout is returned when a layout is built without fields.
	ErrEmptyLayout = errors.New("geometry: layout has no fields")

	// ErrUnknownFormat is returned for vertex formats without a known byte size.
	ErrUnknownFormat = errors.New("geometry: unknown vertex format")

	// ErrSlotCollision is returned when two attributes claim the same shader input slot.
	ErrSlotCollision = errors.New("geometry: shader slot used more than once")
)

// formatSizes maps the vertex formats used by the engine to their size in bytes.
var formatSizes = map[wgpu.VertexFormat]uint64{
	wgpu.VertexFormatFloat32:   4,
	wgpu.VertexFormatFloat32x2: 8,
	wgpu.VertexFormatFloat32x3: 12,
	wgpu.VertexFormatFloat32x4: 16,
	wgpu.VertexFormatUint32:    4,
	wgpu.VertexFormatUint32x2:  8,
	wgpu.VertexFormatUint32x3:  12,
	wgpu.VertexFormatUint32x4:  16,
	wgpu.VertexFormatSint32:    4,
	wgpu.VertexFormatSint32x2:  8,
	wgpu.VertexFormatSint32x3:  12,
	wgpu.VertexFormatSint32x4:  16,
	wgpu.VertexFormatUnorm8x4:  4,
	wgpu.VertexFormatFloat16x2: 4,
	wgpu.VertexFormatFloat16x4: 8,
}

// FormatSize returns the byte size of a vertex format.
//
// Parameters:
//   - f: the vertex format
//
// Returns:
//   - uint64: size in bytes
//   - bool: false if the format is not supported
func FormatSize(f wgpu.VertexFormat) (uint64, bool) {
	size, ok := formatSizes[f]
	return size, ok
}

// Field is one member of a GPU record, listed in declaration order.
type Field struct {
	Slot   uint32
	Format wgpu.VertexFormat
}

// Attribute places a field inside a record: the shader slot it feeds, its byte offset and format.
type Attribute struct {
	Slot   uint32
	Offset uint64
	Format wgpu.VertexFormat
}

// Layout describes one bound buffer: the stride of a record, whether it advances per vertex
// or per instance, and the attributes read from it.
type Layout struct {
	Stride     uint64
	StepMode   wgpu.VertexStepMode
	Attributes []Attribute
}

// NewLayout derives cumulative offsets and the stride from an ordered field list.
// Fields are packed without padding, matching Go structs made only of float32/uint32 arrays.
//
// Parameters:
//   - step: wgpu.VertexStepModeVertex or wgpu.VertexStepModeInstance
//   - fields: the record's fields in memory order
//
// Returns:
//   - Layout: the derived layout
//   - error: ErrEmptyLayout, ErrUnknownFormat or ErrSlotCollision
func NewLayout(step wgpu.VertexStepMode, fields ...Field) (Layout, error) {
	if len(fields) == 0 {
		return Layout{}, ErrEmptyLayout
	}
	l := Layout{
		StepMode:   step,
		Attributes: make([]Attribute, 0, len(fields)),
	}
	seen := make(map[uint32]struct{}, len(fields))
	for _, f := range fields {
		size, ok := FormatSize(f.Format)
		if !ok {
			return Layout{}, fmt.Errorf("%w: %v at slot %d", ErrUnknownFormat, f.Format, f.Slot)
		}
		if _, dup := seen[f.Slot]; dup {
			return Layout{}, fmt.Errorf("%w: slot %d", ErrSlotCollision, f.Slot)
		}
		seen[f.Slot] = struct{}{}
		l.Attributes = append(l.Attributes, Attribute{
			Slot:   f.Slot,
			Offset: l.Stride,
			Format: f.Format,
		})
		l.Stride += size
	}
	return l, nil
}

// mustLayout is NewLayout for the package's fixed record layouts.
func mustLayout(step wgpu.VertexStepMode, fields ...Field) Layout {
	l, err := NewLayout(step, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

// Slots returns the shader slots read from this layout in attribute order.
//
// Returns:
//   - []uint32: the slots
func (l Layout) Slots() []uint32 {
	slots := make([]uint32, len(l.Attributes))
	for i, a := range l.Attributes {
		slots[i] = a.Slot
	}
	return slots
}

// Clone returns a deep copy so callers cannot mutate shared layouts.
func (l Layout) Clone() Layout {
	l.Attributes = slices.Clone(l.Attributes)
	return l
}

// WGPU converts the layout into the descriptor consumed by wgpu.VertexState.
//
// Returns:
//   - wgpu.VertexBufferLayout: the GPU-facing layout
func (l Layout) WGPU() wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, len(l.Attributes))
	for i, a := range l.Attributes {
		attrs[i] = wgpu.VertexAttribute{
			Format:         a.Format,
			Offset:         a.Offset,
			ShaderLocation: a.Slot,
		}
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: l.Stride,
		StepMode:    l.StepMode,
		Attributes:  attrs,
	}
}

// ValidateLayouts checks that no shader slot is claimed by more than one attribute across
// all layouts bound to a pipeline.
//
// Parameters:
//   - layouts: every layout bound together
//
// Returns:
//   - error: ErrSlotCollision naming the first shared slot, or nil
func ValidateLayouts(layouts ...Layout) error {
	owner := make(map[uint32]int)
	for i, l := range layouts {
		for _, a := range l.Attributes {
			if prev, ok := owner[a.Slot]; ok {
				return fmt.Errorf("%w: slot %d in layouts %d and %d", ErrSlotCollision, a.Slot, prev, i)
			}
			owner[a.Slot] = i
		}
	}
	return nil
}
