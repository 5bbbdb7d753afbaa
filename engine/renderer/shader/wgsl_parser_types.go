package shader

import "github.com/cogentcore/webgpu/wgpu"

// Input is one vertex-stage input fed from a bound vertex or instance buffer.
type Input struct {
	// Struct is the WGSL struct declaring the input.
	Struct string

	// Name is the field name inside Struct.
	Name string

	// Location is the @location slot.
	Location uint32

	// Format is the vertex format implied by the WGSL field type.
	Format wgpu.VertexFormat
}

// parsedField is a struct member found while scanning WGSL source.
type parsedField struct {
	name      string
	typeName  string
	location  int // -1 without @location
	isBuiltin bool
}

// parsedStruct is a struct declaration found while scanning WGSL source.
type parsedStruct struct {
	name   string
	fields []parsedField
}
