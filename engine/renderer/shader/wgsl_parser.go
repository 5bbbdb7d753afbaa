package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// wgslVertexFormats maps WGSL field types usable as vertex inputs to their vertex format.
var wgslVertexFormats = map[string]wgpu.VertexFormat{
	"f32":       wgpu.VertexFormatFloat32,
	"vec2f":     wgpu.VertexFormatFloat32x2,
	"vec2<f32>": wgpu.VertexFormatFloat32x2,
	"vec3f":     wgpu.VertexFormatFloat32x3,
	"vec3<f32>": wgpu.VertexFormatFloat32x3,
	"vec4f":     wgpu.VertexFormatFloat32x4,
	"vec4<f32>": wgpu.VertexFormatFloat32x4,
	"u32":       wgpu.VertexFormatUint32,
	"vec2u":     wgpu.VertexFormatUint32x2,
	"vec2<u32>": wgpu.VertexFormatUint32x2,
	"vec3u":     wgpu.VertexFormatUint32x3,
	"vec3<u32>": wgpu.VertexFormatUint32x3,
	"vec4u":     wgpu.VertexFormatUint32x4,
	"vec4<u32>": wgpu.VertexFormatUint32x4,
	"i32":       wgpu.VertexFormatSint32,
	"vec2i":     wgpu.VertexFormatSint32x2,
	"vec2<i32>": wgpu.VertexFormatSint32x2,
	"vec3i":     wgpu.VertexFormatSint32x3,
	"vec3<i32>": wgpu.VertexFormatSint32x3,
	"vec4i":     wgpu.VertexFormatSint32x4,
	"vec4<i32>": wgpu.VertexFormatSint32x4,
}

var (
	// structBlockRegex captures the name and body of a struct declaration.
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// locationRegex captures the slot of @location(N).
	locationRegex = regexp.MustCompile(`@location\(\s*(\d+)\s*\)`)

	// builtinRegex matches any @builtin(...) attribute.
	builtinRegex = regexp.MustCompile(`@builtin\(\s*\w+\s*\)`)

	// fieldRegex captures the name and type of a struct member after its attributes.
	fieldRegex = regexp.MustCompile(`^(?:@\w+\([^)]*\)\s*)*(\w+)\s*:\s*(.+)$`)
)

// parseVertexInputs returns every @location field of the pure vertex-input structs in source,
// sorted by location. A struct is a vertex input when it has @location fields and no @builtin
// field, which separates it from stage outputs such as VertexOutput. Fields with types that
// cannot be vertex attributes are skipped.
//
// Parameters:
//   - source: WGSL source, annotations already expanded
//
// Returns:
//   - []Input: the inputs, ordered by location
func parseVertexInputs(source string) []Input {
	var inputs []Input
	for _, ps := range parseStructBlocks(stripComments(source)) {
		if !isVertexInputStruct(ps) {
			continue
		}
		for _, f := range ps.fields {
			format, ok := wgslVertexFormats[f.typeName]
			if !ok || f.location < 0 {
				continue
			}
			inputs = append(inputs, Input{
				Struct:   ps.name,
				Name:     f.name,
				Location: uint32(f.location),
				Format:   format,
			})
		}
	}
	sort.Slice(inputs, func(i, j int) bool {
		return inputs[i].Location < inputs[j].Location
	})
	return inputs
}

// parseStructBlocks finds every struct declaration in comment-free source.
func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))
	for _, m := range matches {
		structs = append(structs, parsedStruct{
			name:   m[1],
			fields: parseStructFields(m[2]),
		})
	}
	return structs
}

// parseStructFields splits a struct body into members and reads their attributes.
func parseStructFields(body string) []parsedField {
	var fields []parsedField
	for _, member := range splitAtTopLevelCommas(body) {
		member = strings.TrimSpace(member)
		if member == "" {
			continue
		}
		fm := fieldRegex.FindStringSubmatch(member)
		if fm == nil {
			continue
		}
		f := parsedField{
			name:      fm[1],
			typeName:  strings.Join(strings.Fields(fm[2]), ""),
			location:  -1,
			isBuiltin: builtinRegex.MatchString(member),
		}
		if lm := locationRegex.FindStringSubmatch(member); lm != nil {
			if loc, err := strconv.Atoi(lm[1]); err == nil {
				f.location = loc
			}
		}
		fields = append(fields, f)
	}
	return fields
}

// isVertexInputStruct reports whether ps has @location fields and no @builtin field.
func isVertexInputStruct(ps parsedStruct) bool {
	located := false
	for _, f := range ps.fields {
		if f.isBuiltin {
			return false
		}
		located = located || f.location >= 0
	}
	return located
}

// stripComments removes line comments and (nested) block comments, keeping newlines so
// line numbers stay meaningful.
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		c := source[i]
		var next byte
		if i+1 < len(source) {
			next = source[i+1]
		}
		switch {
		case c == '/' && next == '*':
			depth++
			i++
		case c == '*' && next == '/' && depth > 0:
			depth--
			i++
		case depth > 0:
			if c == '\n' {
				sb.WriteByte(c)
			}
		case c == '/' && next == '/':
			for i < len(source) && source[i] != '\n' {
				i++
			}
			if i < len(source) {
				sb.WriteByte('\n')
			}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// splitAtTopLevelCommas splits s at commas outside angle brackets, so array<T, N> stays whole.
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
