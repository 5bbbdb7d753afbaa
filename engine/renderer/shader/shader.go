package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies a programmable stage of a render pipeline.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

var (
	// ErrCompile wraps WGSL front-end failures.
	ErrCompile = errors.New("shader: WGSL does not compile")

	// ErrMissingEntryPoint is returned when a required entry point is not exported.
	ErrMissingEntryPoint = errors.New("shader: missing entry point")
)

// BasicSource draws geometry.Vertex data as-is, for the direct and indexed variants.
//
//go:embed assets/basic.wgsl
var BasicSource string

// InstancedSource places geometry.Vertex data with a per-instance model matrix.
//
//go:embed assets/instanced.wgsl
var InstancedSource string

type shader struct {
	key         string
	source      string
	entryPoints map[ShaderType][]string
	inputs      []Input
	module      *wgpu.ShaderModuleDescriptor
	pp          PreProcessor
}

// Shader is a pre-processed, front-end checked WGSL module holding both stages of a render pipeline.
type Shader interface {
	// Key returns the shader's label.
	//
	// Returns:
	//   - string: the key
	Key() string

	// Source returns the WGSL source after pre-processing.
	//
	// Returns:
	//   - string: the expanded WGSL source
	Source() string

	// EntryPoints returns the exported entry points of a stage in declaration order.
	//
	// Parameters:
	//   - stage: the stage to look up
	//
	// Returns:
	//   - []string: entry point names, empty if the stage has none
	EntryPoints(stage ShaderType) []string

	// HasEntryPoint reports whether name is exported for the given stage.
	//
	// Parameters:
	//   - stage: the stage to look up
	//   - name: the function name
	//
	// Returns:
	//   - bool: true if the entry point exists
	HasEntryPoint(stage ShaderType, name string) bool

	// Inputs returns the vertex-stage inputs read from vertex buffers, ordered by location.
	//
	// Returns:
	//   - []Input: the inputs
	Inputs() []Input

	// Includes returns the record structs injected by the pre-processor.
	//
	// Returns:
	//   - []Annotation: include annotations in source order
	Includes() []Annotation

	// Module returns the descriptor used to create the GPU shader module.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the WGSL module descriptor
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader pre-processes source, runs it through the WGSL front end and extracts
// its entry points and vertex inputs.
//
// Parameters:
//   - key: label for the shader and its GPU module
//   - source: WGSL source, possibly containing @oxy: annotations
//
// Returns:
//   - Shader: the parsed shader
//   - error: if pre-processing fails or the WGSL does not compile (ErrCompile)
func NewShader(key, source string) (Shader, error) {
	s := &shader{
		key: key,
		pp:  NewPreProcessor(),
	}
	expanded, err := s.pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: pre-process: %w", key, err)
	}
	s.source = expanded

	s.entryPoints, err = compileEntryPoints(expanded)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	s.inputs = parseVertexInputs(expanded)
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: expanded,
		},
	}
	return s, nil
}

// NewShaderFromFile reads WGSL source from path and calls NewShader.
//
// Parameters:
//   - key: label for the shader
//   - path: path of the .wgsl file
//
// Returns:
//   - Shader: the parsed shader
//   - error: if the file cannot be read or NewShader fails
func NewShaderFromFile(key, path string) (Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return NewShader(key, string(data))
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoints(stage ShaderType) []string {
	return slices.Clone(s.entryPoints[stage])
}

func (s *shader) HasEntryPoint(stage ShaderType, name string) bool {
	return slices.Contains(s.entryPoints[stage], name)
}

func (s *shader) Inputs() []Input {
	return slices.Clone(s.inputs)
}

func (s *shader) Includes() []Annotation {
	return slices.Clone(s.pp.Includes())
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
