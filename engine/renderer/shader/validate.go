package shader

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// compileEntryPoints parses and lowers WGSL with naga and collects the render entry points
// by stage. Compute entry points are ignored.
//
// Parameters:
//   - source: expanded WGSL source
//
// Returns:
//   - map[ShaderType][]string: entry point names per stage
//   - error: ErrCompile wrapping the front-end error
func compileEntryPoints(source string) (map[ShaderType][]string, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}

	entryPoints := make(map[ShaderType][]string)
	for _, ep := range module.EntryPoints {
		switch ep.Stage {
		case ir.StageVertex:
			entryPoints[ShaderTypeVertex] = append(entryPoints[ShaderTypeVertex], ep.Name)
		case ir.StageFragment:
			entryPoints[ShaderTypeFragment] = append(entryPoints[ShaderTypeFragment], ep.Name)
		}
	}
	return entryPoints, nil
}

// RequireEntryPoints checks that s exports the named vertex and fragment entry points.
//
// Parameters:
//   - s: the shader to check
//   - vertex: required vertex entry point
//   - fragment: required fragment entry point
//
// Returns:
//   - error: ErrMissingEntryPoint naming the first absent entry point, or nil
func RequireEntryPoints(s Shader, vertex, fragment string) error {
	if !s.HasEntryPoint(ShaderTypeVertex, vertex) {
		return fmt.Errorf("%w: %s has no %s entry point %q (found %v)", ErrMissingEntryPoint, s.Key(), ShaderTypeVertex, vertex, s.EntryPoints(ShaderTypeVertex))
	}
	if !s.HasEntryPoint(ShaderTypeFragment, fragment) {
		return fmt.Errorf("%w: %s has no %s entry point %q (found %v)", ErrMissingEntryPoint, s.Key(), ShaderTypeFragment, fragment, s.EntryPoints(ShaderTypeFragment))
	}
	return nil
}
