package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-life/engine/geometry"
)

type preProcessor struct {
	// structRegistry maps include arguments to the embedded WGSL struct source.
	structRegistry map[AnnotationArg]string

	// includes lists the structs injected by the last Process call, in source order.
	includes []Annotation
}

// PreProcessor expands @oxy: annotations in WGSL source.
type PreProcessor interface {
	// Process replaces every //@oxy:include line with the registered struct source.
	// Each struct may be included once; repeated includes are dropped so a shader can
	// be assembled from fragments that share inputs.
	//
	// Parameters:
	//   - source: WGSL source containing annotations
	//
	// Returns:
	//   - string: the expanded source
	//   - error: if an annotation is malformed or names an unregistered struct
	Process(source string) (string, error)

	// Includes returns the include annotations honoured by the last Process call.
	//
	// Returns:
	//   - []Annotation: the annotations in source order
	Includes() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor that knows the geometry record structs.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]string{
			AnnotationArgVertex:   geometry.VertexSource,
			AnnotationArgInstance: geometry.InstanceSource,
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.includes = p.includes[:0]
	seen := make(map[AnnotationArg]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		arg := a.Args[0]
		src, ok := p.structRegistry[arg]
		if !ok {
			return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", a.Line, arg)
		}
		if seen[arg] {
			continue
		}
		seen[arg] = true
		out = append(out, strings.TrimRight(src, "\n"))
		p.includes = append(p.includes, *a)
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Includes() []Annotation {
	return p.includes
}
