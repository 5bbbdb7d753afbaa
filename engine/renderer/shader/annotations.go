// annotations.go defines the @oxy: annotation syntax understood by the WGSL pre-processor.
// An annotation is a single-line WGSL comment of the form
//
//	//@oxy:<type> <arg>...
//
// Lines that are not annotations pass through the pre-processor untouched.
package shader

import (
	"fmt"
	"strings"
)

// annotationPrefix marks an annotation inside a "//" comment.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation.
type AnnotationType string

const (
	// AnnotationTypeInclude injects the WGSL source of a registered record struct at the
	// annotation site, so shader inputs always match the Go record layouts.
	//
	// Syntax: //@oxy:include <struct_type>
	//
	// Example: //@oxy:include instance
	AnnotationTypeInclude AnnotationType = "include"
)

// AnnotationArg is an argument of an annotation.
type AnnotationArg string

const (
	// AnnotationArgVertex names the VertexInput struct of geometry.Vertex.
	AnnotationArgVertex AnnotationArg = "vertex"

	// AnnotationArgInstance names the InstanceInput struct of geometry.InstanceRaw.
	AnnotationArgInstance AnnotationArg = "instance"
)

// Annotation is one parsed @oxy: line.
type Annotation struct {
	Type AnnotationType
	Args []AnnotationArg

	// Line is the 1-based source line, used in error messages.
	Line int
}

// parseAnnotation parses line as an annotation. It returns nil, nil for ordinary lines
// and an error for malformed annotations.
//
// Parameters:
//   - line: one line of WGSL source
//   - lineNum: its 1-based line number
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not one
//   - error: if the annotation type is unknown or has the wrong number of arguments
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "//")
	if !ok {
		return nil, nil
	}
	rest, ok = strings.CutPrefix(strings.TrimSpace(rest), annotationPrefix)
	if !ok {
		return nil, nil
	}
	parts := strings.Fields(rest)
	if len(parts) == 0 {
		return nil, fmt.Errorf("line %d: empty annotation", lineNum)
	}

	a := &Annotation{Type: AnnotationType(parts[0]), Line: lineNum}
	for _, p := range parts[1:] {
		a.Args = append(a.Args, AnnotationArg(p))
	}

	switch a.Type {
	case AnnotationTypeInclude:
		if len(a.Args) != 1 {
			return nil, fmt.Errorf("line %d: @oxy:include takes exactly one argument, got %d", lineNum, len(a.Args))
		}
	default:
		return nil, fmt.Errorf("line %d: unknown annotation type %q", lineNum, a.Type)
	}
	return a, nil
}
