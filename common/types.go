// Package common contains small value types and helpers shared by the engine packages. They are plain structs
// and functions, not interface-wrapped components.
package common

import "fmt"

// Size is a width and height pair measured in physical pixels.
type Size struct {
	Width  int
	Height int
}

// Positive reports whether both dimensions are greater than zero.
//
// Returns:
//   - bool: true if the size can back a surface configuration
func (s Size) Positive() bool {
	return s.Width > 0 && s.Height > 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
