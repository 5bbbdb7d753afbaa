package common

// Key codes reported by the window layer. The values are GLFW's, which use ASCII
// for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeySpace  = 32  // Spacebar (ASCII)
	KeyEscape = 256 // Escape (GLFW)
	KeyEnter  = 257 // Enter (GLFW)
	KeyF11    = 300 // F11 (GLFW)
)
