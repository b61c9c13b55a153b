// Package pointer provides location, movement, and button control for the X11 pointer.
package pointer

// Position is a pointer location in root-window coordinates.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Device is the display handle a Controller drives. Implementations hold a
// single connection and are not safe for concurrent use; callers serialize
// access.
type Device interface {
	// Location returns the pointer position in root coordinates.
	Location() (x, y int, err error)
	// MoveAbs warps the pointer to absolute root coordinates.
	MoveAbs(x, y int) error
	// ButtonDown injects a press of the given button detail code.
	ButtonDown(detail uint8) error
	// ButtonUp injects a release of the given button detail code.
	ButtonUp(detail uint8) error
	// Geometry returns the root screen size in pixels.
	Geometry() (width, height int)
	// Close releases the display handle.
	Close() error
}
