package testutil

import "github.com/halvex/xmouse/internal/pointer"

// Call records a single device operation.
type Call struct {
	Name   string
	X      int
	Y      int
	Detail uint8
}

// FakeDevice implements pointer.Device against an in-memory screen and
// records mutating calls for tests. Location reflects earlier moves the way
// a live display would.
type FakeDevice struct {
	Calls  []Call
	X      int
	Y      int
	W      int
	H      int
	Closed bool

	// LocationErr, MoveErr and ButtonErr force the matching operations to
	// fail when set.
	LocationErr error
	MoveErr     error
	ButtonErr   error
}

// Ensure FakeDevice implements the interface.
var _ pointer.Device = (*FakeDevice)(nil)

// NewFakeDevice returns a fake with the given screen size and the pointer
// at the origin.
func NewFakeDevice(w, h int) *FakeDevice {
	return &FakeDevice{W: w, H: h}
}

// Location returns the tracked pointer position.
func (f *FakeDevice) Location() (int, int, error) {
	if f.LocationErr != nil {
		return 0, 0, f.LocationErr
	}
	return f.X, f.Y, nil
}

// MoveAbs records the move and tracks the new position.
func (f *FakeDevice) MoveAbs(x, y int) error {
	f.Calls = append(f.Calls, Call{Name: "MoveAbs", X: x, Y: y})
	if f.MoveErr != nil {
		return f.MoveErr
	}
	f.X, f.Y = x, y
	return nil
}

// ButtonDown records a button press.
func (f *FakeDevice) ButtonDown(detail uint8) error {
	f.Calls = append(f.Calls, Call{Name: "ButtonDown", Detail: detail})
	return f.ButtonErr
}

// ButtonUp records a button release.
func (f *FakeDevice) ButtonUp(detail uint8) error {
	f.Calls = append(f.Calls, Call{Name: "ButtonUp", Detail: detail})
	return f.ButtonErr
}

// Geometry returns the fake screen size.
func (f *FakeDevice) Geometry() (int, int) {
	return f.W, f.H
}

// Close marks the device closed.
func (f *FakeDevice) Close() error {
	f.Closed = true
	return nil
}
