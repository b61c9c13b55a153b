// Package display owns the X server connection behind the pointer controller.
package display

import (
	"errors"
	"os"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgb/xtest"

	"github.com/halvex/xmouse/internal/pointer"
)

// ErrClosed reports an operation on a closed connection.
var ErrClosed = errors.New("display: connection closed")

// ErrNoXTest reports a server without the XTEST extension.
var ErrNoXTest = errors.New("display: XTEST extension unavailable")

// Conn is a single X display connection. It is not safe for concurrent
// use; callers serialize access to it, the daemon through the control
// dispatcher lock.
type Conn struct {
	x           *xgb.Conn
	name        string
	root        xproto.Window
	width       int
	height      int
	hasXTest    bool
	hasXinerama bool
	closed      bool
}

// Ensure Conn implements the device interface.
var _ pointer.Device = (*Conn)(nil)

// Open connects to the named X display, ":0" style. An empty name follows
// DISPLAY from the environment. Failures surface as
// pointer.ConnectionError.
func Open(name string) (*Conn, error) {
	if name == "" {
		name = os.Getenv("DISPLAY")
	}
	x, err := xgb.NewConnDisplay(name)
	if err != nil {
		return nil, &pointer.ConnectionError{Display: name, Err: err}
	}
	screen := xproto.Setup(x).DefaultScreen(x)
	c := &Conn{
		x:      x,
		name:   name,
		root:   screen.Root,
		width:  int(screen.WidthInPixels),
		height: int(screen.HeightInPixels),
	}
	if err := xtest.Init(x); err == nil {
		c.hasXTest = true
	}
	if err := xinerama.Init(x); err == nil {
		c.hasXinerama = true
	}
	return c, nil
}

// Name returns the display string the connection was opened with.
func (c *Conn) Name() string { return c.name }

// HasXTest reports whether the server offers synthetic input injection.
// Without it moves fall back to core warps and button events fail.
func (c *Conn) HasXTest() bool { return c.hasXTest }

// Geometry returns the root screen size in pixels.
func (c *Conn) Geometry() (int, int) { return c.width, c.height }

// Location queries the pointer position on the root window.
func (c *Conn) Location() (int, int, error) {
	if c.closed {
		return 0, 0, ErrClosed
	}
	reply, err := xproto.QueryPointer(c.x, c.root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), nil
}

// MoveAbs warps the pointer to absolute root coordinates. XTEST motion is
// used when available so the move is delivered like device input; servers
// without the extension fall back to a core WarpPointer.
func (c *Conn) MoveAbs(x, y int) error {
	if c.closed {
		return ErrClosed
	}
	if c.hasXTest {
		return xtest.FakeInputChecked(c.x, xproto.MotionNotify, 0, xproto.TimeCurrentTime, c.root, int16(x), int16(y), 0).Check()
	}
	return xproto.WarpPointerChecked(c.x, xproto.WindowNone, c.root, 0, 0, 0, 0, int16(x), int16(y)).Check()
}

// ButtonDown injects a press of the given X button detail.
func (c *Conn) ButtonDown(detail uint8) error {
	return c.fakeButton(xproto.ButtonPress, detail)
}

// ButtonUp injects a release of the given X button detail.
func (c *Conn) ButtonUp(detail uint8) error {
	return c.fakeButton(xproto.ButtonRelease, detail)
}

// fakeButton sends one XTEST button event.
func (c *Conn) fakeButton(kind byte, detail uint8) error {
	if c.closed {
		return ErrClosed
	}
	if !c.hasXTest {
		return ErrNoXTest
	}
	return xtest.FakeInputChecked(c.x, kind, detail, xproto.TimeCurrentTime, c.root, 0, 0, 0).Check()
}

// Close shuts the connection down. Later operations fail with ErrClosed.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.x.Close()
	return nil
}
