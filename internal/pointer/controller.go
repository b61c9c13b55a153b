// Package pointer provides location, movement, and button control for the X11 pointer.
package pointer

import (
	"errors"
	"fmt"
	"time"
)

// Controller drives a Device with bounds checking, symbolic button names
// and tunable event delays. It is not safe for concurrent use; callers
// that share a Controller serialize access around it.
type Controller struct {
	dev        Device
	buttons    ButtonMap
	policy     MovePolicy
	clickDelay time.Duration
	dragDelay  time.Duration
	maxDX      int
	maxDY      int
	sleep      func(time.Duration)
}

// New wraps an open device in a Controller.
func New(dev Device, opts Options) (*Controller, error) {
	if dev == nil {
		return nil, errors.New("pointer: nil device")
	}
	policy := opts.Policy
	if policy == "" {
		policy = PolicyClamp
	}
	if policy != PolicyClamp && policy != PolicyError {
		return nil, fmt.Errorf("pointer: invalid move policy %q", string(policy))
	}
	buttons := opts.Buttons
	if buttons == nil {
		buttons = DefaultButtons()
	}
	for name, detail := range buttons {
		if detail == 0 {
			return nil, fmt.Errorf("pointer: button %q maps to detail 0", string(name))
		}
	}
	if opts.MaxDX < 0 || opts.MaxDY < 0 {
		return nil, errors.New("pointer: negative relative move limit")
	}
	return &Controller{
		dev:        dev,
		buttons:    buttons,
		policy:     policy,
		clickDelay: opts.ClickDelay,
		dragDelay:  opts.DragDelay,
		maxDX:      opts.MaxDX,
		maxDY:      opts.MaxDY,
		sleep:      time.Sleep,
	}, nil
}

// SetSleepFunc replaces the pause clock. Tests use it to run without
// waiting.
func (c *Controller) SetSleepFunc(fn func(time.Duration)) {
	if fn != nil {
		c.sleep = fn
	}
}

// Bounds returns the screen size moves are checked against.
func (c *Controller) Bounds() (width, height int) {
	return c.dev.Geometry()
}

// Policy returns the active edge policy for relative moves.
func (c *Controller) Policy() MovePolicy { return c.policy }

// Location queries the current pointer position from the display server.
func (c *Controller) Location() (Position, error) {
	x, y, err := c.dev.Location()
	if err != nil {
		return Position{}, &QueryError{Op: "query pointer", Err: err}
	}
	return Position{X: x, Y: y}, nil
}

// MoveAbsolute warps the pointer to absolute root coordinates and returns
// the position queried back after the warp. Targets outside the screen
// fail with OutOfBoundsError and leave the pointer in place.
func (c *Controller) MoveAbsolute(x, y int) (Position, error) {
	w, h := c.dev.Geometry()
	if x < 0 || y < 0 || x >= w || y >= h {
		return Position{}, &OutOfBoundsError{X: x, Y: y, Width: w, Height: h}
	}
	if err := c.dev.MoveAbs(x, y); err != nil {
		return Position{}, &ConnectionError{Err: err}
	}
	return c.Location()
}

// MoveRelative shifts the pointer by a delta from its current position.
// Edge handling follows the configured policy: clamp confines the target
// to the screen, error rejects it without moving.
func (c *Controller) MoveRelative(dx, dy int) (Position, error) {
	if (c.maxDX > 0 && abs(dx) > c.maxDX) || (c.maxDY > 0 && abs(dy) > c.maxDY) {
		return Position{}, fmt.Errorf("%w: delta (%d,%d), limit (%d,%d)", ErrDeltaLimit, dx, dy, c.maxDX, c.maxDY)
	}
	cur, err := c.Location()
	if err != nil {
		return Position{}, err
	}
	x, y := cur.X+dx, cur.Y+dy
	if c.policy == PolicyClamp {
		w, h := c.dev.Geometry()
		x, y = clampToScreen(x, y, w, h)
	}
	return c.MoveAbsolute(x, y)
}

// Press pushes and holds a button.
func (c *Controller) Press(b Button) error {
	detail, err := c.buttons.Detail(b)
	if err != nil {
		return err
	}
	return c.pressDetail(detail)
}

// Release lets go of a held button.
func (c *Controller) Release(b Button) error {
	detail, err := c.buttons.Detail(b)
	if err != nil {
		return err
	}
	return c.releaseDetail(detail)
}

// Click presses and releases a button the given number of times with the
// configured pause between press and release. Counts below one click once.
func (c *Controller) Click(b Button, times int) error {
	detail, err := c.buttons.Detail(b)
	if err != nil {
		return err
	}
	if times < 1 {
		times = 1
	}
	for i := 0; i < times; i++ {
		if err := c.pressDetail(detail); err != nil {
			return err
		}
		if c.clickDelay > 0 {
			c.sleep(c.clickDelay)
		}
		if err := c.releaseDetail(detail); err != nil {
			return err
		}
	}
	return nil
}

// DragAbsolute holds a button, moves to absolute coordinates and releases.
func (c *Controller) DragAbsolute(x, y int, b Button) (Position, error) {
	return c.drag(b, func() (Position, error) { return c.MoveAbsolute(x, y) })
}

// DragRelative holds a button, moves by a delta and releases.
func (c *Controller) DragRelative(dx, dy int, b Button) (Position, error) {
	return c.drag(b, func() (Position, error) { return c.MoveRelative(dx, dy) })
}

// drag runs one press, move, release cycle with the configured pauses. The
// button is released even when the move fails.
func (c *Controller) drag(b Button, move func() (Position, error)) (Position, error) {
	detail, err := c.buttons.Detail(b)
	if err != nil {
		return Position{}, err
	}
	if err := c.pressDetail(detail); err != nil {
		return Position{}, err
	}
	if c.dragDelay > 0 {
		c.sleep(c.dragDelay)
	}
	pos, moveErr := move()
	if c.dragDelay > 0 {
		c.sleep(c.dragDelay)
	}
	releaseErr := c.releaseDetail(detail)
	if moveErr != nil {
		return Position{}, moveErr
	}
	if releaseErr != nil {
		return Position{}, releaseErr
	}
	return pos, nil
}

// Scroll turns wheel deltas into clicks of the scroll buttons. Positive dy
// scrolls up, negative dy down, positive dx left, negative dx right.
func (c *Controller) Scroll(dx, dy int) error {
	if dy > 0 {
		if err := c.Click(ButtonScrollUp, dy); err != nil {
			return err
		}
	} else if dy < 0 {
		if err := c.Click(ButtonScrollDown, -dy); err != nil {
			return err
		}
	}
	if dx > 0 {
		if err := c.Click(ButtonScrollLeft, dx); err != nil {
			return err
		}
	} else if dx < 0 {
		if err := c.Click(ButtonScrollRight, -dx); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying device.
func (c *Controller) Close() error {
	return c.dev.Close()
}

// pressDetail injects a press by detail code.
func (c *Controller) pressDetail(detail uint8) error {
	if err := c.dev.ButtonDown(detail); err != nil {
		return &ConnectionError{Err: err}
	}
	return nil
}

// releaseDetail injects a release by detail code.
func (c *Controller) releaseDetail(detail uint8) error {
	if err := c.dev.ButtonUp(detail); err != nil {
		return &ConnectionError{Err: err}
	}
	return nil
}

// clampToScreen confines a point to the screen rectangle.
func clampToScreen(x, y, w, h int) (int, int) {
	if x < 0 {
		x = 0
	}
	if x > w-1 {
		x = w - 1
	}
	if y < 0 {
		y = 0
	}
	if y > h-1 {
		y = h - 1
	}
	return x, y
}

// abs returns the absolute value of an int.
func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
