// Package pointer provides location, movement, and button control for the X11 pointer.
package pointer

import "fmt"

// Button names a pointer button symbolically. Names resolve to X button
// detail codes through a ButtonMap.
type Button string

// Buttons covered by the default map.
const (
	ButtonLeft        Button = "left"
	ButtonMiddle      Button = "middle"
	ButtonRight       Button = "right"
	ButtonScrollUp    Button = "scroll_up"
	ButtonScrollDown  Button = "scroll_down"
	ButtonScrollLeft  Button = "scroll_left"
	ButtonScrollRight Button = "scroll_right"
)

// ButtonMap resolves symbolic button names to X button detail codes.
type ButtonMap map[Button]uint8

// DefaultButtons returns the X core numbering: left 1, middle 2, right 3,
// scroll up 4, down 5, left 6, right 7.
func DefaultButtons() ButtonMap {
	return ButtonMap{
		ButtonLeft:        1,
		ButtonMiddle:      2,
		ButtonRight:       3,
		ButtonScrollUp:    4,
		ButtonScrollDown:  5,
		ButtonScrollLeft:  6,
		ButtonScrollRight: 7,
	}
}

// Detail resolves a button name to its detail code. Unknown names fail
// with ErrUnknownButton.
func (m ButtonMap) Detail(b Button) (uint8, error) {
	d, ok := m[b]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownButton, string(b))
	}
	return d, nil
}
