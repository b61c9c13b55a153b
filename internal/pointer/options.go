// Package pointer provides location, movement, and button control for the X11 pointer.
package pointer

import (
	"fmt"
	"time"
)

// MovePolicy selects how relative moves behave when the target leaves the
// screen.
type MovePolicy string

const (
	// PolicyClamp confines the target to the screen edges.
	PolicyClamp MovePolicy = "clamp"
	// PolicyError rejects the move and leaves the pointer in place.
	PolicyError MovePolicy = "error"
)

// ParseMovePolicy maps a config string to a MovePolicy.
func ParseMovePolicy(s string) (MovePolicy, error) {
	switch MovePolicy(s) {
	case PolicyClamp:
		return PolicyClamp, nil
	case PolicyError:
		return PolicyError, nil
	}
	return "", fmt.Errorf("invalid move policy %q (want clamp or error)", s)
}

// Options tune a Controller. The zero value selects the clamp policy, the
// default button map, no click or drag pauses and no relative limits.
type Options struct {
	// Policy is the edge policy for relative moves. Empty means clamp.
	Policy MovePolicy
	// Buttons overrides the button map. Nil keeps DefaultButtons.
	Buttons ButtonMap
	// ClickDelay is the pause between press and release inside a click.
	// Zero or negative means no pause.
	ClickDelay time.Duration
	// DragDelay is the pause before and after the move inside a drag.
	// Zero or negative means no pause.
	DragDelay time.Duration
	// MaxDX and MaxDY bound a single relative move per axis. Zero disables
	// the check.
	MaxDX int
	MaxDY int
}
