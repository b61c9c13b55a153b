// Package pointer provides location, movement, and button control for the X11 pointer.
package pointer

import (
	"errors"
	"fmt"
)

// ErrUnknownButton reports a button name with no entry in the button map.
var ErrUnknownButton = errors.New("pointer: unknown button")

// ErrDeltaLimit reports a relative move larger than the configured per-move
// limit.
var ErrDeltaLimit = errors.New("pointer: relative move over limit")

// ConnectionError reports a display that could not be opened or a display
// handle that stopped working mid-operation.
type ConnectionError struct {
	Display string
	Err     error
}

// Error formats the failing display and the underlying cause.
func (e *ConnectionError) Error() string {
	if e.Display == "" {
		return fmt.Sprintf("pointer: display connection: %v", e.Err)
	}
	return fmt.Sprintf("pointer: display %q: %v", e.Display, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError reports a pointer query that failed on an open connection.
type QueryError struct {
	Op  string
	Err error
}

// Error formats the failing query and the underlying cause.
func (e *QueryError) Error() string {
	return fmt.Sprintf("pointer: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *QueryError) Unwrap() error { return e.Err }

// OutOfBoundsError reports a move target outside the screen. The pointer
// does not move when a call fails with it.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

// Error formats the rejected target and the screen bounds.
func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("pointer: target (%d,%d) outside screen %dx%d", e.X, e.Y, e.Width, e.Height)
}
