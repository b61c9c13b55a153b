// Package control translates client messages into pointer operations.
package control

import "time"

// Tracker throttles streamed pointer moves and remembers held buttons so
// they can be released when a client drops. It is used under the
// dispatcher lock and carries no locking of its own.
type Tracker struct {
	throttle   time.Duration
	minDelta   int
	lastMoveAt time.Time
	lastX      int
	lastY      int
	hasLast    bool
	pressed    map[string]bool
	now        func() time.Time
}

// NewTracker returns a tracker with the given move throttle and minimum
// per-axis move delta. Zero values disable the matching check.
func NewTracker(throttle time.Duration, minDelta int) *Tracker {
	return &Tracker{
		throttle: throttle,
		minDelta: minDelta,
		pressed:  make(map[string]bool),
		now:      time.Now,
	}
}

// SetNowFunc overrides the clock used for throttling.
func (t *Tracker) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		t.now = fn
	}
}

// AllowMove reports whether a streamed absolute move should go through and
// records it when it does.
func (t *Tracker) AllowMove(x, y int) bool {
	now := t.now()
	if t.throttle > 0 && !t.lastMoveAt.IsZero() && now.Sub(t.lastMoveAt) < t.throttle {
		return false
	}
	if t.minDelta > 0 && t.hasLast {
		dx := x - t.lastX
		dy := y - t.lastY
		if abs(dx) < t.minDelta && abs(dy) < t.minDelta {
			return false
		}
	}
	t.lastMoveAt = now
	t.lastX = x
	t.lastY = y
	t.hasLast = true
	return true
}

// AllowStep reports whether a streamed relative move should go through.
// Absolute tracking is dropped afterwards since the resulting position is
// not known here.
func (t *Tracker) AllowStep(dx, dy int) bool {
	now := t.now()
	if t.throttle > 0 && !t.lastMoveAt.IsZero() && now.Sub(t.lastMoveAt) < t.throttle {
		return false
	}
	if t.minDelta > 0 && abs(dx) < t.minDelta && abs(dy) < t.minDelta {
		return false
	}
	t.lastMoveAt = now
	t.hasLast = false
	return true
}

// NotePress records a held button.
func (t *Tracker) NotePress(button string) {
	t.pressed[button] = true
}

// NoteRelease clears a held button.
func (t *Tracker) NoteRelease(button string) {
	delete(t.pressed, button)
}

// Pressed lists the buttons currently held.
func (t *Tracker) Pressed() []string {
	out := make([]string, 0, len(t.pressed))
	for b := range t.pressed {
		out = append(out, b)
	}
	return out
}

// Reset clears throttle state and held buttons.
func (t *Tracker) Reset() {
	t.lastMoveAt = time.Time{}
	t.hasLast = false
	t.pressed = make(map[string]bool)
}

// abs returns the absolute value of an integer.
func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
