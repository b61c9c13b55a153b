// Package monitor describes screen geometry for an X display.
package monitor

// Monitor describes one output and its bounds in root coordinates.
type Monitor struct {
	Index   int
	X       int
	Y       int
	W       int
	H       int
	Primary bool
}

// GetMonitorByIndex returns the monitor matching the 1-based index.
func GetMonitorByIndex(list []Monitor, idx int) (Monitor, bool) {
	for _, m := range list {
		if m.Index == idx {
			return m, true
		}
	}
	return Monitor{}, false
}

// Contains reports whether the point lies inside the monitor bounds.
func (m Monitor) Contains(x, y int) bool {
	return x >= m.X && x < m.X+m.W && y >= m.Y && y < m.Y+m.H
}

// Center returns the center point of the monitor.
func (m Monitor) Center() (int, int) {
	return m.X + m.W/2, m.Y + m.H/2
}
