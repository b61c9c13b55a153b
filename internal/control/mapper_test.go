package control

import (
	"testing"

	"github.com/halvex/xmouse/internal/monitor"
)

// TestNormToAbs_TopLeft verifies the top-left mapping.
func TestNormToAbs_TopLeft(t *testing.T) {
	m := monitor.Monitor{X: 100, Y: 200, W: 300, H: 400}
	x, y := NormToAbs(0, 0, m)
	if x != 100 || y != 200 {
		t.Fatalf("expected (100,200), got (%d,%d)", x, y)
	}
}

// TestNormToAbs_Center verifies center mapping rounds to the nearest pixel.
func TestNormToAbs_Center(t *testing.T) {
	m := monitor.Monitor{X: 100, Y: 200, W: 300, H: 400}
	x, y := NormToAbs(0.5, 0.5, m)
	if x != 250 || y != 400 {
		t.Fatalf("expected (250,400), got (%d,%d)", x, y)
	}
}

// TestNormToAbs_BottomRight verifies 1.0 maps to the last pixel, not one
// past it.
func TestNormToAbs_BottomRight(t *testing.T) {
	m := monitor.Monitor{X: 100, Y: 200, W: 300, H: 400}
	x, y := NormToAbs(1, 1, m)
	if x != 399 || y != 599 {
		t.Fatalf("expected (399,599), got (%d,%d)", x, y)
	}
}

// TestNormToAbs_ClampOutOfRange verifies out-of-range values are clamped.
func TestNormToAbs_ClampOutOfRange(t *testing.T) {
	m := monitor.Monitor{X: 100, Y: 200, W: 300, H: 400}
	x, y := NormToAbs(-1, 2, m)
	if x != 100 || y != 599 {
		t.Fatalf("expected clamped (100,599), got (%d,%d)", x, y)
	}
}

// TestNormToPixels_DegenerateSpan verifies tiny spans collapse to zero.
func TestNormToPixels_DegenerateSpan(t *testing.T) {
	if got := normToPixels(1, 1); got != 0 {
		t.Fatalf("expected 0 for span 1, got %d", got)
	}
	if got := normToPixels(0.7, 0); got != 0 {
		t.Fatalf("expected 0 for span 0, got %d", got)
	}
}
