package control

import (
	"testing"
	"time"
)

// TestAllowMove_ThrottlesByInterval verifies moves inside the throttle
// window are dropped.
func TestAllowMove_ThrottlesByInterval(t *testing.T) {
	tr := NewTracker(16*time.Millisecond, 0)
	now := time.Unix(0, 0)
	tr.SetNowFunc(func() time.Time { return now })

	if !tr.AllowMove(10, 10) {
		t.Fatalf("expected first move allowed")
	}
	now = now.Add(5 * time.Millisecond)
	if tr.AllowMove(50, 50) {
		t.Fatalf("expected move inside window dropped")
	}
	now = now.Add(16 * time.Millisecond)
	if !tr.AllowMove(50, 50) {
		t.Fatalf("expected move after window allowed")
	}
}

// TestAllowMove_DropsTinyDeltas verifies moves below the minimum delta are
// dropped.
func TestAllowMove_DropsTinyDeltas(t *testing.T) {
	tr := NewTracker(0, 2)
	if !tr.AllowMove(100, 100) {
		t.Fatalf("expected first move allowed")
	}
	if tr.AllowMove(101, 100) {
		t.Fatalf("expected one pixel move dropped")
	}
	if !tr.AllowMove(102, 100) {
		t.Fatalf("expected two pixel move allowed")
	}
}

// TestAllowStep_ChecksDeltaAndInterval verifies relative step gating.
func TestAllowStep_ChecksDeltaAndInterval(t *testing.T) {
	tr := NewTracker(16*time.Millisecond, 2)
	now := time.Unix(0, 0)
	tr.SetNowFunc(func() time.Time { return now })

	if tr.AllowStep(1, 1) {
		t.Fatalf("expected tiny step dropped")
	}
	if !tr.AllowStep(3, 0) {
		t.Fatalf("expected step allowed")
	}
	now = now.Add(5 * time.Millisecond)
	if tr.AllowStep(10, 10) {
		t.Fatalf("expected step inside window dropped")
	}
}

// TestPressedButtons_TrackAndReset verifies held button bookkeeping.
func TestPressedButtons_TrackAndReset(t *testing.T) {
	tr := NewTracker(0, 0)
	tr.NotePress("left")
	tr.NotePress("right")
	tr.NoteRelease("left")
	pressed := tr.Pressed()
	if len(pressed) != 1 || pressed[0] != "right" {
		t.Fatalf("expected right held, got %v", pressed)
	}
	tr.Reset()
	if len(tr.Pressed()) != 0 {
		t.Fatalf("expected no held buttons after reset")
	}
}
