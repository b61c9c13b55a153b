package control

import (
	"strings"
	"testing"
	"time"

	"github.com/halvex/xmouse/internal/monitor"
	"github.com/halvex/xmouse/internal/pointer"
	"github.com/halvex/xmouse/internal/session"
	"github.com/halvex/xmouse/internal/testutil"
)

// twoMonitors lists a 1920x1080 screen split into two side by side
// monitors.
func twoMonitors() ([]monitor.Monitor, error) {
	return []monitor.Monitor{
		{Index: 1, X: 0, Y: 0, W: 960, H: 1080, Primary: true},
		{Index: 2, X: 960, Y: 0, W: 960, H: 1080},
	}, nil
}

// newDispatcher builds a dispatcher over a fake 1920x1080 display.
func newDispatcher(t *testing.T, tracker *Tracker) (*Dispatcher, *testutil.FakeDevice, *session.Session) {
	t.Helper()
	dev := testutil.NewFakeDevice(1920, 1080)
	ctl, err := pointer.New(dev, pointer.Options{})
	if err != nil {
		t.Fatalf("pointer.New: %v", err)
	}
	sess := session.New("secret")
	return NewDispatcher(sess, ctl, twoMonitors, tracker, nil), dev, sess
}

// TestDispatch_MoveRepliesWithPosition verifies absolute moves come back
// with the reached position.
func TestDispatch_MoveRepliesWithPosition(t *testing.T) {
	d, dev, _ := newDispatcher(t, nil)

	reply, err := d.Dispatch(Message{T: "move", X: 100, Y: 200})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if reply == nil || reply.T != "pos" || reply.X != 100 || reply.Y != 200 {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if len(dev.Calls) != 1 || dev.Calls[0].Name != "MoveAbs" {
		t.Fatalf("unexpected device calls: %#v", dev.Calls)
	}
}

// TestDispatch_LocationReportsMonitor verifies position replies name the
// monitor under the pointer.
func TestDispatch_LocationReportsMonitor(t *testing.T) {
	d, dev, _ := newDispatcher(t, nil)
	dev.X, dev.Y = 1000, 500

	reply, err := d.Dispatch(Message{T: "location"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if reply == nil || reply.T != "pos" || reply.X != 1000 || reply.Y != 500 {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if reply.Idx != 2 {
		t.Fatalf("expected monitor 2, got %+v", reply)
	}
}

// TestDispatch_MoveByOffsetsCurrentPosition verifies relative moves.
func TestDispatch_MoveByOffsetsCurrentPosition(t *testing.T) {
	d, dev, _ := newDispatcher(t, nil)
	dev.X, dev.Y = 10, 10

	reply, err := d.Dispatch(Message{T: "moveBy", DX: 5, DY: 5})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if reply == nil || reply.X != 15 || reply.Y != 15 {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

// TestDispatch_OutOfBoundsIsErrorReply verifies rejected targets come back
// as error replies instead of dropping the transport.
func TestDispatch_OutOfBoundsIsErrorReply(t *testing.T) {
	d, dev, _ := newDispatcher(t, nil)

	reply, err := d.Dispatch(Message{T: "move", X: 5000, Y: 10})
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if reply == nil || reply.T != "error" || !strings.Contains(reply.Error, "outside screen") {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if len(dev.Calls) != 0 {
		t.Fatalf("expected no device calls, got %#v", dev.Calls)
	}
}

// TestDispatch_InputDisabledDropsInjection verifies the kill switch blocks
// injection but leaves queries working.
func TestDispatch_InputDisabledDropsInjection(t *testing.T) {
	d, dev, sess := newDispatcher(t, nil)
	sess.SetInputEnabled(false)

	for _, msg := range []Message{
		{T: "move", X: 10, Y: 10},
		{T: "moveBy", DX: 5, DY: 5},
		{T: "click", Button: "left"},
		{T: "down", Button: "left"},
		{T: "scroll", DY: 1},
	} {
		reply, err := d.Dispatch(msg)
		if err != nil || reply != nil {
			t.Fatalf("%s: expected silent drop, got reply=%+v err=%v", msg.T, reply, err)
		}
	}
	if len(dev.Calls) != 0 {
		t.Fatalf("expected no device calls, got %#v", dev.Calls)
	}

	reply, err := d.Dispatch(Message{T: "location"})
	if err != nil || reply == nil || reply.T != "pos" {
		t.Fatalf("expected location to work while disabled, got reply=%+v err=%v", reply, err)
	}
}

// TestDispatch_PointMapsSelectedMonitor verifies normalized targeting uses
// the selected monitor origin.
func TestDispatch_PointMapsSelectedMonitor(t *testing.T) {
	d, dev, _ := newDispatcher(t, nil)

	if _, err := d.Dispatch(Message{T: "setMonitor", Idx: 2}); err != nil {
		t.Fatalf("setMonitor: %v", err)
	}
	reply, err := d.Dispatch(Message{T: "point", XN: 0, YN: 0})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if reply == nil || reply.X != 960 || reply.Y != 0 {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if len(dev.Calls) != 1 || dev.Calls[0].X != 960 {
		t.Fatalf("unexpected device calls: %#v", dev.Calls)
	}
}

// TestDispatch_PointUnknownMonitorIsErrorReply verifies missing monitors
// are reported to the client.
func TestDispatch_PointUnknownMonitorIsErrorReply(t *testing.T) {
	d, _, sess := newDispatcher(t, nil)
	sess.SetMonitor(5)

	reply, err := d.Dispatch(Message{T: "point", XN: 0.5, YN: 0.5})
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if reply == nil || reply.T != "error" || !strings.Contains(reply.Error, "monitor 5 not found") {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

// TestDispatch_UnknownButtonIsErrorReply verifies bad button names do not
// kill the connection.
func TestDispatch_UnknownButtonIsErrorReply(t *testing.T) {
	d, _, _ := newDispatcher(t, nil)

	reply, err := d.Dispatch(Message{T: "click", Button: "thumb"})
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if reply == nil || reply.T != "error" || !strings.Contains(reply.Error, "unknown button") {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

// TestDispatch_ReleaseAllLetsGoOfHeldButtons verifies disconnect cleanup
// releases what down pressed.
func TestDispatch_ReleaseAllLetsGoOfHeldButtons(t *testing.T) {
	d, dev, _ := newDispatcher(t, nil)

	if _, err := d.Dispatch(Message{T: "down", Button: "left"}); err != nil {
		t.Fatalf("down left: %v", err)
	}
	if _, err := d.Dispatch(Message{T: "down", Button: "right"}); err != nil {
		t.Fatalf("down right: %v", err)
	}
	dev.Calls = nil

	d.ReleaseAll()
	released := map[uint8]bool{}
	for _, c := range dev.Calls {
		if c.Name != "ButtonUp" {
			t.Fatalf("unexpected call %#v", c)
		}
		released[c.Detail] = true
	}
	if len(released) != 2 || !released[1] || !released[3] {
		t.Fatalf("expected buttons 1 and 3 released, got %#v", dev.Calls)
	}

	dev.Calls = nil
	d.ReleaseAll()
	if len(dev.Calls) != 0 {
		t.Fatalf("expected second release to be a no-op, got %#v", dev.Calls)
	}
}

// TestDispatch_UpClearsHeldButton verifies a released button is not
// released again on cleanup.
func TestDispatch_UpClearsHeldButton(t *testing.T) {
	d, dev, _ := newDispatcher(t, nil)

	if _, err := d.Dispatch(Message{T: "down", Button: "left"}); err != nil {
		t.Fatalf("down: %v", err)
	}
	if _, err := d.Dispatch(Message{T: "up", Button: "left"}); err != nil {
		t.Fatalf("up: %v", err)
	}
	dev.Calls = nil
	d.ReleaseAll()
	if len(dev.Calls) != 0 {
		t.Fatalf("expected nothing to release, got %#v", dev.Calls)
	}
}

// TestDispatch_QueryFailureIsFatal verifies a dead display drops the
// transport.
func TestDispatch_QueryFailureIsFatal(t *testing.T) {
	d, dev, _ := newDispatcher(t, nil)
	dev.LocationErr = errTest

	reply, err := d.Dispatch(Message{T: "location"})
	if err == nil {
		t.Fatalf("expected transport error, got reply %+v", reply)
	}
}

// errTest fakes a broken display connection.
var errTest = &testError{}

type testError struct{}

// Error describes the fake failure.
func (*testError) Error() string { return "connection reset" }

// TestDispatch_ThrottleDropsMoveFlood verifies the tracker gates streamed
// moves.
func TestDispatch_ThrottleDropsMoveFlood(t *testing.T) {
	tr := NewTracker(16*time.Millisecond, 0)
	now := time.Unix(0, 0)
	tr.SetNowFunc(func() time.Time { return now })
	d, dev, _ := newDispatcher(t, tr)

	if reply, err := d.Dispatch(Message{T: "move", X: 10, Y: 10}); err != nil || reply == nil {
		t.Fatalf("expected first move through, got reply=%+v err=%v", reply, err)
	}
	now = now.Add(2 * time.Millisecond)
	if reply, err := d.Dispatch(Message{T: "move", X: 90, Y: 90}); err != nil || reply != nil {
		t.Fatalf("expected flooded move dropped, got reply=%+v err=%v", reply, err)
	}
	if len(dev.Calls) != 1 {
		t.Fatalf("expected one device move, got %#v", dev.Calls)
	}
}

// TestDispatch_DragDefaultsToLeftButton verifies drags without a button
// use the left one.
func TestDispatch_DragDefaultsToLeftButton(t *testing.T) {
	d, dev, _ := newDispatcher(t, nil)

	reply, err := d.Dispatch(Message{T: "drag", X: 50, Y: 60})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if reply == nil || reply.X != 50 || reply.Y != 60 {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if len(dev.Calls) != 3 || dev.Calls[0].Detail != 1 || dev.Calls[1].Name != "MoveAbs" || dev.Calls[2].Detail != 1 {
		t.Fatalf("unexpected device calls: %#v", dev.Calls)
	}
}

// TestDispatch_ScrollClicksWheelButtons verifies scroll deltas reach the
// wheel buttons.
func TestDispatch_ScrollClicksWheelButtons(t *testing.T) {
	d, dev, _ := newDispatcher(t, nil)

	if _, err := d.Dispatch(Message{T: "scroll", DY: 1}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(dev.Calls) != 2 || dev.Calls[0].Detail != 4 || dev.Calls[1].Detail != 4 {
		t.Fatalf("unexpected device calls: %#v", dev.Calls)
	}
}

// TestDispatch_StateChangesNotify verifies monitor and kill switch changes
// reach the state callback.
func TestDispatch_StateChangesNotify(t *testing.T) {
	dev := testutil.NewFakeDevice(1920, 1080)
	ctl, err := pointer.New(dev, pointer.Options{})
	if err != nil {
		t.Fatalf("pointer.New: %v", err)
	}
	sess := session.New("secret")
	var reasons []string
	d := NewDispatcher(sess, ctl, twoMonitors, nil, func(reason string) {
		reasons = append(reasons, reason)
	})

	enabled := false
	if _, err := d.Dispatch(Message{T: "setMonitor", Idx: 2}); err != nil {
		t.Fatalf("setMonitor: %v", err)
	}
	if _, err := d.Dispatch(Message{T: "inputEnabled", Enabled: &enabled}); err != nil {
		t.Fatalf("inputEnabled: %v", err)
	}
	if len(reasons) != 2 || reasons[0] != "monitor" || reasons[1] != "input" {
		t.Fatalf("unexpected reasons: %v", reasons)
	}
	if sess.Monitor() != 2 || sess.InputEnabled() {
		t.Fatalf("session not updated: monitor=%d input=%v", sess.Monitor(), sess.InputEnabled())
	}
}
