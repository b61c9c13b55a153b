package rtc

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/halvex/xmouse/internal/control"
	"github.com/halvex/xmouse/internal/monitor"
	"github.com/halvex/xmouse/internal/pointer"
	"github.com/halvex/xmouse/internal/session"
	"github.com/halvex/xmouse/internal/testutil"
)

// newTestBridge builds a bridge over a dispatcher backed by the fake
// device.
func newTestBridge(t *testing.T, dev *testutil.FakeDevice) *Bridge {
	t.Helper()
	ctl, err := pointer.New(dev, pointer.Options{})
	if err != nil {
		t.Fatalf("expected controller, got %v", err)
	}
	monitors := func() ([]monitor.Monitor, error) {
		w, h := dev.Geometry()
		return []monitor.Monitor{{Index: 1, W: w, H: h, Primary: true}}, nil
	}
	d := control.NewDispatcher(session.New("pw"), ctl, monitors, nil, nil)
	b, err := NewBridge(d)
	if err != nil {
		t.Fatalf("expected bridge, got %v", err)
	}
	return b
}

// decodeReply unmarshals a reply produced by HandleData.
func decodeReply(t *testing.T, data []byte) control.Message {
	t.Helper()
	var msg control.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("expected valid reply, got %v", err)
	}
	return msg
}

// TestNewBridge_RegistersEngine verifies the bridge wires up its WebRTC API.
func TestNewBridge_RegistersEngine(t *testing.T) {
	b := newTestBridge(t, testutil.NewFakeDevice(800, 600))
	if b.api == nil {
		t.Fatalf("expected WebRTC API to be initialized")
	}
	// Closing without a peer must be safe.
	b.ClosePeer()
}

// TestHandleData_LocationReply verifies a location query round-trips
// through the data channel encoding.
func TestHandleData_LocationReply(t *testing.T) {
	dev := testutil.NewFakeDevice(800, 600)
	dev.X, dev.Y = 123, 45
	b := newTestBridge(t, dev)

	reply, err := b.HandleData([]byte(`{"t":"location"}`))
	if err != nil {
		t.Fatalf("expected reply, got error %v", err)
	}
	msg := decodeReply(t, reply)
	if msg.T != "pos" || msg.X != 123 || msg.Y != 45 {
		t.Fatalf("expected pos 123,45, got %#v", msg)
	}
}

// TestHandleData_MoveUpdatesPointer verifies injected moves reach the
// device.
func TestHandleData_MoveUpdatesPointer(t *testing.T) {
	dev := testutil.NewFakeDevice(800, 600)
	b := newTestBridge(t, dev)

	reply, err := b.HandleData([]byte(`{"t":"move","x":40,"y":50}`))
	if err != nil {
		t.Fatalf("expected reply, got error %v", err)
	}
	msg := decodeReply(t, reply)
	if msg.T != "pos" || msg.X != 40 || msg.Y != 50 {
		t.Fatalf("expected pos 40,50, got %#v", msg)
	}
	if dev.X != 40 || dev.Y != 50 {
		t.Fatalf("expected device at 40,50, got %d,%d", dev.X, dev.Y)
	}
}

// TestHandleData_BadPayloadIsErrorReply verifies malformed JSON is
// answered instead of dropping the channel.
func TestHandleData_BadPayloadIsErrorReply(t *testing.T) {
	b := newTestBridge(t, testutil.NewFakeDevice(800, 600))

	reply, err := b.HandleData([]byte(`{not json`))
	if err != nil {
		t.Fatalf("expected error reply, got fatal %v", err)
	}
	msg := decodeReply(t, reply)
	if msg.T != "error" || msg.Error == "" {
		t.Fatalf("expected error reply, got %#v", msg)
	}
}

// TestHandleData_SilentMessage verifies fire-and-forget operations produce
// no reply.
func TestHandleData_SilentMessage(t *testing.T) {
	dev := testutil.NewFakeDevice(800, 600)
	b := newTestBridge(t, dev)

	reply, err := b.HandleData([]byte(`{"t":"click","button":"left"}`))
	if err != nil {
		t.Fatalf("expected silence, got error %v", err)
	}
	if reply != nil {
		t.Fatalf("expected no reply, got %s", reply)
	}
	if len(dev.Calls) != 2 {
		t.Fatalf("expected press and release, got %#v", dev.Calls)
	}
}

// TestHandleData_BrokenDisplayIsFatal verifies display failures surface as
// errors so the channel closes.
func TestHandleData_BrokenDisplayIsFatal(t *testing.T) {
	dev := testutil.NewFakeDevice(800, 600)
	dev.LocationErr = errors.New("connection reset")
	b := newTestBridge(t, dev)

	reply, err := b.HandleData([]byte(`{"t":"location"}`))
	if err == nil {
		t.Fatalf("expected fatal error, got reply %s", reply)
	}
	var qe *pointer.QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QueryError, got %#v", err)
	}
}
