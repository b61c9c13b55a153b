// Package control translates client messages into pointer operations.
package control

import (
	"errors"
	"fmt"
	"sync"

	"github.com/halvex/xmouse/internal/monitor"
	"github.com/halvex/xmouse/internal/pointer"
	"github.com/halvex/xmouse/internal/session"
)

// MonitorProvider returns the current list of monitors.
type MonitorProvider func() ([]monitor.Monitor, error)

// Dispatcher executes control messages against the pointer controller. Its
// lock serializes controller access so the websocket and data channel
// transports can share one display connection.
type Dispatcher struct {
	mu            sync.Mutex
	session       *session.Session
	ctl           *pointer.Controller
	listMonitors  MonitorProvider
	tracker       *Tracker
	onStateChange func(reason string)
}

// NewDispatcher creates a dispatcher over a shared controller.
func NewDispatcher(sess *session.Session, ctl *pointer.Controller, listMonitors MonitorProvider, tracker *Tracker, onStateChange func(reason string)) *Dispatcher {
	if tracker == nil {
		tracker = NewTracker(0, 0)
	}
	return &Dispatcher{
		session:       sess,
		ctl:           ctl,
		listMonitors:  listMonitors,
		tracker:       tracker,
		onStateChange: onStateChange,
	}
}

// Dispatch executes one message and returns the reply, if any. Rejected
// operations (unknown buttons, out of range targets, missing monitors)
// come back as error replies; failures that mean the display connection is
// broken return a Go error so the transport can drop the client.
func (d *Dispatcher) Dispatch(msg Message) (*Message, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch msg.T {
	case "location":
		reply, err := d.reply(d.ctl.Location())
		if reply != nil && reply.T == "pos" {
			reply.Idx = d.monitorAt(reply.X, reply.Y)
		}
		return reply, err
	case "move":
		if !d.session.InputEnabled() || !d.tracker.AllowMove(msg.X, msg.Y) {
			return nil, nil
		}
		return d.reply(d.ctl.MoveAbsolute(msg.X, msg.Y))
	case "moveBy":
		if !d.session.InputEnabled() || !d.tracker.AllowStep(msg.DX, msg.DY) {
			return nil, nil
		}
		return d.reply(d.ctl.MoveRelative(msg.DX, msg.DY))
	case "point":
		if !d.session.InputEnabled() {
			return nil, nil
		}
		x, y, err := d.mapNorm(msg.XN, msg.YN)
		if err != nil {
			return d.fail(err)
		}
		if !d.tracker.AllowMove(x, y) {
			return nil, nil
		}
		return d.reply(d.ctl.MoveAbsolute(x, y))
	case "down":
		if !d.session.InputEnabled() {
			return nil, nil
		}
		if err := d.ctl.Press(pointer.Button(msg.Button)); err != nil {
			return d.fail(err)
		}
		d.tracker.NotePress(msg.Button)
		return nil, nil
	case "up":
		if !d.session.InputEnabled() {
			return nil, nil
		}
		if err := d.ctl.Release(pointer.Button(msg.Button)); err != nil {
			return d.fail(err)
		}
		d.tracker.NoteRelease(msg.Button)
		return nil, nil
	case "click":
		if !d.session.InputEnabled() {
			return nil, nil
		}
		if err := d.ctl.Click(pointer.Button(msg.Button), msg.Times); err != nil {
			return d.fail(err)
		}
		return nil, nil
	case "drag":
		if !d.session.InputEnabled() {
			return nil, nil
		}
		return d.reply(d.ctl.DragAbsolute(msg.X, msg.Y, dragButton(msg)))
	case "dragBy":
		if !d.session.InputEnabled() {
			return nil, nil
		}
		return d.reply(d.ctl.DragRelative(msg.DX, msg.DY, dragButton(msg)))
	case "scroll":
		if !d.session.InputEnabled() {
			return nil, nil
		}
		if err := d.ctl.Scroll(msg.DX, msg.DY); err != nil {
			return d.fail(err)
		}
		return nil, nil
	case "setMonitor":
		d.session.SetMonitor(msg.Idx)
		d.notifyState("monitor")
		return nil, nil
	case "inputEnabled":
		if msg.Enabled != nil {
			d.session.SetInputEnabled(*msg.Enabled)
			d.notifyState("input")
		}
		return nil, nil
	default:
		return nil, nil
	}
}

// ReleaseAll lets go of any buttons held through this dispatcher. Control
// transports call it when a client drops so a drag cannot wedge a button
// down.
func (d *Dispatcher) ReleaseAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, b := range d.tracker.Pressed() {
		_ = d.ctl.Release(pointer.Button(b))
	}
	d.tracker.Reset()
}

// reply converts a position result into a pos reply or delegates the error
// to fail.
func (d *Dispatcher) reply(pos pointer.Position, err error) (*Message, error) {
	if err != nil {
		return d.fail(err)
	}
	return posReply(pos), nil
}

// fail converts a controller error into an error reply when the operation
// was merely rejected, or a Go error when the display connection is in
// trouble.
func (d *Dispatcher) fail(err error) (*Message, error) {
	var ce *pointer.ConnectionError
	var qe *pointer.QueryError
	if errors.As(err, &ce) || errors.As(err, &qe) {
		return nil, err
	}
	return errorReply(err), nil
}

// mapNorm converts normalized coordinates into absolute coordinates on the
// selected monitor.
func (d *Dispatcher) mapNorm(xn, yn float64) (int, int, error) {
	monitors, err := d.listMonitors()
	if err != nil {
		return 0, 0, err
	}
	idx := d.session.Monitor()
	m, ok := monitor.GetMonitorByIndex(monitors, idx)
	if !ok {
		return 0, 0, fmt.Errorf("monitor %d not found", idx)
	}
	x, y := NormToAbs(xn, yn, m)
	return x, y, nil
}

// monitorAt returns the index of the monitor containing the point, or zero
// when no monitor matches or the layout cannot be read.
func (d *Dispatcher) monitorAt(x, y int) int {
	if d.listMonitors == nil {
		return 0
	}
	monitors, err := d.listMonitors()
	if err != nil {
		return 0
	}
	for _, m := range monitors {
		if m.Contains(x, y) {
			return m.Index
		}
	}
	return 0
}

// notifyState notifies the app about session state changes.
func (d *Dispatcher) notifyState(reason string) {
	if d.onStateChange != nil {
		d.onStateChange(reason)
	}
}

// dragButton picks the drag button, defaulting to left.
func dragButton(msg Message) pointer.Button {
	if msg.Button == "" {
		return pointer.ButtonLeft
	}
	return pointer.Button(msg.Button)
}

// posReply builds a position reply.
func posReply(p pointer.Position) *Message {
	return &Message{T: "pos", X: p.X, Y: p.Y}
}

// errorReply builds a non-fatal error reply.
func errorReply(err error) *Message {
	return &Message{T: "error", Error: err.Error()}
}
