// Package app wires HTTP, signaling, and the pointer pipeline together.
package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/halvex/xmouse/internal/config"
	"github.com/halvex/xmouse/internal/control"
	"github.com/halvex/xmouse/internal/display"
	"github.com/halvex/xmouse/internal/monitor"
	"github.com/halvex/xmouse/internal/pointer"
	"github.com/halvex/xmouse/internal/profile"
	"github.com/halvex/xmouse/internal/rtc"
	"github.com/halvex/xmouse/internal/session"
	"github.com/halvex/xmouse/internal/signaling"
)

// App coordinates the HTTP API, websocket servers, and the shared pointer
// controller.
type App struct {
	mu          sync.Mutex
	cfg         config.Config
	session     *session.Session
	conn        *display.Conn
	ctl         *pointer.Controller
	prof        profile.Profile
	displayName string
	hasXTest    bool
	dispatcher  *control.Dispatcher
	bridge      *rtc.Bridge
	signaling   *signaling.Server
	control     *control.Server
	monitors    []monitor.Monitor
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, sess *session.Session, conn *display.Conn, ctl *pointer.Controller, prof profile.Profile, policy signaling.ClientPolicy) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if conn == nil {
		return nil, errors.New("display connection is required")
	}
	if ctl == nil {
		return nil, errors.New("pointer controller is required")
	}

	app := &App{
		cfg:         cfg,
		session:     sess,
		conn:        conn,
		ctl:         ctl,
		prof:        prof,
		displayName: conn.Name(),
		hasXTest:    conn.HasXTest(),
	}

	tracker := control.NewTracker(time.Duration(cfg.MoveThrottleMs)*time.Millisecond, cfg.MoveMinDelta)
	app.dispatcher = control.NewDispatcher(sess, ctl, app.ListMonitors, tracker, func(reason string) {
		app.signaling.NotifyUpdate(reason)
	})

	bridge, err := rtc.NewBridge(app.dispatcher)
	if err != nil {
		return nil, err
	}
	app.bridge = bridge

	app.signaling = signaling.NewServer(bridge, policy, sess.IsAuthenticated)
	app.control = control.NewServer(sess, app.dispatcher)

	return app, nil
}

// Start loads the monitor layout and seeds session state from the
// configuration.
func (a *App) Start() error {
	monitors, err := a.conn.Monitors()
	if err != nil {
		return err
	}
	if len(monitors) == 0 {
		return fmt.Errorf("no monitors reported")
	}
	a.mu.Lock()
	a.monitors = monitors
	a.mu.Unlock()

	if _, ok := monitor.GetMonitorByIndex(monitors, a.cfg.MonitorIndex); !ok {
		return fmt.Errorf("monitor %d not found", a.cfg.MonitorIndex)
	}
	a.session.SetMonitor(a.cfg.MonitorIndex)
	a.session.SetInputEnabled(a.cfg.InputEnabled)
	a.session.SetProfile(a.prof)
	return nil
}

// Stop tears down the WebRTC peer and releases any held buttons.
func (a *App) Stop() {
	a.bridge.ClosePeer()
	a.dispatcher.ReleaseAll()
}

// ListMonitors returns the cached monitor list.
func (a *App) ListMonitors() ([]monitor.Monitor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]monitor.Monitor, len(a.monitors))
	copy(out, a.monitors)
	return out, nil
}

// Signaling returns the signaling websocket handler.
func (a *App) Signaling() *signaling.Server {
	return a.signaling
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}
