// Package display owns the X server connection behind the pointer controller.
package display

import (
	"github.com/jezek/xgb/xinerama"

	"github.com/halvex/xmouse/internal/monitor"
)

// Monitors enumerates outputs through Xinerama. Servers without the
// extension, or with no screens configured, report a single monitor
// covering the root screen.
func (c *Conn) Monitors() ([]monitor.Monitor, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if !c.hasXinerama {
		return c.rootMonitor(), nil
	}
	reply, err := xinerama.QueryScreens(c.x).Reply()
	if err != nil {
		return nil, err
	}
	if len(reply.ScreenInfo) == 0 {
		return c.rootMonitor(), nil
	}
	list := make([]monitor.Monitor, 0, len(reply.ScreenInfo))
	for i, s := range reply.ScreenInfo {
		list = append(list, monitor.Monitor{
			Index:   i + 1,
			X:       int(s.XOrg),
			Y:       int(s.YOrg),
			W:       int(s.Width),
			H:       int(s.Height),
			Primary: i == 0,
		})
	}
	return list, nil
}

// rootMonitor covers the whole root screen as monitor 1.
func (c *Conn) rootMonitor() []monitor.Monitor {
	return []monitor.Monitor{{Index: 1, W: c.width, H: c.height, Primary: true}}
}
