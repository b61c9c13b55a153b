// Package main is the xmouse command line pointer tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/halvex/xmouse/internal/display"
	"github.com/halvex/xmouse/internal/monitor"
	"github.com/halvex/xmouse/internal/pointer"
	"github.com/halvex/xmouse/internal/profile"
)

// openController connects to the display and wraps it with the profile
// settings.
func openController(displayName, profilePath string) (*pointer.Controller, *display.Conn, error) {
	prof, err := loadProfile(profilePath)
	if err != nil {
		return nil, nil, err
	}
	opts, err := prof.ControllerOptions()
	if err != nil {
		return nil, nil, err
	}
	conn, err := display.Open(displayName)
	if err != nil {
		return nil, nil, err
	}
	ctl, err := pointer.New(conn, opts)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return ctl, conn, nil
}

// loadProfile reads the named profile, or the defaults when no path is
// given.
func loadProfile(path string) (profile.Profile, error) {
	if path == "" {
		return profile.Default(), nil
	}
	return profile.Load(path)
}

// parseIntArg converts one positional argument.
func parseIntArg(arg, name string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, arg)
	}
	return v, nil
}

// argButton picks an optional trailing button argument.
func argButton(args []string, idx int) pointer.Button {
	if len(args) > idx {
		return pointer.Button(args[idx])
	}
	return pointer.ButtonLeft
}

// printPos writes a position as "x y".
func printPos(pos pointer.Position) {
	fmt.Printf("%d %d\n", pos.X, pos.Y)
}

// cmdLocation prints the current pointer position.
func cmdLocation(ctl *pointer.Controller) error {
	pos, err := ctl.Location()
	if err != nil {
		return err
	}
	printPos(pos)
	return nil
}

// cmdMove warps to absolute coordinates.
func cmdMove(ctl *pointer.Controller, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("move needs <x> <y>")
	}
	x, err := parseIntArg(args[0], "x")
	if err != nil {
		return err
	}
	y, err := parseIntArg(args[1], "y")
	if err != nil {
		return err
	}
	pos, err := ctl.MoveAbsolute(x, y)
	if err != nil {
		return err
	}
	printPos(pos)
	return nil
}

// cmdMoveBy shifts the pointer by a delta.
func cmdMoveBy(ctl *pointer.Controller, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("moveby needs <dx> <dy>")
	}
	dx, err := parseIntArg(args[0], "dx")
	if err != nil {
		return err
	}
	dy, err := parseIntArg(args[1], "dy")
	if err != nil {
		return err
	}
	pos, err := ctl.MoveRelative(dx, dy)
	if err != nil {
		return err
	}
	printPos(pos)
	return nil
}

// cmdClick clicks a button, optionally several times.
func cmdClick(ctl *pointer.Controller, args []string) error {
	fs := flag.NewFlagSet("click", flag.ContinueOnError)
	times := fs.Int("n", 1, "number of clicks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return ctl.Click(argButton(fs.Args(), 0), *times)
}

// cmdPress presses and holds a button.
func cmdPress(ctl *pointer.Controller, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("press needs <button>")
	}
	return ctl.Press(pointer.Button(args[0]))
}

// cmdRelease releases a held button.
func cmdRelease(ctl *pointer.Controller, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("release needs <button>")
	}
	return ctl.Release(pointer.Button(args[0]))
}

// cmdDrag drags to absolute coordinates.
func cmdDrag(ctl *pointer.Controller, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("drag needs <x> <y> [button]")
	}
	x, err := parseIntArg(args[0], "x")
	if err != nil {
		return err
	}
	y, err := parseIntArg(args[1], "y")
	if err != nil {
		return err
	}
	pos, err := ctl.DragAbsolute(x, y, argButton(args, 2))
	if err != nil {
		return err
	}
	printPos(pos)
	return nil
}

// cmdDragBy drags by a delta.
func cmdDragBy(ctl *pointer.Controller, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("dragby needs <dx> <dy> [button]")
	}
	dx, err := parseIntArg(args[0], "dx")
	if err != nil {
		return err
	}
	dy, err := parseIntArg(args[1], "dy")
	if err != nil {
		return err
	}
	pos, err := ctl.DragRelative(dx, dy, argButton(args, 2))
	if err != nil {
		return err
	}
	printPos(pos)
	return nil
}

// cmdScroll turns one or two deltas into wheel clicks.
func cmdScroll(ctl *pointer.Controller, args []string) error {
	switch len(args) {
	case 1:
		dy, err := parseIntArg(args[0], "dy")
		if err != nil {
			return err
		}
		return ctl.Scroll(0, dy)
	case 2:
		dx, err := parseIntArg(args[0], "dx")
		if err != nil {
			return err
		}
		dy, err := parseIntArg(args[1], "dy")
		if err != nil {
			return err
		}
		return ctl.Scroll(dx, dy)
	default:
		return fmt.Errorf("scroll needs <dy> or <dx> <dy>")
	}
}

// cmdMonitors lists the monitor layout.
func cmdMonitors(conn *display.Conn) error {
	monitors, err := conn.Monitors()
	if err != nil {
		return err
	}
	for _, m := range monitors {
		fmt.Println(formatMonitor(m))
	}
	return nil
}

// formatMonitor renders one monitor in X geometry notation.
func formatMonitor(m monitor.Monitor) string {
	s := fmt.Sprintf("%d: %dx%d+%d+%d", m.Index, m.W, m.H, m.X, m.Y)
	if m.Primary {
		s += " (primary)"
	}
	return s
}

// cmdCenter warps the pointer to the center of a monitor, defaulting to
// the primary one.
func cmdCenter(ctl *pointer.Controller, conn *display.Conn, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("center takes at most [monitor]")
	}
	monitors, err := conn.Monitors()
	if err != nil {
		return err
	}

	var m monitor.Monitor
	if len(args) == 1 {
		idx, err := parseIntArg(args[0], "monitor")
		if err != nil {
			return err
		}
		found, ok := monitor.GetMonitorByIndex(monitors, idx)
		if !ok {
			return fmt.Errorf("monitor %d not found", idx)
		}
		m = found
	} else {
		m = primaryMonitor(monitors)
	}

	x, y := m.Center()
	pos, err := ctl.MoveAbsolute(x, y)
	if err != nil {
		return err
	}
	printPos(pos)
	return nil
}

// primaryMonitor picks the primary monitor, or the first one when none is
// marked primary.
func primaryMonitor(list []monitor.Monitor) monitor.Monitor {
	for _, m := range list {
		if m.Primary {
			return m
		}
	}
	if len(list) > 0 {
		return list[0]
	}
	return monitor.Monitor{}
}

// cmdWatch polls the pointer and prints every position change until
// interrupted.
func cmdWatch(ctl *pointer.Controller, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	interval := fs.Int("interval", 250, "poll interval in milliseconds")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *interval < 1 {
		return fmt.Errorf("interval must be >= 1")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ticker := time.NewTicker(time.Duration(*interval) * time.Millisecond)
	defer ticker.Stop()

	var last pointer.Position
	first := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pos, err := ctl.Location()
			if err != nil {
				return err
			}
			if first || pos != last {
				printPos(pos)
				last = pos
				first = false
			}
		}
	}
}

// cmdProfile prints the active profile, or writes it back with -save.
func cmdProfile(profilePath string, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	save := fs.Bool("save", false, "write the active profile to the -profile path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	prof, err := loadProfile(profilePath)
	if err != nil {
		return err
	}

	if *save {
		if profilePath == "" {
			return fmt.Errorf("-save needs -profile <path>")
		}
		return profile.Save(profilePath, prof)
	}

	data, err := yaml.Marshal(prof)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
