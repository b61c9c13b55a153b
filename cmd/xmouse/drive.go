// Package main is the xmouse command line pointer tool.
package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/halvex/xmouse/internal/pointer"
)

// Pointer increments for one key press.
const (
	driveStep    = 10
	driveBigStep = 50
)

// driveUI is the interactive full screen pointer control.
type driveUI struct {
	screen tcell.Screen
	ctl    *pointer.Controller
	status string
}

// runDrive takes over the terminal and moves the pointer from the
// keyboard until q or escape.
func runDrive(ctl *pointer.Controller) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ui := &driveUI{screen: screen, ctl: ctl}
	for {
		ui.draw()
		if !ui.handleEvent(screen.PollEvent()) {
			return nil
		}
	}
}

// draw renders the help, the live position and the last action.
func (ui *driveUI) draw() {
	ui.screen.Clear()

	header := tcell.StyleDefault.Reverse(true)
	ui.drawText(0, 0, " xmouse drive ", header)
	ui.drawText(0, 2, "hjkl or arrows move, capitals move fast", tcell.StyleDefault)
	ui.drawText(0, 3, "space left, m middle, r right, u/d scroll", tcell.StyleDefault)
	ui.drawText(0, 4, "q or escape quits", tcell.StyleDefault)

	width, height := ui.ctl.Bounds()
	if pos, err := ui.ctl.Location(); err == nil {
		ui.drawText(0, 6, fmt.Sprintf("pointer %d,%d on %dx%d", pos.X, pos.Y, width, height), tcell.StyleDefault)
	} else {
		ui.drawText(0, 6, fmt.Sprintf("pointer unavailable: %v", err), errorStyle())
	}
	if ui.status != "" {
		ui.drawText(0, 7, ui.status, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}

	ui.screen.Show()
}

// drawText writes one line, clipped to the terminal width.
func (ui *driveUI) drawText(x, y int, text string, style tcell.Style) {
	width, _ := ui.screen.Size()
	col := x
	for _, r := range text {
		if col >= width {
			return
		}
		ui.screen.SetContent(col, y, r, nil, style)
		col++
	}
}

// handleEvent processes one terminal event. It returns false to quit.
func (ui *driveUI) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		ui.screen.Sync()
	case *tcell.EventKey:
		return ui.handleKey(ev)
	}
	return true
}

// handleKey maps one key press to a pointer operation.
func (ui *driveUI) handleKey(ev *tcell.EventKey) bool {
	step := driveStep
	if ev.Modifiers()&tcell.ModShift != 0 {
		step = driveBigStep
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		ui.move(0, -step)
	case tcell.KeyDown:
		ui.move(0, step)
	case tcell.KeyLeft:
		ui.move(-step, 0)
	case tcell.KeyRight:
		ui.move(step, 0)
	case tcell.KeyRune:
		return ui.handleRune(ev.Rune())
	}
	return true
}

// handleRune maps letter keys. Capital letters take the big step.
func (ui *driveUI) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'h':
		ui.move(-driveStep, 0)
	case 'H':
		ui.move(-driveBigStep, 0)
	case 'j':
		ui.move(0, driveStep)
	case 'J':
		ui.move(0, driveBigStep)
	case 'k':
		ui.move(0, -driveStep)
	case 'K':
		ui.move(0, -driveBigStep)
	case 'l':
		ui.move(driveStep, 0)
	case 'L':
		ui.move(driveBigStep, 0)
	case ' ':
		ui.click(pointer.ButtonLeft)
	case 'm':
		ui.click(pointer.ButtonMiddle)
	case 'r':
		ui.click(pointer.ButtonRight)
	case 'u':
		ui.scroll(1)
	case 'd':
		ui.scroll(-1)
	}
	return true
}

// move shifts the pointer and records the outcome in the status line.
func (ui *driveUI) move(dx, dy int) {
	if _, err := ui.ctl.MoveRelative(dx, dy); err != nil {
		ui.status = fmt.Sprintf("move failed: %v", err)
		return
	}
	ui.status = fmt.Sprintf("moved by %d,%d", dx, dy)
}

// click clicks a button and records the outcome.
func (ui *driveUI) click(b pointer.Button) {
	if err := ui.ctl.Click(b, 1); err != nil {
		ui.status = fmt.Sprintf("click failed: %v", err)
		return
	}
	ui.status = fmt.Sprintf("clicked %s", string(b))
}

// scroll clicks the vertical wheel buttons.
func (ui *driveUI) scroll(dy int) {
	if err := ui.ctl.Scroll(0, dy); err != nil {
		ui.status = fmt.Sprintf("scroll failed: %v", err)
		return
	}
	if dy > 0 {
		ui.status = "scrolled up"
	} else {
		ui.status = "scrolled down"
	}
}

// errorStyle is the style for failure lines.
func errorStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.ColorRed)
}
