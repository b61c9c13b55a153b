// Package profile stores tunable pointer behavior between runs.
package profile

import (
	"fmt"
	"time"

	"github.com/halvex/xmouse/internal/pointer"
)

// Limits bounds a single relative move per axis. Zero disables the check.
type Limits struct {
	MaxDX int `yaml:"max_dx"`
	MaxDY int `yaml:"max_dy"`
}

// Profile holds the button map and move tuning for a pointer controller.
type Profile struct {
	Buttons      map[string]uint8 `yaml:"buttons"`
	MovePolicy   string           `yaml:"move_policy"`
	ClickDelayMs int              `yaml:"click_delay_ms"`
	DragDelayMs  int              `yaml:"drag_delay_ms"`
	Limits       Limits           `yaml:"limits"`
}

// Default returns the stock profile: X core button numbering, clamp
// policy, 10ms click and drag pauses, no relative limits.
func Default() Profile {
	buttons := make(map[string]uint8)
	for name, detail := range pointer.DefaultButtons() {
		buttons[string(name)] = detail
	}
	return Profile{
		Buttons:      buttons,
		MovePolicy:   string(pointer.PolicyClamp),
		ClickDelayMs: 10,
		DragDelayMs:  10,
	}
}

// Validate checks button details, the move policy, delays and limits.
func (p Profile) Validate() error {
	for name, detail := range p.Buttons {
		if detail == 0 {
			return fmt.Errorf("button %q maps to detail 0", name)
		}
	}
	if _, err := pointer.ParseMovePolicy(p.MovePolicy); err != nil {
		return err
	}
	if p.ClickDelayMs < 0 {
		return fmt.Errorf("click_delay_ms must be >= 0, got %d", p.ClickDelayMs)
	}
	if p.DragDelayMs < 0 {
		return fmt.Errorf("drag_delay_ms must be >= 0, got %d", p.DragDelayMs)
	}
	if p.Limits.MaxDX < 0 || p.Limits.MaxDY < 0 {
		return fmt.Errorf("limits must be >= 0, got (%d,%d)", p.Limits.MaxDX, p.Limits.MaxDY)
	}
	return nil
}

// ControllerOptions converts the profile into controller options.
func (p Profile) ControllerOptions() (pointer.Options, error) {
	if err := p.Validate(); err != nil {
		return pointer.Options{}, err
	}
	policy, _ := pointer.ParseMovePolicy(p.MovePolicy)
	buttons := make(pointer.ButtonMap, len(p.Buttons))
	for name, detail := range p.Buttons {
		buttons[pointer.Button(name)] = detail
	}
	return pointer.Options{
		Policy:     policy,
		Buttons:    buttons,
		ClickDelay: time.Duration(p.ClickDelayMs) * time.Millisecond,
		DragDelay:  time.Duration(p.DragDelayMs) * time.Millisecond,
		MaxDX:      p.Limits.MaxDX,
		MaxDY:      p.Limits.MaxDY,
	}, nil
}
