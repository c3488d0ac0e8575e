// Package desktop drives the real mouse, keyboard and clipboard.
//
// Nothing here is unit tested: every call moves the cursor or reads global
// input. The crafting loops only see the craft.Input and craft.Capturer
// interfaces.
package desktop

import (
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/ConserveLee/craftbot/internal/calibration"
)

// Mouse issues robotgo mouse commands
type Mouse struct {
	// ClickDelay is slept after every click so the game registers it
	ClickDelay time.Duration
}

// NewMouse returns a mouse with the given post-click delay
func NewMouse(clickDelay time.Duration) *Mouse {
	return &Mouse{ClickDelay: clickDelay}
}

// MoveTo moves the cursor
func (m *Mouse) MoveTo(x, y int) {
	robotgo.Move(x, y)
}

// LeftClick clicks the left button
func (m *Mouse) LeftClick() {
	robotgo.Click("left")
	m.pause()
}

// RightClick clicks the right button
func (m *Mouse) RightClick() {
	robotgo.Click("right")
	m.pause()
}

func (m *Mouse) pause() {
	if m.ClickDelay > 0 {
		time.Sleep(m.ClickDelay)
	}
}

// Cursor returns the current mouse position
func Cursor() calibration.Position {
	x, y := robotgo.Location()
	return calibration.Position{X: x, Y: y}
}
