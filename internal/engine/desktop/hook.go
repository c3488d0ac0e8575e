package desktop

import (
	"context"
	"sync"

	hook "github.com/robotn/gohook"

	"github.com/ConserveLee/craftbot/internal/calibration"
)

// gohook keeps one global event stream, so only one consumer may run at a
// time
var hookMu sync.Mutex

// Hotkeys listens for global key presses
type Hotkeys struct{}

// Listen calls fn on every press of key until ctx is done
func (Hotkeys) Listen(ctx context.Context, key string, fn func()) error {
	hookMu.Lock()
	defer hookMu.Unlock()

	events := hook.Start()
	defer hook.End()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Kind == hook.KeyDown && string(ev.Keychar) == key {
				fn()
			}
		}
	}
}

// Clicks reports the position of the next mouse click
type Clicks struct{}

// WaitForClick blocks until any mouse button goes down and returns the cursor
func (Clicks) WaitForClick(ctx context.Context) (calibration.Position, error) {
	hookMu.Lock()
	defer hookMu.Unlock()

	events := hook.Start()
	defer hook.End()

	for {
		select {
		case <-ctx.Done():
			return calibration.Position{}, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return calibration.Position{}, context.Canceled
			}
			if ev.Kind == hook.MouseDown || ev.Kind == hook.MouseHold {
				return Cursor(), nil
			}
		}
	}
}
