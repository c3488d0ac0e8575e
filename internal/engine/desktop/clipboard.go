package desktop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/ConserveLee/craftbot/internal/calibration"
	"github.com/ConserveLee/craftbot/internal/item"
	"github.com/ConserveLee/craftbot/internal/logger"
)

// ErrWindowNotFound means the game window could not be brought to front
var ErrWindowNotFound = errors.New("game window not found")

// Clipboard copies item tooltips with the game's advanced copy shortcut
type Clipboard struct {
	Window    string        // process name of the game
	CopyDelay time.Duration // wait between the shortcut and reading
	Log       *logger.AppLogger
}

// NewClipboard returns a capturer for the named game window
func NewClipboard(window string, copyDelay time.Duration, log *logger.AppLogger) *Clipboard {
	if log == nil {
		log = logger.Discard()
	}
	return &Clipboard{Window: window, CopyDelay: copyDelay, Log: log}
}

// Activate brings the game window to the front
func (c *Clipboard) Activate() error {
	if c.Window == "" {
		return nil
	}
	pids, err := robotgo.FindIds(c.Window)
	if err != nil {
		return fmt.Errorf("find %s: %w", c.Window, err)
	}
	if len(pids) == 0 {
		return fmt.Errorf("%w: %s", ErrWindowNotFound, c.Window)
	}
	if err := robotgo.ActivePid(pids[0]); err != nil {
		return fmt.Errorf("activate %s: %w", c.Window, err)
	}
	return nil
}

// Capture hovers pos, presses ctrl+alt+c and returns the clipboard. The
// clipboard is cleared first so a stale tooltip is never returned.
func (c *Clipboard) Capture(ctx context.Context, pos calibration.Position) (string, error) {
	if err := robotgo.WriteAll(""); err != nil {
		return "", fmt.Errorf("clear clipboard: %w", err)
	}
	if err := c.Activate(); err != nil {
		c.Log.Error("Could not activate %s: %v", c.Window, err)
		return "", err
	}

	robotgo.Move(pos.X, pos.Y)
	if err := robotgo.KeyTap("c", "ctrl", "alt"); err != nil {
		return "", fmt.Errorf("copy shortcut: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(c.CopyDelay):
	}

	text, err := robotgo.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return item.Normalize(text), nil
}
