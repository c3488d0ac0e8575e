package calibration

import (
	"context"
	"errors"
	"fmt"

	"github.com/ConserveLee/craftbot/internal/logger"
)

// ErrOffScreen is returned when the clicked point is not on any active display
var ErrOffScreen = errors.New("position is outside every active display")

// ClickWaiter blocks until the user clicks and reports where
type ClickWaiter interface {
	WaitForClick(ctx context.Context) (Position, error)
}

// DisplayChecker reports whether a point is on an active display
type DisplayChecker interface {
	Contains(pos Position) bool
}

// Calibrator records positions by listening for the next mouse click
type Calibrator struct {
	store    *Store
	clicks   ClickWaiter
	displays DisplayChecker
	log      *logger.AppLogger
}

// NewCalibrator wires a store to a click source. displays may be nil to skip
// the bounds check.
func NewCalibrator(store *Store, clicks ClickWaiter, displays DisplayChecker, log *logger.AppLogger) *Calibrator {
	return &Calibrator{
		store:    store,
		clicks:   clicks,
		displays: displays,
		log:      log,
	}
}

// Calibrate waits for a click and stores it under section/key
func (c *Calibrator) Calibrate(ctx context.Context, section, key string) (Position, error) {
	c.log.Info("Click the %s/%s position in the game window...", section, key)

	pos, err := c.clicks.WaitForClick(ctx)
	if err != nil {
		return Position{}, fmt.Errorf("wait for click: %w", err)
	}
	if c.displays != nil && !c.displays.Contains(pos) {
		return Position{}, fmt.Errorf("%w: %s", ErrOffScreen, pos)
	}
	if err := c.store.Set(section, key, pos); err != nil {
		return Position{}, err
	}

	c.log.Info("Calibrated %s/%s at %s", section, key, pos)
	return pos, nil
}
