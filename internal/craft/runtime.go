// Package craft drives the crafting loops: apply a currency, copy the item,
// parse it, decide, repeat.
//
// Every crafter receives a Runtime holding its collaborators (positions,
// capture, input, killswitch) so the loops can be exercised with fakes.
package craft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ConserveLee/craftbot/internal/calibration"
	"github.com/ConserveLee/craftbot/internal/constants"
	"github.com/ConserveLee/craftbot/internal/item"
	"github.com/ConserveLee/craftbot/internal/logger"
)

// Sentinel errors reported in Outcome.Err
var (
	ErrMissingCalibration = errors.New("calibration not set")
	ErrNoItemData         = errors.New("no item data captured")
	ErrKillswitch         = errors.New("killswitch engaged")
	ErrCancelled          = errors.New("run cancelled")
)

// PositionLookup resolves calibrated screen positions
type PositionLookup interface {
	Lookup(section, key string) (calibration.Position, bool)
}

// Capturer copies the tooltip of the item under pos. Empty text is a normal,
// transient result.
type Capturer interface {
	Capture(ctx context.Context, pos calibration.Position) (string, error)
}

// Input issues mouse commands
type Input interface {
	MoveTo(x, y int)
	LeftClick()
	RightClick()
}

// Killswitch is polled between actions
type Killswitch interface {
	Engaged() bool
}

// Snapshotter saves a screenshot for post-mortem debugging
type Snapshotter interface {
	SaveDebugScreenshot(name string) error
}

// Runtime is the explicit context handed to every crafter
type Runtime struct {
	Positions      PositionLookup
	Capture        Capturer
	Input          Input
	Killswitch     Killswitch
	Log            *logger.AppLogger
	Snapshot       Snapshotter // optional
	ActionDelay    time.Duration
	CaptureRetries int
}

// WithDefaults fills unset optional fields
func (rt Runtime) WithDefaults() Runtime {
	if rt.Log == nil {
		rt.Log = logger.Discard()
	}
	if rt.CaptureRetries < 0 {
		rt.CaptureRetries = constants.CaptureRetries
	}
	return rt
}

// State is the terminal state of a run
type State int

const (
	StateFinished State = iota
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateFinished:
		return "finished"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StepTrace records what happened on one visit to a step
type StepTrace struct {
	Index     int
	Attempts  int
	Satisfied bool
}

// Outcome summarises a run. Err is nil for normal termination, including a
// step that ran out of attempts with nowhere to go.
type Outcome struct {
	RunID   string
	State   State
	Err     error
	Actions int
	Steps   []StepTrace
	Cluster *item.Cluster // cluster mode only
}

// Aborted reports whether the run stopped early
func (o Outcome) Aborted() bool {
	return o.State == StateAborted
}

func (o Outcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("%s after %d actions: %v", o.State, o.Actions, o.Err)
	}
	return fmt.Sprintf("%s after %d actions", o.State, o.Actions)
}

// abort returns an aborted outcome carrying err
func (o Outcome) abort(err error) Outcome {
	o.State = StateAborted
	o.Err = err
	return o
}

// halted reports why the loop must stop before the next action, if it must
func (rt Runtime) halted(ctx context.Context) error {
	if rt.Killswitch != nil && rt.Killswitch.Engaged() {
		return ErrKillswitch
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	}
	return nil
}

func (rt Runtime) lookup(section, key string) (calibration.Position, error) {
	pos, ok := rt.Positions.Lookup(section, key)
	if !ok {
		rt.Log.Error("Calibration for %s/%s not set.", section, key)
		return calibration.Position{}, fmt.Errorf("%w: %s/%s", ErrMissingCalibration, section, key)
	}
	return pos, nil
}

// captureText copies the item tooltip, retrying up to retries extra times
// while the clipboard comes back empty
func (rt Runtime) captureText(ctx context.Context, pos calibration.Position, retries int) string {
	for attempt := 0; attempt <= retries; attempt++ {
		if ctx.Err() != nil {
			return ""
		}
		text, err := rt.Capture.Capture(ctx, pos)
		if err != nil {
			rt.Log.Warn("Capture at %s failed (attempt %d): %v", pos, attempt+1, err)
			continue
		}
		if text != "" {
			return text
		}
		rt.Log.Warn("Capture at %s returned nothing (attempt %d).", pos, attempt+1)
	}
	return ""
}

// noData logs the failure and, if configured, keeps a screenshot of it
func (rt Runtime) noData(what string) error {
	rt.Log.Error("No item data for %s.", what)
	if rt.Snapshot != nil {
		if err := rt.Snapshot.SaveDebugScreenshot("no_item_data"); err != nil {
			rt.Log.Debug("debug screenshot failed: %v", err)
		}
	}
	return fmt.Errorf("%w: %s", ErrNoItemData, what)
}

// applyCurrency right-clicks the currency and left-clicks the item with it
func (rt Runtime) applyCurrency(method, target calibration.Position) {
	rt.Input.MoveTo(method.X, method.Y)
	rt.Input.RightClick()
	rt.Input.MoveTo(target.X, target.Y)
	rt.Input.LeftClick()
}

// wait pauses for the action delay so the client can redraw
func (rt Runtime) wait(ctx context.Context) {
	if rt.ActionDelay <= 0 {
		return
	}
	t := time.NewTimer(rt.ActionDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
