// Package app holds the wiring shared by the command packages under app/.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ConserveLee/craftbot/internal/calibration"
	"github.com/ConserveLee/craftbot/internal/config"
	"github.com/ConserveLee/craftbot/internal/craft"
	"github.com/ConserveLee/craftbot/internal/engine"
	"github.com/ConserveLee/craftbot/internal/engine/desktop"
	"github.com/ConserveLee/craftbot/internal/engine/screen"
	"github.com/ConserveLee/craftbot/internal/killswitch"
	"github.com/ConserveLee/craftbot/internal/logger"
)

// Env is built once per invocation and handed to every command
type Env struct {
	Config     *config.Config
	Log        *logger.AppLogger
	Out        io.Writer
	Store      *calibration.Store
	Display    *screen.Display
	Clipboard  *desktop.Clipboard
	Calibrator *calibration.Calibrator
	Bot        *engine.Bot
}

// NewEnv opens the calibration store and wires the desktop collaborators
func NewEnv(cfg *config.Config, out io.Writer) (*Env, error) {
	if out == nil {
		out = os.Stdout
	}
	log := logger.NewAppLogger(os.Stderr, cfg.Debug())

	store, err := calibration.Open(cfg.CalibrationFile)
	if err != nil {
		return nil, err
	}

	debugDir := ""
	if cfg.DebugDump {
		debugDir = cfg.DebugDir
	}
	display := screen.NewDisplay(cfg.DisplayID, debugDir)
	clipboard := desktop.NewClipboard(cfg.GameWindow, cfg.CopyDelay, log)

	rt := craft.Runtime{
		Positions:      store,
		Capture:        clipboard,
		Input:          desktop.NewMouse(0),
		Log:            log,
		ActionDelay:    cfg.ActionDelay,
		CaptureRetries: cfg.CaptureRetries,
	}
	if cfg.DebugDump {
		rt.Snapshot = display
	}

	ks := killswitch.New()
	ks.OnChange(func(bool) { log.Info("%s", ks) })

	return &Env{
		Config:     cfg,
		Log:        log,
		Out:        out,
		Store:      store,
		Display:    display,
		Clipboard:  clipboard,
		Calibrator: calibration.NewCalibrator(store, desktop.Clicks{}, display, log),
		Bot:        engine.NewBot(rt, ks, desktop.Hotkeys{}, engine.BotConfig{KillswitchKey: cfg.KillswitchKey}, log),
	}, nil
}

// Printf writes to the command output
func (e *Env) Printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}

// Run starts job on the bot, waits for it and reports the outcome. An
// aborted run is returned as an error so the process exits non-zero.
func (e *Env) Run(ctx context.Context, name string, job engine.Job) (craft.Outcome, error) {
	e.Log.Info("Press %q to stop.", e.Config.KillswitchKey)
	if err := e.Bot.Start(ctx, name, job); err != nil {
		return craft.Outcome{}, err
	}
	out := e.Bot.Wait()

	e.Printf("%s: %s (run %s)\n", name, out, out.RunID)
	for _, st := range out.Steps {
		e.Printf("  step %d: %d attempts, satisfied=%v\n", st.Index, st.Attempts, st.Satisfied)
	}
	if out.Aborted() {
		return out, fmt.Errorf("%s aborted: %w", name, out.Err)
	}
	return out, nil
}

// CleanPatterns trims pattern flags and drops blank ones
func CleanPatterns(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
