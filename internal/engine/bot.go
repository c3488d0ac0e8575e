package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ConserveLee/craftbot/internal/craft"
	"github.com/ConserveLee/craftbot/internal/killswitch"
	"github.com/ConserveLee/craftbot/internal/logger"
)

// ErrBusy is returned by Start while another run is active
var ErrBusy = errors.New("a crafting run is already active")

// BotStatus represents the current state of the bot
type BotStatus int

const (
	StatusStopped BotStatus = iota
	StatusRunning
)

func (s BotStatus) String() string {
	if s == StatusRunning {
		return "running"
	}
	return "stopped"
}

// Job is one crafting mode. Sequencer, ItemCrafter, ClusterCrafter and
// MapCrafter all satisfy it.
type Job interface {
	Run(ctx context.Context, rt craft.Runtime) craft.Outcome
}

// HotkeyListener calls fn every time key is pressed until ctx is done
type HotkeyListener interface {
	Listen(ctx context.Context, key string, fn func()) error
}

// BotConfig holds the run settings
type BotConfig struct {
	KillswitchKey string
}

// Bot runs one crafting job at a time on a background goroutine, next to
// the killswitch hotkey listener
type Bot struct {
	Config BotConfig

	// StatusFunc receives transient status lines, optional
	StatusFunc func(string)

	runtime  craft.Runtime
	ks       *killswitch.Switch
	listener HotkeyListener
	log      *logger.AppLogger

	mu     sync.Mutex
	status BotStatus
	runID  string
	done   chan struct{}
	last   craft.Outcome
}

// NewBot creates a bot. The runtime's killswitch is replaced by ks; listener
// may be nil when no hotkey is wanted.
func NewBot(rt craft.Runtime, ks *killswitch.Switch, listener HotkeyListener, cfg BotConfig, log *logger.AppLogger) *Bot {
	if log == nil {
		log = logger.Discard()
	}
	rt.Killswitch = ks
	rt.Log = log
	return &Bot{
		Config:   cfg,
		runtime:  rt,
		ks:       ks,
		listener: listener,
		log:      log,
		status:   StatusStopped,
	}
}

// Killswitch exposes the bot's stop flag
func (b *Bot) Killswitch() *killswitch.Switch {
	return b.ks
}

// Status reports whether a run is active
func (b *Bot) Status() BotStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// RunID returns the id of the active or last run
func (b *Bot) RunID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.runID
}

// Start launches job in the background and returns immediately
func (b *Bot) Start(ctx context.Context, name string, job Job) error {
	b.mu.Lock()
	if b.status == StatusRunning {
		b.mu.Unlock()
		return ErrBusy
	}
	b.status = StatusRunning
	b.runID = uuid.NewString()
	b.done = make(chan struct{})
	runID, done := b.runID, b.done
	b.mu.Unlock()

	b.ks.Release()

	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)

	if b.listener != nil && b.Config.KillswitchKey != "" {
		g.Go(func() error {
			err := b.listener.Listen(gctx, b.Config.KillswitchKey, func() {
				b.log.Info("Killswitch toggled: %v", b.ks.Toggle())
			})
			if err != nil && gctx.Err() == nil {
				return fmt.Errorf("killswitch listener: %w", err)
			}
			return nil
		})
	}

	var out craft.Outcome
	g.Go(func() error {
		defer cancel()
		out = job.Run(gctx, b.runtime)
		out.RunID = runID
		return nil
	})

	b.log.Info("Started %s (run %s).", name, runID)
	b.setStatus(fmt.Sprintf("Status: %s running", name))

	go func() {
		err := g.Wait()
		cancel()
		if err != nil {
			b.log.Error("%s: %v", name, err)
		}

		b.mu.Lock()
		b.last = out
		b.status = StatusStopped
		b.mu.Unlock()

		b.log.Info("%s %s.", name, out)
		b.setStatus("Status: Stopped")
		close(done)
	}()
	return nil
}

// Wait blocks until the active run ends and returns its outcome. Without an
// active run it returns the last outcome.
func (b *Bot) Wait() craft.Outcome {
	b.mu.Lock()
	done := b.done
	b.mu.Unlock()

	if done != nil {
		<-done
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

// Stop engages the killswitch and waits for the run to wind down
func (b *Bot) Stop() craft.Outcome {
	if b.Status() == StatusStopped {
		return b.Wait()
	}
	b.ks.Engage()
	return b.Wait()
}

func (b *Bot) setStatus(s string) {
	if b.StatusFunc != nil {
		b.StatusFunc(s)
	}
}
