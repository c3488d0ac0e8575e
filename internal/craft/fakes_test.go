package craft

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/ConserveLee/craftbot/internal/calibration"
)

type fakePositions map[string]calibration.Position

func (f fakePositions) Lookup(section, key string) (calibration.Position, bool) {
	pos, ok := f[section+"/"+key]
	return pos, ok
}

func calibrated() fakePositions {
	return fakePositions{
		"targets/craft-item":      {X: 300, Y: 400},
		"targets/craft-method":    {X: 50, Y: 60},
		"targets/map-item":        {X: 310, Y: 410},
		"currency/alt":            {X: 10, Y: 20},
		"currency/regal":          {X: 30, Y: 40},
		"currency/chaos":          {X: 70, Y: 80},
		"cluster/button-location": {X: 500, Y: 600},
	}
}

// scriptedCapture returns texts in order and repeats the last one forever
type scriptedCapture struct {
	texts []string
	calls int
	at    []calibration.Position
}

func (s *scriptedCapture) Capture(_ context.Context, pos calibration.Position) (string, error) {
	s.at = append(s.at, pos)
	i := s.calls
	s.calls++
	if len(s.texts) == 0 {
		return "", nil
	}
	if i >= len(s.texts) {
		i = len(s.texts) - 1
	}
	return s.texts[i], nil
}

type fakeSwitch struct {
	on atomic.Bool
}

func (f *fakeSwitch) Engaged() bool { return f.on.Load() }

// recordingInput logs every command. onRightClick, when set, runs after the
// n-th right click.
type recordingInput struct {
	log          []string
	rightClicks  int
	leftClicks   int
	onRightClick func(n int)
}

func (r *recordingInput) MoveTo(x, y int) {
	r.log = append(r.log, fmt.Sprintf("move %d,%d", x, y))
}

func (r *recordingInput) LeftClick() {
	r.leftClicks++
	r.log = append(r.log, "left")
}

func (r *recordingInput) RightClick() {
	r.rightClicks++
	r.log = append(r.log, "right")
	if r.onRightClick != nil {
		r.onRightClick(r.rightClicks)
	}
}

type fakeSnapshot struct {
	names []string
}

func (f *fakeSnapshot) SaveDebugScreenshot(name string) error {
	f.names = append(f.names, name)
	return nil
}

// tooltip builds a generic item tooltip whose modifier block holds lines
func tooltip(lines ...string) string {
	return strings.Join([]string{
		"Item Class: Rings\nRarity: Magic\nSapphire Ring",
		"Requirements:\nLevel: 20",
		"Item Level: 84",
		strings.Join(lines, "\n"),
		"Note: ~price 1 chaos",
	}, "\n--------\n")
}

func newRuntime(capture Capturer, input Input, ks Killswitch) Runtime {
	return Runtime{
		Positions:      calibrated(),
		Capture:        capture,
		Input:          input,
		Killswitch:     ks,
		CaptureRetries: 3,
	}
}
