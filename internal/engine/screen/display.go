// Package screen wraps the active displays: bounds checks for calibration
// and debug screenshots of the monitor the game runs on.
package screen

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/kbinani/screenshot"

	"github.com/ConserveLee/craftbot/internal/calibration"
)

// Display handles screen capturing for one monitor
type Display struct {
	DisplayIndex int
	DebugDir     string // where SaveDebugScreenshot writes, empty disables it
}

// NewDisplay creates a display for the given monitor index
func NewDisplay(index int, debugDir string) *Display {
	return &Display{
		DisplayIndex: index,
		DebugDir:     debugDir,
	}
}

// SetDisplayID sets the target display index for capturing
func (d *Display) SetDisplayID(index int) {
	d.DisplayIndex = index
}

// Bounds lists the bounds of every active display
func Bounds() []image.Rectangle {
	n := screenshot.NumActiveDisplays()
	out := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, screenshot.GetDisplayBounds(i))
	}
	return out
}

// Contains reports whether pos lies on any active display
func (d *Display) Contains(pos calibration.Position) bool {
	return contains(Bounds(), pos)
}

func contains(bounds []image.Rectangle, pos calibration.Position) bool {
	pt := image.Pt(pos.X, pos.Y)
	for _, b := range bounds {
		if pt.In(b) {
			return true
		}
	}
	return false
}

// CaptureScreen returns the current image of the configured display
func (d *Display) CaptureScreen() (image.Image, error) {
	if d.DisplayIndex < 0 || d.DisplayIndex >= screenshot.NumActiveDisplays() {
		return nil, fmt.Errorf("display %d is not active", d.DisplayIndex)
	}
	bounds := screenshot.GetDisplayBounds(d.DisplayIndex)

	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen %d: %w", d.DisplayIndex, err)
	}
	return img, nil
}

// SaveDebugScreenshot writes the display to DebugDir/<name>_<time>.png
func (d *Display) SaveDebugScreenshot(name string) error {
	if d.DebugDir == "" {
		return nil
	}
	img, err := d.CaptureScreen()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.DebugDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(d.DebugDir, debugFileName(name, time.Now()))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func debugFileName(name string, at time.Time) string {
	return fmt.Sprintf("%s_%s.png", name, at.Format("20060102_150405"))
}
