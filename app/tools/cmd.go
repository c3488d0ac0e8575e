// Package tools holds helpers for preparing crafts: screenshots and saved
// tooltips to replay with debug_match.
package tools

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ConserveLee/craftbot/app"
	"github.com/ConserveLee/craftbot/internal/calibration"
	"github.com/ConserveLee/craftbot/internal/engine/desktop"
)

// NewToolsCommand creates the tools command tree
func NewToolsCommand(env func() *app.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Screenshots, saved tooltips and other helpers",
	}
	cmd.AddCommand(newScreenshotCommand(env), newTooltipCommand(env), newOpenCommand(env))
	return cmd
}

func newScreenshotCommand(env func() *app.Env) *cobra.Command {
	var (
		display int
		area    string
		dir     string
	)

	cmd := &cobra.Command{
		Use:   "screenshot",
		Short: "Capture a display, optionally cropped, to a numbered PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := env()
			if cmd.Flags().Changed("display") {
				e.Display.SetDisplayID(display)
			}
			img, err := e.Display.CaptureScreen()
			if err != nil {
				return err
			}
			if area != "" {
				r, err := parseRect(area)
				if err != nil {
					return err
				}
				if img, err = crop(img, r); err != nil {
					return err
				}
			}

			if dir == "" {
				dir = e.Config.DebugDir
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(dir, nextFileName(dir, ".png"))
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				return err
			}
			e.Printf("saved %s (%dx%d)\n", path, img.Bounds().Dx(), img.Bounds().Dy())
			return nil
		},
	}

	cmd.Flags().IntVar(&display, "display", 0, "display index (default: configured display)")
	cmd.Flags().StringVar(&area, "crop", "", "area to keep as x,y,w,h relative to the display")
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default: debug dir)")
	return cmd
}

func newTooltipCommand(env func() *app.Env) *cobra.Command {
	var (
		at  string
		dir string
	)

	cmd := &cobra.Command{
		Use:   "tooltip",
		Short: "Copy the tooltip of the item under the cursor to a numbered text file",
		Example: `  craftbot tools tooltip
  craftbot tools tooltip --at craft-item`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := env()
			pos := desktop.Cursor()
			if at != "" {
				p, ok := e.Store.Lookup(calibration.SectionTargets, at)
				if !ok {
					return fmt.Errorf("targets/%s is not calibrated", at)
				}
				pos = p
			}

			text, err := e.Clipboard.Capture(cmd.Context(), pos)
			if err != nil {
				return err
			}
			if text == "" {
				return fmt.Errorf("nothing copied at %s", pos)
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(dir, nextFileName(dir, ".txt"))
			if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
				return err
			}
			e.Printf("saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "calibrated target to copy instead of the cursor position")
	cmd.Flags().StringVar(&dir, "dir", "tooltips", "output directory")
	return cmd
}

func newOpenCommand(env func() *app.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the debug directory in the file manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := env().Config.DebugDir
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			return openDir(dir)
		},
	}
}
