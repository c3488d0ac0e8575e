// Package calibrate records the screen positions the crafters click on.
package calibrate

import (
	"fmt"
	"slices"

	"github.com/kbinani/screenshot"
	"github.com/spf13/cobra"

	"github.com/ConserveLee/craftbot/app"
	"github.com/ConserveLee/craftbot/internal/calibration"
)

var targetKeys = []string{
	calibration.KeyCraftItem,
	calibration.KeyCraftMethod,
	calibration.KeyMapItem,
}

// NewCalibrateCommand creates the calibrate command tree
func NewCalibrateCommand(env func() *app.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Record screen positions by clicking on them",
	}

	record := func(cmd *cobra.Command, section, key string) error {
		e := env()
		if err := e.Clipboard.Activate(); err != nil {
			return err
		}
		pos, err := e.Calibrator.Calibrate(cmd.Context(), section, key)
		if err != nil {
			return err
		}
		e.Printf("%s/%s = %s\n", section, key, pos)
		return nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "currency <name>",
			Short:   "Record where a currency sits in the stash",
			Example: "  craftbot calibrate currency chaos",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return record(cmd, calibration.SectionCurrency, args[0])
			},
		},
		&cobra.Command{
			Use:   "cluster",
			Short: "Record the cluster jewel craft button",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return record(cmd, calibration.SectionCluster, calibration.KeyClusterButton)
			},
		},
		&cobra.Command{
			Use:       "target <craft-item|craft-method|map-item>",
			Short:     "Record the item being crafted or the currency used on it",
			Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
			ValidArgs: targetKeys,
			RunE: func(cmd *cobra.Command, args []string) error {
				if !slices.Contains(targetKeys, args[0]) {
					return fmt.Errorf("unknown target %q", args[0])
				}
				return record(cmd, calibration.SectionTargets, args[0])
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "List every stored position",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				e := env()
				e.Printf("%s\n", e.Store.Path())
				for _, entry := range e.Store.Entries() {
					state := entry.Position.String()
					if entry.Position.IsZero() {
						state = "not set"
					}
					e.Printf("  %-10s %-16s %s\n", entry.Section, entry.Key, state)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "displays",
			Short: "List active displays and their bounds",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				e := env()
				n := screenshot.NumActiveDisplays()
				for i := 0; i < n; i++ {
					bounds := screenshot.GetDisplayBounds(i)
					mark := " "
					if i == e.Display.DisplayIndex {
						mark = "*"
					}
					e.Printf("%s Display %d (%dx%d) at %d,%d\n", mark, i, bounds.Dx(), bounds.Dy(), bounds.Min.X, bounds.Min.Y)
				}
				return nil
			},
		},
	)
	return cmd
}
