// Package items crafts a single item against a list of tiered patterns.
package items

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ConserveLee/craftbot/app"
	"github.com/ConserveLee/craftbot/internal/blueprint"
	"github.com/ConserveLee/craftbot/internal/craft"
	"github.com/ConserveLee/craftbot/internal/match"
)

// NewItemCommand creates the item command
func NewItemCommand(env func() *app.Env) *cobra.Command {
	var (
		patterns     []string
		patternsFile string
		matchAny     bool
	)

	cmd := &cobra.Command{
		Use:   "item",
		Short: "Apply the calibrated currency until the item matches",
		Long: `Applies the currency at targets/craft-method to the item at targets/craft-item
until the modifier patterns match.

A pattern may end with a tier constraint: "[2]" requires tier 2 exactly and
"[2+]" tier 2 or better. Without one, tier 1 is required.`,
		Example: `  craftbot item --pattern "maximum life[2+]" --pattern "fire resist"
  craftbot item --any --patterns-file ring.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := app.CleanPatterns(patterns)
			if patternsFile != "" {
				fromFile, err := blueprint.LoadPatterns(patternsFile)
				if err != nil {
					return err
				}
				raw = append(raw, fromFile...)
			}
			if len(raw) == 0 {
				return errors.New("at least one pattern is required")
			}

			mode := match.ModeAll
			if matchAny {
				mode = match.ModeAny
			}
			q, err := match.NewQuery(raw, mode)
			if err != nil {
				return err
			}

			_, err = env().Run(cmd.Context(), "item craft", &craft.ItemCrafter{Query: q})
			return err
		},
	}

	cmd.Flags().StringArrayVarP(&patterns, "pattern", "p", nil, "modifier pattern, repeatable")
	cmd.Flags().StringVar(&patternsFile, "patterns-file", "", "file with one pattern per line")
	cmd.Flags().BoolVar(&matchAny, "any", false, "stop when any pattern matches")
	return cmd
}
