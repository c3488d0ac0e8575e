// Package clusters crafts cluster jewels with the in-game craft button.
package clusters

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ConserveLee/craftbot/app"
	"github.com/ConserveLee/craftbot/internal/craft"
	"github.com/ConserveLee/craftbot/internal/match"
)

// NewClusterCommand creates the cluster command
func NewClusterCommand(env func() *app.Env) *cobra.Command {
	var patterns []string

	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Press the cluster craft button until every pattern matches",
		Long: `Presses the button at cluster/button-location and reads the jewel 80px above
it. Patterns are case-sensitive and all of them must match.`,
		Example: `  craftbot cluster -p "Burning Bright" -p "Prismatic Heart"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := app.CleanPatterns(patterns)
			if len(raw) == 0 {
				return errors.New("at least one pattern is required")
			}
			compiled, err := match.CompileAll(raw)
			if err != nil {
				return err
			}

			e := env()
			crafter := &craft.ClusterCrafter{
				Patterns: compiled,
				OnAttempt: func(n int) {
					if n%10 == 0 {
						e.Log.Info("Cluster attempt %d", n)
					}
				},
			}
			out, err := e.Run(cmd.Context(), "cluster craft", crafter)
			if err != nil {
				return err
			}
			if out.Cluster != nil {
				e.Printf("crafted: %s\n", out.Cluster)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&patterns, "pattern", "p", nil, "notable pattern, repeatable")
	return cmd
}
