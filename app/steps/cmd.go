// Package steps runs and authors blueprint step chains.
package steps

import (
	"github.com/spf13/cobra"

	"github.com/ConserveLee/craftbot/app"
	"github.com/ConserveLee/craftbot/internal/blueprint"
	"github.com/ConserveLee/craftbot/internal/calibration"
	"github.com/ConserveLee/craftbot/internal/craft"
)

// NewStepsCommand creates the steps command tree
func NewStepsCommand(env func() *app.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steps <blueprint>",
		Short: "Run a step chain from a blueprint file",
		Long: `Runs each step of the blueprint against the item at targets/craft-item.

A step applies its currency until its condition matches a modifier, then goes
to on_success. When max_attempts runs out it goes to on_failure; -1 stops.`,
		Example: "  craftbot steps alt-regal.yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bp, err := blueprint.Load(args[0])
			if err != nil {
				return err
			}
			chain, err := bp.Chain()
			if err != nil {
				return err
			}
			_, err = env().Run(cmd.Context(), "step craft", craft.NewSequencer(chain))
			return err
		},
	}

	cmd.AddCommand(newCheckCommand(env), newInitCommand(env))
	return cmd
}

// newCheckCommand validates a blueprint and reports uncalibrated currencies
func newCheckCommand(env func() *app.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "check <blueprint>",
		Short: "Validate a blueprint against the calibration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := env()
			bp, err := blueprint.Load(args[0])
			if err != nil {
				return err
			}
			chain, err := bp.Chain()
			if err != nil {
				return err
			}

			for i, st := range chain {
				mode := "until /" + bp.Steps[i].ConditionRegex + "/"
				if st.AutoSuccess {
					mode = "once"
				}
				e.Printf("%d: %s %s, max %d, success -> %s, failure -> %s\n",
					i, st.Method, mode, st.MaxAttempts, st.OnSuccess, st.OnFailure)
			}
			for _, currency := range bp.Currencies() {
				if _, ok := e.Store.Lookup(calibration.SectionCurrency, currency); !ok {
					e.Log.Warn("currency/%s is not calibrated.", currency)
				}
			}
			return nil
		},
	}
}

// newInitCommand writes an example blueprint to start editing from
func newInitCommand(env func() *app.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "init <file>",
		Short: "Write an example alteration/regal blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bp := &blueprint.Blueprint{
				Name: "alt-regal",
				Steps: []blueprint.StepRecord{
					{
						ConditionRegex: `quality: \+20%`,
						Currency:       "alteration",
						OnFailure:      blueprint.Index(0),
						OnSuccess:      blueprint.Index(1),
						MaxAttempts:    5,
						Logic:          blueprint.LogicRegex,
					},
					{
						Currency:    "regal",
						AutoSuccess: true,
						OnSuccess:   blueprint.Index(2),
						Logic:       blueprint.LogicAuto,
					},
				},
			}
			if err := blueprint.Save(args[0], bp); err != nil {
				return err
			}
			env().Printf("wrote %s\n", args[0])
			return nil
		},
	}
}
