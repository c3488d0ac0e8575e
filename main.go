package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ConserveLee/craftbot/app"
	"github.com/ConserveLee/craftbot/app/calibrate"
	"github.com/ConserveLee/craftbot/app/clusters"
	"github.com/ConserveLee/craftbot/app/items"
	"github.com/ConserveLee/craftbot/app/maps"
	"github.com/ConserveLee/craftbot/app/steps"
	"github.com/ConserveLee/craftbot/app/tools"
	"github.com/ConserveLee/craftbot/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		env             *app.Env
		debug           bool
		calibrationFile string
	)
	getEnv := func() *app.Env { return env }

	root := &cobra.Command{
		Use:           "craftbot",
		Short:         "Crafting macros for Path of Exile",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if debug {
				cfg.LogLevel = "debug"
			}
			if calibrationFile != "" {
				cfg.CalibrationFile = calibrationFile
			}

			env, err = app.NewEnv(cfg, cmd.OutOrStdout())
			return err
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "log debug output")
	root.PersistentFlags().StringVar(&calibrationFile, "calibration-file", "", "calibration file (default from CRAFTBOT_CALIBRATION_FILE)")

	root.AddCommand(
		calibrate.NewCalibrateCommand(getEnv),
		items.NewItemCommand(getEnv),
		steps.NewStepsCommand(getEnv),
		clusters.NewClusterCommand(getEnv),
		maps.NewMapCommand(getEnv),
		tools.NewToolsCommand(getEnv),
	)
	return root
}
