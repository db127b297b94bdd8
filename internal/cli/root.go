package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"planly/internal/config"
)

const annotationNoStore = "planly/no-store"

var (
	cfgPath   string
	verbose   bool
	ephemeral bool

	// app is built before every command that needs the store and closed after it.
	app *application

	nowFunc = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "planly",
	Short: "Track study tasks per subject and keep an eye on your workload",
	Long: `planly keeps a list of tasks for each of your five subjects and turns the
pending work of the coming week into a workload score.

Run without a command to show the current page.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[annotationNoStore] == "true" {
			return nil
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if ephemeral {
			cfg.Storage = config.DriverMemory
		}
		a, err := openApp(cmd.Context(), cfg, nowFunc())
		if err != nil {
			return err
		}
		app = a
		if err := app.store.LoadError(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  saved state could not be loaded (%v), using defaults. The next change overwrites it.\n", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		err := app.Close()
		app = nil
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return showPage(cmd.OutOrStdout(), nowFunc())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $PLANLY_CONFIG or <user config dir>/planly/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every saved change")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep state in memory only")
}

// Execute runs the command line against ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
