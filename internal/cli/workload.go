package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"planly/internal/model"
)

var workloadCmd = &cobra.Command{
	Use:     "workload [subject]",
	Short:   "Show the overall or per-subject workload",
	Args:    cobra.MaximumNArgs(1),
	Aliases: []string{"w"},
	RunE: func(cmd *cobra.Command, args []string) error {
		now := nowFunc()
		if len(args) == 0 {
			printWorkload(cmd.OutOrStdout(), "Overall workload", app.store.CalculateWorkload(now))
			return nil
		}
		subject, err := model.ParseSubject(args[0])
		if err != nil {
			return err
		}
		title := fmt.Sprintf("%s workload", subject.Label())
		printWorkload(cmd.OutOrStdout(), title, app.store.CalculateWorkloadForSubject(subject, now))
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard for all chosen subjects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.OutOrStdout(), app.reports.Build(nowFunc()).String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workloadCmd)
	rootCmd.AddCommand(reportCmd)
}
