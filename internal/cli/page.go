package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"planly/internal/model"
)

var pageCmd = &cobra.Command{
	Use:   "page [home|subject]",
	Short: "Show or switch the current page",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), app.store.Page().Label())
			return nil
		}
		page, err := model.ParsePage(args[0])
		if err != nil {
			return err
		}
		if err := app.store.SetPage(cmd.Context(), page); err != nil {
			return err
		}
		return showPage(cmd.OutOrStdout(), nowFunc())
	},
}

var windowCmd = &cobra.Command{
	Use:       "window open|close",
	Short:     "Open or close the planner window",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"open", "close"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var closed bool
		switch args[0] {
		case "open":
			closed = false
		case "close":
			closed = true
		default:
			return fmt.Errorf("expected open or close, got %q", args[0])
		}
		if err := app.store.SetWindowClosed(cmd.Context(), closed); err != nil {
			return err
		}
		if closed {
			fmt.Fprintln(cmd.OutOrStdout(), "Window closed.")
			return nil
		}
		return showPage(cmd.OutOrStdout(), nowFunc())
	},
}

// showPage prints whatever the stored page selector points at.
func showPage(w io.Writer, now time.Time) error {
	if app.store.WindowClosed() {
		fmt.Fprintln(w, "The planner window is closed. Run `planly window open` to bring it back.")
		return nil
	}
	page := app.store.Page()
	subject, ok := page.Subject()
	if !ok {
		showHome(w, now)
		return nil
	}
	showSubject(w, subject, now)
	return nil
}

func showHome(w io.Writer, now time.Time) {
	fmt.Fprintln(w, "Study Planly")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Your subjects:")
	for _, s := range app.store.Subjects() {
		fmt.Fprintf(w, "  • %s\n", s.Label())
	}
	fmt.Fprintln(w)
	printWorkload(w, "Overall workload", app.store.CalculateWorkload(now))
}

func showSubject(w io.Writer, subject model.Subject, now time.Time) {
	fmt.Fprintln(w, subject.Label())
	fmt.Fprintln(w)
	today := app.tasks.Pending(subject, now)
	if len(today) == 0 {
		fmt.Fprintln(w, "Nothing to do today. Time to relax ✨")
	} else {
		fmt.Fprintln(w, "Today:")
		printTasks(w, today)
	}
	fmt.Fprintln(w)
	printWorkload(w, "Workload", app.store.CalculateWorkloadForSubject(subject, now))
}

func init() {
	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(windowCmd)
}
