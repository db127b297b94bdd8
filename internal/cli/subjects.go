package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"planly/internal/model"
	"planly/internal/store"
	"planly/internal/workload"
)

var subjectsCmd = &cobra.Command{
	Use:     "subjects",
	Short:   "Show the chosen subjects and their workload",
	Aliases: []string{"s"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := nowFunc()
		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(header("#", "Key", "Subject", "Workload"))
		for i, s := range app.store.Subjects() {
			load := app.store.CalculateWorkloadForSubject(s, now)
			t.AppendRow(table.Row{i + 1, string(s), s.Label(), fmt.Sprintf("%d%%", workload.Percent(load))})
		}
		t.Render()
		return nil
	},
}

var allSubjectsCmd = &cobra.Command{
	Use:   "all",
	Short: "List every subject in the catalogue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printCatalogue(cmd.OutOrStdout(), app.store.Subjects())
		return nil
	},
}

func printCatalogue(w io.Writer, chosen []model.Subject) {
	t := newTable(w)
	t.AppendHeader(header("Key", "Subject", "Chosen"))
	for _, s := range model.AllSubjects {
		mark := ""
		if slices.Contains(chosen, s) {
			mark = text.FgHiGreen.Sprint("✔")
		}
		t.AppendRow(table.Row{string(s), s.Label(), mark})
	}
	t.Render()
}

var chooseSubjectsCmd = &cobra.Command{
	Use:   "choose <s1> <s2> <s3> <s4> <s5>",
	Short: "Replace your five subjects",
	RunE: func(cmd *cobra.Command, args []string) error {
		subjects := make([]model.Subject, 0, len(args))
		for _, arg := range args {
			s, err := model.ParseSubject(arg)
			if err != nil {
				return err
			}
			subjects = append(subjects, s)
		}
		if err := app.store.ChooseSubjects(cmd.Context(), subjects); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Subjects saved")
		return nil
	},
}

var pickSubjectsCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose your five subjects interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		final, err := tea.NewProgram(newPicker(app.store.Subjects()), tea.WithContext(cmd.Context())).Run()
		if err != nil {
			return fmt.Errorf("run picker: %w", err)
		}
		p, ok := final.(picker)
		if !ok || !p.saved {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed.")
			return nil
		}
		if err := app.store.ChooseSubjects(cmd.Context(), p.slots); err != nil {
			var verr *store.ValidationError
			if errors.As(err, &verr) {
				return fmt.Errorf("subjects not saved: %s", verr.Message)
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Subjects saved")
		return nil
	},
}

func init() {
	subjectsCmd.AddCommand(allSubjectsCmd, chooseSubjectsCmd, pickSubjectsCmd)
	rootCmd.AddCommand(subjectsCmd)
}
