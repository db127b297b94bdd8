package cli

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"planly/internal/model"
	"planly/internal/service"
	"planly/internal/workload"
)

var (
	taskDue         string
	taskPriority    string
	taskDescription string
	taskDate        string
	taskAll         bool
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Short:   "Add, complete and list tasks",
	Aliases: []string{"t"},
}

var addTaskCmd = &cobra.Command{
	Use:     "add <subject> <title>",
	Short:   "Add a task to a subject",
	Args:    cobra.MinimumNArgs(2),
	Aliases: []string{"new", "n"},
	RunE: func(cmd *cobra.Command, args []string) error {
		now := nowFunc()
		subject, err := model.ParseSubject(args[0])
		if err != nil {
			return err
		}

		input := service.TaskInput{
			Title:       strings.Join(args[1:], " "),
			Description: taskDescription,
		}
		if taskDue != "" {
			due, err := parseDate(taskDue, now)
			if err != nil {
				return err
			}
			input.Due = &due
		}
		if taskPriority != "" {
			p, err := model.ParsePriority(taskPriority)
			if err != nil {
				return err
			}
			input.Priority = p
		}

		task, err := app.tasks.CreateTask(cmd.Context(), subject, input, now)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Added %q to %s (id %s, due %s)\n",
			task.Title, subject.Label(), task.ID, task.DueDate.Format(dateLayout))
		return nil
	},
}

var doneTaskCmd = &cobra.Command{
	Use:   "done <subject> <id>",
	Short: "Mark a task as done",
	Long:  "Mark a task as done. A unique id prefix is enough.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := model.ParseSubject(args[0])
		if err != nil {
			return err
		}
		id, found := resolveTaskID(subject, args[1])
		if err := app.tasks.CompleteTask(cmd.Context(), subject, id); err != nil {
			return err
		}
		if !found {
			log.Printf("no task %q in %s, nothing changed", args[1], subject.Label())
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Task %s done\n", id)
		return nil
	},
}

// resolveTaskID expands a unique id prefix to the full id. Anything else is
// passed through unchanged.
func resolveTaskID(subject model.Subject, raw string) (string, bool) {
	var matches []string
	for _, task := range app.store.TasksBySubject(subject) {
		if task.ID == raw {
			return raw, true
		}
		if strings.HasPrefix(task.ID, raw) {
			matches = append(matches, task.ID)
		}
	}
	if len(matches) == 1 {
		return matches[0], true
	}
	return raw, false
}

var listTaskCmd = &cobra.Command{
	Use:     "list [subject]",
	Short:   "List pending tasks, optionally for one subject and day",
	Args:    cobra.MaximumNArgs(1),
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			if taskDate != "" {
				return fmt.Errorf("--date needs a subject")
			}
			printTasks(cmd.OutOrStdout(), visible(app.store.AllTasks()))
			return nil
		}
		subject, err := model.ParseSubject(args[0])
		if err != nil {
			return err
		}
		if taskDate == "" {
			printTasks(cmd.OutOrStdout(), visible(app.store.TasksBySubject(subject)))
			return nil
		}
		day, err := parseDate(taskDate, nowFunc())
		if err != nil {
			return err
		}
		printTasks(cmd.OutOrStdout(), visible(app.store.TasksByDate(day, subject)))
		return nil
	},
}

func priorityNames() string {
	names := make([]string, 0, len(model.Priorities))
	for _, p := range model.Priorities {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

// visible drops completed tasks unless --all is set.
func visible(tasks []model.Task) []model.Task {
	if taskAll {
		return tasks
	}
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if !task.Completed {
			out = append(out, task)
		}
	}
	return out
}

var weekTaskCmd = &cobra.Command{
	Use:   "week <subject>",
	Short: "Show pending tasks and load for the next seven days",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := model.ParseSubject(args[0])
		if err != nil {
			return err
		}
		now := nowFunc()
		days := make([]service.DayLoad, 0, workload.WindowDays)
		for i := 0; i < workload.WindowDays; i++ {
			day := now.AddDate(0, 0, i)
			days = append(days, service.DayLoad{
				Date:    day,
				Pending: len(app.tasks.Pending(subject, day)),
				Load:    app.store.CalculateWorkloadForDay(day, subject),
			})
		}
		printWeek(cmd.OutOrStdout(), subject, days)
		return nil
	},
}

func init() {
	taskCmd.AddCommand(addTaskCmd, doneTaskCmd, listTaskCmd, weekTaskCmd)
	rootCmd.AddCommand(taskCmd)

	addTaskCmd.Flags().StringVar(&taskDue, "due", "", "due date (YYYY-MM-DD, default today)")
	addTaskCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "one of "+priorityNames()+" (default medium)")
	addTaskCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "optional description")
	listTaskCmd.Flags().StringVar(&taskDate, "date", "", "only tasks due on this day (YYYY-MM-DD)")
	listTaskCmd.Flags().BoolVarP(&taskAll, "all", "a", false, "include completed tasks")
}

