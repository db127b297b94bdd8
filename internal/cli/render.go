package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"planly/internal/model"
	"planly/internal/service"
	"planly/internal/workload"
)

const (
	dateLayout = "2006-01-02"
	barWidth   = 20
)

func levelColor(l workload.Level) *color.Color {
	switch l {
	case workload.Light:
		return color.New(color.FgGreen)
	case workload.Moderate:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

// workloadBar draws load as a fixed width bar with its percentage.
func workloadBar(load float64) string {
	pct := workload.Percent(load)
	filled := pct * barWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("%s %3d%%", levelColor(workload.LevelOf(load)).Sprint(bar), pct)
}

func printWorkload(w io.Writer, title string, load float64) {
	fmt.Fprintf(w, "%s\n%s\n", title, workloadBar(load))
	level := workload.LevelOf(load)
	levelColor(level).Fprintln(w, level.Message())
}

func priorityText(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return text.FgHiRed.Sprint(string(p))
	case model.PriorityMedium:
		return text.FgHiYellow.Sprint(string(p))
	case model.PriorityLow:
		return text.FgHiGreen.Sprint(string(p))
	default:
		return string(p)
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = false
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func header(cols ...string) table.Row {
	row := make(table.Row, 0, len(cols))
	for _, c := range cols {
		row = append(row, text.FgGreen.Sprint(c))
	}
	return row
}

func printTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	t := newTable(w)
	t.AppendHeader(header("ID", "Subject", "Title", "Priority", "Due", "Status"))
	for _, task := range tasks {
		status := text.FgHiRed.Sprint("pending")
		if task.Completed {
			status = text.FgHiGreen.Sprint("done")
		}
		t.AppendRow(table.Row{
			task.ID,
			task.Subject.Label(),
			task.Title,
			priorityText(task.Priority),
			task.DueDate.Format(dateLayout),
			status,
		})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d tasks", len(tasks))})
	t.Render()
}

func printWeek(w io.Writer, subject model.Subject, days []service.DayLoad) {
	t := newTable(w)
	t.SetTitle(subject.Label())
	t.AppendHeader(header("Day", "Date", "Pending", "Load"))
	for _, d := range days {
		t.AppendRow(table.Row{
			d.Date.Format("Mon"),
			d.Date.Format(dateLayout),
			d.Pending,
			fmt.Sprintf("%.2f", d.Load),
		})
	}
	t.Render()
}

func parseDate(raw string, now time.Time) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, raw, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return d, nil
}
