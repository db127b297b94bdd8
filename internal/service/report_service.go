package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"planly/internal/model"
	"planly/internal/store"
	"planly/internal/workload"
)

// upcomingDays is how many days after today the report previews.
const upcomingDays = 6

// DayLoad is the pending work of one subject on one day.
type DayLoad struct {
	Date    time.Time
	Pending int
	Load    float64
}

// SubjectReport summarises one chosen subject.
type SubjectReport struct {
	Subject  model.Subject
	Load     float64
	Today    []model.Task
	Upcoming []DayLoad
}

// Report is the dashboard for one instant.
type Report struct {
	Now      time.Time
	Overall  float64
	Level    workload.Level
	Subjects []SubjectReport
}

// ReportService builds human-readable summaries of the planner.
type ReportService struct {
	store *store.Store
	tasks *TaskService
}

func NewReportService(st *store.Store, tasks *TaskService) *ReportService {
	return &ReportService{store: st, tasks: tasks}
}

func (s *ReportService) Build(now time.Time) Report {
	overall := s.store.CalculateWorkload(now)
	report := Report{
		Now:     now,
		Overall: overall,
		Level:   workload.LevelOf(overall),
	}

	for _, subject := range s.store.Subjects() {
		today := s.tasks.Pending(subject, now)
		sortByUrgency(today)

		sr := SubjectReport{
			Subject: subject,
			Load:    s.store.CalculateWorkloadForSubject(subject, now),
			Today:   today,
		}
		for i := 1; i <= upcomingDays; i++ {
			day := now.AddDate(0, 0, i)
			sr.Upcoming = append(sr.Upcoming, DayLoad{
				Date:    day,
				Pending: len(s.tasks.Pending(subject, day)),
				Load:    s.store.CalculateWorkloadForDay(day, subject),
			})
		}
		report.Subjects = append(report.Subjects, sr)
	}
	return report
}

// sortByUrgency puts high priority first, then older tasks.
func sortByUrgency(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		wi, wj := workload.Weight(tasks[i].Priority), workload.Weight(tasks[j].Priority)
		if wi != wj {
			return wi > wj
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}

func (r Report) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 Study Planly - %s\n", r.Now.Format("Mon 02 Jan 2006")))
	b.WriteString(fmt.Sprintf("Overall workload: %d%%\n", workload.Percent(r.Overall)))
	b.WriteString(r.Level.Message() + "\n")

	for _, sr := range r.Subjects {
		b.WriteString(fmt.Sprintf("\n%s (%d%%)\n", sr.Subject.Label(), workload.Percent(sr.Load)))
		if len(sr.Today) == 0 {
			b.WriteString("  Nothing to do today\n")
		} else {
			for _, task := range sr.Today {
				b.WriteString(fmt.Sprintf("  - [%s] %s\n", task.Priority, task.Title))
			}
		}
		days := make([]string, 0, len(sr.Upcoming))
		for _, d := range sr.Upcoming {
			days = append(days, fmt.Sprintf("%s %d", d.Date.Format("Mon"), d.Pending))
		}
		b.WriteString("  Upcoming: " + strings.Join(days, " | ") + "\n")
	}
	return b.String()
}
