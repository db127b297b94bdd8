// Package workload scores how much pending study work sits on a day, a
// subject and the whole curriculum. Scores are derived on demand and never
// stored.
package workload

import (
	"math"
	"time"

	"planly/internal/model"
)

const (
	// Threshold is the weighted daily load considered comfortable.
	Threshold = 2.2
	// WindowDays is the look-ahead used for subject averages, today included.
	WindowDays = 7
)

// Source is the read side of the task store.
type Source interface {
	TasksByDate(date time.Time, subject model.Subject) []model.Task
	Subjects() []model.Subject
}

// Weight maps a priority to its share of the daily load.
func Weight(p model.Priority) float64 {
	switch p {
	case model.PriorityHigh:
		return 3
	case model.PriorityMedium:
		return 2
	default:
		return 1
	}
}

// Score turns a weighted sum of pending work into a load on a cubic curve.
// Loads under the threshold flatten towards zero, loads above it grow fast.
func Score(sum float64) float64 {
	return math.Pow(sum/Threshold, 3)
}

// Sum adds up the weights of the incomplete tasks.
func Sum(tasks []model.Task) float64 {
	var sum float64
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		sum += Weight(task.Priority)
	}
	return sum
}

// Day is the load of subject on date's calendar day. It is not capped.
func Day(src Source, date time.Time, subject model.Subject) float64 {
	return Score(Sum(src.TasksByDate(date, subject)))
}

// Subject averages the day loads of the week starting on now's day.
func Subject(src Source, subject model.Subject, now time.Time) float64 {
	var total float64
	for i := 0; i < WindowDays; i++ {
		total += Day(src, now.AddDate(0, 0, i), subject)
	}
	return total / WindowDays
}

// Overall averages the subject loads of the chosen curriculum and clamps the
// result to [0, 1].
func Overall(src Source, now time.Time) float64 {
	subjects := src.Subjects()
	if len(subjects) == 0 {
		return 0
	}
	var total float64
	for _, subject := range subjects {
		total += Subject(src, subject, now)
	}
	return Clamp(total / float64(len(subjects)))
}

func Clamp(load float64) float64 {
	return math.Max(0, math.Min(load, 1))
}
