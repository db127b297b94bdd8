package store

import (
	"time"

	"planly/internal/model"
)

// rollOver applies the load-time stale task pass. A task due yesterday or
// earlier is dropped when completed and moved to now otherwise.
func rollOver(tasks map[model.Subject][]model.Task, now time.Time) (dropped, moved int) {
	yesterday := model.StartOfDay(now).AddDate(0, 0, -1)

	for subject, list := range tasks {
		kept := list[:0]
		for _, task := range list {
			due := model.StartOfDay(task.DueDate.In(now.Location()))
			if !due.After(yesterday) {
				if task.Completed {
					dropped++
					continue
				}
				task.DueDate = now
				moved++
			}
			kept = append(kept, task)
		}
		tasks[subject] = kept
	}
	return dropped, moved
}
