package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"planly/internal/model"
)

func TestRollOverBoundaries(t *testing.T) {
	now := time.Date(2026, 10, 17, 8, 15, 0, 0, time.UTC)
	tasks := map[model.Subject][]model.Task{
		model.SubjectHistory: {
			{ID: "late-yesterday", DueDate: time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC)},
			{ID: "done-yesterday", DueDate: time.Date(2026, 10, 16, 1, 0, 0, 0, time.UTC), Completed: true},
			{ID: "midnight-today", DueDate: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), Completed: true},
			{ID: "next-week", DueDate: time.Date(2026, 10, 24, 9, 0, 0, 0, time.UTC)},
		},
		model.SubjectMedia: {
			{ID: "ancient-done", DueDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Completed: true},
		},
	}

	dropped, moved := rollOver(tasks, now)

	assert.Equal(t, 2, dropped)
	assert.Equal(t, 1, moved)
	history := tasks[model.SubjectHistory]
	if assert.Len(t, history, 3) {
		assert.Equal(t, "late-yesterday", history[0].ID)
		assert.Equal(t, now, history[0].DueDate)
		assert.Equal(t, "midnight-today", history[1].ID)
		assert.Equal(t, "next-week", history[2].ID)
	}
	assert.Empty(t, tasks[model.SubjectMedia])
}

func TestRollOverUsesNowLocation(t *testing.T) {
	plus10 := time.FixedZone("AEST", 10*3600)
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, plus10)
	due := time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC) // 17 Oct 06:00 at +10
	tasks := map[model.Subject][]model.Task{
		model.SubjectLegal: {{ID: "a", DueDate: due}},
	}

	dropped, moved := rollOver(tasks, now)

	assert.Zero(t, dropped)
	assert.Zero(t, moved)
	assert.Equal(t, due, tasks[model.SubjectLegal][0].DueDate)
}
