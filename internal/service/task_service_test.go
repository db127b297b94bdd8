package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planly/internal/model"
	"planly/internal/repository"
	"planly/internal/store"
)

var now = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.Open(context.Background(), repository.NewMemorySlots(), now)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "id-" + strings.Repeat("x", n)
	}
}

func TestCreateTask_Defaults(t *testing.T) {
	st := newTestStore(t)
	svc := NewTaskService(st)

	task, err := svc.CreateTask(context.Background(), model.SubjectPhysics, TaskInput{
		Title:       "  Kinematics sheet  ",
		Description: "  questions 1-10 ",
	}, now)
	require.NoError(t, err)

	assert.Len(t, task.ID, 36)
	assert.Equal(t, "Kinematics sheet", task.Title)
	assert.Equal(t, "questions 1-10", task.Description)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, now, task.DueDate)
	assert.Equal(t, now, task.CreatedAt)
	assert.Equal(t, model.SubjectPhysics, task.Subject)
	assert.False(t, task.Completed)

	assert.Equal(t, []model.Task{*task}, st.TasksBySubject(model.SubjectPhysics))
}

func TestCreateTask_FutureDue(t *testing.T) {
	svc := NewTaskService(newTestStore(t))
	due := now.AddDate(0, 0, 3)

	task, err := svc.CreateTask(context.Background(), model.SubjectBiology, TaskInput{
		Title:    "Cell biology notes",
		Due:      &due,
		Priority: model.PriorityHigh,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, due, task.DueDate)
	assert.Equal(t, model.PriorityHigh, task.Priority)
}

func TestCreateTask_EarlierToday(t *testing.T) {
	svc := NewTaskService(newTestStore(t))
	due := time.Date(2026, 10, 17, 1, 0, 0, 0, time.UTC)

	_, err := svc.CreateTask(context.Background(), model.SubjectBiology, TaskInput{
		Title: "Morning quiz",
		Due:   &due,
	}, now)
	assert.NoError(t, err)
}

func TestCreateTask_Validation(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	var zero time.Time

	tests := []struct {
		name    string
		subject model.Subject
		input   TaskInput
		field   string
		message string
	}{
		{"unknown subject", "astrology", TaskInput{Title: "Horoscope"}, "subject", "Subject is not in the catalogue"},
		{"empty title", model.SubjectPhysics, TaskInput{Title: "   "}, "title", "Task name is required"},
		{"short title", model.SubjectPhysics, TaskInput{Title: "ab"}, "title", "Task name must be between 3 and 100 characters"},
		{"long title", model.SubjectPhysics, TaskInput{Title: strings.Repeat("a", 101)}, "title", "Task name must be between 3 and 100 characters"},
		{"due yesterday", model.SubjectPhysics, TaskInput{Title: "Late one", Due: &yesterday}, "dueDate", "Due date is invalid"},
		{"zero due", model.SubjectPhysics, TaskInput{Title: "No date", Due: &zero}, "dueDate", "Due date is invalid"},
		{"bad priority", model.SubjectPhysics, TaskInput{Title: "Urgent", Priority: "urgent"}, "priority", "Priority must be low, medium or high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t)
			svc := NewTaskService(st)

			_, err := svc.CreateTask(context.Background(), tt.subject, tt.input, now)

			var verr *store.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
			assert.Empty(t, st.AllTasks())
		})
	}
}

func TestCreateTask_TitleLengthCountsRunes(t *testing.T) {
	svc := NewTaskService(newTestStore(t))

	_, err := svc.CreateTask(context.Background(), model.SubjectLanguages, TaskInput{Title: "日本語"}, now)
	assert.NoError(t, err)
}

func TestCompleteTaskAndPending(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := NewTaskService(st)
	svc.newID = sequentialIDs()

	first, err := svc.CreateTask(ctx, model.SubjectMethods, TaskInput{Title: "Integration drill"}, now)
	require.NoError(t, err)
	second, err := svc.CreateTask(ctx, model.SubjectMethods, TaskInput{Title: "Past paper"}, now)
	require.NoError(t, err)

	require.NoError(t, svc.CompleteTask(ctx, model.SubjectMethods, first.ID))

	pending := svc.Pending(model.SubjectMethods, now)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
	assert.Empty(t, svc.Pending(model.SubjectMethods, now.AddDate(0, 0, 1)))
}
