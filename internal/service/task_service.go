package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"planly/internal/model"
	"planly/internal/store"
)

const (
	minTitleLen = 3
	maxTitleLen = 100
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	Due         *time.Time
	Priority    model.Priority
}

// TaskService validates new tasks before they reach the store.
type TaskService struct {
	store *store.Store
	newID func() string
}

func NewTaskService(st *store.Store) *TaskService {
	return &TaskService{store: st, newID: uuid.NewString}
}

// CreateTask checks input, fills in id, creation time and defaults, and adds
// the task to subject. Validation failures are *store.ValidationError.
func (s *TaskService) CreateTask(ctx context.Context, subject model.Subject, input TaskInput, now time.Time) (*model.Task, error) {
	if !subject.Valid() {
		return nil, &store.ValidationError{Field: "subject", Message: "Subject is not in the catalogue"}
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, &store.ValidationError{Field: "title", Message: "Task name is required"}
	}
	if n := utf8.RuneCountInString(title); n < minTitleLen || n > maxTitleLen {
		return nil, &store.ValidationError{Field: "title", Message: "Task name must be between 3 and 100 characters"}
	}

	due := now
	if input.Due != nil {
		if input.Due.IsZero() || model.StartOfDay(input.Due.In(now.Location())).Before(model.StartOfDay(now)) {
			return nil, &store.ValidationError{Field: "dueDate", Message: "Due date is invalid"}
		}
		due = *input.Due
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, &store.ValidationError{Field: "priority", Message: "Priority must be low, medium or high"}
	}

	task := model.Task{
		ID:          s.newID(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		DueDate:     due,
		Subject:     subject,
		Priority:    priority,
		CreatedAt:   now,
	}

	if err := s.store.AddTask(ctx, subject, task); err != nil {
		return &task, err
	}
	return &task, nil
}

// CompleteTask marks the task done. Unknown ids are ignored by the store.
func (s *TaskService) CompleteTask(ctx context.Context, subject model.Subject, taskID string) error {
	return s.store.MarkTaskAsDone(ctx, subject, taskID)
}

// Pending returns the incomplete tasks of subject due on day.
func (s *TaskService) Pending(subject model.Subject, day time.Time) []model.Task {
	var pending []model.Task
	for _, task := range s.store.TasksByDate(day, subject) {
		if !task.Completed {
			pending = append(pending, task)
		}
	}
	return pending
}
