package workload

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"planly/internal/model"
)

var now = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

type fakeSource struct {
	subjects []model.Subject
	tasks    map[model.Subject][]model.Task
}

func (f fakeSource) TasksByDate(date time.Time, subject model.Subject) []model.Task {
	var out []model.Task
	for _, task := range f.tasks[subject] {
		if task.DueOn(date) {
			out = append(out, task)
		}
	}
	return out
}

func (f fakeSource) Subjects() []model.Subject {
	return f.subjects
}

func task(subject model.Subject, p model.Priority, due time.Time, done bool) model.Task {
	return model.Task{ID: due.String(), Title: "task", Subject: subject, Priority: p, DueDate: due, Completed: done}
}

func TestWeight(t *testing.T) {
	assert.Equal(t, 1.0, Weight(model.PriorityLow))
	assert.Equal(t, 2.0, Weight(model.PriorityMedium))
	assert.Equal(t, 3.0, Weight(model.PriorityHigh))
	assert.Equal(t, 1.0, Weight("odd"))
}

func TestDay_NoTasksIsZero(t *testing.T) {
	src := fakeSource{subjects: model.DefaultSubjects()}
	assert.Equal(t, 0.0, Day(src, now, model.SubjectPhysics))
}

func TestDay_SingleHighTask(t *testing.T) {
	src := fakeSource{tasks: map[model.Subject][]model.Task{
		model.SubjectPhysics: {task(model.SubjectPhysics, model.PriorityHigh, now.Add(3*time.Hour), false)},
	}}

	got := Day(src, now, model.SubjectPhysics)
	assert.InDelta(t, math.Pow(3/2.2, 3), got, 1e-12)
	assert.Greater(t, got, 1.0, "day loads are not capped")
}

func TestDay_IgnoresCompletedTasks(t *testing.T) {
	src := fakeSource{tasks: map[model.Subject][]model.Task{
		model.SubjectPhysics: {
			task(model.SubjectPhysics, model.PriorityHigh, now, true),
			task(model.SubjectPhysics, model.PriorityLow, now, false),
		},
	}}
	assert.InDelta(t, math.Pow(1/2.2, 3), Day(src, now, model.SubjectPhysics), 1e-12)
}

func TestDay_WeightsAddUp(t *testing.T) {
	src := fakeSource{tasks: map[model.Subject][]model.Task{
		model.SubjectPhysics: {
			task(model.SubjectPhysics, model.PriorityMedium, now, false),
			task(model.SubjectPhysics, model.PriorityLow, now.Add(time.Hour), false),
		},
		model.SubjectBiology: {task(model.SubjectBiology, model.PriorityHigh, now, false)},
	}}
	assert.InDelta(t, Day(src, now, model.SubjectBiology), Day(src, now, model.SubjectPhysics), 1e-12)
}

func TestSubject_AveragesSevenDays(t *testing.T) {
	src := fakeSource{tasks: map[model.Subject][]model.Task{
		model.SubjectPhysics: {task(model.SubjectPhysics, model.PriorityHigh, now, false)},
	}}
	assert.InDelta(t, math.Pow(3/2.2, 3)/7, Subject(src, model.SubjectPhysics, now), 1e-12)
}

func TestSubject_WindowEndsOnDaySix(t *testing.T) {
	src := fakeSource{tasks: map[model.Subject][]model.Task{
		model.SubjectPhysics: {
			task(model.SubjectPhysics, model.PriorityHigh, now.AddDate(0, 0, 6), false),
			task(model.SubjectPhysics, model.PriorityHigh, now.AddDate(0, 0, 7), false),
			task(model.SubjectPhysics, model.PriorityHigh, now.AddDate(0, 0, -1), false),
		},
	}}
	assert.InDelta(t, math.Pow(3/2.2, 3)/7, Subject(src, model.SubjectPhysics, now), 1e-12)
}

func TestOverall_AveragesChosenSubjects(t *testing.T) {
	src := fakeSource{
		subjects: model.DefaultSubjects(),
		tasks: map[model.Subject][]model.Task{
			model.SubjectPhysics: {task(model.SubjectPhysics, model.PriorityHigh, now, false)},
			// not chosen, must not count
			model.SubjectLegal: {task(model.SubjectLegal, model.PriorityHigh, now, false)},
		},
	}
	assert.InDelta(t, math.Pow(3/2.2, 3)/7/5, Overall(src, now), 1e-12)
}

func TestOverall_ClampsToOne(t *testing.T) {
	src := fakeSource{subjects: model.DefaultSubjects(), tasks: map[model.Subject][]model.Task{}}
	for _, s := range src.subjects {
		for i := 0; i < 10; i++ {
			src.tasks[s] = append(src.tasks[s], task(s, model.PriorityHigh, now, false))
		}
		assert.Greater(t, Subject(src, s, now), 5.0)
	}
	assert.Equal(t, 1.0, Overall(src, now))
}

func TestOverall_NoSubjects(t *testing.T) {
	assert.Equal(t, 0.0, Overall(fakeSource{}, now))
}

func TestLevelAndPercent(t *testing.T) {
	assert.Equal(t, Light, LevelOf(0))
	assert.Equal(t, Light, LevelOf(0.29))
	assert.Equal(t, Moderate, LevelOf(0.3))
	assert.Equal(t, Moderate, LevelOf(0.69))
	assert.Equal(t, Heavy, LevelOf(0.7))
	assert.Equal(t, Heavy, LevelOf(2.5))
	assert.Equal(t, "Moderate workload - stay focused!", Moderate.Message())

	assert.Equal(t, 0, Percent(0))
	assert.Equal(t, 36, Percent(0.364))
	assert.Equal(t, 100, Percent(2.56))
}
