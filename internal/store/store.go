// Package store owns the planner state: the page selector, the chosen
// curriculum, the per-subject task lists and the window flag. Every mutation
// is written to durable storage before subscribers are told about it.
package store

import (
	"context"
	"log"
	"slices"
	"sort"
	"sync"
	"time"

	"planly/internal/model"
	"planly/internal/workload"
)

type state struct {
	page         model.Page
	subjects     []model.Subject
	windowClosed bool
	tasks        map[model.Subject][]model.Task
}

func defaultState() state {
	return state{
		page:     model.PageHome,
		subjects: model.DefaultSubjects(),
		tasks:    map[model.Subject][]model.Task{},
	}
}

// Store is the single source of truth for the planner.
type Store struct {
	mu      sync.RWMutex
	st      state
	persist persister
	loadErr error

	subMu     sync.Mutex
	nextSubID int
	subs      map[int]func()
}

// Option configures Open.
type Option func(*Store)

// WithSlotKey overrides the storage slot name.
func WithSlotKey(key string) Option {
	return func(s *Store) {
		s.persist.key = key
	}
}

// Open rehydrates the store from kv and rolls stale tasks over relative to
// now. A missing slot yields the defaults. An unreadable slot also yields the
// defaults; the failure is logged and kept in LoadError.
func Open(ctx context.Context, kv KeyValue, now time.Time, opts ...Option) *Store {
	s := &Store{
		st:      defaultState(),
		persist: persister{kv: kv, key: SlotKey},
		subs:    map[int]func(){},
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, found, err := s.persist.load(ctx)
	if err != nil {
		log.Printf("load state: %v, starting from defaults", err)
		s.loadErr = err
		return s
	}
	if !found {
		return s
	}

	st, err := restore(snap)
	if err != nil {
		log.Printf("load state: %v, using default subjects", err)
		s.loadErr = &PersistenceError{Op: "decode", Key: s.persist.key, Err: err}
	}
	if dropped, moved := rollOver(st.tasks, now); dropped+moved > 0 {
		log.Printf("rolled over stale tasks: %d dropped, %d moved to today", dropped, moved)
	}
	s.st = st
	return s
}

// LoadError returns the failure that forced Open to fall back to defaults.
func (s *Store) LoadError() error {
	return s.loadErr
}

// OnChange registers fn to run after every mutation. The returned func
// removes it again.
func (s *Store) OnChange(fn func()) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// mutate applies fn, persists the result and notifies subscribers. A failed
// write does not undo fn.
func (s *Store) mutate(ctx context.Context, fn func(st *state)) error {
	s.mu.Lock()
	fn(&s.st)
	err := s.persist.save(ctx, s.st)
	s.mu.Unlock()

	s.notify()
	return err
}

func (s *Store) SetPage(ctx context.Context, page model.Page) error {
	return s.mutate(ctx, func(st *state) {
		st.page = page
	})
}

func (s *Store) SetWindowClosed(ctx context.Context, closed bool) error {
	return s.mutate(ctx, func(st *state) {
		st.windowClosed = closed
	})
}

// SetTasks replaces the whole task list of subject.
func (s *Store) SetTasks(ctx context.Context, subject model.Subject, tasks []model.Task) error {
	list := slices.Clone(tasks)
	return s.mutate(ctx, func(st *state) {
		st.tasks[subject] = list
	})
}

// AddTask appends task to subject's list. Id uniqueness is the caller's job.
func (s *Store) AddTask(ctx context.Context, subject model.Subject, task model.Task) error {
	return s.mutate(ctx, func(st *state) {
		st.tasks[subject] = append(st.tasks[subject], task)
	})
}

// MarkTaskAsDone completes the task with taskID in subject. Unknown ids and
// subjects leave the lists untouched.
func (s *Store) MarkTaskAsDone(ctx context.Context, subject model.Subject, taskID string) error {
	return s.mutate(ctx, func(st *state) {
		list, ok := st.tasks[subject]
		if !ok {
			return
		}
		updated := slices.Clone(list)
		for i := range updated {
			if updated[i].ID == taskID {
				updated[i].Completed = true
			}
		}
		st.tasks[subject] = updated
	})
}

// ChooseSubjects replaces the curriculum. It fails with a *ValidationError
// unless subjects holds exactly five distinct catalogue subjects.
func (s *Store) ChooseSubjects(ctx context.Context, subjects []model.Subject) error {
	if !model.ValidSubjectSet(subjects) {
		return &ValidationError{Field: "subjects", Message: ErrSubjectCount}
	}
	chosen := slices.Clone(subjects)
	return s.mutate(ctx, func(st *state) {
		st.subjects = chosen
	})
}

func (s *Store) Page() model.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.page
}

func (s *Store) WindowClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.windowClosed
}

// Subjects returns the chosen curriculum in the order it was chosen.
func (s *Store) Subjects() []model.Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.st.subjects)
}

// AllTasks concatenates every list: catalogue subjects in catalogue order,
// then any other keys in lexical order.
func (s *Store) AllTasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []model.Task
	for _, subject := range model.AllSubjects {
		all = append(all, s.st.tasks[subject]...)
	}

	var extra []model.Subject
	for subject := range s.st.tasks {
		if !subject.Valid() {
			extra = append(extra, subject)
		}
	}
	slices.Sort(extra)
	for _, subject := range extra {
		all = append(all, s.st.tasks[subject]...)
	}
	if all == nil {
		return []model.Task{}
	}
	return all
}

// TasksBySubject returns subject's list, empty when none was recorded.
func (s *Store) TasksBySubject(subject model.Subject) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := slices.Clone(s.st.tasks[subject])
	if list == nil {
		return []model.Task{}
	}
	return list
}

// TasksByDate returns subject's tasks due on date's calendar day, completed
// or not, in list order.
func (s *Store) TasksByDate(date time.Time, subject model.Subject) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Task{}
	for _, task := range s.st.tasks[subject] {
		if task.DueOn(date) {
			out = append(out, task)
		}
	}
	return out
}

func (s *Store) CalculateWorkloadForDay(date time.Time, subject model.Subject) float64 {
	return workload.Day(s, date, subject)
}

func (s *Store) CalculateWorkloadForSubject(subject model.Subject, now time.Time) float64 {
	return workload.Subject(s, subject, now)
}

func (s *Store) CalculateWorkload(now time.Time) float64 {
	return workload.Overall(s, now)
}
