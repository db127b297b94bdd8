package store

import (
	"context"
	"encoding/json"
	"fmt"

	"planly/internal/model"
)

// SlotKey names the slot holding the whole store state.
const SlotKey = "store"

// KeyValue is the durable storage the store is persisted to.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// snapshot is the on-disk layout. Pointer fields tell a missing field apart
// from a zero value so each one can fall back to its default on its own.
type snapshot struct {
	Page         *model.Page                    `json:"page,omitempty"`
	Subjects     []model.Subject                `json:"subjects,omitempty"`
	WindowClosed *bool                          `json:"windowClosed,omitempty"`
	Tasks        map[model.Subject][]model.Task `json:"tasks"`
}

type persister struct {
	kv  KeyValue
	key string
}

func (p persister) load(ctx context.Context) (snapshot, bool, error) {
	raw, ok, err := p.kv.Get(ctx, p.key)
	if err != nil {
		return snapshot{}, false, &PersistenceError{Op: "read", Key: p.key, Err: err}
	}
	if !ok || raw == "" {
		return snapshot{}, false, nil
	}
	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return snapshot{}, false, &PersistenceError{Op: "decode", Key: p.key, Err: err}
	}
	return snap, true, nil
}

func (p persister) save(ctx context.Context, st state) error {
	page := st.page
	closed := st.windowClosed
	snap := snapshot{
		Page:         &page,
		Subjects:     st.subjects,
		WindowClosed: &closed,
		Tasks:        st.tasks,
	}
	if snap.Tasks == nil {
		snap.Tasks = map[model.Subject][]model.Task{}
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: p.key, Err: err}
	}
	if err := p.kv.Set(ctx, p.key, string(b)); err != nil {
		return &PersistenceError{Op: "write", Key: p.key, Err: err}
	}
	return nil
}

// restore builds the in-memory state from a snapshot, keeping defaults for
// anything missing. An unusable subject set is replaced by the default one
// and reported.
func restore(snap snapshot) (state, error) {
	st := defaultState()
	if snap.Page != nil && *snap.Page != "" {
		st.page = *snap.Page
	}
	if snap.WindowClosed != nil {
		st.windowClosed = *snap.WindowClosed
	}
	if snap.Tasks != nil {
		st.tasks = snap.Tasks
	}
	if snap.Subjects != nil {
		if !model.ValidSubjectSet(snap.Subjects) {
			return st, fmt.Errorf("stored subjects %v: %s", snap.Subjects, ErrSubjectCount)
		}
		st.subjects = snap.Subjects
	}
	return st, nil
}
