// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"wrapitup/internal/task"
)

// ErrNotFound is returned when a document is not found.
var ErrNotFound = errors.New("not found")

// FakeStore is an in-memory implementation of task.Store for testing.
// Creation timestamps come from an internal clock that advances one minute
// per created task, so ordering tests are deterministic.
type FakeStore struct {
	mu       sync.RWMutex
	tasks    []task.Task
	profiles map[string]task.Profile
	settings map[string]task.Settings
	clock    time.Time

	// Error injection for testing
	CreateErr          error
	ListErr            error
	SetCompletedErr    error
	UpdateErr          error
	DeleteErr          error
	DeleteCompletedErr error
	UpsertProfileErr   error
	SettingsErr        error
	SaveSettingsErr    error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		profiles: make(map[string]task.Profile),
		settings: make(map[string]task.Settings),
		clock:    time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}
}

// next returns the current fake time and advances the clock.
func (f *FakeStore) next() time.Time {
	now := f.clock
	f.clock = f.clock.Add(time.Minute)
	return now
}

// AddTask seeds a task directly, filling in an id and creation time when
// absent, and returns the stored value.
func (f *FakeStore) AddTask(t task.Task) task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Priority == "" {
		t.Priority = task.DefaultPriority
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = f.next()
	}
	f.tasks = append(f.tasks, t)
	return t
}

// TaskByID returns the stored task for assertions.
func (f *FakeStore) TaskByID(id string) (task.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// Tasks returns a snapshot of every stored task in insertion order.
func (f *FakeStore) Tasks() []task.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]task.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Create implements task.Store.
func (f *FakeStore) Create(ctx context.Context, ownerID string, draft task.Draft) (task.Task, error) {
	if f.CreateErr != nil {
		return task.Task{}, f.CreateErr
	}
	if err := draft.Validate(); err != nil {
		return task.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	t := task.Task{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Text:      draft.Text,
		Notes:     draft.Notes,
		Priority:  draft.Priority,
		DueDate:   draft.DueDate,
		CreatedAt: f.next(),
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// ListByOwner implements task.Store.
func (f *FakeStore) ListByOwner(ctx context.Context, ownerID string) ([]task.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var owned []task.Task
	for _, t := range f.tasks {
		if t.OwnerID == ownerID {
			owned = append(owned, t)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned, nil
}

// SetCompleted implements task.Store.
func (f *FakeStore) SetCompleted(ctx context.Context, taskID string, completed bool) error {
	if f.SetCompletedErr != nil {
		return f.SetCompletedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == taskID {
			f.tasks[i].Completed = completed
			return nil
		}
	}
	return &task.PersistenceError{Op: "update task status", Err: ErrNotFound}
}

// Update implements task.Store.
func (f *FakeStore) Update(ctx context.Context, taskID string, upd task.Update) error {
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	if err := upd.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == taskID {
			f.tasks[i] = upd.Apply(t)
			return nil
		}
	}
	return &task.PersistenceError{Op: "update task", Err: ErrNotFound}
}

// Delete implements task.Store. Deleting a nonexistent id succeeds, matching
// the document store's semantics.
func (f *FakeStore) Delete(ctx context.Context, taskID string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == taskID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

// DeleteCompleted implements task.Store.
func (f *FakeStore) DeleteCompleted(ctx context.Context, ownerID string) (int, error) {
	if f.DeleteCompletedErr != nil {
		return 0, f.DeleteCompletedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var kept []task.Task
	count := 0
	for _, t := range f.tasks {
		if t.OwnerID == ownerID && t.Completed {
			count++
			continue
		}
		kept = append(kept, t)
	}
	f.tasks = kept
	return count, nil
}

// UpsertProfile implements task.Store.
func (f *FakeStore) UpsertProfile(ctx context.Context, p task.Profile) error {
	if f.UpsertProfileErr != nil {
		return f.UpsertProfileErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.UID] = p
	return nil
}

// Profile returns the stored directory document for assertions.
func (f *FakeStore) Profile(uid string) (task.Profile, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	p, ok := f.profiles[uid]
	return p, ok
}

// Settings implements task.Store, creating defaults on first access.
func (f *FakeStore) Settings(ctx context.Context, ownerID string) (task.Settings, error) {
	if f.SettingsErr != nil {
		return task.Settings{}, f.SettingsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if s, ok := f.settings[ownerID]; ok {
		return s, nil
	}
	defaults := task.DefaultSettings()
	f.settings[ownerID] = defaults
	return defaults, nil
}

// SaveSettings implements task.Store.
func (f *FakeStore) SaveSettings(ctx context.Context, ownerID string, s task.Settings) error {
	if f.SaveSettingsErr != nil {
		return f.SaveSettingsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[ownerID] = s
	return nil
}
