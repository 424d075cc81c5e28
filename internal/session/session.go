// Package session holds the signed-in owner's in-memory task collection and
// derives the filtered, sorted view the display layer consumes. Local state
// mirrors the last confirmed remote state: every mutation reaches the store
// first and is applied locally only after it succeeds, never by re-fetching
// the full list.
package session

import (
	"context"
	"sort"
	"time"

	"wrapitup/internal/task"
)

// Session is the view-state reconciler for one owner. It is meant for
// single-goroutine use within a command invocation.
type Session struct {
	store   task.Store
	ownerID string

	all     []task.Task
	filter  task.StatusFilter
	visible []task.Task
}

// New creates a session over store for ownerID with the all filter.
func New(store task.Store, ownerID string) *Session {
	return &Session{
		store:   store,
		ownerID: ownerID,
		filter:  task.FilterAll,
	}
}

// Load fetches the owner's tasks from the store. On failure local state is
// left unchanged.
func (s *Session) Load(ctx context.Context) error {
	tasks, err := s.store.ListByOwner(ctx, s.ownerID)
	if err != nil {
		return err
	}
	s.all = tasks
	s.derive()
	return nil
}

// SetFilter switches the status filter and re-derives the visible list.
func (s *Session) SetFilter(f task.StatusFilter) {
	s.filter = f
	s.derive()
}

// Filter returns the active status filter.
func (s *Session) Filter() task.StatusFilter { return s.filter }

// All returns the full owner-scoped collection, newest first.
func (s *Session) All() []task.Task { return s.all }

// Visible returns the derived display list. The slice is replaced, never
// mutated in place, on every change to the collection or the filter.
func (s *Session) Visible() []task.Task { return s.visible }

// derive recomputes visible from all: filter by status, then a stable sort
// descending by creation time so equal timestamps keep their relative order.
func (s *Session) derive() {
	visible := make([]task.Task, 0, len(s.all))
	for _, t := range s.all {
		if s.filter.Matches(t.Completed) {
			visible = append(visible, t)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	s.visible = visible
}

// Add validates and persists a new task, then inserts it at the front of the
// local collection. Under the completed filter the new task joins the
// collection but stays out of the visible list.
func (s *Session) Add(ctx context.Context, draft task.Draft) (task.Task, error) {
	if err := draft.Validate(); err != nil {
		return task.Task{}, err
	}
	created, err := s.store.Create(ctx, s.ownerID, draft)
	if err != nil {
		return task.Task{}, err
	}
	s.all = append([]task.Task{created}, s.all...)
	s.derive()
	return created, nil
}

// Toggle flips a task's completion state remotely, then mirrors the change
// locally. An id unknown to the collection fails naturally at the store and
// the local replace misses harmlessly.
func (s *Session) Toggle(ctx context.Context, taskID string) (task.Task, error) {
	cur, ok := s.find(taskID)
	completed := !cur.Completed
	if err := s.store.SetCompleted(ctx, taskID, completed); err != nil {
		return task.Task{}, err
	}
	if !ok {
		return task.Task{}, nil
	}
	cur.Completed = completed
	s.replace(cur)
	return cur, nil
}

// Edit applies a sparse update remotely, then merges the same fields into
// the local copy.
func (s *Session) Edit(ctx context.Context, taskID string, upd task.Update) (task.Task, error) {
	if err := upd.Validate(); err != nil {
		return task.Task{}, err
	}
	if err := s.store.Update(ctx, taskID, upd); err != nil {
		return task.Task{}, err
	}
	cur, ok := s.find(taskID)
	if !ok {
		return task.Task{}, nil
	}
	cur = upd.Apply(cur)
	s.replace(cur)
	return cur, nil
}

// Remove deletes a task remotely, then drops it from the local collection.
func (s *Session) Remove(ctx context.Context, taskID string) error {
	if err := s.store.Delete(ctx, taskID); err != nil {
		return err
	}
	kept := s.all[:0:0]
	for _, t := range s.all {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	s.all = kept
	s.derive()
	return nil
}

// ClearCompleted purges the owner's completed tasks remotely and filters
// them out locally, returning the number removed.
func (s *Session) ClearCompleted(ctx context.Context) (int, error) {
	n, err := s.store.DeleteCompleted(ctx, s.ownerID)
	if err != nil {
		return 0, err
	}
	kept := s.all[:0:0]
	for _, t := range s.all {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	s.all = kept
	s.derive()
	return n, nil
}

// Stats summarizes the full collection relative to now.
func (s *Session) Stats(now time.Time) task.Stats {
	return task.Summarize(s.all, now)
}

func (s *Session) find(taskID string) (task.Task, bool) {
	for _, t := range s.all {
		if t.ID == taskID {
			return t, true
		}
	}
	return task.Task{}, false
}

func (s *Session) replace(updated task.Task) {
	for i, t := range s.all {
		if t.ID == updated.ID {
			s.all[i] = updated
			break
		}
	}
	s.derive()
}
