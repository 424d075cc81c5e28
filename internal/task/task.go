// Package task defines the task data model and the backend-agnostic store
// contract. Commands never import the Firestore SDK directly.
package task

import (
	"strings"
	"time"
)

// Priority is the task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is applied when a draft leaves priority unset.
const DefaultPriority = PriorityMedium

// IsValid reports whether p is one of the known priority levels.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ParsePriority parses a user-supplied priority string (case-insensitive,
// trimmed). An empty string yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPriority, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", &ValidationError{Field: "priority", Reason: "must be low, medium or high"}
	}
	return p, nil
}

// StatusFilter selects which tasks are visible.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// IsValid reports whether f is a known filter value.
func (f StatusFilter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// ParseFilter parses a user-supplied filter string (case-insensitive,
// trimmed). An empty string yields FilterAll.
func ParseFilter(s string) (StatusFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAll, nil
	}
	f := StatusFilter(s)
	if !f.IsValid() {
		return "", &ValidationError{Field: "filter", Reason: "must be all, active or completed"}
	}
	return f, nil
}

// Matches reports whether a task with the given completion state passes the
// filter.
func (f StatusFilter) Matches(completed bool) bool {
	switch f {
	case FilterActive:
		return !completed
	case FilterCompleted:
		return completed
	default:
		return true
	}
}

// Task is a single to-do item stored in the `tasks` collection.
// ID and OwnerID are set exactly once and never mutated. Completed
// transitions only via an explicit toggle, never inferred from DueDate.
type Task struct {
	// ID is the opaque document id; it lives outside the document body.
	ID string `firestore:"-"`

	OwnerID   string     `firestore:"ownerId"`
	Text      string     `firestore:"text"`
	Notes     string     `firestore:"notes"`
	Priority  Priority   `firestore:"priority"`
	DueDate   *time.Time `firestore:"dueDate"`
	Completed bool       `firestore:"completed"`

	// CreatedAt is assigned by the store. A zero value means the server
	// timestamp has not materialized yet; readers substitute local now.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}

// Overdue reports whether the task's due date has passed and the task is
// still open.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed
}

// dueSoonWindow is how far ahead a due date still counts as "due soon".
const dueSoonWindow = 48 * time.Hour

// DueSoon reports whether the task is open and due within the next two days.
func (t Task) DueSoon(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	d := t.DueDate.Sub(now)
	return d >= 0 && d <= dueSoonWindow
}

// Draft holds the user-supplied fields for a new task.
type Draft struct {
	Text     string
	Notes    string
	Priority Priority
	DueDate  *time.Time
}

// Validate checks the draft before it reaches any remote call and
// normalizes an unset priority to the default.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Text) == "" {
		return &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if d.Priority == "" {
		d.Priority = DefaultPriority
	}
	if !d.Priority.IsValid() {
		return &ValidationError{Field: "priority", Reason: "must be low, medium or high"}
	}
	return nil
}

// Update is a sparse task update. Nil pointers leave the remote field
// untouched; ClearDueDate distinguishes "remove the due date" from "leave it
// alone", so absence is representable without truthiness tricks.
type Update struct {
	Text         *string
	Notes        *string
	Priority     *Priority
	DueDate      *time.Time
	ClearDueDate bool
}

// IsEmpty reports whether the update carries no changes at all.
func (u Update) IsEmpty() bool {
	return u.Text == nil && u.Notes == nil && u.Priority == nil &&
		u.DueDate == nil && !u.ClearDueDate
}

// Validate rejects empty updates and invalid field values.
func (u Update) Validate() error {
	if u.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if u.Text != nil && strings.TrimSpace(*u.Text) == "" {
		return &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if u.Priority != nil && !u.Priority.IsValid() {
		return &ValidationError{Field: "priority", Reason: "must be low, medium or high"}
	}
	if u.DueDate != nil && u.ClearDueDate {
		return &ValidationError{Field: "dueDate", Reason: "cannot both set and clear the due date"}
	}
	return nil
}

// Apply merges the update into a task, mirroring the sparse merge the store
// performs remotely.
func (u Update) Apply(t Task) Task {
	if u.Text != nil {
		t.Text = *u.Text
	}
	if u.Notes != nil {
		t.Notes = *u.Notes
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.DueDate != nil {
		due := *u.DueDate
		t.DueDate = &due
	}
	if u.ClearDueDate {
		t.DueDate = nil
	}
	return t
}

// Profile is the signed-in user's identity as reported by the provider.
type Profile struct {
	UID         string `firestore:"uid" json:"uid"`
	Email       string `firestore:"email" json:"email"`
	DisplayName string `firestore:"displayName" json:"displayName,omitempty"`
	PhotoURL    string `firestore:"photoURL" json:"photoURL,omitempty"`
}

// Settings are per-user preferences stored in the `userSettings` collection.
type Settings struct {
	DefaultPriority     Priority     `firestore:"defaultPriority"`
	DefaultView         StatusFilter `firestore:"defaultView"`
	EnableNotifications bool         `firestore:"enableNotifications"`
	CompactMode         bool         `firestore:"compactMode"`
}

// DefaultSettings returns the settings applied to a user who has none yet.
func DefaultSettings() Settings {
	return Settings{
		DefaultPriority: PriorityMedium,
		DefaultView:     FilterAll,
	}
}
