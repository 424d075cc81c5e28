package task

import "context"

// Store is the contract between the client and the remote document store.
// Every task operation is scoped to an owner; no call retries automatically.
// Delete is the only operation safe to retry blindly: Create retried after a
// timeout may produce a duplicate, since no idempotency key is used.
type Store interface {
	// Create persists a new task for ownerID and returns it with its
	// assigned id. The returned CreatedAt is the local time; the
	// server-assigned value is not read back synchronously.
	Create(ctx context.Context, ownerID string, draft Draft) (Task, error)

	// ListByOwner returns all of ownerID's tasks, sorted descending by
	// CreatedAt (stable for equal timestamps). Fails with
	// *IndexRequiredError when the store demands a composite index.
	ListByOwner(ctx context.Context, ownerID string) ([]Task, error)

	// SetCompleted flips the completion flag on a single task.
	SetCompleted(ctx context.Context, taskID string, completed bool) error

	// Update applies a sparse field merge; unset fields are left untouched
	// remotely.
	Update(ctx context.Context, taskID string, upd Update) error

	// Delete removes a task. Deleting a nonexistent id succeeds.
	Delete(ctx context.Context, taskID string) error

	// DeleteCompleted removes every completed task owned by ownerID,
	// dispatching the individual deletes concurrently, and returns how many
	// were removed. Any individual failure fails the whole operation.
	DeleteCompleted(ctx context.Context, ownerID string) (int, error)

	// UpsertProfile merge-writes the user's directory document.
	UpsertProfile(ctx context.Context, p Profile) error

	// Settings reads the user's preferences, creating them with defaults on
	// first access.
	Settings(ctx context.Context, ownerID string) (Settings, error)

	// SaveSettings replaces the user's preferences.
	SaveSettings(ctx context.Context, ownerID string, s Settings) error
}
