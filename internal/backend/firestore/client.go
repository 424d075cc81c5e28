// Package firestore implements the task.Store interface against Google
// Cloud Firestore.
package firestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"wrapitup/internal/config"
	"wrapitup/internal/task"
)

const (
	// TasksCollection holds the task documents.
	TasksCollection = "tasks"

	// UsersCollection holds the identity directory documents.
	UsersCollection = "users"

	// SettingsCollection holds per-user preference documents.
	SettingsCollection = "userSettings"

	// APITimeout is the timeout for individual store calls.
	APITimeout = 5 * time.Second
)

// Scopes requested from the identity provider. Firestore access rides on the
// datastore scope; the userinfo scopes feed the profile.
var Scopes = []string{
	"https://www.googleapis.com/auth/datastore",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// Client implements task.Store using Firestore.
type Client struct {
	fs  *firestore.Client
	now func() time.Time
}

// New creates a Firestore-backed store from the stored credentials.
// Requires oauth_client.json, token.json and a configured project id.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, &task.AuthError{Kind: task.AuthOther, Err: fmt.Errorf("oauth_client.json not found in %s", cfg.Dir)}
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scopes...)
	if err != nil {
		return nil, &task.AuthError{Kind: task.AuthOther, Err: fmt.Errorf("invalid oauth_client.json: %w", err)}
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, &task.AuthError{Kind: task.AuthOther, Err: fmt.Errorf("not logged in (run: wrapitup login)")}
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, &task.AuthError{Kind: task.AuthOther, Err: fmt.Errorf("invalid token.json: %w", err)}
	}

	project := cfg.LoadProject()
	if project == "" {
		return nil, &task.AuthError{Kind: task.AuthOther, Err: fmt.Errorf("no project configured (run: wrapitup login -project <id>)")}
	}

	// Token source auto-refreshes using the stored refresh token.
	tokenSource := oauthConfig.TokenSource(ctx, &token)

	fs, err := firestore.NewClient(ctx, project, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, &task.PersistenceError{Op: "connect to store", Err: err}
	}

	return &Client{fs: fs, now: time.Now}, nil
}

// NewWithClient wraps an existing Firestore client (for tests and tools).
func NewWithClient(fs *firestore.Client) *Client {
	return &Client{fs: fs, now: time.Now}
}

// Close releases the underlying Firestore client.
func (c *Client) Close() error {
	return c.fs.Close()
}

// Create implements task.Store. The returned CreatedAt is the local time;
// the server-assigned timestamp is not read back synchronously, which
// display-only ordering tolerates.
func (c *Client) Create(ctx context.Context, ownerID string, draft task.Draft) (task.Task, error) {
	if err := draft.Validate(); err != nil {
		return task.Task{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	t := task.Task{
		OwnerID:  ownerID,
		Text:     draft.Text,
		Notes:    draft.Notes,
		Priority: draft.Priority,
		DueDate:  draft.DueDate,
	}

	// The zero CreatedAt is replaced by a server timestamp on write.
	ref := c.fs.Collection(TasksCollection).NewDoc()
	if _, err := ref.Create(ctx, t); err != nil {
		return task.Task{}, classify("create task", err)
	}

	t.ID = ref.ID
	t.CreatedAt = c.now()
	return t, nil
}

// ListByOwner implements task.Store. The owner query needs no composite
// index on its own, but the store may still demand one depending on rules;
// that case surfaces as *task.IndexRequiredError.
func (c *Client) ListByOwner(ctx context.Context, ownerID string) ([]task.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	iter := c.fs.Collection(TasksCollection).Where("ownerId", "==", ownerID).Documents(ctx)
	defer iter.Stop()

	var tasks []task.Task
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classify("list tasks", err)
		}

		var t task.Task
		if err := snap.DataTo(&t); err != nil {
			return nil, classify("list tasks", err)
		}
		t.ID = snap.Ref.ID
		if t.CreatedAt.IsZero() {
			// Server timestamp not materialized yet; show local time.
			t.CreatedAt = c.now()
		}
		tasks = append(tasks, t)
	}

	// Newest first; stable so equal timestamps keep their relative order.
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// SetCompleted implements task.Store.
func (c *Client) SetCompleted(ctx context.Context, taskID string, completed bool) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.fs.Collection(TasksCollection).Doc(taskID).Update(ctx, []firestore.Update{
		{Path: "completed", Value: completed},
	})
	if err != nil {
		return classify("update task status", err)
	}
	return nil
}

// Update implements task.Store with a sparse field merge.
func (c *Client) Update(ctx context.Context, taskID string, upd task.Update) error {
	if err := upd.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var updates []firestore.Update
	if upd.Text != nil {
		updates = append(updates, firestore.Update{Path: "text", Value: *upd.Text})
	}
	if upd.Notes != nil {
		updates = append(updates, firestore.Update{Path: "notes", Value: *upd.Notes})
	}
	if upd.Priority != nil {
		updates = append(updates, firestore.Update{Path: "priority", Value: *upd.Priority})
	}
	if upd.DueDate != nil {
		updates = append(updates, firestore.Update{Path: "dueDate", Value: *upd.DueDate})
	}
	if upd.ClearDueDate {
		updates = append(updates, firestore.Update{Path: "dueDate", Value: nil})
	}

	if _, err := c.fs.Collection(TasksCollection).Doc(taskID).Update(ctx, updates); err != nil {
		return classify("update task", err)
	}
	return nil
}

// Delete implements task.Store. Firestore treats deleting a nonexistent
// document as success, so a repeated delete is a no-op.
func (c *Client) Delete(ctx context.Context, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if _, err := c.fs.Collection(TasksCollection).Doc(taskID).Delete(ctx); err != nil {
		return classify("delete task", err)
	}
	return nil
}

// DeleteCompleted implements task.Store. The owner+completed query is the
// one that requires a composite index. Individual deletes run concurrently;
// any failure fails the aggregate with no partial count.
func (c *Client) DeleteCompleted(ctx context.Context, ownerID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	iter := c.fs.Collection(TasksCollection).
		Where("ownerId", "==", ownerID).
		Where("completed", "==", true).
		Documents(ctx)
	snaps, err := iter.GetAll()
	if err != nil {
		return 0, classify("query completed tasks", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, snap := range snaps {
		ref := snap.Ref
		g.Go(func() error {
			_, err := ref.Delete(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, classify("clear completed tasks", err)
	}
	return len(snaps), nil
}

// UpsertProfile implements task.Store, merge-writing the user's directory
// document so partial profiles never clobber existing fields.
func (c *Client) UpsertProfile(ctx context.Context, p task.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.fs.Collection(UsersCollection).Doc(p.UID).Set(ctx, map[string]interface{}{
		"uid":         p.UID,
		"email":       p.Email,
		"displayName": p.DisplayName,
		"photoURL":    p.PhotoURL,
		"updatedAt":   firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return classify("update profile", err)
	}
	return nil
}

// Settings implements task.Store, creating the document with defaults on
// first access.
func (c *Client) Settings(ctx context.Context, ownerID string) (task.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	ref := c.fs.Collection(SettingsCollection).Doc(ownerID)
	snap, err := ref.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			defaults := task.DefaultSettings()
			if _, err := ref.Set(ctx, defaults); err != nil {
				return task.Settings{}, classify("save settings", err)
			}
			return defaults, nil
		}
		return task.Settings{}, classify("load settings", err)
	}

	var s task.Settings
	if err := snap.DataTo(&s); err != nil {
		return task.Settings{}, classify("load settings", err)
	}
	if s.DefaultPriority == "" {
		s.DefaultPriority = task.DefaultPriority
	}
	if s.DefaultView == "" {
		s.DefaultView = task.FilterAll
	}
	return s, nil
}

// SaveSettings implements task.Store.
func (c *Client) SaveSettings(ctx context.Context, ownerID string, s task.Settings) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if _, err := c.fs.Collection(SettingsCollection).Doc(ownerID).Set(ctx, s); err != nil {
		return classify("save settings", err)
	}
	return nil
}
