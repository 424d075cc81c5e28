package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"wrapitup/internal/cli"
	"wrapitup/internal/commands"
	"wrapitup/internal/config"
	"wrapitup/internal/exitcode"
	"wrapitup/internal/task"
	"wrapitup/internal/testutil"
)

// testFactory creates a store factory that returns the given FakeStore.
func testFactory(store *testutil.FakeStore) cli.StoreFactory {
	return func(ctx context.Context, cfg *config.Config) (task.Store, error) {
		return store, nil
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	store := testutil.NewFakeStore()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(store))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	store := testutil.NewFakeStore()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(store))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	store := testutil.NewFakeStore()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(store))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("Usage:")) {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	store := testutil.NewFakeStore()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(store))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"version"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if stdout.String() != "wrapitup 0.1.0\n" {
		t.Errorf("expected 'wrapitup 0.1.0\\n', got %q", stdout.String())
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	store := testutil.NewFakeStore()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(store))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help", "--unknown"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

// Dispatching login exercises the common -project flag alongside the
// command's own registration on the same flag set.
func TestDispatcher_LoginWithProjectFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	var stdout, stderr bytes.Buffer
	args := []string{"login", "-config", t.TempDir(), "-project", "demo-project"}
	code := dispatcher.Run(context.Background(), args, &stdout, &stderr)

	// No oauth_client.json in the fresh dir, so login stops with an auth
	// error after flag parsing succeeded.
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr.String(), "oauth_client.json not found") {
		t.Errorf("expected missing-credentials error, got %q", stderr.String())
	}
}

func TestDispatcher_ListWithFilterFlag(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask(task.Task{OwnerID: "uid-1", Text: "open one"})
	store.AddTask(task.Task{OwnerID: "uid-1", Text: "done one", Completed: true})

	dir := t.TempDir()
	cfg := &config.Config{Dir: dir}
	err := cfg.SaveProfile(task.Profile{UID: "uid-1", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(store))

	var stdout, stderr bytes.Buffer
	args := []string{"list", "-config", dir, "-filter", "active"}
	code := dispatcher.Run(context.Background(), args, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	expected := "   1  [ ] open one\n"
	if stdout.String() != expected {
		t.Errorf("expected %q, got %q", expected, stdout.String())
	}
}

func TestDispatcher_FactoryAuthError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (task.Store, error) {
		return nil, &task.AuthError{Kind: task.AuthOther}
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list"}, &stdout, &stderr)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	expected := "error: authentication failed\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}
