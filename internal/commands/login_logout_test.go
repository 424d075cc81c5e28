package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wrapitup/internal/commands"
	"wrapitup/internal/config"
	"wrapitup/internal/exitcode"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

// TestLoginCommand_NoOAuthClient verifies login fails without oauth_client.json
func TestLoginCommand_NoOAuthClient(t *testing.T) {
	cmd := &commands.LoginCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: false,
	}

	ctx := context.Background()
	code := cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no stdout, got %q", outBuf.String())
	}
	if !strings.Contains(errBuf.String(), "oauth_client.json not found") {
		t.Errorf("expected error about missing oauth_client.json, got %q", errBuf.String())
	}
}

// TestLoginCommand_NoProject verifies login fails when no project id is
// configured anywhere.
func TestLoginCommand_NoProject(t *testing.T) {
	cmd := &commands.LoginCmd{}

	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "oauth_client.json"), []byte(testOAuthClient), 0600)
	if err != nil {
		t.Fatalf("failed to write oauth_client.json: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: tmpDir}

	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	expected := "error: no project configured (run: wrapitup login -project <gcp-project-id>)\n"
	if errBuf.String() != expected {
		t.Errorf("expected %q, got %q", expected, errBuf.String())
	}
}

// TestLoginCommand_CancelledContext verifies an aborted sign-in reports a
// cancellation rather than hanging on the callback.
func TestLoginCommand_CancelledContext(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "oauth_client.json"), []byte(testOAuthClient), 0600)
	if err != nil {
		t.Fatalf("failed to write oauth_client.json: %v", err)
	}

	cfg := &config.Config{Dir: tmpDir}
	if err := cfg.SaveProject("demo-project"); err != nil {
		t.Fatalf("failed to save project: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var outBuf, errBuf bytes.Buffer
	cmd := &commands.LoginCmd{}
	code := cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(errBuf.String(), "sign-in cancelled") {
		t.Errorf("expected cancellation message, got %q", errBuf.String())
	}
	if cfg.HasToken() {
		t.Error("no token must be stored on a cancelled sign-in")
	}
}

// TestLoginCommand_InvalidToken verifies login proceeds when the stored token
// has no refresh token.
func TestLoginCommand_InvalidToken(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "oauth_client.json"), []byte(testOAuthClient), 0600)
	if err != nil {
		t.Fatalf("failed to write oauth_client.json: %v", err)
	}
	invalidToken := `{"access_token":"expired","token_type":"Bearer"}`
	err = os.WriteFile(filepath.Join(tmpDir, "token.json"), []byte(invalidToken), 0600)
	if err != nil {
		t.Fatalf("failed to write token.json: %v", err)
	}

	cfg := &config.Config{Dir: tmpDir}
	if err := cfg.SaveProject("demo-project"); err != nil {
		t.Fatalf("failed to save project: %v", err)
	}

	// Cancelled context so the flow aborts instead of waiting for a browser.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var outBuf, errBuf bytes.Buffer
	cmd := &commands.LoginCmd{}
	_ = cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)

	// The important thing is it didn't short-circuit as already signed in.
	if outBuf.String() == "already logged in\n" {
		t.Error("should not say 'already logged in' with a token missing refresh_token")
	}
}

// TestLogoutCommand verifies logout removes the token and the cached profile.
func TestLogoutCommand(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &config.Config{Dir: tmpDir}

	err := os.WriteFile(filepath.Join(tmpDir, "token.json"), []byte(`{"access_token":"x"}`), 0600)
	if err != nil {
		t.Fatalf("failed to write token.json: %v", err)
	}
	err = os.WriteFile(filepath.Join(tmpDir, "profile.json"), []byte(`{"uid":"uid-1","email":"ada@example.com"}`), 0600)
	if err != nil {
		t.Fatalf("failed to write profile.json: %v", err)
	}
	// The stored project survives logout so the next login reuses it.
	if err := cfg.SaveProject("demo-project"); err != nil {
		t.Fatalf("failed to save project: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cmd := &commands.LogoutCmd{}
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok', got %q", outBuf.String())
	}
	if cfg.HasToken() {
		t.Error("expected token removed")
	}
	if _, err := cfg.LoadProfile(); err == nil {
		t.Error("expected cached profile removed")
	}
	if cfg.LoadProject() != "demo-project" {
		t.Error("expected stored project preserved")
	}
}

// TestLogoutCommand_NotLoggedIn verifies logout is a no-op without a token.
func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	var outBuf, errBuf bytes.Buffer
	cmd := &commands.LogoutCmd{}
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "not logged in\n" {
		t.Errorf("expected 'not logged in', got %q", outBuf.String())
	}
}
