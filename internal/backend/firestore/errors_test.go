package firestore

import (
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"wrapitup/internal/task"
)

func TestClassify_Nil(t *testing.T) {
	if got := classify("list tasks", nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestClassify_IndexRequired(t *testing.T) {
	msg := "The query requires an index. You can create it here: " +
		"https://console.firebase.google.com/project/demo/firestore/indexes?create_composite=abc"
	err := status.Error(codes.FailedPrecondition, msg)

	got := classify("list tasks", err)

	var idxErr *task.IndexRequiredError
	if !errors.As(got, &idxErr) {
		t.Fatalf("expected IndexRequiredError, got %T: %v", got, got)
	}
	wantURL := "https://console.firebase.google.com/project/demo/firestore/indexes?create_composite=abc"
	if idxErr.ConsoleURL != wantURL {
		t.Errorf("expected console URL %q, got %q", wantURL, idxErr.ConsoleURL)
	}
}

func TestClassify_IndexRequiredWithoutURL(t *testing.T) {
	err := status.Error(codes.FailedPrecondition, "The query requires an index.")

	got := classify("list tasks", err)

	var idxErr *task.IndexRequiredError
	if !errors.As(got, &idxErr) {
		t.Fatalf("expected IndexRequiredError, got %T: %v", got, got)
	}
	if idxErr.ConsoleURL != "" {
		t.Errorf("expected empty console URL, got %q", idxErr.ConsoleURL)
	}
}

func TestClassify_OtherFailedPrecondition(t *testing.T) {
	err := status.Error(codes.FailedPrecondition, "document has changed since read")

	got := classify("update task", err)

	var perr *task.PersistenceError
	if !errors.As(got, &perr) {
		t.Fatalf("expected PersistenceError, got %T: %v", got, got)
	}
	if perr.Op != "update task" {
		t.Errorf("expected op 'update task', got %q", perr.Op)
	}
}

func TestClassify_NonStatusError(t *testing.T) {
	err := errors.New("connection reset")

	got := classify("create task", err)

	var perr *task.PersistenceError
	if !errors.As(got, &perr) {
		t.Fatalf("expected PersistenceError, got %T: %v", got, got)
	}
	if !errors.Is(got, err) {
		t.Error("expected the original error preserved in the chain")
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(status.Error(codes.NotFound, "no such document")) {
		t.Error("expected NotFound status to match")
	}
	if isNotFound(status.Error(codes.Unavailable, "try again")) {
		t.Error("expected non-NotFound status not to match")
	}
	if isNotFound(errors.New("plain")) {
		t.Error("expected plain error not to match")
	}
}
