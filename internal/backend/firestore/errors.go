package firestore

import (
	"regexp"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"wrapitup/internal/task"
)

// indexFragment is the phrase Firestore puts in a FailedPrecondition status
// when a query needs a composite index.
const indexFragment = "requires an index"

// consoleURLPattern extracts the index-creation link embedded in the status
// message. The SDK exposes the link nowhere else, so this stays a text
// heuristic; when it misses, the error still carries the typed kind with an
// empty URL.
var consoleURLPattern = regexp.MustCompile(`https://console\.firebase\.google\.com[^\s]+`)

// classify maps an SDK error onto the store error taxonomy.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if s, ok := status.FromError(err); ok &&
		s.Code() == codes.FailedPrecondition &&
		strings.Contains(s.Message(), indexFragment) {
		return &task.IndexRequiredError{
			ConsoleURL: consoleURLPattern.FindString(s.Message()),
			Err:        err,
		}
	}
	return &task.PersistenceError{Op: op, Err: err}
}

// isNotFound reports whether err is the store's missing-document status.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
