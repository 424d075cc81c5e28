package commands

import (
	"errors"
	"fmt"
	"strconv"

	"wrapitup/internal/session"
	"wrapitup/internal/task"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a 1-based task number from args. The number indexes
// the visible list under the command's filter, matching the numbering a
// prior list invocation printed.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	num, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}
	if num < 1 {
		return 0, fmt.Errorf("task number out of range: %d", num)
	}
	return num, nil
}

// taskByNumber resolves a task number against the session's visible list.
func taskByNumber(sess *session.Session, num int) (task.Task, error) {
	visible := sess.Visible()
	if num < 1 || num > len(visible) {
		return task.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return visible[num-1], nil
}
