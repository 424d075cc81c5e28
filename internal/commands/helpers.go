package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"wrapitup/internal/config"
	"wrapitup/internal/exitcode"
	"wrapitup/internal/session"
	"wrapitup/internal/task"
)

// currentOwner resolves the signed-in user's uid from the cached profile.
func currentOwner(cfg *config.Config, errOut io.Writer) (task.Profile, int) {
	p, err := cfg.LoadProfile()
	if err != nil || p.UID == "" {
		fmt.Fprintln(errOut, "error: not logged in (run: wrapitup login)")
		return task.Profile{}, exitcode.AuthError
	}
	return p, exitcode.Success
}

// loadSession builds the reconciler for the signed-in user and fetches the
// task collection.
func loadSession(ctx context.Context, cfg *config.Config, store task.Store, errOut io.Writer) (*session.Session, int) {
	p, code := currentOwner(cfg, errOut)
	if code != exitcode.Success {
		return nil, code
	}
	sess := session.New(store, p.UID)
	if err := sess.Load(ctx); err != nil {
		return nil, reportError(errOut, err)
	}
	return sess, exitcode.Success
}

// reportError prints err in user-facing form and returns the matching exit
// code. The index-required case gets its own actionable message; validation
// problems are user errors; everything else is a backend failure.
func reportError(errOut io.Writer, err error) int {
	var idx *task.IndexRequiredError
	if errors.As(err, &idx) {
		fmt.Fprintln(errOut, "error: this query needs a composite index in the store")
		if idx.ConsoleURL != "" {
			fmt.Fprintf(errOut, "create it here: %s\n", idx.ConsoleURL)
		}
		return exitcode.BackendError
	}

	var v *task.ValidationError
	if errors.As(err, &v) {
		fmt.Fprintf(errOut, "error: %v\n", v)
		return exitcode.UserError
	}
	if errors.Is(err, task.ErrNoFieldsToUpdate) {
		fmt.Fprintln(errOut, "error: no fields to update")
		return exitcode.UserError
	}

	var a *task.AuthError
	if errors.As(err, &a) {
		fmt.Fprintf(errOut, "error: %v\n", a)
		return exitcode.AuthError
	}

	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
