package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"wrapitup/internal/config"
	"wrapitup/internal/exitcode"
	"wrapitup/internal/task"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command: it toggles completion, so running it
// on a completed task marks the task active again.
type DoneCmd struct {
	filter string
}

// SetFilter sets the filter value (for testing).
func (c *DoneCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle task completion" }
func (c *DoneCmd) Usage() string     { return "wrapitup done [-filter all|active|completed] <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	filter, err := task.ParseFilter(c.filter)
	if err != nil {
		return reportError(errOut, err)
	}

	sess, code := loadSession(ctx, cfg, store, errOut)
	if code != exitcode.Success {
		return code
	}
	sess.SetFilter(filter)

	target, err := taskByNumber(sess, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	toggled, err := sess.Toggle(ctx, target.ID)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		if toggled.Completed {
			fmt.Fprintln(out, "task completed")
		} else {
			fmt.Fprintln(out, "task marked as active")
		}
	}
	return exitcode.Success
}
