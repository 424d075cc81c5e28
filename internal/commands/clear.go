package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"wrapitup/internal/config"
	"wrapitup/internal/exitcode"
	"wrapitup/internal/task"
)

func init() {
	Register(&ClearCmd{})
}

// ClearCmd implements the clear command: it permanently removes every
// completed task owned by the signed-in user.
type ClearCmd struct{}

func (c *ClearCmd) Name() string      { return "clear" }
func (c *ClearCmd) Aliases() []string { return nil }
func (c *ClearCmd) Synopsis() string  { return "Delete all completed tasks" }
func (c *ClearCmd) Usage() string     { return "wrapitup clear [common flags]" }
func (c *ClearCmd) NeedsAuth() bool   { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	sess, code := loadSession(ctx, cfg, store, errOut)
	if code != exitcode.Success {
		return code
	}

	if sess.Stats(time.Now()).Completed == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no completed tasks")
		}
		return exitcode.Success
	}

	n, err := sess.ClearCompleted(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		if n == 1 {
			fmt.Fprintln(out, "removed 1 completed task")
		} else {
			fmt.Fprintf(out, "removed %d completed tasks\n", n)
		}
	}
	return exitcode.Success
}
