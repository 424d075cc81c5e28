package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"wrapitup/internal/config"
	"wrapitup/internal/exitcode"
	"wrapitup/internal/output"
	"wrapitup/internal/session"
	"wrapitup/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	notes    string
	priority string
	due      string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "wrapitup add [-notes <text>] [-priority low|medium|high] [-due YYYY-MM-DD] <text...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.notes, "notes", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}

	profile, code := currentOwner(cfg, errOut)
	if code != exitcode.Success {
		return code
	}

	priority := task.Priority("")
	if c.priority == "" {
		// The user's stored preference fills in the priority; fall back to
		// the built-in default when preferences can't be read.
		if settings, err := store.Settings(ctx, profile.UID); err == nil {
			priority = settings.DefaultPriority
		} else {
			priority = task.DefaultPriority
			if cfg.Debug {
				fmt.Fprintf(errOut, "debug: settings unavailable: %v\n", err)
			}
		}
	} else {
		p, err := task.ParsePriority(c.priority)
		if err != nil {
			return reportError(errOut, err)
		}
		priority = p
	}

	var due *time.Time
	if c.due != "" {
		d, err := time.Parse(output.DateFormat, c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid due date: %s (want YYYY-MM-DD)\n", c.due)
			return exitcode.UserError
		}
		due = &d
	}

	sess := session.New(store, profile.UID)
	if _, err := sess.Add(ctx, task.Draft{
		Text:     text,
		Notes:    c.notes,
		Priority: priority,
		DueDate:  due,
	}); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
