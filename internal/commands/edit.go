package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"wrapitup/internal/config"
	"wrapitup/internal/exitcode"
	"wrapitup/internal/output"
	"wrapitup/internal/task"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command: a sparse update where only the flags
// the user passed reach the store.
type EditCmd struct {
	text     string
	notes    string
	priority string
	due      string
	clearDue bool
	filter   string

	fs *flag.FlagSet
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit task fields" }
func (c *EditCmd) Usage() string {
	return "wrapitup edit [-text <text>] [-notes <text>] [-priority low|medium|high] [-due YYYY-MM-DD] [-clear-due] [-filter all|active|completed] <n>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.text, "text", "", "")
	fs.StringVar(&c.notes, "notes", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.BoolVar(&c.clearDue, "clear-due", false, "")
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
	c.fs = fs
}

// buildUpdate assembles the sparse update from the flags the user actually
// set, so an empty -notes still means "clear the notes" rather than "leave
// them alone".
func (c *EditCmd) buildUpdate(errOut io.Writer) (task.Update, int) {
	var upd task.Update
	var badDue bool

	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "text":
			text := c.text
			upd.Text = &text
		case "notes":
			notes := c.notes
			upd.Notes = &notes
		case "priority":
			// Invalid values are caught by Update.Validate.
			p := task.Priority(strings.ToLower(strings.TrimSpace(c.priority)))
			upd.Priority = &p
		case "due":
			d, err := time.Parse(output.DateFormat, c.due)
			if err != nil {
				badDue = true
				return
			}
			upd.DueDate = &d
		case "clear-due":
			upd.ClearDueDate = c.clearDue
		}
	})

	if badDue {
		fmt.Fprintf(errOut, "error: invalid due date: %s (want YYYY-MM-DD)\n", c.due)
		return task.Update{}, exitcode.UserError
	}
	return upd, exitcode.Success
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	upd, code := c.buildUpdate(errOut)
	if code != exitcode.Success {
		return code
	}
	if err := upd.Validate(); err != nil {
		return reportError(errOut, err)
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

	if _, err := sess.Edit(ctx, target.ID, upd); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
