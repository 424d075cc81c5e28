package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"wrapitup/internal/config"
	"wrapitup/internal/exitcode"
	"wrapitup/internal/output"
	"wrapitup/internal/session"
	"wrapitup/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `wrapitup` (no args) and `wrapitup list`.
type ListCmd struct {
	filter  string
	compact bool
}

// SetFilter sets the filter value (for testing).
func (c *ListCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "wrapitup list [-filter all|active|completed] [-compact]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
	fs.BoolVar(&c.compact, "compact", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	profile, code := currentOwner(cfg, errOut)
	if code != exitcode.Success {
		return code
	}

	sess := session.New(store, profile.UID)
	if err := sess.Load(ctx); err != nil {
		return reportError(errOut, err)
	}

	// Stored preferences supply the default view and compact mode; flags
	// override them.
	compact := c.compact
	filterValue := c.filter
	if settings, err := store.Settings(ctx, profile.UID); err == nil {
		if filterValue == "" {
			filterValue = string(settings.DefaultView)
		}
		compact = compact || settings.CompactMode
	} else if cfg.Debug {
		fmt.Fprintf(errOut, "debug: settings unavailable: %v\n", err)
	}

	filter, err := task.ParseFilter(filterValue)
	if err != nil {
		return reportError(errOut, err)
	}
	sess.SetFilter(filter)

	visible := sess.Visible()
	if len(visible) == 0 {
		if !cfg.Quiet {
			switch filter {
			case task.FilterActive:
				fmt.Fprintln(out, "no active tasks")
			case task.FilterCompleted:
				fmt.Fprintln(out, "no completed tasks")
			default:
				fmt.Fprintln(out, "no tasks found")
			}
		}
		return exitcode.Success
	}

	now := time.Now()
	for i, t := range visible {
		output.FormatTask(out, i+1, t, now, compact)
	}
	return exitcode.Success
}
