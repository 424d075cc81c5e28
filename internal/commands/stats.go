package commands

import (
	"context"
	"flag"
	"io"
	"time"

	"wrapitup/internal/config"
	"wrapitup/internal/exitcode"
	"wrapitup/internal/output"
	"wrapitup/internal/task"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Show task progress" }
func (c *StatsCmd) Usage() string     { return "wrapitup stats [common flags]" }
func (c *StatsCmd) NeedsAuth() bool   { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	sess, code := loadSession(ctx, cfg, store, errOut)
	if code != exitcode.Success {
		return code
	}

	output.FormatStats(out, sess.Stats(time.Now()))
	return exitcode.Success
}
