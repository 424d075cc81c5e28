package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"wrapitup/internal/config"
	"wrapitup/internal/exitcode"
	"wrapitup/internal/task"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "wrapitup help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  wrapitup                                           List tasks (default view)
  wrapitup list [-filter all|active|completed] [-compact]
  wrapitup add [-notes <text>] [-priority low|medium|high] [-due YYYY-MM-DD] <text...>
  wrapitup done [-filter all|active|completed] <n>   Toggle completion
  wrapitup edit [-text <text>] [-notes <text>] [-priority <p>] [-due YYYY-MM-DD] [-clear-due] <n>
  wrapitup rm [-filter all|active|completed] <n>
  wrapitup clear                                     Delete all completed tasks
  wrapitup stats                                     Show task progress
  wrapitup settings [-default-priority <p>] [-default-view <f>] [-notifications on|off] [-compact on|off]
  wrapitup login [-project <gcp-project-id>]
  wrapitup logout
  wrapitup whoami
  wrapitup profile [-name <display-name>] [-photo <url>]
  wrapitup help
  wrapitup version

Task numbers refer to the listing printed under the same -filter value.

Common flags:
  -config <dir>    Override config directory
  -project <id>    Override the stored Google Cloud project id
  -quiet           Suppress informational output
  -debug           Print debug logs to stderr
`
