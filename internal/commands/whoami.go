package commands

import (
	"context"
	"flag"
	"io"

	"wrapitup/internal/config"
	"wrapitup/internal/exitcode"
	"wrapitup/internal/output"
	"wrapitup/internal/task"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the cached identity of the signed-in user. It reads only
// local state, so it works offline.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Show the signed-in user" }
func (c *WhoamiCmd) Usage() string     { return "wrapitup whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	profile, code := currentOwner(cfg, errOut)
	if code != exitcode.Success {
		return code
	}
	output.FormatProfile(out, profile)
	return exitcode.Success
}
