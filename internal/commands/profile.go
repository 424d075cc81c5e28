package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"wrapitup/internal/config"
	"wrapitup/internal/exitcode"
	"wrapitup/internal/output"
	"wrapitup/internal/task"
)

func init() {
	Register(&ProfileCmd{})
}

// ProfileCmd shows or updates the user's profile. Updates land in the local
// cache and in the store's user directory so other surfaces see them too.
type ProfileCmd struct {
	name  string
	photo string

	fs *flag.FlagSet
}

func (c *ProfileCmd) Name() string      { return "profile" }
func (c *ProfileCmd) Aliases() []string { return nil }
func (c *ProfileCmd) Synopsis() string  { return "Show or update the profile" }
func (c *ProfileCmd) Usage() string {
	return "wrapitup profile [-name <display-name>] [-photo <url>]"
}
func (c *ProfileCmd) NeedsAuth() bool { return true }

func (c *ProfileCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.photo, "photo", "", "")
	c.fs = fs
}

func (c *ProfileCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	profile, code := currentOwner(cfg, errOut)
	if code != exitcode.Success {
		return code
	}

	changed := false
	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			profile.DisplayName = c.name
			changed = true
		case "photo":
			profile.PhotoURL = c.photo
			changed = true
		}
	})

	if !changed {
		output.FormatProfile(out, profile)
		return exitcode.Success
	}

	if err := store.UpsertProfile(ctx, profile); err != nil {
		return reportError(errOut, err)
	}
	if err := cfg.SaveProfile(profile); err != nil {
		fmt.Fprintf(errOut, "error: failed to save profile: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
