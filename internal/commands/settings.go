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
	Register(&SettingsCmd{})
}

// SettingsCmd shows or updates the per-user preferences stored alongside
// the tasks. With no flags it prints the current values.
type SettingsCmd struct {
	defaultPriority string
	defaultView     string
	notifications   string
	compact         string

	fs *flag.FlagSet
}

func (c *SettingsCmd) Name() string      { return "settings" }
func (c *SettingsCmd) Aliases() []string { return nil }
func (c *SettingsCmd) Synopsis() string  { return "Show or change preferences" }
func (c *SettingsCmd) Usage() string {
	return "wrapitup settings [-default-priority low|medium|high] [-default-view all|active|completed] [-notifications on|off] [-compact on|off]"
}
func (c *SettingsCmd) NeedsAuth() bool { return true }

func (c *SettingsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.defaultPriority, "default-priority", "", "")
	fs.StringVar(&c.defaultView, "default-view", "", "")
	fs.StringVar(&c.notifications, "notifications", "", "")
	fs.StringVar(&c.compact, "compact", "", "")
	c.fs = fs
}

func (c *SettingsCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	profile, code := currentOwner(cfg, errOut)
	if code != exitcode.Success {
		return code
	}

	settings, err := store.Settings(ctx, profile.UID)
	if err != nil {
		return reportError(errOut, err)
	}

	changed := false
	var flagErr error
	c.fs.Visit(func(f *flag.Flag) {
		if flagErr != nil {
			return
		}
		switch f.Name {
		case "default-priority":
			p, err := task.ParsePriority(c.defaultPriority)
			if err != nil {
				flagErr = err
				return
			}
			settings.DefaultPriority = p
			changed = true
		case "default-view":
			v, err := task.ParseFilter(c.defaultView)
			if err != nil {
				flagErr = err
				return
			}
			settings.DefaultView = v
			changed = true
		case "notifications":
			on, err := parseOnOff(f.Name, c.notifications)
			if err != nil {
				flagErr = err
				return
			}
			settings.EnableNotifications = on
			changed = true
		case "compact":
			on, err := parseOnOff(f.Name, c.compact)
			if err != nil {
				flagErr = err
				return
			}
			settings.CompactMode = on
			changed = true
		}
	})
	if flagErr != nil {
		return reportError(errOut, flagErr)
	}

	if !changed {
		output.FormatSettings(out, settings)
		return exitcode.Success
	}

	if err := store.SaveSettings(ctx, profile.UID, settings); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func parseOnOff(field, s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, &task.ValidationError{Field: field, Reason: "must be on or off"}
	}
}
