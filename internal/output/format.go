// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"wrapitup/internal/task"
)

// DateFormat renders due dates; they carry no time-of-day semantics.
const DateFormat = "2006-01-02"

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TEXT}{MARKERS}\n" where markers are the non-default
// priority and the due date with an overdue flag. Unless compact, non-empty
// notes follow on an indented line.
func FormatTask(w io.Writer, num int, t task.Task, now time.Time, compact bool) {
	box := " "
	if t.Completed {
		box = "x"
	}

	var markers []string
	if t.Priority != task.PriorityMedium && t.Priority != "" {
		markers = append(markers, string(t.Priority))
	}
	if t.DueDate != nil {
		due := "due " + t.DueDate.Format(DateFormat)
		if t.Overdue(now) {
			due += ", overdue"
		}
		markers = append(markers, due)
	}

	suffix := ""
	if len(markers) > 0 {
		suffix = "  (" + strings.Join(markers, "; ") + ")"
	}

	fmt.Fprintf(w, "%4d  [%s] %s%s\n", num, box, normalizeText(t.Text), suffix)

	if !compact && strings.TrimSpace(t.Notes) != "" {
		fmt.Fprintf(w, "          %s\n", normalizeText(t.Notes))
	}
}

// FormatStats formats the progress summary.
func FormatStats(w io.Writer, s task.Stats) {
	fmt.Fprintf(w, "%d of %d tasks completed (%d%%)\n", s.Completed, s.Total, s.PercentDone)
	fmt.Fprintf(w, "overdue: %d\n", s.Overdue)
	fmt.Fprintf(w, "due soon: %d\n", s.DueSoon)
	fmt.Fprintf(w, "high priority: %d\n", s.HighPriority)
}

// FormatProfile formats the signed-in identity.
func FormatProfile(w io.Writer, p task.Profile) {
	name := p.DisplayName
	if name == "" {
		name = "(no display name)"
	}
	fmt.Fprintf(w, "%s <%s>\n", name, p.Email)
	if p.PhotoURL != "" {
		fmt.Fprintf(w, "photo: %s\n", p.PhotoURL)
	}
	fmt.Fprintf(w, "uid: %s\n", p.UID)
}

// FormatSettings formats the per-user preferences.
func FormatSettings(w io.Writer, s task.Settings) {
	fmt.Fprintf(w, "default priority: %s\n", s.DefaultPriority)
	fmt.Fprintf(w, "default view: %s\n", s.DefaultView)
	fmt.Fprintf(w, "notifications: %s\n", onOff(s.EnableNotifications))
	fmt.Fprintf(w, "compact mode: %s\n", onOff(s.CompactMode))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// normalizeText normalizes task text for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
