package task

import (
	"math"
	"time"
)

// Stats summarizes a task collection for the progress display.
type Stats struct {
	Total        int
	Completed    int
	Active       int
	PercentDone  int // rounded completion percentage, 0 when Total is 0
	Overdue      int
	DueSoon      int
	HighPriority int // open high-priority tasks
}

// Summarize computes stats over tasks relative to now.
func Summarize(tasks []Task, now time.Time) Stats {
	var s Stats
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		} else {
			s.Active++
		}
		if t.Overdue(now) {
			s.Overdue++
		}
		if t.DueSoon(now) {
			s.DueSoon++
		}
		if t.Priority == PriorityHigh && !t.Completed {
			s.HighPriority++
		}
	}
	if s.Total > 0 {
		s.PercentDone = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
