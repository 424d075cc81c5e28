package task_test

import (
	"errors"
	"testing"
	"time"

	"wrapitup/internal/task"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    task.Priority
		wantErr bool
	}{
		{"empty defaults to medium", "", task.PriorityMedium, false},
		{"low", "low", task.PriorityLow, false},
		{"high", "high", task.PriorityHigh, false},
		{"mixed case", "HiGh", task.PriorityHigh, false},
		{"surrounding whitespace", "  medium ", task.PriorityMedium, false},
		{"unknown value", "urgent", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := task.ParsePriority(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var ve *task.ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    task.StatusFilter
		wantErr bool
	}{
		{"empty defaults to all", "", task.FilterAll, false},
		{"active", "active", task.FilterActive, false},
		{"completed uppercase", "COMPLETED", task.FilterCompleted, false},
		{"unknown value", "done", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := task.ParseFilter(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStatusFilter_Matches(t *testing.T) {
	tests := []struct {
		filter    task.StatusFilter
		completed bool
		want      bool
	}{
		{task.FilterAll, false, true},
		{task.FilterAll, true, true},
		{task.FilterActive, false, true},
		{task.FilterActive, true, false},
		{task.FilterCompleted, false, false},
		{task.FilterCompleted, true, true},
	}

	for _, tt := range tests {
		if got := tt.filter.Matches(tt.completed); got != tt.want {
			t.Errorf("%s.Matches(%v): expected %v, got %v", tt.filter, tt.completed, tt.want, got)
		}
	}
}

func TestDraft_Validate(t *testing.T) {
	t.Run("empty text rejected", func(t *testing.T) {
		d := task.Draft{Text: "   "}
		err := d.Validate()
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		var ve *task.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %T", err)
		}
		if ve.Field != "text" {
			t.Errorf("expected field 'text', got %q", ve.Field)
		}
	})

	t.Run("unset priority gets default", func(t *testing.T) {
		d := task.Draft{Text: "buy milk"}
		if err := d.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Priority != task.DefaultPriority {
			t.Errorf("expected priority %q, got %q", task.DefaultPriority, d.Priority)
		}
	})

	t.Run("invalid priority rejected", func(t *testing.T) {
		d := task.Draft{Text: "buy milk", Priority: "urgent"}
		if err := d.Validate(); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestUpdate_Validate(t *testing.T) {
	text := "new text"
	empty := "  "
	p := task.PriorityHigh
	bad := task.Priority("urgent")
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		upd     task.Update
		wantErr error
	}{
		{"empty update", task.Update{}, task.ErrNoFieldsToUpdate},
		{"text only", task.Update{Text: &text}, nil},
		{"blank text", task.Update{Text: &empty}, &task.ValidationError{}},
		{"priority only", task.Update{Priority: &p}, nil},
		{"bad priority", task.Update{Priority: &bad}, &task.ValidationError{}},
		{"clear due date only", task.Update{ClearDueDate: true}, nil},
		{"set and clear due date", task.Update{DueDate: &due, ClearDueDate: true}, &task.ValidationError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.upd.Validate()
			switch want := tt.wantErr.(type) {
			case nil:
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			case *task.ValidationError:
				var ve *task.ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("expected ValidationError, got %v", err)
				}
			default:
				if !errors.Is(err, want) {
					t.Errorf("expected %v, got %v", want, err)
				}
			}
		})
	}
}

func TestUpdate_Apply(t *testing.T) {
	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	base := task.Task{
		ID:       "t1",
		Text:     "original",
		Notes:    "keep me",
		Priority: task.PriorityLow,
		DueDate:  &due,
	}

	t.Run("untouched fields survive", func(t *testing.T) {
		text := "changed"
		got := task.Update{Text: &text}.Apply(base)
		if got.Text != "changed" {
			t.Errorf("expected text 'changed', got %q", got.Text)
		}
		if got.Notes != "keep me" {
			t.Errorf("expected notes unchanged, got %q", got.Notes)
		}
		if got.Priority != task.PriorityLow {
			t.Errorf("expected priority unchanged, got %q", got.Priority)
		}
		if got.DueDate == nil || !got.DueDate.Equal(due) {
			t.Error("expected due date unchanged")
		}
	})

	t.Run("clear due date", func(t *testing.T) {
		got := task.Update{ClearDueDate: true}.Apply(base)
		if got.DueDate != nil {
			t.Error("expected due date cleared")
		}
		if base.DueDate == nil {
			t.Error("original must not be mutated")
		}
	})

	t.Run("set due date copies the value", func(t *testing.T) {
		newDue := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		got := task.Update{DueDate: &newDue}.Apply(base)
		if got.DueDate == nil || !got.DueDate.Equal(newDue) {
			t.Error("expected new due date applied")
		}
		if got.DueDate == &newDue {
			t.Error("expected a copy, not the caller's pointer")
		}
	})
}

func TestTask_Overdue(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		task task.Task
		want bool
	}{
		{"no due date", task.Task{}, false},
		{"past due open", task.Task{DueDate: &past}, true},
		{"past due completed", task.Task{DueDate: &past, Completed: true}, false},
		{"future due", task.Task{DueDate: &future}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Overdue(now); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTask_DueSoon(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task task.Task
		want bool
	}{
		{"no due date", task.Task{}, false},
		{"due tomorrow", task.Task{DueDate: timePtr(now.Add(24 * time.Hour))}, true},
		{"due in three days", task.Task{DueDate: timePtr(now.Add(72 * time.Hour))}, false},
		{"already overdue", task.Task{DueDate: timePtr(now.Add(-time.Hour))}, false},
		{"due soon but completed", task.Task{DueDate: timePtr(now.Add(time.Hour)), Completed: true}, false},
		{"exactly at the window edge", task.Task{DueDate: timePtr(now.Add(48 * time.Hour))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.DueSoon(now); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	soon := now.Add(24 * time.Hour)

	tasks := []task.Task{
		{Text: "a", Completed: true},
		{Text: "b", Priority: task.PriorityHigh},
		{Text: "c", DueDate: &past},
		{Text: "d", DueDate: &soon, Priority: task.PriorityHigh},
	}

	s := task.Summarize(tasks, now)

	if s.Total != 4 {
		t.Errorf("expected total 4, got %d", s.Total)
	}
	if s.Completed != 1 {
		t.Errorf("expected completed 1, got %d", s.Completed)
	}
	if s.Active != 3 {
		t.Errorf("expected active 3, got %d", s.Active)
	}
	if s.PercentDone != 25 {
		t.Errorf("expected 25%% done, got %d", s.PercentDone)
	}
	if s.Overdue != 1 {
		t.Errorf("expected overdue 1, got %d", s.Overdue)
	}
	if s.DueSoon != 1 {
		t.Errorf("expected due soon 1, got %d", s.DueSoon)
	}
	if s.HighPriority != 2 {
		t.Errorf("expected high priority 2, got %d", s.HighPriority)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := task.Summarize(nil, time.Now())
	if s.Total != 0 || s.PercentDone != 0 {
		t.Errorf("expected zero stats, got %+v", s)
	}
}

func TestSummarize_Rounding(t *testing.T) {
	tasks := []task.Task{
		{Completed: true},
		{Completed: true},
		{},
	}
	s := task.Summarize(tasks, time.Now())
	if s.PercentDone != 67 {
		t.Errorf("expected 67%%, got %d", s.PercentDone)
	}
}
