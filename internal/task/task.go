package task

import (
	"fmt"
	"time"
)

// Display labels used by Format.
const (
	LabelHighPriority   = "High Priority"
	LabelNormalPriority = "Normal Priority"
	LabelCompleted      = "Completed"
	LabelPending        = "Pending"
)

// Task represents a single to-do item.
type Task struct {
	ID           string
	Description  string
	DueDate      time.Time // midnight UTC; only the calendar date is meaningful
	Completed    bool
	HighPriority bool
	CreatedAt    time.Time
}

// New creates a pending task. The due date is truncated to its calendar date.
func New(description string, dueDate time.Time, highPriority bool) *Task {
	return &Task{
		Description:  description,
		DueDate:      DateOf(dueDate),
		HighPriority: highPriority,
	}
}

// MarkCompleted moves the task to the completed state. Calling it again is a no-op.
func (t *Task) MarkCompleted() {
	t.Completed = true
}

// IsOverdue reports whether the task is pending and due before the calendar date of now.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate.Before(Today(now))
}

// PriorityLabel returns "High Priority" or "Normal Priority".
func (t *Task) PriorityLabel() string {
	if t.HighPriority {
		return LabelHighPriority
	}
	return LabelNormalPriority
}

// StatusLabel returns "Completed" or "Pending".
func (t *Task) StatusLabel() string {
	if t.Completed {
		return LabelCompleted
	}
	return LabelPending
}

// Format renders the task as a single display line, e.g.
// "[Due: 10 Jan 2024] Write report - High Priority - Pending".
func (t *Task) Format() string {
	return fmt.Sprintf("[Due: %s] %s - %s - %s", FormatDate(t.DueDate), t.Description, t.PriorityLabel(), t.StatusLabel())
}
