//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import "fmt"

// InvalidIndexError indicates a positional index outside the current task list.
type InvalidIndexError struct {
	Index int
	Size  int
}

func (e InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid task index: %d (have %d task(s))", e.Index, e.Size)
}

// TaskNotFoundError indicates the task ID doesn't match any task.
type TaskNotFoundError struct {
	ID string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// InvalidDateError indicates a due date that doesn't match dd/mm/yyyy.
type InvalidDateError struct {
	Value string
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %q (expected dd/mm/yyyy)", e.Value)
}

// InvalidNumberError indicates non-numeric input where an index was expected.
type InvalidNumberError struct {
	Value string
}

func (e InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid number: %q (expected a whole number)", e.Value)
}

// InvalidOutputError indicates an unknown output format.
type InvalidOutputError struct {
	Value string
}

func (e InvalidOutputError) Error() string {
	return fmt.Sprintf("invalid output format: %s (valid: human, json, yaml)", e.Value)
}

// InvalidLogLevelError indicates an unknown log level.
type InvalidLogLevelError struct {
	Value string
}

func (e InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level: %s (valid: debug, info, warn, error)", e.Value)
}
