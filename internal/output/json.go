package output

import (
	"encoding/json"
	"time"

	"go.trai.ch/zerr"

	"github.com/abatilo/smartsched/internal/storage"
	"github.com/abatilo/smartsched/internal/task"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// A single string field always encodes.
		data, _ = json.MarshalIndent(errorDoc{Error: zerr.Wrap(err, "encode json output").Error()}, "", "  ")
	}
	return string(data) + "\n"
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// taskDoc is the structured representation of a listed task, shared by JSON and YAML output.
type taskDoc struct {
	Index        int    `json:"index"         yaml:"index"`
	ID           string `json:"id"            yaml:"id"`
	Description  string `json:"description"   yaml:"description"`
	DueDate      string `json:"due_date"      yaml:"due_date"`
	HighPriority bool   `json:"high_priority" yaml:"high_priority"`
	Completed    bool   `json:"completed"     yaml:"completed"`
	CreatedAt    string `json:"created_at"    yaml:"created_at"`
}

// taskListDoc is the structured representation of a titled task list.
type taskListDoc struct {
	Title string    `json:"title" yaml:"title"`
	Tasks []taskDoc `json:"tasks" yaml:"tasks"`
}

func toTaskDoc(index int, t *task.Task) taskDoc {
	return taskDoc{
		Index:        index,
		ID:           t.ID,
		Description:  t.Description,
		DueDate:      t.DueDate.Format(time.DateOnly),
		HighPriority: t.HighPriority,
		Completed:    t.Completed,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}

func toTaskListDoc(title string, entries []storage.Entry) taskListDoc {
	docs := make([]taskDoc, len(entries))
	for i, e := range entries {
		docs[i] = toTaskDoc(e.Index, e.Task)
	}
	return taskListDoc{Title: title, Tasks: docs}
}

// FormatTaskList formats a list of tasks as JSON.
func (f *JSONFormatter) FormatTaskList(title string, entries []storage.Entry) string {
	return marshalJSON(toTaskListDoc(title, entries))
}

// errorDoc is the structured representation of an error.
type errorDoc struct {
	Error string `json:"error" yaml:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorDoc{Error: err.Error()})
}

// messageDoc is the structured representation of a message.
type messageDoc struct {
	Message string `json:"message" yaml:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageDoc{Message: msg})
}
