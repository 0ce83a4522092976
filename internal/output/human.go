package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abatilo/smartsched/internal/storage"
	"github.com/abatilo/smartsched/internal/task"
)

//nolint:gochecknoglobals // styles are immutable after init
var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	highStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#D93025")).Bold(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22A06B"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#D93025"))
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct {
	color bool
}

// NewHumanFormatter creates a new HumanFormatter. With color disabled every
// task line is exactly task.Format().
func NewHumanFormatter(color bool) *HumanFormatter {
	return &HumanFormatter{color: color}
}

// FormatTaskList formats a titled list of tasks, one per line, prefixed by their index.
func (f *HumanFormatter) FormatTaskList(title string, entries []storage.Entry) string {
	var sb strings.Builder
	sb.WriteString(f.style(headerStyle, title+":"))
	sb.WriteString("\n")

	if len(entries) == 0 {
		sb.WriteString("No tasks found.\n")
		return sb.String()
	}

	for _, e := range entries {
		fmt.Fprintf(&sb, "%4d  %s\n", e.Index, f.formatTaskLine(e.Task))
	}
	return sb.String()
}

func (f *HumanFormatter) formatTaskLine(t *task.Task) string {
	if !f.color {
		return t.Format()
	}

	priority := t.PriorityLabel()
	if t.HighPriority {
		priority = highStyle.Render(priority)
	}
	status := pendingStyle.Render(t.StatusLabel())
	if t.Completed {
		status = completedStyle.Render(t.StatusLabel())
	}
	return fmt.Sprintf("[Due: %s] %s - %s - %s", task.FormatDate(t.DueDate), t.Description, priority, status)
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return f.style(errorStyle, "Error: "+err.Error()) + "\n"
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}

func (f *HumanFormatter) style(s lipgloss.Style, text string) string {
	if !f.color {
		return text
	}
	return s.Render(text)
}
