// Package menu implements the interactive numbered menu. It owns all console
// I/O; the store and tasks never print.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	schederrors "github.com/abatilo/smartsched/internal/errors"
	"github.com/abatilo/smartsched/internal/output"
	"github.com/abatilo/smartsched/internal/storage"
	"github.com/abatilo/smartsched/internal/task"
)

// User-facing messages.
const (
	MsgInvalidIndex  = "Invalid task index."
	MsgInvalidChoice = "Invalid choice. Please try again."
	MsgSortedByDate  = "Tasks sorted by due date."
	MsgSortedByPrio  = "Tasks sorted by priority."
	MsgUpdated       = "Task updated successfully."
	MsgDeleted       = "Task deleted successfully."
	MsgGoodbye       = "Thank you for using SmartScheduler. Goodbye!"
)

// errQuit ends the loop after the exit action.
var errQuit = errors.New("quit")

// action is one numbered menu entry.
type action struct {
	key     string
	aliases []string
	label   string
	run     func(*Menu, context.Context) error
}

// inputLine is one result of the background input reader.
type inputLine struct {
	text string
	err  error
}

// Menu reads choices from in and drives a Store, writing results to out.
type Menu struct {
	store     *storage.Store
	formatter output.Formatter
	logger    *log.Logger
	in        *bufio.Scanner
	lines     <-chan inputLine
	out       io.Writer
	actions   []action
	lookup    map[string]action
}

// New creates a Menu. The logger receives diagnostics only, never user output.
func New(store *storage.Store, formatter output.Formatter, logger *log.Logger, in io.Reader, out io.Writer) *Menu {
	m := &Menu{
		store:     store,
		formatter: formatter,
		logger:    logger,
		in:        bufio.NewScanner(in),
		out:       out,
		actions:   defaultActions(),
	}
	m.lookup = make(map[string]action)
	for _, a := range m.actions {
		m.lookup[a.key] = a
		for _, alias := range a.aliases {
			m.lookup[alias] = a
		}
	}
	return m
}

func defaultActions() []action {
	return []action{
		{key: "1", aliases: []string{"add"}, label: "Add Task", run: (*Menu).add},
		{key: "2", aliases: []string{"view", "list"}, label: "View Tasks", run: (*Menu).viewAll},
		{key: "3", aliases: []string{"complete", "done"}, label: "Mark Task as Completed", run: (*Menu).complete},
		{key: "4", aliases: []string{"pending"}, label: "View Pending Tasks", run: (*Menu).viewPending},
		{key: "5", aliases: []string{"high"}, label: "View High Priority Tasks", run: (*Menu).viewHighPriority},
		{key: "6", aliases: []string{"overdue"}, label: "View Overdue Tasks", run: (*Menu).viewOverdue},
		{key: "7", aliases: []string{"sort-date"}, label: "Sort Tasks by Due Date", run: (*Menu).sortByDueDate},
		{key: "8", aliases: []string{"sort-priority"}, label: "Sort Tasks by Priority", run: (*Menu).sortByPriority},
		{key: "9", aliases: []string{"edit"}, label: "Edit Task", run: (*Menu).edit},
		{key: "10", aliases: []string{"delete", "rm"}, label: "Delete Task", run: (*Menu).deleteTask},
		{key: "11", aliases: []string{"exit", "quit"}, label: "Exit", run: (*Menu).exit},
	}
}

// Run shows the menu until the user exits, input ends, or ctx is cancelled.
// End of input is a normal exit and returns nil; cancellation returns ctx.Err()
// even while a prompt is waiting for input.
func (m *Menu) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	m.lines = m.scan(done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		choice, err := m.readLine(ctx, "Enter your choice: ")
		if err != nil {
			return ignoreEOF(err)
		}
		m.print("\n")

		a, ok := m.lookup[strings.ToLower(strings.TrimSpace(choice))]
		if !ok {
			m.logger.Debug("unknown menu choice", "choice", choice)
			m.message(MsgInvalidChoice)
			continue
		}

		m.logger.Debug("running action", "action", a.label)
		if err := a.run(m, ctx); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return ignoreEOF(err)
		}
	}
}

func (m *Menu) printMenu() {
	var sb strings.Builder
	sb.WriteString("\nChoose an action:\n")
	for _, a := range m.actions {
		fmt.Fprintf(&sb, "%s. %s\n", a.key, a.label)
	}
	m.print(sb.String())
}

func (m *Menu) add(ctx context.Context) error {
	description, err := m.readLine(ctx, "Enter the task description: ")
	if err != nil {
		return err
	}
	dueDate, err := m.readDate(ctx, "Enter the due date (dd/mm/yyyy): ")
	if err != nil {
		return err
	}
	highPriority, err := m.readPriority(ctx, "Is it a high priority task? (y/n): ")
	if err != nil {
		return err
	}

	t := m.store.Add(description, dueDate, highPriority)
	m.logger.Debug("task added", "id", t.ID, "index", m.store.Len()-1)
	m.message(fmt.Sprintf("Task '%s' added to the schedule.", t.Description))
	return nil
}

func (m *Menu) viewAll(context.Context) error {
	m.print(m.formatter.FormatTaskList("Scheduled Tasks", m.store.ListAll()))
	return nil
}

func (m *Menu) viewPending(context.Context) error {
	m.print(m.formatter.FormatTaskList("Pending Tasks", m.store.ListPending()))
	return nil
}

func (m *Menu) viewHighPriority(context.Context) error {
	m.print(m.formatter.FormatTaskList("High Priority Tasks", m.store.ListHighPriority()))
	return nil
}

func (m *Menu) viewOverdue(context.Context) error {
	m.print(m.formatter.FormatTaskList("Overdue Tasks", m.store.ListOverdue()))
	return nil
}

func (m *Menu) complete(ctx context.Context) error {
	index, err := m.readIndex(ctx, "Enter the index of the task to mark as completed: ")
	if err != nil {
		return err
	}

	t, err := m.store.Complete(index)
	if err != nil {
		m.reportStoreError(err)
		return nil
	}
	m.logger.Debug("task completed", "id", t.ID, "index", index)
	m.message(fmt.Sprintf("Task '%s' has been marked as completed.", t.Description))
	return nil
}

func (m *Menu) sortByDueDate(context.Context) error {
	m.store.SortByDueDate()
	m.logger.Debug("tasks sorted", "by", "due_date")
	m.message(MsgSortedByDate)
	return nil
}

func (m *Menu) sortByPriority(context.Context) error {
	m.store.SortByPriority()
	m.logger.Debug("tasks sorted", "by", "priority")
	m.message(MsgSortedByPrio)
	return nil
}

func (m *Menu) edit(ctx context.Context) error {
	index, err := m.readIndex(ctx, "Enter the index of the task to edit: ")
	if err != nil {
		return err
	}
	// Reject a bad index before asking for the new field values.
	if _, err = m.store.Get(index); err != nil {
		m.reportStoreError(err)
		return nil
	}

	description, err := m.readLine(ctx, "Enter the new task description: ")
	if err != nil {
		return err
	}
	dueDate, err := m.readDate(ctx, "Enter the new due date (dd/mm/yyyy): ")
	if err != nil {
		return err
	}
	highPriority, err := m.readPriority(ctx, "Is it a new high priority task? (y/n): ")
	if err != nil {
		return err
	}

	t, err := m.store.Edit(index, description, dueDate, highPriority)
	if err != nil {
		m.reportStoreError(err)
		return nil
	}
	m.logger.Debug("task edited", "id", t.ID, "index", index)
	m.message(MsgUpdated)
	return nil
}

func (m *Menu) deleteTask(ctx context.Context) error {
	index, err := m.readIndex(ctx, "Enter the index of the task to delete: ")
	if err != nil {
		return err
	}

	t, err := m.store.Delete(index)
	if err != nil {
		m.reportStoreError(err)
		return nil
	}
	m.logger.Debug("task deleted", "id", t.ID, "index", index)
	m.message(MsgDeleted)
	return nil
}

func (m *Menu) exit(context.Context) error {
	m.message(MsgGoodbye)
	return errQuit
}

// reportStoreError turns a store failure into user output. Invalid indexes are
// an expected outcome and get the plain message.
func (m *Menu) reportStoreError(err error) {
	var idxErr schederrors.InvalidIndexError
	if errors.As(err, &idxErr) {
		m.logger.Debug("rejected index", "index", idxErr.Index, "size", idxErr.Size)
		m.message(MsgInvalidIndex)
		return
	}
	m.logger.Error("store operation failed", "err", err)
	m.print(m.formatter.FormatError(err))
}

// scan feeds input lines to the returned channel until input ends or done is
// closed. The final value carries the scanner error, or io.EOF.
func (m *Menu) scan(done <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		for m.in.Scan() {
			select {
			case lines <- inputLine{text: strings.TrimRight(m.in.Text(), "\r")}:
			case <-done:
				return
			}
		}
		err := m.in.Err()
		if err == nil {
			err = io.EOF
		}
		select {
		case lines <- inputLine{err: err}:
		case <-done:
		}
	}()
	return lines
}

// readLine prompts and returns the next input line without its newline.
// It returns io.EOF once input is exhausted and ctx.Err() as soon as ctx is
// cancelled, even if no line ever arrives.
func (m *Menu) readLine(ctx context.Context, prompt string) (string, error) {
	m.print(prompt)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-m.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

// readIndex prompts until the answer is a whole number or the ID of a stored
// task, and returns the task's position.
func (m *Menu) readIndex(ctx context.Context, prompt string) (int, error) {
	for {
		line, err := m.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		value := strings.TrimSpace(line)
		n, err := strconv.Atoi(value)
		if err == nil {
			return n, nil
		}
		if index, _, findErr := m.store.FindByID(strings.ToLower(value)); findErr == nil {
			m.logger.Debug("resolved task id", "id", value, "index", index)
			return index, nil
		}
		m.print(m.formatter.FormatError(schederrors.InvalidNumberError{Value: value}))
	}
}

// readDate prompts until the answer is a valid dd/mm/yyyy date.
func (m *Menu) readDate(ctx context.Context, prompt string) (time.Time, error) {
	for {
		line, err := m.readLine(ctx, prompt)
		if err != nil {
			return time.Time{}, err
		}
		d, err := task.ParseDate(line)
		if err == nil {
			return d, nil
		}
		m.print(m.formatter.FormatError(err))
	}
}

func (m *Menu) readPriority(ctx context.Context, prompt string) (bool, error) {
	line, err := m.readLine(ctx, prompt)
	if err != nil {
		return false, err
	}
	return task.ParsePriority(line), nil
}

func (m *Menu) message(msg string) {
	m.print(m.formatter.FormatMessage(msg))
}

func (m *Menu) print(s string) {
	_, _ = io.WriteString(m.out, s)
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
