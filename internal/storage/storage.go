package storage

import (
	"slices"
	"time"

	schederrors "github.com/abatilo/smartsched/internal/errors"
	"github.com/abatilo/smartsched/internal/task"
)

// Store is an ordered, in-memory task collection.
// Tasks are addressed by their position in the current ordering; positions
// shift after Delete and the Sort methods.
type Store struct {
	tasks []*task.Task
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used for creation timestamps and overdue checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Entry pairs a task with its current position in the store.
type Entry struct {
	Index int
	Task  *task.Task
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Add appends a new pending task and returns it.
func (s *Store) Add(description string, dueDate time.Time, highPriority bool) *task.Task {
	t := task.New(description, dueDate, highPriority)
	t.CreatedAt = s.now().UTC()

	ids := s.allIDs()
	t.ID = task.GenerateID(func(id string) bool {
		return ids[id]
	})

	s.tasks = append(s.tasks, t)
	return t
}

func (s *Store) allIDs() map[string]bool {
	ids := make(map[string]bool, len(s.tasks))
	for _, t := range s.tasks {
		ids[t.ID] = true
	}
	return ids
}

// Get returns the task at index.
func (s *Store) Get(index int) (*task.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return nil, err
	}
	return s.tasks[index], nil
}

// FindByID returns the current position and task with the given ID.
func (s *Store) FindByID(id string) (int, *task.Task, error) {
	for i, t := range s.tasks {
		if t.ID == id {
			return i, t, nil
		}
	}
	return -1, nil, schederrors.TaskNotFoundError{ID: id}
}

// Complete marks the task at index as completed.
func (s *Store) Complete(index int) (*task.Task, error) {
	t, err := s.Get(index)
	if err != nil {
		return nil, err
	}
	t.MarkCompleted()
	return t, nil
}

// Edit overwrites the description, due date and priority of the task at index.
// The completion state is left untouched.
func (s *Store) Edit(index int, description string, dueDate time.Time, highPriority bool) (*task.Task, error) {
	t, err := s.Get(index)
	if err != nil {
		return nil, err
	}
	t.Description = description
	t.DueDate = task.DateOf(dueDate)
	t.HighPriority = highPriority
	return t, nil
}

// Delete removes the task at index and returns it.
func (s *Store) Delete(index int) (*task.Task, error) {
	t, err := s.Get(index)
	if err != nil {
		return nil, err
	}
	s.tasks = slices.Delete(s.tasks, index, index+1)
	return t, nil
}

// List returns the tasks matching filter, in current order.
func (s *Store) List(filter Filter) []Entry {
	now := s.now()

	var entries []Entry
	for i, t := range s.tasks {
		if filter.Matches(t, now) {
			entries = append(entries, Entry{Index: i, Task: t})
		}
	}
	return entries
}

// ListAll returns every task in current order.
func (s *Store) ListAll() []Entry {
	return s.List(Filter{})
}

// ListPending returns tasks that are not completed.
func (s *Store) ListPending() []Entry {
	return s.List(Filter{Pending: true})
}

// ListHighPriority returns high-priority tasks.
func (s *Store) ListHighPriority() []Entry {
	return s.List(Filter{HighPriority: true})
}

// ListOverdue returns pending tasks due before today. The clock is read once per call.
func (s *Store) ListOverdue() []Entry {
	return s.List(Filter{Overdue: true})
}

// SortByDueDate orders tasks by due date, earliest first. Ties keep their relative order.
func (s *Store) SortByDueDate() {
	slices.SortStableFunc(s.tasks, func(a, b *task.Task) int {
		return a.DueDate.Compare(b.DueDate)
	})
}

// SortByPriority moves high-priority tasks ahead of normal ones, keeping relative order within each group.
func (s *Store) SortByPriority() {
	slices.SortStableFunc(s.tasks, func(a, b *task.Task) int {
		switch {
		case a.HighPriority == b.HighPriority:
			return 0
		case a.HighPriority:
			return -1
		default:
			return 1
		}
	})
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.tasks) {
		return schederrors.InvalidIndexError{Index: index, Size: len(s.tasks)}
	}
	return nil
}

// Filter controls which tasks to include in list results.
// Every condition that is set must hold; an empty filter matches everything.
type Filter struct {
	Pending      bool
	HighPriority bool
	Overdue      bool
}

// Matches returns true if the task should be included, judging overdue against now.
func (f Filter) Matches(t *task.Task, now time.Time) bool {
	if f.Pending && t.Completed {
		return false
	}
	if f.HighPriority && !t.HighPriority {
		return false
	}
	if f.Overdue && !t.IsOverdue(now) {
		return false
	}
	return true
}
