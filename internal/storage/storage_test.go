//nolint:testpackage // Tests require internal access for thorough testing
package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schederrors "github.com/abatilo/smartsched/internal/errors"
	"github.com/abatilo/smartsched/internal/task"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestStore() *Store {
	return NewStore(WithClock(func() time.Time { return fixedNow }))
}

func descriptions(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Task.Description
	}
	return out
}

func indexes(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Index
	}
	return out
}

func requireInvalidIndex(t *testing.T, err error, index, size int) {
	t.Helper()
	var idxErr schederrors.InvalidIndexError
	require.True(t, errors.As(err, &idxErr), "expected InvalidIndexError, got %T: %v", err, err)
	assert.Equal(t, index, idxErr.Index)
	assert.Equal(t, size, idxErr.Size)
}

func TestAddAndListAll(t *testing.T) {
	store := newTestStore()
	names := []string{"one", "two", "three", "four"}
	for i, n := range names {
		store.Add(n, date(2024, time.April, 10-i), i%2 == 0)
	}

	entries := store.ListAll()
	require.Len(t, entries, len(names))
	assert.Equal(t, names, descriptions(entries))
	assert.Equal(t, []int{0, 1, 2, 3}, indexes(entries))
}

func TestAddAssignsIDAndCreatedAt(t *testing.T) {
	store := newTestStore()
	a := store.Add("a", date(2024, time.April, 1), false)
	b := store.Add("a", date(2024, time.April, 1), false)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, fixedNow, a.CreatedAt)
	assert.False(t, a.Completed)
}

func TestExampleFromDocs(t *testing.T) {
	store := newTestStore()
	store.Add("Write report", date(2024, time.January, 10), true)
	store.Add("Clean desk", date(2024, time.January, 5), false)

	all := store.ListAll()
	require.Len(t, all, 2)
	assert.Equal(t, "[Due: 10 Jan 2024] Write report - High Priority - Pending", all[0].Task.Format())
	assert.Equal(t, "[Due: 05 Jan 2024] Clean desk - Normal Priority - Pending", all[1].Task.Format())

	store.SortByDueDate()
	assert.Equal(t, []string{"Clean desk", "Write report"}, descriptions(store.ListAll()))
}

func TestComplete(t *testing.T) {
	store := newTestStore()
	store.Add("a", date(2024, time.April, 1), false)
	store.Add("b", date(2024, time.April, 2), true)
	store.Add("c", date(2024, time.April, 3), false)

	tk, err := store.Complete(1)
	require.NoError(t, err)
	assert.Equal(t, "b", tk.Description)

	all := store.ListAll()
	assert.False(t, all[0].Task.Completed)
	assert.True(t, all[1].Task.Completed)
	assert.False(t, all[2].Task.Completed)

	// Completing again is harmless
	tk, err = store.Complete(1)
	require.NoError(t, err)
	assert.True(t, tk.Completed)
}

func TestCompleteInvalidIndex(t *testing.T) {
	store := newTestStore()
	store.Add("a", date(2024, time.April, 1), false)

	for _, idx := range []int{-1, 1, 99} {
		_, err := store.Complete(idx)
		requireInvalidIndex(t, err, idx, 1)
	}
	assert.False(t, store.ListAll()[0].Task.Completed)
}

func TestPendingPartition(t *testing.T) {
	store := newTestStore()
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		store.Add(n, date(2024, time.April, 1), false)
	}
	_, _ = store.Complete(1)
	_, _ = store.Complete(3)

	pending := store.ListPending()
	assert.Equal(t, []string{"a", "c", "e"}, descriptions(pending))

	var completed []Entry
	for _, e := range store.ListAll() {
		if e.Task.Completed {
			completed = append(completed, e)
		}
	}
	assert.Equal(t, []string{"b", "d"}, descriptions(completed))

	// Disjoint, and the union in index order is ListAll
	seen := map[int]bool{}
	for _, e := range append(pending, completed...) {
		assert.False(t, seen[e.Index], "index %d in both partitions", e.Index)
		seen[e.Index] = true
	}
	assert.Len(t, seen, store.Len())
}

func TestListHighPriority(t *testing.T) {
	store := newTestStore()
	store.Add("a", date(2024, time.April, 1), true)
	store.Add("b", date(2024, time.April, 1), false)
	store.Add("c", date(2024, time.April, 1), true)

	entries := store.ListHighPriority()
	assert.Equal(t, []string{"a", "c"}, descriptions(entries))
	assert.Equal(t, []int{0, 2}, indexes(entries))
}

func TestListOverdue(t *testing.T) {
	store := newTestStore()
	store.Add("past pending", date(2024, time.March, 14), false)
	store.Add("past completed", date(2024, time.March, 1), true)
	store.Add("today", date(2024, time.March, 15), false)
	store.Add("future", date(2024, time.March, 16), false)
	store.Add("long ago", date(2020, time.January, 1), true)
	_, _ = store.Complete(1)

	entries := store.ListOverdue()
	assert.Equal(t, []string{"past pending", "long ago"}, descriptions(entries))
	for _, e := range entries {
		assert.False(t, e.Task.Completed)
		assert.True(t, e.Task.DueDate.Before(date(2024, time.March, 15)))
	}
}

func TestListOverdueReadsClockPerCall(t *testing.T) {
	now := date(2024, time.March, 1)
	store := NewStore(WithClock(func() time.Time { return now }))
	store.Add("a", date(2024, time.March, 10), false)

	assert.Empty(t, store.ListOverdue())

	now = date(2024, time.March, 11)
	assert.Len(t, store.ListOverdue(), 1)
}

func TestSortByDueDateIsStable(t *testing.T) {
	store := newTestStore()
	store.Add("late", date(2024, time.May, 1), false)
	store.Add("tie-1", date(2024, time.April, 1), false)
	store.Add("early", date(2024, time.March, 1), false)
	store.Add("tie-2", date(2024, time.April, 1), true)
	store.Add("tie-3", date(2024, time.April, 1), false)

	store.SortByDueDate()

	entries := store.ListAll()
	assert.Equal(t, []string{"early", "tie-1", "tie-2", "tie-3", "late"}, descriptions(entries))
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Task.DueDate.Before(entries[i-1].Task.DueDate))
	}
}

func TestSortByPriorityIsStable(t *testing.T) {
	store := newTestStore()
	store.Add("n1", date(2024, time.April, 1), false)
	store.Add("h1", date(2024, time.April, 2), true)
	store.Add("n2", date(2024, time.April, 3), false)
	store.Add("h2", date(2024, time.April, 4), true)
	store.Add("n3", date(2024, time.April, 5), false)

	store.SortByPriority()

	assert.Equal(t, []string{"h1", "h2", "n1", "n2", "n3"}, descriptions(store.ListAll()))
}

func TestEdit(t *testing.T) {
	store := newTestStore()
	store.Add("a", date(2024, time.April, 1), false)
	store.Add("b", date(2024, time.April, 2), false)
	_, _ = store.Complete(1)

	tk, err := store.Edit(1, "b edited", date(2025, time.January, 1), true)
	require.NoError(t, err)
	assert.Equal(t, "b edited", tk.Description)
	assert.Equal(t, date(2025, time.January, 1), tk.DueDate)
	assert.True(t, tk.HighPriority)
	assert.True(t, tk.Completed, "edit must not touch completion state")

	untouched, _ := store.Get(0)
	assert.Equal(t, "a", untouched.Description)
	assert.False(t, untouched.HighPriority)
}

func TestEditInvalidIndex(t *testing.T) {
	store := newTestStore()
	store.Add("a", date(2024, time.April, 1), false)

	_, err := store.Edit(5, "x", date(2025, time.January, 1), true)
	requireInvalidIndex(t, err, 5, 1)
	assert.Equal(t, "a", store.ListAll()[0].Task.Description)
}

func TestDelete(t *testing.T) {
	store := newTestStore()
	store.Add("a", date(2024, time.April, 1), false)
	store.Add("b", date(2024, time.April, 2), false)
	store.Add("c", date(2024, time.April, 3), false)

	removed, err := store.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Description)
	assert.Equal(t, 2, store.Len())

	c, err := store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "c", c.Description)
}

func TestDeleteInvalidIndex(t *testing.T) {
	store := newTestStore()

	_, err := store.Delete(0)
	requireInvalidIndex(t, err, 0, 0)
	assert.Equal(t, 0, store.Len())
}

func TestFindByIDSurvivesReordering(t *testing.T) {
	store := newTestStore()
	store.Add("late", date(2024, time.May, 1), false)
	early := store.Add("early", date(2024, time.March, 1), false)

	idx, _, err := store.FindByID(early.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	store.SortByDueDate()

	idx, tk, err := store.FindByID(early.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Same(t, early, tk)

	_, _, err = store.FindByID("nope")
	var notFound schederrors.TaskNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestFilter(t *testing.T) {
	pending := &task.Task{DueDate: date(2024, time.March, 1)}
	done := &task.Task{DueDate: date(2024, time.March, 1), Completed: true}
	high := &task.Task{DueDate: date(2024, time.April, 1), HighPriority: true}

	tests := []struct {
		name   string
		filter Filter
		task   *task.Task
		want   bool
	}{
		{"empty filter matches pending", Filter{}, pending, true},
		{"empty filter matches completed", Filter{}, done, true},
		{"pending filter rejects completed", Filter{Pending: true}, done, false},
		{"pending filter matches pending", Filter{Pending: true}, pending, true},
		{"high priority filter rejects normal", Filter{HighPriority: true}, pending, false},
		{"high priority filter matches high", Filter{HighPriority: true}, high, true},
		{"overdue filter matches past pending", Filter{Overdue: true}, pending, true},
		{"overdue filter rejects completed", Filter{Overdue: true}, done, false},
		{"overdue filter rejects future", Filter{Overdue: true}, high, false},
		{"combined filter requires all", Filter{Overdue: true, HighPriority: true}, pending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.task, fixedNow); got != tt.want {
				t.Errorf("filter.Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
