// Package tasklist holds the ordered, mutable collection of tasks.
//
// Callers address tasks by 1-based display index; the list translates to
// its 0-based slice index and bounds-checks on every call. A List is not
// safe for concurrent mutation; callers that share one across goroutines
// must add their own locking.
package tasklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nibzard/sam-go/internal/task"
)

var (
	// ErrIndexOutOfRange is returned when a display index is not in [1, Len()].
	ErrIndexOutOfRange = errors.New("task index out of range")
	// ErrEmptyList is returned when listing a list with no tasks.
	ErrEmptyList = errors.New("task list is empty")
)

// IndexError reports a display index outside the list bounds.
type IndexError struct {
	Index int // display index as given by the caller
	Len   int // list length at the time of the call
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid task index: %d (you have %s)", e.Index, pluralTasks(e.Len))
}

// Unwrap returns ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// List is an ordered sequence of tasks in insertion order.
type List struct {
	tasks []task.Task
}

// New returns a list holding tasks in the given order.
func New(tasks ...task.Task) *List {
	l := &List{tasks: make([]task.Task, 0, len(tasks))}
	l.tasks = append(l.tasks, tasks...)
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the tasks in order.
func (l *List) Tasks() []task.Task {
	out := make([]task.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Add appends t to the end of the list.
func (l *List) Add(t task.Task) {
	l.tasks = append(l.tasks, t)
}

// Delete removes and returns the task at displayIndex.
func (l *List) Delete(displayIndex int) (task.Task, error) {
	i, err := l.index(displayIndex)
	if err != nil {
		return task.Task{}, err
	}
	removed := l.tasks[i]
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return removed, nil
}

// Mark marks the task at displayIndex done and returns it.
func (l *List) Mark(displayIndex int) (task.Task, error) {
	i, err := l.index(displayIndex)
	if err != nil {
		return task.Task{}, err
	}
	l.tasks[i].MarkDone()
	return l.tasks[i], nil
}

// Unmark marks the task at displayIndex not done and returns it.
func (l *List) Unmark(displayIndex int) (task.Task, error) {
	i, err := l.index(displayIndex)
	if err != nil {
		return task.Task{}, err
	}
	l.tasks[i].MarkNotDone()
	return l.tasks[i], nil
}

// Find returns a new list of the tasks whose description contains substr,
// in their original order. Matching is case-sensitive; an empty substr
// matches every task.
func (l *List) Find(substr string) *List {
	found := New()
	for _, t := range l.tasks {
		if strings.Contains(t.Description(), substr) {
			found.Add(t)
		}
	}
	return found
}

// Listing renders each task prefixed with its display index.
// It returns ErrEmptyList when there is nothing to show.
func (l *List) Listing() ([]string, error) {
	if len(l.tasks) == 0 {
		return nil, ErrEmptyList
	}
	lines := make([]string, len(l.tasks))
	for i, t := range l.tasks {
		lines[i] = fmt.Sprintf("%d.%s", i+1, t.Render())
	}
	return lines, nil
}

// CountSummary returns a sentence stating how many tasks the list holds.
func (l *List) CountSummary() string {
	return fmt.Sprintf("Now you have %s in the list.", pluralTasks(len(l.tasks)))
}

// index translates a display index to a slice index.
func (l *List) index(displayIndex int) (int, error) {
	i := displayIndex - 1
	if i < 0 || i >= len(l.tasks) {
		return 0, &IndexError{Index: displayIndex, Len: len(l.tasks)}
	}
	return i, nil
}

func pluralTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
