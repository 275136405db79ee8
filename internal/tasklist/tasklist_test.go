package tasklist

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/nibzard/sam-go/internal/task"
)

func sampleList() *List {
	return New(
		task.NewTodo("read book"),
		task.NewTodo("return book to library"),
		task.NewTodo("buy milk"),
	)
}

func TestAddPreservesOrder(t *testing.T) {
	l := New()
	l.Add(task.NewTodo("first"))
	l.Add(task.NewTodo("second"))
	l.Add(task.NewTodo("third"))

	got := l.Tasks()
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("Len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Description() != want[i] {
			t.Errorf("task %d: got %q, want %q", i, got[i].Description(), want[i])
		}
	}
}

func TestDelete(t *testing.T) {
	l := sampleList()
	removed, err := l.Delete(2)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed.Description() != "return book to library" {
		t.Errorf("removed: got %q", removed.Description())
	}
	if l.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", l.Len())
	}
	tasks := l.Tasks()
	if tasks[0].Description() != "read book" || tasks[1].Description() != "buy milk" {
		t.Errorf("survivors reordered: %v", tasks)
	}
}

func TestIndexOutOfRangeDoesNotMutate(t *testing.T) {
	ops := map[string]func(*List, int) (task.Task, error){
		"delete": (*List).Delete,
		"mark":   (*List).Mark,
		"unmark": (*List).Unmark,
	}
	indices := []int{0, -1, 4, 5, math.MaxInt, math.MinInt}

	for name, op := range ops {
		for _, idx := range indices {
			l := sampleList()
			before := l.Tasks()
			_, err := op(l, idx)
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("%s(%d): got %v, want ErrIndexOutOfRange", name, idx, err)
			}
			var ie *IndexError
			if !errors.As(err, &ie) || ie.Index != idx || ie.Len != 3 {
				t.Errorf("%s(%d): unexpected IndexError %+v", name, idx, ie)
			}
			after := l.Tasks()
			if len(after) != len(before) {
				t.Fatalf("%s(%d): list length changed", name, idx)
			}
			for i := range before {
				if !after[i].Equal(before[i]) {
					t.Errorf("%s(%d): task %d changed", name, idx, i)
				}
			}
		}
	}
}

func TestMarkAndUnmark(t *testing.T) {
	l := sampleList()

	marked, err := l.Mark(1)
	if err != nil {
		t.Fatalf("Mark failed: %v", err)
	}
	if !marked.Done() {
		t.Error("returned task should be done")
	}
	if _, err := l.Mark(1); err != nil {
		t.Fatalf("marking twice should not fail: %v", err)
	}
	if !l.Tasks()[0].Done() {
		t.Error("task should remain done")
	}

	unmarked, err := l.Unmark(1)
	if err != nil {
		t.Fatalf("Unmark failed: %v", err)
	}
	if unmarked.Done() || l.Tasks()[0].Done() {
		t.Error("task should be not done after Unmark")
	}
}

func TestReturnedTaskIsACopy(t *testing.T) {
	l := sampleList()
	marked, _ := l.Mark(1)
	marked.MarkNotDone()
	if !l.Tasks()[0].Done() {
		t.Error("changing the returned task must not affect the list")
	}
}

func TestFind(t *testing.T) {
	l := sampleList()
	before := l.Tasks()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"substring", "book", []string{"read book", "return book to library"}},
		{"case sensitive", "Book", nil},
		{"single", "milk", []string{"buy milk"}},
		{"empty matches all", "", []string{"read book", "return book to library", "buy milk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := l.Find(tt.query)
			got := found.Tasks()
			if len(got) != len(tt.want) {
				t.Fatalf("Find(%q): got %d tasks, want %d", tt.query, len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i].Description() != tt.want[i] {
					t.Errorf("Find(%q)[%d]: got %q, want %q", tt.query, i, got[i].Description(), tt.want[i])
				}
			}
		})
	}

	after := l.Tasks()
	if len(after) != len(before) {
		t.Fatal("Find mutated the original list")
	}
}

func TestFindReturnsIndependentList(t *testing.T) {
	l := sampleList()
	found := l.Find("milk")
	if _, err := found.Mark(1); err != nil {
		t.Fatalf("Mark on found list failed: %v", err)
	}
	if l.Tasks()[2].Done() {
		t.Error("marking in the found list must not affect the original")
	}
}

func TestListing(t *testing.T) {
	l := New()
	if _, err := l.Listing(); !errors.Is(err, ErrEmptyList) {
		t.Fatalf("empty list: got %v, want ErrEmptyList", err)
	}

	l = sampleList()
	l.Mark(3)
	lines, err := l.Listing()
	if err != nil {
		t.Fatalf("Listing failed: %v", err)
	}
	want := []string{
		"1.[T][ ] read book",
		"2.[T][ ] return book to library",
		"3.[T][X] buy milk",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("Listing:\ngot  %q\nwant %q", lines, want)
	}

	found := l.Find("milk")
	lines, _ = found.Listing()
	if len(lines) != 1 || lines[0] != "1.[T][X] buy milk" {
		t.Errorf("found listing renumbers from 1, got %q", lines)
	}
}

func TestCountSummary(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "Now you have 0 tasks in the list."},
		{1, "Now you have 1 task in the list."},
		{2, "Now you have 2 tasks in the list."},
	}
	for _, tt := range tests {
		l := New()
		for i := 0; i < tt.n; i++ {
			l.Add(task.NewTodo("x"))
		}
		if got := l.CountSummary(); got != tt.want {
			t.Errorf("CountSummary(%d): got %q, want %q", tt.n, got, tt.want)
		}
	}
}
