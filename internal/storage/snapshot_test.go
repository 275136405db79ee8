package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/sam-go/internal/task"
	"github.com/nibzard/sam-go/internal/tasklist"
)

func TestSnapshotRoundTrip(t *testing.T) {
	by, _ := task.ParseDateTime("2023-11-15 0800")
	from, _ := task.ParseDateTime("2023-11-15 1400")
	to, _ := task.ParseDateTime("2023-11-15 1600")
	done := task.NewTodo("read book")
	done.MarkDone()
	list := tasklist.New(done, task.NewDeadline("submit report", by), task.NewEvent("meeting", from, to))

	var buf bytes.Buffer
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := WriteSnapshot(&buf, list, now); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "}\n") {
		t.Error("snapshot should end with a newline")
	}
	if !strings.Contains(buf.String(), `"exported_at": "2024-01-02T03:04:05Z"`) {
		t.Errorf("missing exported_at: %s", buf.String())
	}

	tasks, err := ReadSnapshot(&buf, SnapshotOptions{})
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	want := list.Tasks()
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i := range want {
		if !tasks[i].Equal(want[i]) {
			t.Errorf("task %d: got %v, want %v", i, tasks[i], want[i])
		}
	}
}

func TestReadSnapshotRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantPath string
	}{
		{"not json", `{`, ""},
		{"wrong version", `{"version": 2, "tasks": []}`, "version"},
		{"missing tasks", `{"version": 1}`, ""},
		{"unknown kind", `{"version": 1, "tasks": [{"kind": "chore", "description": "x", "done": false}]}`, "tasks[0].kind"},
		{"deadline without by", `{"version": 1, "tasks": [{"kind": "deadline", "description": "x", "done": false}]}`, "tasks[0]"},
		{"bad date", `{"version": 1, "tasks": [{"kind": "deadline", "description": "x", "done": false, "by": "tomorrow"}]}`, "tasks[0].by"},
		{"blank description", `{"version": 1, "tasks": [{"kind": "todo", "description": "  ", "done": false}]}`, "tasks[0].description"},
		{"event ends early", `{"version": 1, "tasks": [{"kind": "event", "description": "x", "done": false, "from": "2023-11-16 0800", "to": "2023-11-15 0800"}]}`, "tasks[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSnapshot(strings.NewReader(tt.doc), SnapshotOptions{})
			if !errors.Is(err, ErrInvalidSnapshot) {
				t.Fatalf("got %v, want ErrInvalidSnapshot", err)
			}
			if tt.wantPath != "" && !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error should mention %q: %v", tt.wantPath, err)
			}
		})
	}
}

func TestReadSnapshotWithSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.schema.json")
	if err := os.WriteFile(path, []byte(SnapshotSchema()), 0644); err != nil {
		t.Fatal(err)
	}
	doc := `{"version": 1, "tasks": [{"kind": "todo", "description": "read book", "done": true}]}`
	tasks, err := ReadSnapshot(strings.NewReader(doc), SnapshotOptions{SchemaPath: path})
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if len(tasks) != 1 || !tasks[0].Done() {
		t.Errorf("unexpected tasks: %v", tasks)
	}

	_, err = ReadSnapshot(strings.NewReader(doc), SnapshotOptions{SchemaPath: filepath.Join(t.TempDir(), "missing.json")})
	if err == nil {
		t.Error("expected error for missing schema file")
	}
}

func TestEmbeddedSchemaIsJSON(t *testing.T) {
	var v map[string]interface{}
	if err := json.Unmarshal([]byte(SnapshotSchema()), &v); err != nil {
		t.Fatalf("embedded schema is not valid JSON: %v", err)
	}
}
