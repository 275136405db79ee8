package storage

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/sam-go/internal/task"
	"github.com/nibzard/sam-go/internal/tasklist"
	"github.com/nibzard/sam-go/internal/utils"
)

// SnapshotVersion is the only snapshot format version.
const SnapshotVersion = 1

const snapshotSchemaURL = "https://github.com/nibzard/sam-go/snapshot.schema.json"

//go:embed schema/snapshot.schema.json
var snapshotSchema string

// SnapshotSchema returns the embedded JSON Schema for snapshots.
func SnapshotSchema() string {
	return snapshotSchema
}

// Snapshot is the JSON export format of a task list.
type Snapshot struct {
	Version    int            `json:"version"`
	ExportedAt string         `json:"exported_at,omitempty"`
	Tasks      []SnapshotTask `json:"tasks"`
}

// SnapshotTask is one task inside a Snapshot.
type SnapshotTask struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
	By          string `json:"by,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
}

// ValidationError is a schema violation at a location in the snapshot.
type ValidationError struct {
	Path string // dotted path, e.g. tasks[2].by
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ErrInvalidSnapshot wraps every snapshot validation failure.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// NewSnapshot captures list at time now.
func NewSnapshot(list *tasklist.List, now time.Time) Snapshot {
	s := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Tasks:      make([]SnapshotTask, 0, list.Len()),
	}
	for _, t := range list.Tasks() {
		st := SnapshotTask{
			Kind:        t.Kind().String(),
			Description: t.Description(),
			Done:        t.Done(),
		}
		switch t.Kind() {
		case task.KindDeadline:
			st.By = task.FormatDateTime(t.By())
		case task.KindEvent:
			st.From = task.FormatDateTime(t.From())
			st.To = task.FormatDateTime(t.To())
		}
		s.Tasks = append(s.Tasks, st)
	}
	return s
}

// WriteSnapshot writes list as indented JSON with a trailing newline.
func WriteSnapshot(w io.Writer, list *tasklist.List, now time.Time) error {
	data, err := json.MarshalIndent(NewSnapshot(list, now), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// SnapshotOptions controls ReadSnapshot.
type SnapshotOptions struct {
	// SchemaPath overrides the embedded schema when set.
	SchemaPath string
}

// ReadSnapshot validates a JSON snapshot against the schema and returns
// its tasks in order.
func ReadSnapshot(r io.Reader, opts SnapshotOptions) ([]task.Task, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrInvalidSnapshot, err)
	}

	schema, err := compileSnapshotSchema(opts.SchemaPath)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, schemaErrors(err))
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidSnapshot, err)
	}

	tasks := make([]task.Task, 0, len(s.Tasks))
	for i, st := range s.Tasks {
		t, err := st.toTask()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, &ValidationError{
				Path: fmt.Sprintf("tasks[%d]", i),
				Err:  err,
			})
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (st SnapshotTask) toTask() (task.Task, error) {
	var t task.Task
	switch st.Kind {
	case task.KindTodo.String():
		t = task.NewTodo(st.Description)
	case task.KindDeadline.String():
		by, err := task.ParseDateTime(st.By)
		if err != nil {
			return task.Task{}, err
		}
		t = task.NewDeadline(st.Description, by)
	case task.KindEvent.String():
		from, err := task.ParseDateTime(st.From)
		if err != nil {
			return task.Task{}, err
		}
		to, err := task.ParseDateTime(st.To)
		if err != nil {
			return task.Task{}, err
		}
		if to.Before(from) {
			return task.Task{}, fmt.Errorf("event ends before it starts")
		}
		t = task.NewEvent(st.Description, from, to)
	default:
		return task.Task{}, fmt.Errorf("%w %q", task.ErrUnknownKind, st.Kind)
	}
	if st.Done {
		t.MarkDone()
	}
	return t, nil
}

func compileSnapshotSchema(path string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid schema path: %w", err)
		}
		if _, err := os.Stat(absPath); err != nil {
			return nil, fmt.Errorf("schema file: %w", err)
		}
		schema, err := compiler.Compile(absPath)
		if err != nil {
			return nil, fmt.Errorf("invalid schema file: %w", err)
		}
		return schema, nil
	}

	if err := compiler.AddResource(snapshotSchemaURL, strings.NewReader(snapshotSchema)); err != nil {
		return nil, fmt.Errorf("load embedded schema: %w", err)
	}
	schema, err := compiler.Compile(snapshotSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}
	return schema, nil
}

// schemaErrors flattens a jsonschema error tree into leaf ValidationErrors.
func schemaErrors(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	var errs []error
	collectSchemaErrors(ve, &errs)
	return errors.Join(errs...)
}

func collectSchemaErrors(err *jsonschema.ValidationError, out *[]error) {
	if len(err.Causes) == 0 {
		*out = append(*out, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, out)
	}
}
