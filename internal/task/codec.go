package task

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter separates the fields of a persisted line.
const Delimiter = " | "

var (
	// ErrUnknownKind is returned for a line whose tag is not T, D or E.
	ErrUnknownKind = errors.New("unknown task kind")
	// ErrMalformed is returned for a line with missing or invalid fields.
	ErrMalformed = errors.New("malformed task line")
)

// DecodeError describes a persisted line that could not be decoded.
type DecodeError struct {
	Text string // the offending line
	Err  error  // underlying error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %s", e.Text, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Encode returns the persisted line for t.
func (t Task) Encode() string {
	flag := "0"
	if t.done {
		flag = "1"
	}
	fields := []string{string(t.kind), flag, t.description}
	switch t.kind {
	case KindDeadline:
		fields = append(fields, FormatDateTime(t.by))
	case KindEvent:
		fields = append(fields, FormatDateTime(t.from), FormatDateTime(t.to))
	}
	return strings.Join(fields, Delimiter)
}

// Decode parses a persisted line produced by Encode.
func Decode(line string) (Task, error) {
	t, err := decode(line)
	if err != nil {
		return Task{}, &DecodeError{Text: line, Err: err}
	}
	return t, nil
}

func decode(line string) (Task, error) {
	fields := strings.SplitN(line, Delimiter, 3)
	if len(fields) < 3 {
		return Task{}, fmt.Errorf("%w: want at least 3 fields, got %d", ErrMalformed, len(fields))
	}

	kind := Kind(fields[0])
	var done bool
	switch fields[1] {
	case "0":
	case "1":
		done = true
	default:
		return Task{}, fmt.Errorf("%w: done flag %q is not 0 or 1", ErrMalformed, fields[1])
	}

	var extra int
	switch kind {
	case KindTodo:
	case KindDeadline:
		extra = 1
	case KindEvent:
		extra = 2
	default:
		return Task{}, fmt.Errorf("%w %q", ErrUnknownKind, fields[0])
	}

	// Date fields never contain the delimiter, so they are taken from the
	// back and whatever remains is the description.
	description := fields[2]
	times := make([]string, extra)
	for i := extra - 1; i >= 0; i-- {
		cut := strings.LastIndex(description, Delimiter)
		if cut < 0 {
			return Task{}, fmt.Errorf("%w: %s needs %d fields after the done flag", ErrMalformed, kind, extra+1)
		}
		times[i] = description[cut+len(Delimiter):]
		description = description[:cut]
	}
	if strings.TrimSpace(description) == "" {
		return Task{}, fmt.Errorf("%w: empty description", ErrMalformed)
	}

	var t Task
	switch kind {
	case KindTodo:
		t = NewTodo(description)
	case KindDeadline:
		by, err := ParseDateTime(times[0])
		if err != nil {
			return Task{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		t = NewDeadline(description, by)
	case KindEvent:
		from, err := ParseDateTime(times[0])
		if err != nil {
			return Task{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		to, err := ParseDateTime(times[1])
		if err != nil {
			return Task{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		t = NewEvent(description, from, to)
	}
	t.done = done
	return t, nil
}
