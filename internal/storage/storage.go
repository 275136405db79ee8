// Package storage persists the task list as one encoded line per task.
package storage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/sam-go/internal/task"
	"github.com/nibzard/sam-go/internal/tasklist"
)

var (
	// ErrRead wraps failures reading the task file.
	ErrRead = errors.New("read task file")
	// ErrWrite wraps failures writing the task file.
	ErrWrite = errors.New("write task file")
)

// File stores tasks in a plain text file.
type File struct {
	path   string
	logger *log.Logger
}

// NewFile returns a store for path. A nil logger discards warnings.
func NewFile(path string, logger *log.Logger) *File {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &File{path: path, logger: logger}
}

// Load reads every task from the file in order. A missing file is an
// empty list. Lines that fail to decode are skipped with a warning.
func (f *File) Load() ([]task.Task, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Debug("task file not found, starting empty", "path", f.path)
			return nil, nil
		}
		return nil, fmt.Errorf("%w %s: %v", ErrRead, f.path, err)
	}

	var tasks []task.Task
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := task.Decode(line)
		if err != nil {
			f.logger.Warn("skipping corrupt task line", "path", f.path, "line", lineNo, "err", err)
			continue
		}
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrRead, f.path, err)
	}

	f.logger.Debug("loaded tasks", "path", f.path, "count", len(tasks))
	return tasks, nil
}

// Save rewrites the file with every task in list. The write goes to a
// temporary file in the same directory which then replaces the original.
func (f *File) Save(list *tasklist.List) error {
	var b strings.Builder
	for _, t := range list.Tasks() {
		b.WriteString(t.Encode())
		b.WriteByte('\n')
	}

	if err := writeFileAtomic(f.path, []byte(b.String())); err != nil {
		return fmt.Errorf("%w %s: %v", ErrWrite, f.path, err)
	}
	f.logger.Debug("saved tasks", "path", f.path, "count", list.Len())
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
