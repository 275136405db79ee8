// Package loop drives a chat session: it reads command lines, executes
// them against the task list and reports through the UI.
//
// A Loop is not safe for concurrent use. Callers that share one across
// goroutines must serialize Handle calls themselves.
package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/sam-go/internal/command"
	"github.com/nibzard/sam-go/internal/parser"
	"github.com/nibzard/sam-go/internal/task"
	"github.com/nibzard/sam-go/internal/tasklist"
)

// Store loads the list at startup and saves it after every mutation.
type Store interface {
	Load() ([]task.Task, error)
	command.Storage
}

// Session is the console a REPL talks to.
type Session interface {
	command.UI
	Welcome()
	Prompt()
}

// Loop owns the task list for one session.
type Loop struct {
	list   *tasklist.List
	store  Store
	logger *log.Logger
}

// New loads the task list from store.
func New(store Store, logger *log.Logger) (*Loop, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tasks, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	logger.Debug("session started", "tasks", len(tasks))
	return &Loop{
		list:   tasklist.New(tasks...),
		store:  store,
		logger: logger,
	}, nil
}

// List returns the live task list.
func (l *Loop) List() *tasklist.List {
	return l.list
}

// Handle parses and executes one line. It reports whether the session
// should end.
func (l *Loop) Handle(line string, ui command.UI) bool {
	cmd := parser.Parse(line)
	if cmd.Kind == command.KindIncorrect {
		l.logger.Debug("rejected input", "line", line)
	} else {
		l.logger.Debug("executing command", "kind", cmd.Kind)
	}
	return cmd.Execute(l.list, ui, l.store)
}

// Run is the read-execute loop. It greets the user, then handles one line
// at a time until an exit command, end of input, or ctx is done. At end of
// input the session is shut down as if the user had said goodbye.
func (l *Loop) Run(ctx context.Context, in io.Reader, s Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		// No line-length limit.
		r := bufio.NewReader(in)
		for {
			line, err := r.ReadString('\n')
			if line != "" {
				line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					errc <- err
				}
				return
			}
		}
	}()

	s.Welcome()
	for {
		s.Prompt()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				var err error
				select {
				case err = <-errc:
				default:
				}
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				l.logger.Debug("input closed")
				s.ShutDown()
				return nil
			}
			if l.Handle(line, s) {
				return nil
			}
		}
	}
}
