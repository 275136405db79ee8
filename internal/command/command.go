// Package command defines the operations Sam performs on a task list.
//
// A Command is a closed tagged variant: Kind selects which payload fields
// are meaningful, and Execute dispatches on it. Commands are built by the
// parser, executed once, and discarded.
package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/nibzard/sam-go/internal/task"
	"github.com/nibzard/sam-go/internal/tasklist"
)

// Kind identifies a command variant.
type Kind int

const (
	KindIncorrect Kind = iota
	KindAddTodo
	KindAddDeadline
	KindAddEvent
	KindDelete
	KindMark
	KindUnmark
	KindList
	KindFind
	KindHelp
	KindExit
)

var kindNames = map[Kind]string{
	KindIncorrect:   "incorrect",
	KindAddTodo:     WordTodo,
	KindAddDeadline: WordDeadline,
	KindAddEvent:    WordEvent,
	KindDelete:      WordDelete,
	KindMark:        WordMark,
	KindUnmark:      WordUnmark,
	KindList:        WordList,
	KindFind:        WordFind,
	KindHelp:        WordHelp,
	KindExit:        WordExit,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// UI receives the outcome of a command.
type UI interface {
	PrintMessage(headline string, details ...string)
	ShowError(message string)
	ShutDown()
}

// Storage persists the full list after a mutation.
type Storage interface {
	Save(list *tasklist.List) error
}

// Command is one validated instruction.
type Command struct {
	Kind Kind

	Description string    // add commands
	By          time.Time // deadline
	From, To    time.Time // event
	Index       int       // 0-based target for delete, mark and unmark
	Query       string    // find
	Message     string    // diagnostic for an incorrect command
}

// AddTodo returns a command adding a todo.
func AddTodo(description string) Command {
	return Command{Kind: KindAddTodo, Description: description}
}

// AddDeadline returns a command adding a deadline.
func AddDeadline(description string, by time.Time) Command {
	return Command{Kind: KindAddDeadline, Description: description, By: by}
}

// AddEvent returns a command adding an event.
func AddEvent(description string, from, to time.Time) Command {
	return Command{Kind: KindAddEvent, Description: description, From: from, To: to}
}

// Delete returns a command removing the task at the 0-based index.
func Delete(index int) Command {
	return Command{Kind: KindDelete, Index: index}
}

// Mark returns a command marking the task at the 0-based index done.
func Mark(index int) Command {
	return Command{Kind: KindMark, Index: index}
}

// Unmark returns a command marking the task at the 0-based index not done.
func Unmark(index int) Command {
	return Command{Kind: KindUnmark, Index: index}
}

// List returns a command listing every task.
func List() Command {
	return Command{Kind: KindList}
}

// Find returns a command listing tasks whose description contains query.
func Find(query string) Command {
	return Command{Kind: KindFind, Query: query}
}

// Help returns a command printing usage for every command.
func Help() Command {
	return Command{Kind: KindHelp}
}

// Exit returns a command ending the session.
func Exit() Command {
	return Command{Kind: KindExit}
}

// Incorrect returns a command that only reports message.
func Incorrect(message string) Command {
	return Command{Kind: KindIncorrect, Message: message}
}

// DisplayIndex returns the 1-based index shown to the user.
func (c Command) DisplayIndex() int {
	return c.Index + 1
}

// IsExit reports whether the driving loop should stop after this command.
func (c Command) IsExit() bool {
	return c.Kind == KindExit
}

// Mutates reports whether executing c changes the list.
func (c Command) Mutates() bool {
	switch c.Kind {
	case KindAddTodo, KindAddDeadline, KindAddEvent, KindDelete, KindMark, KindUnmark:
		return true
	}
	return false
}

// Execute performs the command against list and reports through ui.
// Mutating commands then save the whole list; a save failure is shown as
// an error but the in-memory change stays. Execute returns IsExit().
func (c Command) Execute(list *tasklist.List, ui UI, store Storage) bool {
	switch c.Kind {
	case KindAddTodo:
		c.add(list, ui, store, task.NewTodo(c.Description))
	case KindAddDeadline:
		c.add(list, ui, store, task.NewDeadline(c.Description, c.By))
	case KindAddEvent:
		c.add(list, ui, store, task.NewEvent(c.Description, c.From, c.To))
	case KindDelete:
		removed, err := list.Delete(c.DisplayIndex())
		if err != nil {
			showListError(ui, err)
			return false
		}
		ui.PrintMessage(MessageDeleteTask, "  "+removed.Render(), list.CountSummary())
		save(list, ui, store)
	case KindMark:
		marked, err := list.Mark(c.DisplayIndex())
		if err != nil {
			showListError(ui, err)
			return false
		}
		ui.PrintMessage(MessageMarkTask, "  "+marked.Render())
		save(list, ui, store)
	case KindUnmark:
		unmarked, err := list.Unmark(c.DisplayIndex())
		if err != nil {
			showListError(ui, err)
			return false
		}
		ui.PrintMessage(MessageUnmarkTask, "  "+unmarked.Render())
		save(list, ui, store)
	case KindList:
		lines, err := list.Listing()
		if err != nil {
			showListError(ui, err)
			return false
		}
		ui.PrintMessage(MessageListTasks, lines...)
	case KindFind:
		lines, err := list.Find(c.Query).Listing()
		if errors.Is(err, tasklist.ErrEmptyList) {
			ui.ShowError(fmt.Sprintf(MessageNoMatch, c.Query))
			return false
		}
		ui.PrintMessage(MessageFoundTasks, lines...)
	case KindHelp:
		ui.PrintMessage(MessageHelp, Usages...)
	case KindExit:
		ui.ShutDown()
	default:
		ui.ShowError(c.Message)
	}
	return c.IsExit()
}

func (c Command) add(list *tasklist.List, ui UI, store Storage, t task.Task) {
	list.Add(t)
	ui.PrintMessage(MessageAddTask, "  "+t.Render(), list.CountSummary())
	save(list, ui, store)
}

func save(list *tasklist.List, ui UI, store Storage) {
	if store == nil {
		return
	}
	if err := store.Save(list); err != nil {
		ui.ShowError(fmt.Sprintf(MessageFailedToSave, err))
	}
}

func showListError(ui UI, err error) {
	switch {
	case errors.Is(err, tasklist.ErrEmptyList):
		ui.ShowError(MessageEmptyList)
	default:
		ui.ShowError(capitalize(err.Error()) + ".")
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
