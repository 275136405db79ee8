// Package parser turns one line of user input into a command.
//
// Parsing happens in two stages. The trimmed line is split into a command
// word and the remaining arguments; the word then selects an argument
// parser. Parse never fails: malformed arguments yield an incorrect
// command carrying the diagnostic and the usage of the command that was
// attempted, and unknown words yield the help command.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/sam-go/internal/command"
	"github.com/nibzard/sam-go/internal/task"
)

var (
	basicCommandFormat = regexp.MustCompile(`(?s)^(?P<word>\S+)(?P<args>.*)$`)
	taskIndexFormat    = regexp.MustCompile(`^\d+$`)
)

// Argument separators.
const (
	SeparatorBy   = "/by"
	SeparatorFrom = "/from"
	SeparatorTo   = "/to"
)

// separatorFormats match a separator only as a whole whitespace-delimited
// word, so "/bylaws" or "submit/by" are not separators.
var separatorFormats = map[string]*regexp.Regexp{
	SeparatorBy:   separatorFormat(SeparatorBy),
	SeparatorFrom: separatorFormat(SeparatorFrom),
	SeparatorTo:   separatorFormat(SeparatorTo),
}

func separatorFormat(sep string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)^(?:(.*?)\s+)?` + regexp.QuoteMeta(sep) + `(?:\s+(.*))?$`)
}

// cutSeparator splits text around the first standalone occurrence of sep.
func cutSeparator(text, sep string) (before, after string, found bool) {
	m := separatorFormats[sep].FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

var (
	// ErrMissingIndex is returned when an index command has no bare number.
	ErrMissingIndex = errors.New("could not find index number to parse")
	// ErrBadIndex is returned when the number does not fit an int.
	ErrBadIndex = errors.New("could not parse index number")
	// ErrEmptyDescription is returned when an add command has no description.
	ErrEmptyDescription = errors.New("the description cannot be empty")
	// ErrMissingSeparator is returned when /by, /from or /to is absent.
	ErrMissingSeparator = errors.New("missing separator")
	// ErrEmptyField is returned when a date-time field is blank.
	ErrEmptyField = errors.New("empty field")
	// ErrEventOrder is returned when an event ends before it starts.
	ErrEventOrder = errors.New("the event cannot end before it starts")
)

// FormatError reports invalid arguments for a recognized command word.
type FormatError struct {
	Word  string // command word that was recognized
	Usage string // usage text for that command
	Err   error  // underlying error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s\n%s\n%s", command.MessageInvalidFormat, capitalize(e.Err.Error()), e.Usage)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// argParser converts the argument remainder into a command.
type argParser struct {
	usage string
	parse func(args string) (command.Command, error)
}

var argParsers = map[string]argParser{
	command.WordTodo:     {command.UsageTodo, parseTodo},
	command.WordDeadline: {command.UsageDeadline, parseDeadline},
	command.WordEvent:    {command.UsageEvent, parseEvent},
	command.WordDelete:   {command.UsageDelete, indexed(command.Delete)},
	command.WordMark:     {command.UsageMark, indexed(command.Mark)},
	command.WordUnmark:   {command.UsageUnmark, indexed(command.Unmark)},
	command.WordList:     {command.UsageList, noArgs(command.List)},
	command.WordFind:     {command.UsageFind, parseFind},
	command.WordExit:     {command.UsageExit, noArgs(command.Exit)},
}

// Parse converts a raw input line into a command.
func Parse(line string) command.Command {
	word, args, ok := Split(line)
	if !ok {
		return command.Incorrect(command.MessageInvalidFormat + "\n" + command.UsageHelp)
	}

	p, ok := argParsers[word]
	if !ok {
		return command.Help()
	}
	cmd, err := p.parse(args)
	if err != nil {
		return command.Incorrect((&FormatError{Word: word, Usage: p.usage, Err: err}).Error())
	}
	return cmd
}

// Split returns the command word and argument remainder of line. ok is
// false when the line has no non-whitespace content.
func Split(line string) (word, args string, ok bool) {
	m := basicCommandFormat.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func parseTodo(args string) (command.Command, error) {
	description := strings.TrimSpace(args)
	if description == "" {
		return command.Command{}, ErrEmptyDescription
	}
	return command.AddTodo(description), nil
}

func parseDeadline(args string) (command.Command, error) {
	description, by, found := cutSeparator(args, SeparatorBy)
	if !found {
		return command.Command{}, fmt.Errorf("%w %s", ErrMissingSeparator, SeparatorBy)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return command.Command{}, ErrEmptyDescription
	}
	due, err := parseField(SeparatorBy, by)
	if err != nil {
		return command.Command{}, err
	}
	return command.AddDeadline(description, due), nil
}

func parseEvent(args string) (command.Command, error) {
	description, span, found := cutSeparator(args, SeparatorFrom)
	if !found {
		return command.Command{}, fmt.Errorf("%w %s", ErrMissingSeparator, SeparatorFrom)
	}
	fromText, toText, found := cutSeparator(span, SeparatorTo)
	if !found {
		return command.Command{}, fmt.Errorf("%w %s", ErrMissingSeparator, SeparatorTo)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return command.Command{}, ErrEmptyDescription
	}
	from, err := parseField(SeparatorFrom, fromText)
	if err != nil {
		return command.Command{}, err
	}
	to, err := parseField(SeparatorTo, toText)
	if err != nil {
		return command.Command{}, err
	}
	if to.Before(from) {
		return command.Command{}, ErrEventOrder
	}
	return command.AddEvent(description, from, to), nil
}

func parseFind(args string) (command.Command, error) {
	return command.Find(strings.TrimSpace(args)), nil
}

func parseField(separator, text string) (time.Time, error) {
	if strings.TrimSpace(text) == "" {
		return time.Time{}, fmt.Errorf("%w after %s", ErrEmptyField, separator)
	}
	return task.ParseDateTime(text)
}

// indexed parses the arguments as one display index and builds the
// command with the 0-based index. Bounds are checked at execution.
func indexed(build func(index int) command.Command) func(string) (command.Command, error) {
	return func(args string) (command.Command, error) {
		index, err := parseDisplayedIndex(args)
		if err != nil {
			return command.Command{}, err
		}
		return build(index), nil
	}
}

func parseDisplayedIndex(args string) (int, error) {
	digits := strings.TrimSpace(args)
	if !taskIndexFormat.MatchString(digits) {
		return 0, ErrMissingIndex
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, ErrBadIndex
	}
	return n - 1, nil
}

// noArgs ignores any trailing text.
func noArgs(build func() command.Command) func(string) (command.Command, error) {
	return func(string) (command.Command, error) {
		return build(), nil
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
