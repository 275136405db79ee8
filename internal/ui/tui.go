package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/sam-go/internal/command"
)

// Handler executes one command line against a UI and reports whether the
// session should end. *loop.Loop satisfies it.
type Handler interface {
	Handle(line string, ui command.UI) bool
}

// maxScrollback bounds the number of transcript lines kept in memory.
const maxScrollback = 2000

// RunTUI runs the full-screen chat until the user says bye, presses
// esc or ctrl+c, or ctx is done. prompt precedes the input line and each
// echoed command.
func RunTUI(ctx context.Context, h Handler, prompt string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	program := tea.NewProgram(newChatModel(h, NewStyles(lipgloss.DefaultRenderer()), prompt), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// transcript collects replies as styled lines. It implements command.UI.
type transcript struct {
	styles Styles
	prompt string
	lines  []string
}

func (t *transcript) PrintMessage(headline string, details ...string) {
	t.append(renderBlock(t.styles, t.styles.Headline, headline, details...))
}

func (t *transcript) ShowError(message string) {
	t.append(renderBlock(t.styles, t.styles.Error, message))
}

func (t *transcript) ShutDown() {
	t.PrintMessage(command.MessageBye)
}

func (t *transcript) echo(line string) {
	t.append([]string{t.styles.Prompt.Render(t.prompt) + line})
}

func (t *transcript) append(lines []string) {
	t.lines = append(t.lines, lines...)
	if over := len(t.lines) - maxScrollback; over > 0 {
		t.lines = t.lines[over:]
	}
}

type chatModel struct {
	handler Handler
	input   textinput.Model
	log     *transcript
	styles  Styles
	width   int
	height  int
}

func newChatModel(h Handler, styles Styles, prompt string) *chatModel {
	ti := textinput.New()
	ti.Placeholder = "todo read book"
	ti.Prompt = prompt
	ti.CharLimit = 1024
	ti.Width = 60
	ti.Focus()

	m := &chatModel{
		handler: h,
		input:   ti,
		log:     &transcript{styles: styles, prompt: prompt},
		styles:  styles,
	}
	m.log.PrintMessage(command.MessageWelcome)
	return m
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			// Blank lines go to the handler too.
			line := m.input.Value()
			m.input.SetValue("")
			m.log.echo(line)
			if m.handler.Handle(line, m.log) {
				return m, tea.Quit
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Sam"))
	b.WriteString("\n\n")

	lines := m.log.lines
	if m.height > 0 {
		// title (2) + blank + input + blank + footer
		room := m.height - 6
		if room < 1 {
			room = 1
		}
		if len(lines) > room {
			lines = lines[len(lines)-room:]
		}
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Footer.Render("enter: send • help: commands • esc/ctrl+c: quit"))
	return b.String()
}
