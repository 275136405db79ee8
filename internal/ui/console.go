package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/sam-go/internal/command"
)

// Console writes replies to a line-oriented terminal or any writer.
type Console struct {
	out    io.Writer
	prompt string
	styles Styles
}

// NewConsole returns a console writing to out. Colors are used only when
// out is a terminal.
func NewConsole(out io.Writer, prompt string) *Console {
	return &Console{
		out:    out,
		prompt: prompt,
		styles: NewStyles(lipgloss.NewRenderer(out)),
	}
}

// Welcome greets the user.
func (c *Console) Welcome() {
	c.PrintMessage(command.MessageWelcome)
}

// Prompt prints the input prompt without a newline.
func (c *Console) Prompt() {
	if c.prompt == "" {
		return
	}
	fmt.Fprint(c.out, c.styles.Prompt.Render(c.prompt))
}

// PrintMessage prints a headline followed by detail lines.
func (c *Console) PrintMessage(headline string, details ...string) {
	c.write(renderBlock(c.styles, c.styles.Headline, headline, details...))
}

// ShowError prints an error reply.
func (c *Console) ShowError(message string) {
	c.write(renderBlock(c.styles, c.styles.Error, message))
}

// ShutDown says goodbye.
func (c *Console) ShutDown() {
	c.PrintMessage(command.MessageBye)
}

func (c *Console) write(lines []string) {
	fmt.Fprintln(c.out, strings.Join(lines, "\n"))
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
