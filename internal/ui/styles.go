// Package ui renders Sam's replies on a terminal, either as a plain
// line-oriented console or as a full-screen chat.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// dividerWidth is the length of the rule drawn around each reply.
const dividerWidth = 60

// Styles holds the lipgloss styles used to render replies.
type Styles struct {
	Divider  lipgloss.Style
	Headline lipgloss.Style
	Detail   lipgloss.Style
	Error    lipgloss.Style
	Prompt   lipgloss.Style
	Title    lipgloss.Style
	Footer   lipgloss.Style
}

// NewStyles builds styles for renderer r. A renderer for a non-terminal
// writer produces plain text.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Divider:  r.NewStyle().Foreground(lipgloss.Color("8")),
		Headline: r.NewStyle().Bold(true),
		Detail:   r.NewStyle(),
		Error:    r.NewStyle().Foreground(lipgloss.Color("9")),
		Prompt:   r.NewStyle().Foreground(lipgloss.Color("12")),
		Title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		Footer:   r.NewStyle().Faint(true),
	}
}

// renderBlock lays out one reply: a divider, the headline, each detail
// line, and a closing divider. Every content line is indented by one space.
func renderBlock(s Styles, headline lipgloss.Style, text string, details ...string) []string {
	rule := s.Divider.Render(strings.Repeat("_", dividerWidth))
	out := []string{rule}
	for _, line := range strings.Split(text, "\n") {
		out = append(out, " "+headline.Render(line))
	}
	for _, d := range details {
		for _, line := range strings.Split(d, "\n") {
			out = append(out, " "+s.Detail.Render(line))
		}
	}
	return append(out, rule)
}
