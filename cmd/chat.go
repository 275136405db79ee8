package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/nibzard/sam-go/internal/command"
	"github.com/nibzard/sam-go/internal/config"
	"github.com/nibzard/sam-go/internal/ui"
)

// chatCommand runs the interactive session in the configured front end.
func chatCommand(ctx context.Context, e *env, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	if e.cfg.UI == config.UITUI {
		return tuiCommand(ctx, e, args)
	}

	l, err := e.session()
	if err != nil {
		return err
	}
	return l.Run(ctx, e.in, ui.NewConsole(e.out, e.cfg.Prompt))
}

func tuiCommand(ctx context.Context, e *env, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	l, err := e.session()
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, l, e.cfg.Prompt)
}

// execCommand runs a single command line without greeting.
func execCommand(e *env, args []string) error {
	line := strings.Join(args, " ")
	if strings.TrimSpace(line) == "" {
		return fmt.Errorf("exec needs a command line, e.g. sam exec list")
	}
	l, err := e.session()
	if err != nil {
		return err
	}
	l.Handle(line, ui.NewConsole(e.out, ""))
	return nil
}

// lsCommand prints the list, or the tasks matching a search text.
func lsCommand(e *env, args []string) error {
	line := command.WordList
	if query := strings.TrimSpace(strings.Join(args, " ")); query != "" {
		line = command.WordFind + " " + query
	}
	return execCommand(e, []string{line})
}
