package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/nibzard/sam-go/internal/calendar"
)

// CalendarCommand is the calendar command handler.
type CalendarCommand struct {
	env *env
}

// NewCalendarCommand creates a new calendar command.
func NewCalendarCommand(e *env) *CalendarCommand {
	return &CalendarCommand{env: e}
}

// Run executes the calendar command.
func (c *CalendarCommand) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.printUsage()
		return fmt.Errorf("calendar needs a subcommand")
	}

	switch args[0] {
	case "auth", "login":
		return c.runAuth(ctx)
	case "sync", "push":
		return c.runSync(ctx)
	case "help", "-h", "--help":
		c.printUsage()
		return nil
	default:
		c.printUsage()
		return fmt.Errorf("unknown calendar command: %s", args[0])
	}
}

func (c *CalendarCommand) printUsage() {
	fmt.Fprint(c.env.errOut, `Usage: sam calendar <command>

Commands:
  auth    Open the Google consent page and save a token
  sync    Create or update one calendar event per pending deadline and event

Client credentials are read from calendar.credentials_file; the token is
stored in calendar.token_file.
`)
}

func (c *CalendarCommand) runAuth(ctx context.Context) error {
	cfg := c.env.cfg.Calendar
	oauthCfg, err := calendar.LoadOAuthConfig(cfg.CredentialsFile)
	if err != nil {
		return err
	}
	a := &calendar.Authorizer{Config: oauthCfg, Out: c.env.out}
	tok, err := a.Authorize(ctx)
	if err != nil {
		return err
	}
	if err := calendar.SaveToken(cfg.TokenFile, tok); err != nil {
		return err
	}
	fmt.Fprintf(c.env.out, "Token saved to %s\n", cfg.TokenFile)
	return nil
}

func (c *CalendarCommand) runSync(ctx context.Context) error {
	cfg := c.env.cfg.Calendar
	oauthCfg, err := calendar.LoadOAuthConfig(cfg.CredentialsFile)
	if err != nil {
		return err
	}
	client, err := calendar.Client(ctx, oauthCfg, cfg.TokenFile)
	if err != nil {
		return err
	}
	svc, err := calendar.NewGoogleService(ctx, client, cfg.Name)
	if err != nil {
		return err
	}

	c.env.logger.Debug("using calendar", "name", cfg.Name, "id", svc.CalendarID())

	tasks, err := c.env.store().Load()
	if err != nil {
		return err
	}
	syncer := calendar.NewSyncer(svc, time.Duration(cfg.SlotMinutes)*time.Minute, c.env.logger)
	syncer.SetWorkers(cfg.Workers)
	res, err := syncer.Sync(ctx, tasks)
	if err != nil {
		return fmt.Errorf("calendar sync (%s): %w", res, err)
	}
	fmt.Fprintf(c.env.out, "Synced with calendar %q: %s\n", cfg.Name, res)
	return nil
}
