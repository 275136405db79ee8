// Package cmd implements the CLI command structure for sam.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/sam-go/internal/config"
	"github.com/nibzard/sam-go/internal/logging"
	"github.com/nibzard/sam-go/internal/loop"
	"github.com/nibzard/sam-go/internal/storage"
)

// Version is set via ldflags at build time.
var Version = "dev"

// env carries what every subcommand needs.
type env struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	logger  *log.Logger
}

func (e *env) store() *storage.File {
	return storage.NewFile(e.cfg.TaskFile, e.logger)
}

func (e *env) session() (*loop.Loop, error) {
	return loop.New(e.store(), e.logger)
}

// Run executes the sam CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("sam", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		printUsage(fs, errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, out)
		return nil
	}
	if *showVersion {
		return versionCommand(out)
	}

	// Determine the subcommand
	subcommand := "chat"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "version":
		return versionCommand(out)
	case "help":
		printUsage(fs, out)
		return nil
	}

	logger, closer, err := logging.Open(errOut, logging.OptionsFromConfig(cws.Config))
	if err != nil {
		return err
	}
	defer closer.Close()

	e := &env{
		cfg:     cws.Config,
		sources: cws,
		in:      in,
		out:     out,
		errOut:  errOut,
		logger:  logger,
	}
	logger.Debug("starting", "command", subcommand, "tasks", e.cfg.TaskFile, "config", cws.ConfigFile())

	switch subcommand {
	case "chat":
		return chatCommand(ctx, e, remainingArgs)
	case "tui":
		return tuiCommand(ctx, e, remainingArgs)
	case "exec":
		return execCommand(e, remainingArgs)
	case "ls":
		return lsCommand(e, remainingArgs)
	case "export":
		return exportCommand(e, remainingArgs)
	case "import":
		return importCommand(e, remainingArgs)
	case "calendar":
		return NewCalendarCommand(e).Run(ctx, remainingArgs)
	case "config":
		return configCommand(e, remainingArgs)
	default:
		fmt.Fprintf(errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "sam version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Sam - a personal task assistant you talk to one line at a time")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  sam [options] [command] [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  chat              Talk to Sam (default command)")
	fmt.Fprintln(w, "  tui               Talk to Sam in a full-screen terminal UI")
	fmt.Fprintln(w, "  exec <line...>    Run one command line, e.g. sam exec todo read book")
	fmt.Fprintln(w, "  ls [text]         List tasks, or those whose description contains text")
	fmt.Fprintln(w, "  export [-o file]  Write the task list as a JSON snapshot")
	fmt.Fprintln(w, "  import [-append] <file|->  Replace (or extend) the list from a snapshot")
	fmt.Fprintln(w, "  calendar auth     Authorize access to Google Calendar")
	fmt.Fprintln(w, "  calendar sync     Push pending deadlines and events to Google Calendar")
	fmt.Fprintln(w, "  config [-example] Show the effective configuration and where it came from")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Chat commands:")
	fmt.Fprintln(w, "  todo DESC | deadline DESC /by yyyy-MM-dd HHmm")
	fmt.Fprintln(w, "  event DESC /from yyyy-MM-dd HHmm /to yyyy-MM-dd HHmm")
	fmt.Fprintln(w, "  list | find TEXT | mark N | unmark N | delete N | help | bye")
}
