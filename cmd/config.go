package cmd

import (
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/nibzard/sam-go/internal/config"
)

// configCommand prints the effective configuration with the source of
// each value.
func configCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("sam config", flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(e.out, config.ExampleConfig())
		return nil
	}

	files := "(none)"
	if len(e.sources.Files) > 0 {
		files = strings.Join(e.sources.Files, ", ")
	}
	fmt.Fprintf(e.out, "Config files: %s\n\n", files)

	tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	for _, field := range config.Fields() {
		fmt.Fprintf(tw, "%s\t%s\t(%s)\n", field, e.cfg.Value(field), e.sources.Sources[field])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(e.out, "\nEnvironment: %s\n", strings.Join(config.EnvVars(), ", "))
	return nil
}
