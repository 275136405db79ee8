package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nibzard/sam-go/internal/storage"
	"github.com/nibzard/sam-go/internal/task"
	"github.com/nibzard/sam-go/internal/tasklist"
)

// exportCommand writes the task list as a JSON snapshot.
func exportCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("sam export", flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	output := fs.String("o", "", "Write to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	tasks, err := e.store().Load()
	if err != nil {
		return err
	}
	list := tasklist.New(tasks...)

	if *output == "" {
		return storage.WriteSnapshot(e.out, list, time.Now())
	}
	f, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	if err := storage.WriteSnapshot(f, list, time.Now()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot file: %w", err)
	}
	fmt.Fprintf(e.out, "Exported %s to %s\n", countTasks(list.Len()), *output)
	return nil
}

// importCommand validates a snapshot and replaces or extends the list.
func importCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("sam import", flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	appendTasks := fs.Bool("append", false, "Add the snapshot's tasks after the existing ones")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("import needs exactly one snapshot file (or - for stdin)")
	}

	var r io.Reader = e.in
	if path := fs.Arg(0); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()
		r = f
	}

	imported, err := storage.ReadSnapshot(r, storage.SnapshotOptions{SchemaPath: e.cfg.SnapshotSchema})
	if err != nil {
		return err
	}

	store := e.store()
	var tasks []task.Task
	if *appendTasks {
		if tasks, err = store.Load(); err != nil {
			return err
		}
	}
	list := tasklist.New(append(tasks, imported...)...)
	if err := store.Save(list); err != nil {
		return err
	}
	e.logger.Info("imported snapshot", "tasks", len(imported), "append", *appendTasks)
	fmt.Fprintf(e.out, "Imported %s. %s\n", countTasks(len(imported)), list.CountSummary())
	return nil
}

func countTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
