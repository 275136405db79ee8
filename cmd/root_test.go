package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/sam-go/internal/config"
)

// sandbox isolates config lookup and points the task file into a temp dir.
func sandbox(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, name := range config.EnvVars() {
		t.Setenv(name, "")
	}
	t.Chdir(t.TempDir())

	taskFile := filepath.Join(home, "tasks.txt")
	t.Setenv("SAM_TASK_FILE", taskFile)
	return taskFile
}

func runSam(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return out.String(), errOut.String(), err
}

func readTasks(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func TestRunHelpAndVersion(t *testing.T) {
	sandbox(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-h"}, "Usage:"},
		{[]string{"--help"}, "calendar sync"},
		{[]string{"help"}, "Chat commands:"},
		{[]string{"-v"}, "sam version dev"},
		{[]string{"version"}, "sam version dev"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, _, err := runSam(t, "", tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestRunUnknownCommand(t *testing.T) {
	sandbox(t)
	_, errOut, err := runSam(t, "", "dance")
	if err == nil || !strings.Contains(err.Error(), "unknown command: dance") {
		t.Errorf("got %v", err)
	}
	if !strings.Contains(errOut, "Usage:") {
		t.Errorf("usage should go to stderr: %q", errOut)
	}
}

func TestRunBadFlag(t *testing.T) {
	sandbox(t)
	if _, _, err := runSam(t, "", "-ui", "web"); err == nil {
		t.Error("expected config error")
	}
}

func TestChatSession(t *testing.T) {
	taskFile := sandbox(t)

	out, _, err := runSam(t, "todo read book\ndeadline submit report /by 2023-11-15 0800\nmark 1\nbye\n")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	for _, want := range []string{
		"Hello! I'm Sam",
		"Got it. I've added this task:",
		"[D][ ] submit report (by: Nov 15 2023 08:00)",
		"Nice! I've marked this task as done:",
		"Bye. Hope to see you again soon!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	want := "T | 1 | read book\nD | 0 | submit report | 2023-11-15 0800\n"
	if got := readTasks(t, taskFile); got != want {
		t.Errorf("task file:\ngot  %q\nwant %q", got, want)
	}
}

func TestExecAndLs(t *testing.T) {
	taskFile := sandbox(t)

	out, _, err := runSam(t, "", "ls")
	if err != nil {
		t.Fatalf("ls: %v", err)
	}
	if !strings.Contains(out, "The task list is empty.") {
		t.Errorf("ls on empty list: %q", out)
	}

	for _, line := range [][]string{{"todo", "read", "book"}, {"todo", "buy", "milk"}} {
		if _, _, err := runSam(t, "", append([]string{"exec"}, line...)...); err != nil {
			t.Fatalf("exec %v: %v", line, err)
		}
	}
	if got := readTasks(t, taskFile); got != "T | 0 | read book\nT | 0 | buy milk\n" {
		t.Errorf("task file: %q", got)
	}

	out, _, err = runSam(t, "", "ls", "milk")
	if err != nil {
		t.Fatalf("ls milk: %v", err)
	}
	if !strings.Contains(out, "1.[T][ ] buy milk") || strings.Contains(out, "read book") {
		t.Errorf("ls milk: %q", out)
	}
	if strings.Contains(out, "Hello!") {
		t.Error("exec and ls should not greet")
	}

	if _, _, err := runSam(t, "", "exec"); err == nil {
		t.Error("exec without a line should fail")
	}
}

func TestExportImport(t *testing.T) {
	taskFile := sandbox(t)
	if _, _, err := runSam(t, "", "exec", "event", "camp", "/from", "2023-11-15", "0800", "/to", "2023-11-16", "1800"); err != nil {
		t.Fatal(err)
	}

	snapshot := filepath.Join(t.TempDir(), "snap.json")
	out, _, err := runSam(t, "", "export", "-o", snapshot)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "Exported 1 task to") {
		t.Errorf("export output: %q", out)
	}

	other := filepath.Join(t.TempDir(), "other.txt")
	out, _, err = runSam(t, "", "-tasks", other, "import", snapshot)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 1 task. Now you have 1 task in the list.") {
		t.Errorf("import output: %q", out)
	}
	if readTasks(t, other) != readTasks(t, taskFile) {
		t.Errorf("imported file differs:\n%s\nvs\n%s", readTasks(t, other), readTasks(t, taskFile))
	}

	out, _, err = runSam(t, "", "-tasks", other, "import", "-append", snapshot)
	if err != nil {
		t.Fatalf("import -append: %v", err)
	}
	if !strings.Contains(out, "Now you have 2 tasks in the list.") {
		t.Errorf("append output: %q", out)
	}
}

func TestExportToStdoutAndImportFromStdin(t *testing.T) {
	sandbox(t)
	if _, _, err := runSam(t, "", "exec", "todo", "read", "book"); err != nil {
		t.Fatal(err)
	}
	doc, _, err := runSam(t, "", "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(doc, `"description": "read book"`) {
		t.Fatalf("snapshot: %s", doc)
	}

	if _, _, err := runSam(t, doc, "import", "-"); err != nil {
		t.Fatalf("import -: %v", err)
	}
}

func TestImportRejectsInvalidSnapshot(t *testing.T) {
	taskFile := sandbox(t)
	if _, _, err := runSam(t, "", "exec", "todo", "keep me"); err != nil {
		t.Fatal(err)
	}

	_, _, err := runSam(t, `{"version": 1, "tasks": [{"kind": "deadline", "description": "x", "done": false}]}`, "import", "-")
	if err == nil || !strings.Contains(err.Error(), "invalid snapshot") {
		t.Fatalf("got %v, want invalid snapshot", err)
	}
	if got := readTasks(t, taskFile); got != "T | 0 | keep me\n" {
		t.Errorf("a rejected import must not touch the list: %q", got)
	}

	if _, _, err := runSam(t, "", "import"); err == nil {
		t.Error("import without a file should fail")
	}
}

func TestConfigCommand(t *testing.T) {
	taskFile := sandbox(t)

	out, _, err := runSam(t, "", "-log-level", "error", "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"Config files: (none)", taskFile, "(environment)", "log_level", "(flag)", "SAM_TASK_FILE"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}

	out, _, err = runSam(t, "", "config", "-example")
	if err != nil {
		t.Fatalf("config -example: %v", err)
	}
	if !strings.Contains(out, "[calendar]") {
		t.Errorf("example config: %q", out)
	}
}

func TestCalendarCommandErrors(t *testing.T) {
	sandbox(t)

	if _, _, err := runSam(t, "", "calendar"); err == nil {
		t.Error("calendar without subcommand should fail")
	}
	if _, _, err := runSam(t, "", "calendar", "paint"); err == nil || !strings.Contains(err.Error(), "unknown calendar command") {
		t.Errorf("got %v", err)
	}
	missing := filepath.Join(t.TempDir(), "credentials.json")
	_, _, err := runSam(t, "", "-calendar-creds", missing, "calendar", "sync")
	if err == nil || !strings.Contains(err.Error(), "client credentials") {
		t.Errorf("sync without credentials: got %v", err)
	}
	if _, _, err := runSam(t, "", "calendar", "help"); err != nil {
		t.Errorf("calendar help: %v", err)
	}
}
