package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

// newTestApp builds the app with buffered writers and without the
// default exit handler, so Run returns its error instead of calling
// os.Exit.
func newTestApp(stdout, stderr *bytes.Buffer) *cli.App {
	app := newApp()
	app.Writer = stdout
	app.ErrWriter = stderr
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var coder cli.ExitCoder
	if !errors.As(err, &coder) {
		t.Fatalf("Expected a cli exit code, got %T: %v", err, err)
	}
	return coder.ExitCode()
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.bconf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write input file: %v", err)
	}
	return path
}

func TestRun_SuccessToStdout(t *testing.T) {
	path := writeInput(t, "table([PORT = 0b1010])")

	var stdout, stderr bytes.Buffer
	err := newTestApp(&stdout, &stderr).Run([]string{"binconf", path})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	expected := "{\n  \"PORT\": 10\n}\n"
	if stdout.String() != expected {
		t.Errorf("Unexpected stdout:\nexpected: %q\ngot: %q", expected, stdout.String())
	}
}

func TestRun_SuccessToOutputFile(t *testing.T) {
	path := writeInput(t, "0b1 -> A")
	// Parent directories of the output path are created as needed.
	outPath := filepath.Join(t.TempDir(), "deep", "nested", "out.json")

	var stdout, stderr bytes.Buffer
	err := newTestApp(&stdout, &stderr).Run([]string{"binconf", "-o", outPath, path})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	expected := "{\n  \"A\": 1\n}\n"
	if string(data) != expected {
		t.Errorf("Unexpected file contents:\nexpected: %q\ngot: %q", expected, string(data))
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected empty stdout, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), outPath) {
		t.Errorf("Expected a note naming %s on stderr, got %q", outPath, stderr.String())
	}
}

func TestRun_MissingInputFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.bconf")

	var stdout, stderr bytes.Buffer
	err := newTestApp(&stdout, &stderr).Run([]string{"binconf", missing})
	if code := exitCode(t, err); code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected a not-found message, got %q", err.Error())
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected empty stdout, got %q", stdout.String())
	}
}

func TestRun_SyntaxError(t *testing.T) {
	path := writeInput(t, "table([A 0b1])")

	var stdout, stderr bytes.Buffer
	err := newTestApp(&stdout, &stderr).Run([]string{"binconf", path})
	if code := exitCode(t, err); code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.HasPrefix(stderr.String(), "Syntax error: line 1, column 10:") {
		t.Errorf("Expected a positioned syntax error on stderr, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected empty stdout, got %q", stdout.String())
	}
}
