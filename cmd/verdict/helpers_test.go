package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// isolate runs the test from an empty working directory with no VERDICT_*
// overrides in effect.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"VERDICT_RUBRICS_DIR", "VERDICT_SCORES_DIR", "VERDICT_REFERENCES_DIR", "VERDICT_CONFIG"} {
		t.Setenv(key, "")
	}
	return dir
}

// runCommand executes the root command with args and returns stdout and stderr.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func sloppyTranscript() string {
	return strings.Join([]string{
		`{"role": "assistant", "content": "Starting the migration"}`,
		"error: build failed",
		"TODO: finish the handler",
		"I assumed the API returns JSON",
		"exception raised in worker",
	}, "\n") + "\n"
}
