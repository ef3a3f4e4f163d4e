package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// workspace moves the test into an empty directory and returns the database path
func workspace(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"BISTRO_CONFIG", "BISTRO_DB_URL", "BISTRO_DB_DRIVER", "BISTRO_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return filepath.Join(dir, "bistro.db")
}

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// run executes one command against db and fails the test on error
func run(t *testing.T, db string, args ...string) string {
	t.Helper()

	out, err := execute(t, "", append([]string{"--db", db}, args...)...)
	require.NoError(t, err, out)
	return out
}
