package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/abdidvp/archguard/internal/adapters/inbound/cli"
)

func workspaceDir(name string) string {
	abs, _ := filepath.Abs(filepath.Join("..", "..", "..", "..", "testdata", "cargo-workspace", name))
	return abs
}

// workspaceArgs points the command at a fixture workspace and its recorded metadata.
func workspaceArgs(dir string, args ...string) []string {
	return append([]string{"--root", dir, "--metadata-file", filepath.Join(dir, "metadata.json")}, args...)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}
