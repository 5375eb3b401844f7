package e2e_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/abdidvp/archguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "archguard-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "archguard")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/archguard")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func fixturePath(name string) string {
	abs, _ := filepath.Abs(filepath.Join("../../testdata/cargo-workspace", name))
	return abs
}

// offline runs the binary against a fixture with its recorded cargo metadata.
func offline(t *testing.T, name string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	dir := fixturePath(name)
	return run(t, nil, append([]string{"--no-color", "--root", dir, "--metadata-file", filepath.Join(dir, "metadata.json")}, args...)...)
}

func run(t *testing.T, env []string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), env...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		} else {
			t.Fatalf("running archguard: %v", err)
		}
	}
	return outBuf.String(), errBuf.String(), code
}

func TestE2E_CleanWorkspacePasses(t *testing.T) {
	out, errOut, code := offline(t, "layered")
	assert.Equal(t, 0, code)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "OK: crate edge rules")
	assert.Contains(t, out, "Architecture guardrails passed.")
}

func TestE2E_DriftedWorkspaceFails(t *testing.T) {
	out, errOut, code := offline(t, "drifted", "check")
	assert.Equal(t, 1, code)
	assert.Empty(t, errOut, "a failing report is not an error")
	assert.Contains(t, out, "FAIL: crate edge rules")
	assert.Contains(t, out, "Architecture guardrails failed.")
}

func TestE2E_CheckJSON(t *testing.T) {
	out, _, code := offline(t, "drifted", "check", "--json")
	assert.Equal(t, 1, code)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Groups, 4)
	assert.True(t, report.Failed())
}

func TestE2E_SetupErrorExitsOne(t *testing.T) {
	dir := t.TempDir()
	_, errOut, code := run(t, nil, "--root", dir, "--metadata-file", filepath.Join(dir, "missing.json"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "error: loading workspace metadata")
}

func TestE2E_Version(t *testing.T) {
	out, _, code := run(t, nil, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "archguard")
}
