// Package cargo runs the cargo binary to load workspace metadata and to
// inspect isolation builds.
package cargo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
)

// DefaultBinary is used when no cargo binary is configured.
const DefaultBinary = "cargo"

// Cargo implements domain.MetadataProvider and domain.BuildGraphProvider
// by shelling out to cargo. Commands run in Dir.
type Cargo struct {
	Binary string
	Dir    string
}

// New creates a Cargo adapter rooted at dir. An empty binary means "cargo".
func New(binary, dir string) *Cargo {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Cargo{Binary: binary, Dir: dir}
}

// Load runs `cargo metadata --no-deps` for the manifest and parses the result.
// Only direct dependency edges are reported.
func (c *Cargo) Load(ctx context.Context, manifestPath string) (*domain.DependencyGraph, error) {
	out, err := c.run(ctx, "metadata", "--manifest-path", manifestPath, "--format-version", "1", "--no-deps")
	if err != nil {
		return nil, fmt.Errorf("running cargo metadata: %w", err)
	}
	if out.ExitCode != 0 {
		return nil, fmt.Errorf("%w: cargo metadata exited with status %d\n%s",
			domain.ErrToolFailed, out.ExitCode, strings.TrimSpace(out.Stderr))
	}

	graph, err := ParseMetadata([]byte(out.Stdout))
	if err != nil {
		return nil, fmt.Errorf("parsing cargo metadata: %w", err)
	}
	return graph, nil
}

// Tree runs `cargo tree -p pkg --no-default-features`.
func (c *Cargo) Tree(ctx context.Context, manifestPath, pkg string, features []string) (domain.BuildOutcome, error) {
	args := []string{"tree", "--manifest-path", manifestPath, "-p", pkg, "--no-default-features"}
	return c.run(ctx, withFeatures(args, features)...)
}

// Check runs `cargo check -p pkg --no-default-features --quiet`.
func (c *Cargo) Check(ctx context.Context, manifestPath, pkg string, features []string) (domain.BuildOutcome, error) {
	args := []string{"check", "--manifest-path", manifestPath, "-p", pkg, "--no-default-features", "--quiet"}
	return c.run(ctx, withFeatures(args, features)...)
}

func withFeatures(args, features []string) []string {
	if len(features) == 0 {
		return args
	}
	return append(args, "--features", strings.Join(features, ","))
}

// run executes the binary and captures both streams. A non-zero exit is
// reported through BuildOutcome.ExitCode, not as an error; errors are
// reserved for commands that could not be started.
func (c *Cargo) run(ctx context.Context, args ...string) (domain.BuildOutcome, error) {
	slog.Debug("running external command", "binary", c.Binary, "args", args, "dir", c.Dir)

	cmd := exec.CommandContext(ctx, c.Binary, args...)
	cmd.Dir = c.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := domain.BuildOutcome{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return out, fmt.Errorf("%w: %s is not installed or not on PATH", domain.ErrToolNotFound, c.Binary)
	}
	if ctx.Err() != nil {
		return out, ctx.Err()
	}
	return out, fmt.Errorf("%w: %s: %v", domain.ErrToolFailed, c.Binary, err)
}
