// Package fixture provides in-memory and file-backed stand-ins for the
// cargo adapter, for tests and for running against recorded metadata.
package fixture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/archguard/internal/adapters/outbound/cargo"
	"github.com/abdidvp/archguard/internal/domain"
)

// Metadata serves a fixed package list regardless of the manifest path.
type Metadata struct {
	Packages []domain.Package
	Err      error
}

// NewMetadata creates a Metadata fixture from packages.
func NewMetadata(pkgs ...domain.Package) *Metadata {
	return &Metadata{Packages: pkgs}
}

func (m *Metadata) Load(_ context.Context, _ string) (*domain.DependencyGraph, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return domain.NewDependencyGraph(m.Packages)
}

// MetadataFile reads recorded `cargo metadata` JSON from Path.
// A relative Path is resolved against Dir.
type MetadataFile struct {
	Path string
	Dir  string
}

// NewMetadataFile creates a file-backed metadata provider.
func NewMetadataFile(path, dir string) *MetadataFile {
	return &MetadataFile{Path: path, Dir: dir}
}

func (m *MetadataFile) Load(_ context.Context, _ string) (*domain.DependencyGraph, error) {
	path := m.Path
	if !filepath.IsAbs(path) && m.Dir != "" {
		path = filepath.Join(m.Dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata file: %w", err)
	}
	graph, err := cargo.ParseMetadata(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", m.Path, err)
	}
	return graph, nil
}

// Build replays canned build-graph outcomes keyed by package name.
// Calls are recorded in order.
type Build struct {
	Trees  map[string]domain.BuildOutcome
	Checks map[string]domain.BuildOutcome
	Err    error
	Calls  []string
}

// NewBuild creates an empty Build fixture; unknown packages succeed with no output.
func NewBuild() *Build {
	return &Build{
		Trees:  make(map[string]domain.BuildOutcome),
		Checks: make(map[string]domain.BuildOutcome),
	}
}

func (b *Build) Tree(_ context.Context, _ string, pkg string, _ []string) (domain.BuildOutcome, error) {
	b.Calls = append(b.Calls, "tree "+pkg)
	if b.Err != nil {
		return domain.BuildOutcome{}, b.Err
	}
	return b.Trees[pkg], nil
}

func (b *Build) Check(_ context.Context, _ string, pkg string, _ []string) (domain.BuildOutcome, error) {
	b.Calls = append(b.Calls, "check "+pkg)
	if b.Err != nil {
		return domain.BuildOutcome{}, b.Err
	}
	return b.Checks[pkg], nil
}
