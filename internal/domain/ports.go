package domain

import "context"

// MetadataProvider loads the direct dependency graph of a workspace.
type MetadataProvider interface {
	Load(ctx context.Context, manifestPath string) (*DependencyGraph, error)
}

// BuildOutcome is the captured result of an external build-graph command.
type BuildOutcome struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// BuildGraphProvider runs build-graph commands for a single package with
// default features disabled and only the given features enabled.
type BuildGraphProvider interface {
	Tree(ctx context.Context, manifestPath, pkg string, features []string) (BuildOutcome, error)
	Check(ctx context.Context, manifestPath, pkg string, features []string) (BuildOutcome, error)
}

// SourceWalker lists and reads the files of a source tree.
// Paths in the result are relative to base and sorted.
type SourceWalker interface {
	Walk(base, root string, include, exclude []string) ([]SourceFile, error)
}

// PolicyLoader resolves the guardrails policy for a workspace.
type PolicyLoader interface {
	Load(workspaceRoot, configPath string) (Policy, error)
}

// ManifestReader decodes a workspace manifest.
type ManifestReader interface {
	ReadWorkspace(path string) (*WorkspaceManifest, error)
}

// GitInfo provides repository details for the report header.
type GitInfo interface {
	CommitHash(path string) (string, error)
}
