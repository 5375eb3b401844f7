package domain

import (
	"fmt"
	"sort"
)

// Package is a single workspace member and the names of its direct dependencies.
type Package struct {
	Name         string   `json:"name"`
	Dependencies []string `json:"dependencies"`
}

// HasDependency reports whether name is a direct dependency of the package.
func (p Package) HasDependency(name string) bool {
	for _, dep := range p.Dependencies {
		if dep == name {
			return true
		}
	}
	return false
}

// DependencyGraph maps package names to packages. It only carries direct
// edges; transitive reachability is never computed.
type DependencyGraph struct {
	Packages map[string]Package `json:"packages"`
}

// NewDependencyGraph builds a graph from a package list. Package names must be unique.
func NewDependencyGraph(pkgs []Package) (*DependencyGraph, error) {
	g := &DependencyGraph{Packages: make(map[string]Package, len(pkgs))}
	for _, p := range pkgs {
		if _, dup := g.Packages[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate package %q", ErrMalformedMetadata, p.Name)
		}
		g.Packages[p.Name] = p
	}
	return g, nil
}

// Lookup returns the named package.
func (g *DependencyGraph) Lookup(name string) (Package, bool) {
	if g == nil {
		return Package{}, false
	}
	p, ok := g.Packages[name]
	return p, ok
}

// Names returns all package names in lexicographic order.
func (g *DependencyGraph) Names() []string {
	if g == nil {
		return nil
	}
	names := make([]string, 0, len(g.Packages))
	for name := range g.Packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EdgeRuleKind tags an edge rule as forbidden or required.
type EdgeRuleKind string

const (
	EdgeForbidden EdgeRuleKind = "forbidden"
	EdgeRequired  EdgeRuleKind = "required"
)

// EdgeRule constrains the direct dependencies of Source on each of Targets.
type EdgeRule struct {
	Kind    EdgeRuleKind `yaml:"-"       json:"kind"`
	Source  string       `yaml:"source"  json:"source"`
	Targets []string     `yaml:"targets" json:"targets"`
}

// SortedTargets returns the rule targets de-duplicated and sorted.
func (r EdgeRule) SortedTargets() []string {
	seen := make(map[string]bool, len(r.Targets))
	out := make([]string, 0, len(r.Targets))
	for _, t := range r.Targets {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// APIBanRule bans a raw substring in a source tree. Baseline maps a
// workspace-relative path to the number of occurrences still tolerated
// there; unlisted files tolerate none.
type APIBanRule struct {
	Token            string         `yaml:"token"                        json:"token"`
	Baseline         map[string]int `yaml:"baseline,omitempty"           json:"baseline,omitempty"`
	SkipDocComments  bool           `yaml:"skip_doc_comments,omitempty"  json:"skip_doc_comments,omitempty"`
	DocCommentMarker string         `yaml:"doc_comment_marker,omitempty" json:"doc_comment_marker,omitempty"`
}

// DefaultDocCommentMarker is the Rust outer doc-comment prefix.
const DefaultDocCommentMarker = "///"

// Allowance returns the baseline for path and whether an entry exists.
func (r APIBanRule) Allowance(path string) (int, bool) {
	n, ok := r.Baseline[path]
	return n, ok
}

// Marker returns the doc-comment marker, falling back to the default.
func (r APIBanRule) Marker() string {
	if r.DocCommentMarker == "" {
		return DefaultDocCommentMarker
	}
	return r.DocCommentMarker
}

// SourceFile is a file read from a scanned tree.
type SourceFile struct {
	Path    string // workspace-relative, slash separated
	Content string
}

// ScanResult holds per-file occurrence counts of one token. Only files
// with at least one hit are present.
type ScanResult struct {
	Token  string         `json:"token"`
	Counts map[string]int `json:"counts"`
}

// Paths returns the paths with hits in lexicographic order.
func (r ScanResult) Paths() []string {
	paths := make([]string, 0, len(r.Counts))
	for p := range r.Counts {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Violation is a single failing finding. There is no severity tier.
type Violation struct {
	Message string `json:"message"`
}

func (v Violation) String() string { return v.Message }

// Violationf formats a Violation.
func Violationf(format string, args ...any) Violation {
	return Violation{Message: fmt.Sprintf(format, args...)}
}

// CheckGroupResult is the outcome of one named check group.
type CheckGroupResult struct {
	Name       string      `json:"name"`
	Violations []Violation `json:"violations"`
}

// Failed reports whether the group produced any violation.
func (r CheckGroupResult) Failed() bool { return len(r.Violations) > 0 }

// Report aggregates every check group of one run.
type Report struct {
	WorkspaceRoot string             `json:"workspace_root"`
	Commit        string             `json:"commit,omitempty"`
	Groups        []CheckGroupResult `json:"groups"`
}

// Failed is true if any group failed.
func (r *Report) Failed() bool {
	for _, g := range r.Groups {
		if g.Failed() {
			return true
		}
	}
	return false
}

// ExitCode is 0 when every group is clean and 1 otherwise.
func (r *Report) ExitCode() int {
	if r.Failed() {
		return 1
	}
	return 0
}

// Add appends a group result.
func (r *Report) Add(name string, violations []Violation) {
	r.Groups = append(r.Groups, CheckGroupResult{Name: name, Violations: violations})
}
