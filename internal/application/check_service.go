package application

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/abdidvp/archguard/internal/domain"
	"github.com/abdidvp/archguard/internal/domain/apiban"
	"github.com/abdidvp/archguard/internal/domain/edges"
	"github.com/abdidvp/archguard/internal/domain/isolation"
	"github.com/abdidvp/archguard/internal/domain/manifest"
)

// CheckService orchestrates the guardrails pipeline:
// load graph -> edge rules -> API bans -> isolation builds -> manifest versions.
// Every group runs even when an earlier one fails; only setup errors abort.
type CheckService struct {
	metadata  domain.MetadataProvider
	build     domain.BuildGraphProvider
	walker    domain.SourceWalker
	manifests domain.ManifestReader
	git       domain.GitInfo
}

func NewCheckService(
	metadata domain.MetadataProvider,
	build domain.BuildGraphProvider,
	walker domain.SourceWalker,
	manifests domain.ManifestReader,
	git domain.GitInfo,
) *CheckService {
	return &CheckService{
		metadata:  metadata,
		build:     build,
		walker:    walker,
		manifests: manifests,
		git:       git,
	}
}

// Run evaluates every check group of the policy against the workspace at root.
func (s *CheckService) Run(ctx context.Context, root string, policy domain.Policy) (*domain.Report, error) {
	report := &domain.Report{WorkspaceRoot: root}
	if s.git != nil {
		if hash, err := s.git.CommitHash(root); err == nil {
			report.Commit = hash
		}
	}

	// 1. Graph load is the only fatal step.
	graph, err := s.LoadGraph(ctx, root, policy)
	if err != nil {
		return nil, err
	}
	report.Add(policy.EdgeGroupName, edges.Check(graph, policy.ForbiddenEdges, policy.RequiredEdges))

	// 2. API bans, one group per source tree.
	for _, group := range policy.APIBans {
		report.Add(group.Name, s.ScanAPIBans(root, group))
	}

	// 3. Isolation builds.
	manifestPath := resolve(root, policy.ManifestPath)
	for _, rule := range policy.Isolation {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Add(rule.Name, s.CheckIsolation(ctx, manifestPath, rule))
	}

	// 4. Manifest version hygiene.
	if policy.ManifestVersions.Enabled {
		report.Add(policy.ManifestVersions.Name, s.CheckManifestVersions(root, policy.ManifestVersions))
	}

	return report, nil
}

// LoadGraph loads the direct dependency graph of the policy's workspace manifest.
func (s *CheckService) LoadGraph(ctx context.Context, root string, policy domain.Policy) (*domain.DependencyGraph, error) {
	graph, err := s.metadata.Load(ctx, resolve(root, policy.ManifestPath))
	if err != nil {
		return nil, fmt.Errorf("loading workspace metadata: %w", err)
	}
	slog.Debug("loaded dependency graph", "packages", len(graph.Packages))
	return graph, nil
}

// ScanAPIBans reads the group's source tree once and evaluates every rule
// against it. An unreadable or missing tree is reported as a violation.
func (s *CheckService) ScanAPIBans(root string, group domain.APIBanGroup) []domain.Violation {
	files, err := s.walker.Walk(root, group.SourceRoot, group.Include, group.Exclude)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Violation{domain.Violationf("missing source root: %s", group.SourceRoot)}
		}
		return []domain.Violation{domain.Violationf("unable to scan %s: %v", group.SourceRoot, err)}
	}
	slog.Debug("scanned source tree", "group", group.Name, "root", group.SourceRoot, "files", len(files))
	return apiban.Scan(files, group.Rules)
}

// CheckIsolation runs the rule's build command and evaluates its outcome.
// A command that cannot be started is reported as a single violation.
func (s *CheckService) CheckIsolation(ctx context.Context, manifestPath string, rule domain.IsolationRule) []domain.Violation {
	var (
		outcome domain.BuildOutcome
		err     error
	)
	switch rule.Strategy {
	case domain.IsolationCheck:
		outcome, err = s.build.Check(ctx, manifestPath, rule.Package, rule.Features)
	default:
		outcome, err = s.build.Tree(ctx, manifestPath, rule.Package, rule.Features)
	}
	if err != nil {
		return []domain.Violation{domain.Violationf("unable to run isolation build for %s: %v", rule.Package, err)}
	}
	return isolation.Evaluate(rule, outcome)
}

// CheckManifestVersions rejects local version stamps in the workspace manifest.
func (s *CheckService) CheckManifestVersions(root string, cfg domain.ManifestVersions) []domain.Violation {
	m, err := s.manifests.ReadWorkspace(resolve(root, cfg.ManifestPath))
	if err != nil {
		return []domain.Violation{domain.Violationf("unable to read workspace manifest: %v", err)}
	}
	return manifest.CheckVersions(m)
}

func resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
