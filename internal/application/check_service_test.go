package application_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/archguard/internal/adapters/outbound/fixture"
	"github.com/abdidvp/archguard/internal/adapters/outbound/manifest"
	"github.com/abdidvp/archguard/internal/adapters/outbound/scanner"
	"github.com/abdidvp/archguard/internal/application"
	"github.com/abdidvp/archguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGit struct{ hash string }

func (g stubGit) CommitHash(string) (string, error) {
	if g.hash == "" {
		return "", errors.New("not a repo")
	}
	return g.hash, nil
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func layeredGraph() *fixture.Metadata {
	return fixture.NewMetadata(
		domain.Package{Name: "app-domain"},
		domain.Package{Name: "app-core", Dependencies: []string{"app-domain"}},
		domain.Package{Name: "app-cli", Dependencies: []string{"app-core"}},
	)
}

func testPolicy() domain.Policy {
	return domain.Policy{
		ManifestPath:   "Cargo.toml",
		ForbiddenEdges: []domain.EdgeRule{{Source: "app-domain", Targets: []string{"app-cli", "app-core"}}},
		RequiredEdges:  []domain.EdgeRule{{Source: "app-cli", Targets: []string{"app-core"}}},
		APIBans: []domain.APIBanGroup{{
			Name:       "domain API bans",
			SourceRoot: "crates/app-domain/src",
			Rules: []domain.APIBanRule{
				{Token: "std::fs", Baseline: map[string]int{"crates/app-domain/src/legacy.rs": 1}},
			},
		}},
		Isolation: []domain.IsolationRule{{Name: "cli isolation", Package: "app-cli", Forbidden: "app-web"}},
		ManifestVersions: domain.ManifestVersions{
			Enabled: true,
		},
	}.WithDefaults()
}

func cleanWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "Cargo.toml", "[workspace]\n[workspace.package]\nversion = \"1.0.0\"\n")
	writeFile(t, root, "crates/app-domain/src/lib.rs", "pub mod legacy;\n")
	writeFile(t, root, "crates/app-domain/src/legacy.rs", "use std::fs;\n")
	return root
}

func newService(meta domain.MetadataProvider, build *fixture.Build) *application.CheckService {
	return application.NewCheckService(meta, build, scanner.New(), manifest.New(), stubGit{hash: "abc123"})
}

func groupNames(r *domain.Report) []string {
	var names []string
	for _, g := range r.Groups {
		names = append(names, g.Name)
	}
	return names
}

func TestCheckService_AllClean(t *testing.T) {
	root := cleanWorkspace(t)
	build := fixture.NewBuild()
	build.Trees["app-cli"] = domain.BuildOutcome{Stdout: "app-cli v1.0.0\n└── app-core v1.0.0\n"}

	report, err := newService(layeredGraph(), build).Run(context.Background(), root, testPolicy())
	require.NoError(t, err)

	assert.Equal(t, []string{"crate edge rules", "domain API bans", "cli isolation", "workspace manifest versions"}, groupNames(report))
	for _, g := range report.Groups {
		assert.Empty(t, g.Violations, "group %s", g.Name)
	}
	assert.Equal(t, 0, report.ExitCode())
	assert.Equal(t, "abc123", report.Commit)
	assert.Equal(t, root, report.WorkspaceRoot)
	assert.Equal(t, []string{"tree app-cli"}, build.Calls)
}

func TestCheckService_EveryGroupRunsAfterFailures(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Cargo.toml", "[workspace.package]\nversion = \"1.0.0-local\"\n")
	writeFile(t, root, "crates/app-domain/src/legacy.rs", "std::fs std::fs")
	writeFile(t, root, "crates/app-domain/src/new.rs", "std::fs")

	meta := fixture.NewMetadata(
		domain.Package{Name: "app-domain", Dependencies: []string{"app-cli"}},
		domain.Package{Name: "app-cli"},
	)
	build := fixture.NewBuild()
	build.Trees["app-cli"] = domain.BuildOutcome{Stdout: "app-cli v1.0.0\n└── app-web v1.0.0\n"}

	report, err := newService(meta, build).Run(context.Background(), root, testPolicy())
	require.NoError(t, err)
	require.Len(t, report.Groups, 4)

	assert.Equal(t, []domain.Violation{
		{Message: "forbidden dependency edge: app-domain -> app-cli"},
		{Message: "missing required dependency edge: app-cli -> app-core"},
	}, report.Groups[0].Violations)
	assert.Equal(t, []domain.Violation{
		{Message: "increased std::fs usage in crates/app-domain/src/legacy.rs (2 > baseline 1)"},
		{Message: "new std::fs usage in crates/app-domain/src/new.rs (1 matches)"},
	}, report.Groups[1].Violations)
	assert.Equal(t, []domain.Violation{
		{Message: "app-cli --no-default-features still pulls app-web in dependency tree"},
	}, report.Groups[2].Violations)
	assert.Equal(t, []domain.Violation{
		{Message: `[workspace.package] version = "1.0.0-local"`},
	}, report.Groups[3].Violations)
	assert.Equal(t, 1, report.ExitCode())
}

func TestCheckService_GraphLoadFailureIsFatal(t *testing.T) {
	meta := &fixture.Metadata{Err: domain.ErrToolNotFound}

	report, err := newService(meta, fixture.NewBuild()).Run(context.Background(), t.TempDir(), testPolicy())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, domain.ErrToolNotFound))
	assert.Contains(t, err.Error(), "loading workspace metadata")
}

func TestCheckService_MissingSourceRootIsViolation(t *testing.T) {
	svc := newService(layeredGraph(), fixture.NewBuild())

	got := svc.ScanAPIBans(t.TempDir(), domain.APIBanGroup{Name: "g", SourceRoot: "gone/src", Include: []string{"**/*.rs"}})
	assert.Equal(t, []domain.Violation{{Message: "missing source root: gone/src"}}, got)
}

func TestCheckService_ScanIsIdempotent(t *testing.T) {
	root := cleanWorkspace(t)
	writeFile(t, root, "crates/app-domain/src/a.rs", "std::fs")
	writeFile(t, root, "crates/app-domain/src/z/b.rs", "std::fs")
	svc := newService(layeredGraph(), fixture.NewBuild())
	group := testPolicy().APIBans[0]

	first := svc.ScanAPIBans(root, group)
	second := svc.ScanAPIBans(root, group)
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestCheckService_IsolationCheckStrategy(t *testing.T) {
	build := fixture.NewBuild()
	build.Checks["app-cli"] = domain.BuildOutcome{ExitCode: 101, Stderr: "error: could not compile `app-cli`"}
	svc := newService(layeredGraph(), build)

	rule := domain.IsolationRule{Package: "app-cli", Forbidden: "app-web", Strategy: domain.IsolationCheck}
	got := svc.CheckIsolation(context.Background(), "Cargo.toml", rule)

	assert.Equal(t, []domain.Violation{{Message: "build failed under isolation: error: could not compile `app-cli`"}}, got)
	assert.Equal(t, []string{"check app-cli"}, build.Calls)
}

func TestCheckService_IsolationCommandErrorIsViolation(t *testing.T) {
	build := fixture.NewBuild()
	build.Err = domain.ErrToolNotFound
	svc := newService(layeredGraph(), build)

	got := svc.CheckIsolation(context.Background(), "Cargo.toml", domain.IsolationRule{Package: "app-cli", Forbidden: "app-web"})
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "unable to run isolation build for app-cli")
}

func TestCheckService_UnreadableManifestIsViolation(t *testing.T) {
	svc := newService(layeredGraph(), fixture.NewBuild())

	got := svc.CheckManifestVersions(t.TempDir(), domain.ManifestVersions{Enabled: true, ManifestPath: "Cargo.toml"})
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "unable to read workspace manifest")
}

func TestCheckService_ManifestCheckDisabled(t *testing.T) {
	policy := testPolicy()
	policy.ManifestVersions.Enabled = false

	report, err := newService(layeredGraph(), fixture.NewBuild()).Run(context.Background(), cleanWorkspace(t), policy)
	require.NoError(t, err)
	assert.NotContains(t, groupNames(report), "workspace manifest versions")
}

func TestCheckService_NoGitInfo(t *testing.T) {
	svc := application.NewCheckService(layeredGraph(), fixture.NewBuild(), scanner.New(), manifest.New(), nil)
	report, err := svc.Run(context.Background(), cleanWorkspace(t), testPolicy())
	require.NoError(t, err)
	assert.Empty(t, report.Commit)
}

func TestCheckService_LoadGraph(t *testing.T) {
	svc := newService(layeredGraph(), fixture.NewBuild())
	g, err := svc.LoadGraph(context.Background(), t.TempDir(), testPolicy())
	require.NoError(t, err)
	assert.Equal(t, []string{"app-cli", "app-core", "app-domain"}, g.Names())
}
