package domain_test

import (
	"errors"
	"testing"

	"github.com/abdidvp/archguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDependencyGraph(t *testing.T) {
	g, err := domain.NewDependencyGraph([]domain.Package{
		{Name: "b", Dependencies: []string{"a"}},
		{Name: "a"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, g.Names())
	b, ok := g.Lookup("b")
	require.True(t, ok)
	assert.True(t, b.HasDependency("a"))
	assert.False(t, b.HasDependency("c"))

	_, ok = g.Lookup("missing")
	assert.False(t, ok)
}

func TestNewDependencyGraph_DuplicateName(t *testing.T) {
	_, err := domain.NewDependencyGraph([]domain.Package{{Name: "a"}, {Name: "a"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedMetadata))
}

func TestEdgeRule_SortedTargets(t *testing.T) {
	r := domain.EdgeRule{Targets: []string{"web", "cli", "web", "core"}}
	assert.Equal(t, []string{"cli", "core", "web"}, r.SortedTargets())
	assert.Equal(t, []string{"web", "cli", "web", "core"}, r.Targets, "receiver untouched")
}

func TestAPIBanRule_Allowance(t *testing.T) {
	r := domain.APIBanRule{Token: "x", Baseline: map[string]int{"a.rs": 2}}

	n, ok := r.Allowance("a.rs")
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = r.Allowance("b.rs")
	assert.False(t, ok)
	assert.Zero(t, n)

	assert.Equal(t, "///", r.Marker())
	assert.Equal(t, "#", domain.APIBanRule{DocCommentMarker: "#"}.Marker())
}

func TestScanResult_PathsSorted(t *testing.T) {
	r := domain.ScanResult{Counts: map[string]int{"z.rs": 1, "a.rs": 2, "m/b.rs": 3}}
	assert.Equal(t, []string{"a.rs", "m/b.rs", "z.rs"}, r.Paths())
}

func TestReport_ExitCode(t *testing.T) {
	r := &domain.Report{}
	r.Add("edges", nil)
	r.Add("bans", []domain.Violation{})
	assert.False(t, r.Failed())
	assert.Equal(t, 0, r.ExitCode())

	r.Add("isolation", []domain.Violation{domain.Violationf("leak: %s", "web")})
	assert.True(t, r.Failed())
	assert.Equal(t, 1, r.ExitCode())
	assert.Equal(t, "leak: web", r.Groups[2].Violations[0].String())
}
