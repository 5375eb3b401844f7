// Package manifest checks that a workspace manifest does not carry local
// build version stamps. Local builds stamp the reported CLI version at
// build time instead of editing the manifest.
package manifest

import (
	"sort"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
)

// CheckVersions reports every workspace-level version string containing "local".
func CheckVersions(m *domain.WorkspaceManifest) []domain.Violation {
	if m == nil || !m.HasWorkspace {
		return nil
	}

	var violations []domain.Violation
	if isLocal(m.PackageVersion) {
		violations = append(violations,
			domain.Violationf("[workspace.package] version = %q", m.PackageVersion))
	}

	names := make([]string, 0, len(m.DependencyVersions))
	for name := range m.DependencyVersions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := m.DependencyVersions[name]
		if isLocal(v) {
			violations = append(violations,
				domain.Violationf("[workspace.dependencies] %s.version = %q", name, v))
		}
	}
	return violations
}

func isLocal(version string) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(version)), "local")
}
