package domain

// WorkspaceManifest is the subset of a Cargo workspace manifest inspected
// by the version hygiene check.
type WorkspaceManifest struct {
	// HasWorkspace is false when the manifest has no [workspace] table.
	HasWorkspace   bool
	PackageVersion string
	// DependencyVersions holds the version of every table-form entry
	// under [workspace.dependencies] that declares one.
	DependencyVersions map[string]string
}
